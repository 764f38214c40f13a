package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSamplePDF builds a PDF with the given number of A4 pages and
// returns its path.
func writeSamplePDF(t *testing.T, pages int) string {
	t.Helper()
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 72, fmt.Sprintf("page %d", i+1))
	}
	path := filepath.Join(t.TempDir(), "sample.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

// TestOpen tests opening a valid document and reading its geometry.
func TestOpen(t *testing.T) {
	path := writeSamplePDF(t, 3)

	src, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path())
	assert.Equal(t, 3, src.PageCount())

	w, h, ok := src.PageSize(0)
	require.True(t, ok)
	assert.InDelta(t, 595.28, w, 0.5)
	assert.InDelta(t, 841.89, h, 0.5)
}

// TestOpen_FileNotFound tests the missing-file error path.
func TestOpen_FileNotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnreadable)
}

// TestOpen_NotAPDF tests opening a file that is not a document.
func TestOpen_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no pages"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnreadable)
}

// TestSource_PageSize_OutOfBounds tests indexes with no page.
func TestSource_PageSize_OutOfBounds(t *testing.T) {
	src, err := Open(writeSamplePDF(t, 1))
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 99} {
		_, _, ok := src.PageSize(index)
		assert.False(t, ok, "index %d", index)
	}
}

// TestSource_Reader tests that every Reader call starts at the top of
// the document bytes.
func TestSource_Reader(t *testing.T) {
	src, err := Open(writeSamplePDF(t, 1))
	require.NoError(t, err)

	first, err := io.ReadAll(src.Reader())
	require.NoError(t, err)
	second, err := io.ReadAll(src.Reader())
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, "%PDF", string(first[:4]))
}
