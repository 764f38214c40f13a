package pdfmarker

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wako6/pdf-marker/logging"
)

// newSourcePDF writes a PDF with the given number of A4 pages and
// returns its path.
func newSourcePDF(t *testing.T, pages int) string {
	t.Helper()
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 100, fmt.Sprintf("Source page %d", i+1))
	}
	path := filepath.Join(t.TempDir(), "source.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

// newLogoPNG writes a small opaque PNG and returns its path.
func newLogoPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

// validatePDF checks that the file at path parses as a well-formed PDF
// and returns its page count.
func validatePDF(t *testing.T, path string) int {
	t.Helper()
	require.NoError(t, api.ValidateFile(path, model.NewDefaultConfiguration()))
	count, err := api.PageCountFile(path)
	require.NoError(t, err)
	return count
}

// utf16BE renders s the way PDF text strings embed document
// information: a big-endian BOM followed by UTF-16BE code units.
func utf16BE(s string) []byte {
	out := []byte{0xfe, 0xff}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

// TestEditor_PageGeometry verifies page count and size queries against
// a real source document.
func TestEditor_PageGeometry(t *testing.T) {
	source := newSourcePDF(t, 2)
	e := New(source)

	count, err := e.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	width, height, err := e.PageSize(1)
	require.NoError(t, err)
	assert.InDelta(t, 595.28, width, 0.5)
	assert.InDelta(t, 841.89, height, 0.5)

	_, _, err = e.PageSize(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")
}

// TestEditor_SourceMissing verifies geometry queries and composition
// both surface ErrSourceUnreadable for an absent file.
func TestEditor_SourceMissing(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "absent.pdf"))

	_, err := e.PageCount()
	assert.ErrorIs(t, err, ErrSourceUnreadable)

	err = e.WriteToFile(filepath.Join(t.TempDir(), "out.pdf"))
	assert.ErrorIs(t, err, ErrSourceUnreadable)
}

// TestWriteToFile_PassThrough verifies an empty queue reproduces the
// source document page for page.
func TestWriteToFile_PassThrough(t *testing.T) {
	source := newSourcePDF(t, 3)
	e := New(source)
	out := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, e.WriteToFile(out))

	assert.Equal(t, 3, validatePDF(t, out))
	srcDims, err := api.PageDimsFile(source)
	require.NoError(t, err)
	outDims, err := api.PageDimsFile(out)
	require.NoError(t, err)
	require.Len(t, outDims, len(srcDims))
	for i := range srcDims {
		assert.InDelta(t, srcDims[i].Width, outDims[i].Width, 0.5)
		assert.InDelta(t, srcDims[i].Height, outDims[i].Height, 0.5)
	}
}

// TestWriteToFile_ComposeTwice verifies composing does not consume the
// queue, so the same Editor can produce the same document repeatedly.
func TestWriteToFile_ComposeTwice(t *testing.T) {
	source := newSourcePDF(t, 2)
	e := New(source)
	e.AddText("Hello\nWorld", 10, 700)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.pdf")
	second := filepath.Join(dir, "second.pdf")

	require.NoError(t, e.WriteToFile(first))
	require.NoError(t, e.WriteToFile(second))

	assert.Equal(t, 1, e.PendingCount())
	assert.Equal(t, 2, validatePDF(t, first))
	assert.Equal(t, 2, validatePDF(t, second))
}

// TestWriteToFile_AfterReset verifies a reset queue composes as a pure
// pass-through.
func TestWriteToFile_AfterReset(t *testing.T) {
	source := newSourcePDF(t, 2)
	e := New(source)
	e.AddText("discarded", 10, 700)
	e.Reset()
	out := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, e.WriteToFile(out))

	assert.Equal(t, 2, validatePDF(t, out))
}

// TestWriteToFile_FullComposition runs text, image, signature and
// watermark annotations over a multi-page source and verifies the
// output is well formed while the source stays untouched.
func TestWriteToFile_FullComposition(t *testing.T) {
	source := newSourcePDF(t, 3)
	logo := newLogoPNG(t)
	originalBytes, err := os.ReadFile(source)
	require.NoError(t, err)

	e := New(source)
	e.SetMetadata(Metadata{Title: "Annotated", Author: "QA", Creator: "pdf-marker"})
	e.AddText("Hello\nWorld", 10, 700)

	textOpts := DefaultTextOptions()
	textOpts.Page = 1
	textOpts.Rotation = 45
	textOpts.Opacity = 0.6
	textOpts.Color = "#CC0000"
	e.AddTextOptions("Rotated note", 300, 400, textOpts)

	imgOpts := DefaultImageOptions()
	imgOpts.Page = 1
	width := 80.0
	imgOpts.Width = &width
	e.AddImageOptions(logo, 100, 200, imgOpts)

	sigOpts := DefaultSignatureOptions()
	sigOpts.Page = 2
	sigOpts.LogoPath = logo
	sigOpts.Now = fixedClock
	AddSignatureBlock(e, 50, 150, sigOpts)

	require.NoError(t, AddTextWatermark(e, "DRAFT", DefaultWatermarkOptions()))

	out := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, e.WriteToFile(out))

	assert.Equal(t, 3, validatePDF(t, out))
	afterBytes, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, originalBytes, afterBytes, "source document should not change")
}

// TestWriteToFile_EmbedsMetadata verifies document information set on
// the editor lands in the composed output.
func TestWriteToFile_EmbedsMetadata(t *testing.T) {
	source := newSourcePDF(t, 1)
	e := New(source)
	e.SetMetadata(Metadata{Title: "Quarterly Report", Author: "Jane Doe"})
	e.AddText("hello", 10, 700)
	out := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, e.WriteToFile(out))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(raw, utf16BE("Quarterly Report")), "title missing from document information")
	assert.True(t, bytes.Contains(raw, utf16BE("Jane Doe")), "author missing from document information")
}

// TestWriteToFile_SkipsUnknownPages verifies annotations aimed past
// the last page vanish without failing the run.
func TestWriteToFile_SkipsUnknownPages(t *testing.T) {
	source := newSourcePDF(t, 1)
	e := New(source)
	opts := DefaultTextOptions()
	opts.Page = 9
	e.AddTextOptions("nowhere", 10, 10, opts)
	out := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, e.WriteToFile(out))

	assert.Equal(t, 1, validatePDF(t, out))
}

// TestWriteToFile_LeavesNoFileOnFailure verifies a failed composition
// creates no output file at all.
func TestWriteToFile_LeavesNoFileOnFailure(t *testing.T) {
	source := newSourcePDF(t, 1)
	e := New(source)
	e.AddImage(filepath.Join(t.TempDir(), "missing.png"), 10, 10)
	out := filepath.Join(t.TempDir(), "out.pdf")

	err := e.WriteToFile(out)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImageUnreadable)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

// TestWriteToFile_ReportsAnnotationContext verifies fatal errors name
// the page, annotation index and kind that failed.
func TestWriteToFile_ReportsAnnotationContext(t *testing.T) {
	source := newSourcePDF(t, 1)
	e := New(source)
	e.AddText("fine", 10, 700)
	opts := DefaultTextOptions()
	opts.Font = "Wingdings"
	e.AddTextOptions("broken", 10, 650, opts)

	err := e.WriteToFile(filepath.Join(t.TempDir(), "out.pdf"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFontUnresolved)
	assert.Contains(t, err.Error(), "page 0")
	assert.Contains(t, err.Error(), "annotation 1")
	assert.Contains(t, err.Error(), "(text)")
}

// TestWriteToFile_BadColor verifies color failures carry the sentinel
// through the public surface.
func TestWriteToFile_BadColor(t *testing.T) {
	source := newSourcePDF(t, 1)
	e := New(source)
	opts := DefaultTextOptions()
	opts.Color = "red"
	e.AddTextOptions("tinted", 10, 700, opts)

	err := e.WriteToFile(filepath.Join(t.TempDir(), "out.pdf"))

	assert.ErrorIs(t, err, ErrColorInvalid)
}

// TestWrite_Streams verifies composition into an arbitrary writer.
func TestWrite_Streams(t *testing.T) {
	source := newSourcePDF(t, 1)
	e := New(source)
	e.AddText("streamed", 10, 700)
	var buf bytes.Buffer

	require.NoError(t, e.Write(&buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

// TestWrite_LeavesWriterUntouchedOnFailure verifies a failing run
// writes nothing into the destination.
func TestWrite_LeavesWriterUntouchedOnFailure(t *testing.T) {
	source := newSourcePDF(t, 1)
	e := New(source)
	e.AddImage(filepath.Join(t.TempDir(), "missing.png"), 10, 10)
	var buf bytes.Buffer

	err := e.Write(&buf)

	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

// TestWriteToFile_LogsSummary verifies the completion summary names
// the output and the composed annotation count.
func TestWriteToFile_LogsSummary(t *testing.T) {
	handler := logging.NewBufferedLogHandler(&slog.HandlerOptions{Level: slog.LevelInfo})
	oldLogger := logging.Logger()
	defer logging.SetLogger(oldLogger)
	logging.SetLogger(slog.New(handler))

	source := newSourcePDF(t, 1)
	e := New(source)
	e.AddText("logged", 10, 700)
	out := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, e.WriteToFile(out))

	assert.True(t, handler.Contains("document composed"))
	assert.True(t, handler.Contains(out))
}

// TestWriteToFile_CustomFont verifies a registered TrueType font can
// style annotations end to end.
func TestWriteToFile_CustomFont(t *testing.T) {
	fontPath := findTestFont(t)
	source := newSourcePDF(t, 1)
	e := New(source)
	e.RegisterFont("Custom", fontPath)
	opts := DefaultTextOptions()
	opts.Font = "custom"
	e.AddTextOptions("Bespoke type", 10, 700, opts)
	out := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, e.WriteToFile(out))

	assert.Equal(t, 1, validatePDF(t, out))
}

// findTestFont locates a TrueType font on the host, skipping the test
// when none is installed.
func findTestFont(t *testing.T) string {
	t.Helper()
	candidates := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/Library/Fonts/Arial Unicode.ttf",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("no TrueType font available on this host")
	return ""
}
