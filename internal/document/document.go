// Package document gives the compositor read access to the source PDF:
// its raw bytes for page import and its page geometry in points.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Source is an opened source document. The file is read once; every
// later access works off the cached bytes and geometry.
type Source struct {
	path string
	data []byte
	dims []types.Dim
}

// Open reads the document at path and resolves its page geometry.
//
// Returns an error wrapping ErrSourceUnreadable if the file cannot be
// read or is not a paginated document.
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSourceUnreadable, path, err)
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSourceUnreadable, path, err)
	}
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSourceUnreadable, path, err)
	}
	if len(dims) != count {
		return nil, fmt.Errorf("%w: %q: %d pages with %d dimension entries",
			ErrSourceUnreadable, path, count, len(dims))
	}

	return &Source{path: path, data: data, dims: dims}, nil
}

// Path returns the file path the source was opened from.
func (s *Source) Path() string {
	return s.path
}

// PageCount returns the number of pages.
func (s *Source) PageCount() int {
	return len(s.dims)
}

// PageSize returns the width and height of page index (0-based) in
// points. ok is false when the index has no corresponding page.
func (s *Source) PageSize(index int) (w, h float64, ok bool) {
	if index < 0 || index >= len(s.dims) {
		return 0, 0, false
	}
	return s.dims[index].Width, s.dims[index].Height, true
}

// Reader returns a fresh seekable reader over the document bytes for
// the page importer.
func (s *Source) Reader() io.ReadSeeker {
	return bytes.NewReader(s.data)
}

// Errors.
var (
	// ErrSourceUnreadable reports a source document that cannot be
	// opened or parsed.
	ErrSourceUnreadable = errors.New("source document unreadable")
)
