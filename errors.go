package pdfmarker

import (
	"github.com/Wako6/pdf-marker/internal/compositor"
	"github.com/Wako6/pdf-marker/internal/document"
	"github.com/Wako6/pdf-marker/internal/imagemeta"
	"github.com/Wako6/pdf-marker/internal/overlay"
)

// Sentinel errors reported by composition. Returned errors wrap one of
// these along with the page index, annotation index and annotation kind
// that triggered the failure, so callers can branch with errors.Is and
// still log the full chain.
var (
	// ErrSourceUnreadable reports a source document that cannot be
	// opened or parsed as a PDF.
	ErrSourceUnreadable = document.ErrSourceUnreadable

	// ErrImageUnreadable reports an image resource that cannot be
	// read or decoded.
	ErrImageUnreadable = imagemeta.ErrImageUnreadable

	// ErrFontUnresolved reports a font name with no standard or
	// registered match.
	ErrFontUnresolved = overlay.ErrFontUnresolved

	// ErrColorInvalid reports a color string that does not parse as
	// hex RGB.
	ErrColorInvalid = overlay.ErrColorInvalid

	// ErrOutputWrite reports a failure while serializing or writing
	// the composed document.
	ErrOutputWrite = compositor.ErrOutputWrite
)
