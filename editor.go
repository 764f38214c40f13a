// Package pdfmarker overlays positioned text and image annotations onto
// the pages of an existing PDF document.
//
// An Editor queues annotations against a source file without touching
// it. Composing replays every queued annotation onto a transparent
// overlay per page, merges each overlay over the original page content,
// and writes the result as a new document. Pages without annotations
// pass through with their size and content intact, and the source file
// itself is never modified.
//
// Example:
//
//	editor := pdfmarker.New("contract.pdf")
//	editor.AddText("Hello\nWorld", 10, 700)
//	pdfmarker.AddSignatureBlock(editor, 50, 150, pdfmarker.DefaultSignatureOptions())
//	if err := editor.WriteToFile("contract-signed.pdf"); err != nil {
//		log.Fatal(err)
//	}
package pdfmarker

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Wako6/pdf-marker/internal/compositor"
	"github.com/Wako6/pdf-marker/internal/document"
	"github.com/Wako6/pdf-marker/internal/overlay"
	"github.com/Wako6/pdf-marker/logging"
)

// Metadata is the document information dictionary written into
// composed output. Empty fields are omitted.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// Editor queues annotations against a single source document and
// composes them into a new one.
//
// Annotations accumulate in registration order and are only consumed
// by composing; composing twice from the same queue produces the same
// document twice. The zero value is not usable, construct with New.
// An Editor is not safe for concurrent use.
//
// Example:
//
//	editor := pdfmarker.New("report.pdf")
//	editor.AddText("CONFIDENTIAL", 40, 800)
//	editor.AddImage("stamp.png", 400, 40)
//	err := editor.WriteToFile("report-stamped.pdf")
type Editor struct {
	sourcePath  string
	annotations []Annotation
	fonts       []compositor.FontFile
	meta        Metadata

	// source caches the parsed document after the first open.
	source *document.Source
}

// New returns an Editor targeting the document at sourcePath. The file
// is not opened until page geometry is queried or the document is
// composed, so New itself never fails.
func New(sourcePath string) *Editor {
	return &Editor{sourcePath: sourcePath}
}

// AddText queues text on page 0 with the default styling from
// DefaultTextOptions. The anchor is the baseline start of the first
// line, in points from the bottom-left corner of the page.
func (e *Editor) AddText(text string, x, y float64) {
	e.AddTextOptions(text, x, y, DefaultTextOptions())
}

// AddTextOptions queues text with explicit styling. Embedded newlines
// split the text into lines stepping down from the anchor by 1.2 times
// the font size.
func (e *Editor) AddTextOptions(text string, x, y float64, opts TextOptions) {
	e.annotations = append(e.annotations, TextAnnotation{
		Text:     text,
		X:        x,
		Y:        y,
		Page:     opts.Page,
		FontSize: opts.FontSize,
		Font:     opts.Font,
		Color:    opts.Color,
		Rotation: opts.Rotation,
		Opacity:  opts.Opacity,
		Align:    opts.Align,
	})
	logging.Logger().Info("text annotation queued",
		"text", snippet(text),
		"page", opts.Page,
		"x", x,
		"y", y)
}

// AddImage queues the image at path on page 0 with the default
// placement from DefaultImageOptions. The anchor is the bottom-left
// corner of the drawn image.
func (e *Editor) AddImage(path string, x, y float64) {
	e.AddImageOptions(path, x, y, DefaultImageOptions())
}

// AddImageOptions queues an image with explicit placement. The image
// file is not read until composition, so a bad path surfaces as an
// ErrImageUnreadable from WriteToFile or Write rather than here.
func (e *Editor) AddImageOptions(path string, x, y float64, opts ImageOptions) {
	a := ImageAnnotation{
		Path:           path,
		X:              x,
		Y:              y,
		Page:           opts.Page,
		Width:          opts.Width,
		Height:         opts.Height,
		PreserveAspect: opts.PreserveAspect,
		ScaledFallback: opts.ScaledFallback,
		Rotation:       opts.Rotation,
		Opacity:        opts.Opacity,
	}
	e.annotations = append(e.annotations, a.clone())
	logging.Logger().Info("image annotation queued",
		"path", path,
		"page", opts.Page,
		"x", x,
		"y", y)
}

// Reset discards every queued annotation. Registered fonts, metadata
// and the cached source document are kept.
func (e *Editor) Reset() {
	dropped := len(e.annotations)
	e.annotations = nil
	logging.Logger().Info("annotation queue cleared", "dropped", dropped)
}

// PendingCount reports how many annotations are queued.
func (e *Editor) PendingCount() int {
	return len(e.annotations)
}

// Annotations returns a copy of the queue in registration order.
// Mutating the returned slice or its elements does not affect the
// Editor.
func (e *Editor) Annotations() []Annotation {
	out := make([]Annotation, len(e.annotations))
	for i, a := range e.annotations {
		if img, ok := a.(ImageAnnotation); ok {
			out[i] = img.clone()
			continue
		}
		out[i] = a
	}
	return out
}

// RegisterFont makes the TrueType font at path available to text
// annotations under the given family name. Registered names are
// matched case-insensitively and take precedence over the built-in
// standard fonts. The font file is loaded at composition time.
func (e *Editor) RegisterFont(name, path string) {
	e.fonts = append(e.fonts, compositor.FontFile{Name: name, Path: path})
	logging.Logger().Info("font registered", "font", name, "path", path)
}

// SetMetadata sets the information dictionary written into composed
// output.
func (e *Editor) SetMetadata(meta Metadata) {
	e.meta = meta
}

// PageCount reports the number of pages in the source document.
//
// Returns an error if:
//   - the source file cannot be read (ErrSourceUnreadable)
//   - the source file is not a parseable PDF (ErrSourceUnreadable)
func (e *Editor) PageCount() (int, error) {
	src, err := e.ensureSource()
	if err != nil {
		return 0, err
	}
	return src.PageCount(), nil
}

// PageSize reports the media box dimensions of the given 0-based page
// in points.
//
// Returns an error if:
//   - the source document cannot be opened (ErrSourceUnreadable)
//   - the page index is out of bounds
func (e *Editor) PageSize(page int) (width, height float64, err error) {
	src, err := e.ensureSource()
	if err != nil {
		return 0, 0, err
	}
	width, height, ok := src.PageSize(page)
	if !ok {
		return 0, 0, fmt.Errorf("page index %d out of bounds (0-%d)", page, src.PageCount()-1)
	}
	return width, height, nil
}

// WriteToFile composes the queued annotations over the source document
// and writes the result to path. The file is only created after the
// whole document serializes successfully, so a failed run leaves no
// partial output behind. The queue is left untouched and can be
// composed again.
//
// Returns an error if:
//   - the source document cannot be opened (ErrSourceUnreadable)
//   - a registered or referenced font cannot be resolved (ErrFontUnresolved)
//   - an annotation color does not parse (ErrColorInvalid)
//   - an image resource cannot be read (ErrImageUnreadable)
//   - the output cannot be serialized or written (ErrOutputWrite)
func (e *Editor) WriteToFile(path string) error {
	var buf bytes.Buffer
	pages, err := e.compose(&buf)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrOutputWrite, path, err)
	}
	logging.Logger().Info("document composed",
		"output", path,
		"pages", pages,
		"annotations", len(e.annotations))
	return nil
}

// Write composes the queued annotations over the source document and
// writes the result to w. Nothing is written to w unless the whole
// document serializes successfully. The error conditions match
// WriteToFile.
func (e *Editor) Write(w io.Writer) error {
	pages, err := e.compose(w)
	if err != nil {
		return err
	}
	logging.Logger().Info("document composed",
		"pages", pages,
		"annotations", len(e.annotations))
	return nil
}

// compose runs the compositor against the cached source and reports
// the page count of the produced document.
func (e *Editor) compose(w io.Writer) (pages int, err error) {
	src, err := e.ensureSource()
	if err != nil {
		return 0, err
	}
	job := compositor.Job{
		Source: src,
		Ops:    e.buildOps(),
		Fonts:  e.fonts,
		Meta:   compositor.Metadata(e.meta),
	}
	if err := compositor.Run(job, w); err != nil {
		return 0, err
	}
	return src.PageCount(), nil
}

// ensureSource opens and caches the source document on first use.
func (e *Editor) ensureSource() (*document.Source, error) {
	if e.source != nil {
		return e.source, nil
	}
	src, err := document.Open(e.sourcePath)
	if err != nil {
		return nil, err
	}
	e.source = src
	return src, nil
}

// buildOps lowers the queued annotations into drawing operations,
// keeping the registration index for error context.
func (e *Editor) buildOps() []overlay.Op {
	ops := make([]overlay.Op, 0, len(e.annotations))
	for i, a := range e.annotations {
		switch a := a.(type) {
		case TextAnnotation:
			ops = append(ops, overlay.TextOp{
				Index:    i,
				Page:     a.Page,
				Text:     a.Text,
				X:        a.X,
				Y:        a.Y,
				Size:     a.FontSize,
				Font:     a.Font,
				Color:    a.Color,
				Rotation: a.Rotation,
				Opacity:  a.Opacity,
				Centered: a.Align == AlignCenter,
			})
		case ImageAnnotation:
			ops = append(ops, overlay.ImageOp{
				Index:          i,
				Page:           a.Page,
				Path:           a.Path,
				X:              a.X,
				Y:              a.Y,
				Width:          a.Width,
				Height:         a.Height,
				PreserveAspect: a.PreserveAspect,
				ScaledFallback: a.ScaledFallback,
				Rotation:       a.Rotation,
				Opacity:        a.Opacity,
			})
		}
	}
	return ops
}

// snippet shortens free-form text for log lines.
func snippet(s string) string {
	const max = 30
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
