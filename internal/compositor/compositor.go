// Package compositor runs one composition pass: it walks the source
// document page by page, lays the original page down as a template,
// paints that page's annotation ops over it in registration order and
// serializes the finished document.
package compositor

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/Wako6/pdf-marker/internal/document"
	"github.com/Wako6/pdf-marker/internal/overlay"
	"github.com/Wako6/pdf-marker/logging"
)

// FontFile is a TrueType font to register on the drawing surface
// before painting starts.
type FontFile struct {
	Name string
	Path string
}

// Metadata carries the document information fields applied to the
// output. Zero-valued fields are skipped.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// Job is one composition request: a source document, the ops to paint
// in registration order, fonts to register and output metadata.
type Job struct {
	Source *document.Source
	Ops    []overlay.Op
	Fonts  []FontFile
	Meta   Metadata
}

// Run composes the job and writes the finished document to w.
//
// Nothing is written until every page has painted successfully; the
// document is serialized to memory first, so a failing job leaves w
// untouched. The first painting failure aborts the run, wrapped with
// the page index and the failing annotation's queue position and kind.
func Run(job Job, w io.Writer) (err error) {
	// The page importer panics on source structures it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import source pages: %w: %v", document.ErrSourceUnreadable, r)
		}
	}()

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	applyMetadata(pdf, job.Meta)

	registry := overlay.NewFontRegistry()
	for _, font := range job.Fonts {
		pdf.AddUTF8Font(font.Name, "", font.Path)
		if pdf.Err() {
			return fmt.Errorf("%w: %q: %v", overlay.ErrFontUnresolved, font.Name, pdf.Error())
		}
		registry.AddCustom(font.Name)
	}
	painter := overlay.NewPainter(pdf, registry)

	groups := groupByPage(job.Ops)
	importer := gofpdi.NewImporter()
	rs := job.Source.Reader()

	pageCount := job.Source.PageCount()
	for i := 0; i < pageCount; i++ {
		pageW, pageH, _ := job.Source.PageSize(i)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})

		tpl := importer.ImportPageFromStream(pdf, &rs, i+1, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)

		for _, op := range groups[i] {
			if paintErr := paint(painter, pageH, op); paintErr != nil {
				return fmt.Errorf("page %d: annotation %d (%s): %w",
					i, op.RegIndex(), op.Kind(), paintErr)
			}
		}
	}

	logSkipped(groups, pageCount)

	var buf bytes.Buffer
	if outErr := pdf.Output(&buf); outErr != nil {
		return fmt.Errorf("%w: serialize document: %w", ErrOutputWrite, outErr)
	}
	if _, writeErr := w.Write(buf.Bytes()); writeErr != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, writeErr)
	}
	return nil
}

// paint dispatches one op to the painter.
func paint(painter *overlay.Painter, pageHeight float64, op overlay.Op) error {
	switch o := op.(type) {
	case overlay.TextOp:
		return painter.Text(pageHeight, o)
	case overlay.ImageOp:
		return painter.Image(pageHeight, o)
	default:
		return fmt.Errorf("unsupported annotation kind %q", op.Kind())
	}
}

// groupByPage partitions ops by target page, keeping registration
// order inside each group.
func groupByPage(ops []overlay.Op) map[int][]overlay.Op {
	groups := make(map[int][]overlay.Op)
	for _, op := range ops {
		groups[op.PageIndex()] = append(groups[op.PageIndex()], op)
	}
	return groups
}

// logSkipped reports groups whose page index has no page in the source.
// Such annotations are never painted and never an error.
func logSkipped(groups map[int][]overlay.Op, pageCount int) {
	for page, ops := range groups {
		if page >= 0 && page < pageCount {
			continue
		}
		logging.Logger().Debug("no page for annotations, skipping",
			"page", page,
			"count", len(ops))
	}
}

// applyMetadata sets the output document information fields.
func applyMetadata(pdf *fpdf.Fpdf, meta Metadata) {
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if meta.Creator != "" {
		pdf.SetCreator(meta.Creator, true)
	}
}

// Errors.
var (
	// ErrOutputWrite reports a failure to serialize or write the
	// composed document.
	ErrOutputWrite = errors.New("output write failure")
)
