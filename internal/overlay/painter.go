package overlay

import (
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/Wako6/pdf-marker/internal/imagemeta"
)

// LineLeading is the baseline step between consecutive lines of one
// text annotation, as a multiple of the font size.
const LineLeading = 1.2

// BaselineY returns the vertical position of line k of a text block
// anchored at y, in bottom-left page coordinates. Line 0 sits on the
// anchor; each following line steps down by fontSize*LineLeading.
func BaselineY(y, fontSize float64, line int) float64 {
	return y - float64(line)*fontSize*LineLeading
}

// Painter draws ops onto the current page of an fpdf document.
//
// Every op sets its own font, color and opacity, and opacity is put
// back to opaque afterwards; rotations are bracketed in the surface's
// transform scope. No op leaks drawing state into the next one.
type Painter struct {
	pdf       *fpdf.Fpdf
	fonts     *FontRegistry
	translate func(string) string
	images    map[string]*imagemeta.Info
}

// NewPainter returns a painter over pdf using the given font registry.
func NewPainter(pdf *fpdf.Fpdf, fonts *FontRegistry) *Painter {
	return &Painter{
		pdf:       pdf,
		fonts:     fonts,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		images:    make(map[string]*imagemeta.Info),
	}
}

// Text paints one text op onto the current page. pageHeight converts
// the op's bottom-left coordinates into the surface's top-left frame.
//
// With no rotation, line k is drawn at (x, y - k*size*LineLeading).
// With rotation, the frame is rotated once about the anchor and every
// line is drawn inside the rotated frame, so the block rotates as a
// unit.
func (p *Painter) Text(pageHeight float64, op TextOp) error {
	face, err := p.fonts.Resolve(op.Font)
	if err != nil {
		return err
	}
	r, g, b, err := ParseHexColor(op.Color)
	if err != nil {
		return err
	}

	p.pdf.SetFont(face.Family, face.Style, op.Size)
	p.pdf.SetTextColor(r, g, b)
	p.pdf.SetFillColor(r, g, b)
	if op.Opacity != 1 {
		p.pdf.SetAlpha(op.Opacity, "Normal")
		defer p.pdf.SetAlpha(1, "Normal")
	}

	anchorY := pageHeight - op.Y
	if op.Rotation != 0 {
		p.pdf.TransformBegin()
		p.pdf.TransformRotate(op.Rotation, op.X, anchorY)
		defer p.pdf.TransformEnd()
	}

	for k, line := range strings.Split(op.Text, "\n") {
		if !face.UTF8 {
			line = p.translate(line)
		}
		x := op.X
		if op.Centered {
			x -= p.pdf.GetStringWidth(line) / 2
		}
		p.pdf.Text(x, pageHeight-BaselineY(op.Y, op.Size, k), line)
	}
	return nil
}

// Image paints one image op onto the current page. The resource is
// probed and registered on first use; the resolved dimensions follow
// the sizing rules in imagemeta. Source transparency passes through as
// the image's own mask.
func (p *Painter) Image(pageHeight float64, op ImageOp) error {
	info, err := p.resource(op.Path)
	if err != nil {
		return err
	}
	w, h := info.RenderSize(op.Width, op.Height, op.PreserveAspect, op.ScaledFallback)

	if op.Opacity != 1 {
		p.pdf.SetAlpha(op.Opacity, "Normal")
		defer p.pdf.SetAlpha(1, "Normal")
	}

	anchorY := pageHeight - op.Y
	if op.Rotation != 0 {
		p.pdf.TransformBegin()
		p.pdf.TransformRotate(op.Rotation, op.X, anchorY)
		defer p.pdf.TransformEnd()
	}

	opts := fpdf.ImageOptions{AllowNegativePosition: true}
	p.pdf.ImageOptions(op.Path, op.X, anchorY-h, w, h, false, opts, 0, "")
	return nil
}

// resource returns probed info for path, registering the image bytes
// on the surface the first time the path is seen.
func (p *Painter) resource(path string) (*imagemeta.Info, error) {
	if info, ok := p.images[path]; ok {
		return info, nil
	}

	info, err := imagemeta.Probe(path)
	if err != nil {
		return nil, err
	}
	r, imageType, err := info.Embed()
	if err != nil {
		return nil, err
	}

	opts := fpdf.ImageOptions{ImageType: imageType, AllowNegativePosition: true}
	p.pdf.RegisterImageOptionsReader(path, opts, r)
	if p.pdf.Err() {
		return nil, fmt.Errorf("%w: register %q: %w", imagemeta.ErrImageUnreadable, path, p.pdf.Error())
	}

	p.images[path] = info
	return info, nil
}
