// Package overlay paints annotation operations onto the pages of a
// composed document. It owns font-name resolution, hex color parsing
// and the line-layout rules for multi-line text blocks.
package overlay

// Op is one annotation resolved for painting. Coordinates are in
// page points with the origin at the bottom-left corner.
type Op interface {
	// PageIndex returns the 0-based target page.
	PageIndex() int

	// RegIndex returns the position the annotation was queued at,
	// used for error context.
	RegIndex() int

	// Kind names the variant, "text" or "image".
	Kind() string
}

// TextOp paints a block of text. Embedded newlines split the block
// into separate baselines.
type TextOp struct {
	Index    int
	Page     int
	Text     string
	X, Y     float64
	Size     float64
	Font     string
	Color    string
	Rotation float64
	Opacity  float64
	Centered bool
}

func (op TextOp) PageIndex() int { return op.Page }
func (op TextOp) RegIndex() int  { return op.Index }
func (op TextOp) Kind() string   { return "text" }

// ImageOp paints an image resource. Width and Height are optional
// requested dimensions in points; nil means unset.
type ImageOp struct {
	Index          int
	Page           int
	Path           string
	X, Y           float64
	Width, Height  *float64
	PreserveAspect bool
	ScaledFallback bool
	Rotation       float64
	Opacity        float64
}

func (op ImageOp) PageIndex() int { return op.Page }
func (op ImageOp) RegIndex() int  { return op.Index }
func (op ImageOp) Kind() string   { return "image" }
