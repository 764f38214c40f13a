package pdfmarker

// Annotation is one pending request to draw on a page of the source
// document. It is a tagged union with exactly two variants,
// TextAnnotation and ImageAnnotation, and is immutable once queued.
//
// Coordinates are in page points with the origin at the bottom-left
// corner of the page.
type Annotation interface {
	// PageIndex returns the 0-based target page. The index is not
	// validated at registration time; an index with no corresponding
	// page is skipped during composition.
	PageIndex() int

	// Kind names the variant, "text" or "image".
	Kind() string

	isAnnotation()
}

// TextAnnotation is a queued block of text. Embedded newlines split
// the block into separate baselines stepping down from the anchor.
type TextAnnotation struct {
	// Text is the literal string to draw.
	Text string

	// X, Y anchor the first baseline.
	X, Y float64

	// Page is the 0-based target page index.
	Page int

	// FontSize is the size in points.
	FontSize float64

	// Font is a PostScript-style standard name ("Helvetica",
	// "Times-Bold", ...) or a family registered with RegisterFont.
	Font string

	// Color is the hex RGB fill color, "#RRGGBB".
	Color string

	// Rotation is the angle in degrees, applied once about the anchor
	// before any line is drawn.
	Rotation float64

	// Opacity is the fill opacity in [0, 1].
	Opacity float64

	// Align positions each line relative to the anchor.
	Align Alignment
}

func (a TextAnnotation) PageIndex() int { return a.Page }
func (a TextAnnotation) Kind() string   { return "text" }
func (TextAnnotation) isAnnotation()    {}

// ImageAnnotation is a queued image placement. The anchor is the
// bottom-left corner of the drawn image.
type ImageAnnotation struct {
	// Path locates the image resource on disk.
	Path string

	// X, Y anchor the bottom-left corner of the image.
	X, Y float64

	// Page is the 0-based target page index.
	Page int

	// Width and Height are the requested dimensions in points.
	// Nil means unset; unset dimensions resolve against the image's
	// natural pixel size at composition time.
	Width  *float64
	Height *float64

	// PreserveAspect derives a single unset dimension from the
	// image's natural aspect ratio.
	PreserveAspect bool

	// ScaledFallback switches the unset-dimension fallback from the
	// natural pixel size to a proportional derivation when
	// PreserveAspect is false.
	ScaledFallback bool

	// Rotation is the angle in degrees about the anchor.
	Rotation float64

	// Opacity is the draw opacity in [0, 1]. Source transparency
	// passes through as the image's own mask regardless.
	Opacity float64
}

func (a ImageAnnotation) PageIndex() int { return a.Page }
func (a ImageAnnotation) Kind() string   { return "image" }
func (ImageAnnotation) isAnnotation()    {}

// clone returns a copy whose optional dimensions do not share memory
// with the caller's values.
func (a ImageAnnotation) clone() ImageAnnotation {
	if a.Width != nil {
		w := *a.Width
		a.Width = &w
	}
	if a.Height != nil {
		h := *a.Height
		a.Height = &h
	}
	return a
}
