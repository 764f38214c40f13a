package pdfmarker

// Alignment selects how text lines sit relative to their anchor.
type Alignment int

const (
	// AlignLeft starts each baseline at the anchor. This is the default.
	AlignLeft Alignment = iota

	// AlignCenter centers each line horizontally on the anchor.
	AlignCenter
)

// TextOptions styles one queued text annotation.
//
// Construct with DefaultTextOptions and override the fields that
// matter:
//
//	opts := pdfmarker.DefaultTextOptions()
//	opts.FontSize = 18
//	opts.Color = "#CC0000"
//	editor.AddTextOptions("DRAFT", 40, 780, opts)
type TextOptions struct {
	// Page is the 0-based target page index.
	Page int

	// FontSize is the size in points.
	FontSize float64

	// Font is a standard PostScript-style name or a family
	// registered with Editor.RegisterFont.
	Font string

	// Color is the hex RGB fill color, "#RRGGBB".
	Color string

	// Rotation is the angle in degrees about the anchor.
	Rotation float64

	// Opacity is the fill opacity in [0, 1].
	Opacity float64

	// Align positions each line relative to the anchor.
	Align Alignment
}

// DefaultTextOptions returns the standard text styling: page 0, 12pt
// opaque black Helvetica, no rotation, left aligned.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		FontSize: 12,
		Font:     "Helvetica",
		Color:    "#000000",
		Opacity:  1,
	}
}

// ImageOptions styles one queued image annotation.
//
// Width and Height are optional. Leaving both nil draws the image at
// its natural pixel size in points. Setting one with PreserveAspect
// derives the other from the image's aspect ratio.
type ImageOptions struct {
	// Page is the 0-based target page index.
	Page int

	// Width and Height are the requested dimensions in points.
	// Nil means unset.
	Width  *float64
	Height *float64

	// PreserveAspect derives a single unset dimension from the
	// image's natural aspect ratio.
	PreserveAspect bool

	// ScaledFallback keeps the derivation proportional even when
	// PreserveAspect is false. Without it, one set dimension plus
	// PreserveAspect false falls back to the natural size for the
	// unset dimension.
	ScaledFallback bool

	// Rotation is the angle in degrees about the anchor.
	Rotation float64

	// Opacity is the draw opacity in [0, 1].
	Opacity float64
}

// DefaultImageOptions returns the standard image placement: page 0,
// natural size, aspect ratio preserved, fully opaque.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		PreserveAspect: true,
		Opacity:        1,
	}
}
