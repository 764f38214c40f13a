package pdfmarker

// WatermarkOptions configures AddTextWatermark.
type WatermarkOptions struct {
	// FontSize is the size in points.
	FontSize float64

	// Font is a standard name or a family registered with
	// Editor.RegisterFont.
	Font string

	// Color is the hex RGB fill color.
	Color string

	// Rotation is the angle in degrees about the page center.
	Rotation float64

	// Opacity is the fill opacity in [0, 1].
	Opacity float64
}

// DefaultWatermarkOptions returns the standard watermark styling:
// 48pt Helvetica-Bold in light gray, rotated 45 degrees, at 20%
// opacity.
func DefaultWatermarkOptions() WatermarkOptions {
	return WatermarkOptions{
		FontSize: 48,
		Font:     "Helvetica-Bold",
		Color:    "#808080",
		Rotation: 45,
		Opacity:  0.2,
	}
}

// AddTextWatermark queues one centered text annotation per source
// page, each anchored at the page's midpoint. Page sizes are read from
// the source document, so mixed-size documents get a correctly
// centered mark on every page.
//
// Returns an error if:
//   - the source document cannot be opened (ErrSourceUnreadable)
//
// Example:
//
//	editor := pdfmarker.New("draft.pdf")
//	if err := pdfmarker.AddTextWatermark(editor, "DRAFT", pdfmarker.DefaultWatermarkOptions()); err != nil {
//		log.Fatal(err)
//	}
//	err := editor.WriteToFile("draft-marked.pdf")
func AddTextWatermark(e *Editor, text string, opts WatermarkOptions) error {
	count, err := e.PageCount()
	if err != nil {
		return err
	}
	for page := 0; page < count; page++ {
		width, height, err := e.PageSize(page)
		if err != nil {
			return err
		}
		e.AddTextOptions(text, width/2, height/2, TextOptions{
			Page:     page,
			FontSize: opts.FontSize,
			Font:     opts.Font,
			Color:    opts.Color,
			Rotation: opts.Rotation,
			Opacity:  opts.Opacity,
			Align:    AlignCenter,
		})
	}
	return nil
}
