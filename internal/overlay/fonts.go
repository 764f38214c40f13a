package overlay

import (
	"errors"
	"fmt"
	"strings"
)

// Face identifies a selectable font on the drawing surface.
type Face struct {
	// Family is the surface's font family name.
	Family string

	// Style is the face selector within the family: "", "B", "I" or "BI".
	Style string

	// UTF8 marks an embedded TrueType family. Text for such faces is
	// passed through as UTF-8 instead of the core-font codepage.
	UTF8 bool
}

// standardFaces maps the PostScript names of the standard fonts to the
// family/style pairs the drawing surface ships built in.
var standardFaces = map[string]Face{
	"courier":               {Family: "Courier"},
	"courier-bold":          {Family: "Courier", Style: "B"},
	"courier-oblique":       {Family: "Courier", Style: "I"},
	"courier-boldoblique":   {Family: "Courier", Style: "BI"},
	"helvetica":             {Family: "Helvetica"},
	"helvetica-bold":        {Family: "Helvetica", Style: "B"},
	"helvetica-oblique":     {Family: "Helvetica", Style: "I"},
	"helvetica-boldoblique": {Family: "Helvetica", Style: "BI"},
	"times":                 {Family: "Times"},
	"times-roman":           {Family: "Times"},
	"times-bold":            {Family: "Times", Style: "B"},
	"times-italic":          {Family: "Times", Style: "I"},
	"times-bolditalic":      {Family: "Times", Style: "BI"},
	"symbol":                {Family: "Symbol"},
	"zapfdingbats":          {Family: "ZapfDingbats"},
}

// FontRegistry resolves annotation font names to surface faces.
// TrueType families registered by the caller take precedence over the
// standard set.
type FontRegistry struct {
	custom map[string]string
}

// NewFontRegistry returns a registry holding only the standard fonts.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{custom: make(map[string]string)}
}

// AddCustom records a TrueType family that has been registered on the
// drawing surface under the given name.
func (r *FontRegistry) AddCustom(name string) {
	r.custom[strings.ToLower(strings.TrimSpace(name))] = name
}

// Resolve maps a font name to a Face, case insensitively.
//
// Returns an error wrapping ErrFontUnresolved when the name is neither
// a registered TrueType family nor a standard font.
func (r *FontRegistry) Resolve(name string) (Face, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if family, ok := r.custom[key]; ok {
		return Face{Family: family, UTF8: true}, nil
	}
	if face, ok := standardFaces[key]; ok {
		return face, nil
	}
	return Face{}, fmt.Errorf("%w: %q", ErrFontUnresolved, name)
}

// Errors.
var (
	// ErrFontUnresolved reports a font name the drawing surface cannot
	// satisfy.
	ErrFontUnresolved = errors.New("font unresolvable")
)
