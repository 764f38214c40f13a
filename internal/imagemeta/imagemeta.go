// Package imagemeta probes image resources for their natural pixel
// dimensions and prepares them for embedding into a page overlay.
package imagemeta

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	// Register decoders for the formats an annotation may reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes one probed image resource: its natural pixel
// dimensions, the detected format and the raw file bytes.
type Info struct {
	// Width and Height are the natural pixel dimensions.
	Width  int
	Height int

	// Format is the registered decoder name ("png", "jpeg", ...).
	Format string

	data []byte
}

// Probe reads the image at path and decodes its header.
//
// Returns an error wrapping ErrImageUnreadable if the file cannot be
// read or no registered decoder recognizes it.
func Probe(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrImageUnreadable, path, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrImageUnreadable, path, err)
	}

	return &Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		data:   data,
	}, nil
}

// RenderSize resolves the dimensions an image is drawn at, in points.
//
// The rules, with w/h the requested values (nil = unset) and the
// natural pixel dimensions as the reference:
//   - both set: used as given
//   - both unset: natural pixel dimensions, 1:1 points per pixel
//   - one set, preserveAspect true: the other derived from the natural
//     aspect ratio
//   - one set, preserveAspect false: the other falls back to the
//     natural pixel size on that axis, unscaled
//
// The unscaled fallback mirrors the historical behavior and is kept as
// the default. scaledFallback switches that one case to a proportional
// derivation instead.
func (i *Info) RenderSize(w, h *float64, preserveAspect, scaledFallback bool) (float64, float64) {
	naturalW := float64(i.Width)
	naturalH := float64(i.Height)

	switch {
	case w != nil && h != nil:
		return *w, *h
	case w == nil && h == nil:
		return naturalW, naturalH
	case w != nil:
		if preserveAspect || scaledFallback {
			return *w, *w * naturalH / naturalW
		}
		return *w, naturalH
	default:
		if preserveAspect || scaledFallback {
			return *h * naturalW / naturalH, *h
		}
		return naturalW, *h
	}
}

// Embed returns a reader over bytes the drawing surface can register
// directly, plus the surface's name for the format. PNG, JPEG and GIF
// pass through untouched; every other decodable format is transcoded
// to PNG in memory.
func (i *Info) Embed() (io.Reader, string, error) {
	switch i.Format {
	case "png":
		return bytes.NewReader(i.data), "PNG", nil
	case "jpeg":
		return bytes.NewReader(i.data), "JPG", nil
	case "gif":
		return bytes.NewReader(i.data), "GIF", nil
	}

	img, _, err := image.Decode(bytes.NewReader(i.data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: decode %s: %w", ErrImageUnreadable, i.Format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("%w: transcode %s to png: %w", ErrImageUnreadable, i.Format, err)
	}
	return &buf, "PNG", nil
}

// Errors.
var (
	// ErrImageUnreadable reports an image resource that cannot be read
	// or decoded.
	ErrImageUnreadable = errors.New("image resource unreadable")
)
