package overlay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor parses a hex RGB fill color into 8-bit components.
//
// Accepted forms are "#RRGGBB" and the shorthand "#RGB", case
// insensitive. Anything else returns an error wrapping
// ErrColorInvalid.
func ParseHexColor(s string) (r, g, b int, err error) {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "#") {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrColorInvalid, s)
	}

	hex := raw[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrColorInvalid, s)
	}

	v, parseErr := strconv.ParseUint(hex, 16, 32)
	if parseErr != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrColorInvalid, s)
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), nil
}

// Errors.
var (
	// ErrColorInvalid reports a fill color that is not a hex RGB string.
	ErrColorInvalid = errors.New("color parse error")
)
