package assets

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tiled/internal/errors"
)

// ParseHexColor converts "#RRGGBB", "RRGGBB" or the short "#RGB" form to a
// tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return tcell.ColorDefault, errors.InvalidArgumentf("invalid hex color %q", hex)
	}

	rgb, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return tcell.ColorDefault, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid hex color %q", hex)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// IsColor reports whether ref is usable as a terminal colour.
func IsColor(ref string) bool {
	if !strings.HasPrefix(ref, "#") {
		return false
	}
	_, err := ParseHexColor(ref)
	return err == nil
}
