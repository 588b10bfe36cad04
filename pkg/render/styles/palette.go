package styles

import (
	"image/color"
	"strconv"
	"strings"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

// Default palette colors as RGBA hex strings.
const (
	DefaultBackground       = "#2E2E2E"
	DefaultText             = "#FBFBFDFF"
	DefaultTimestamp        = "#FFFFFF99"
	DefaultOutline          = "#00000040"
	DefaultShadow           = "#12121266"
	DefaultShadowBackground = "#2E2E2E"
)

// BorderColor is the translucent black used for the thin frame around every cell.
var BorderColor = color.NRGBA{A: 100}

// Palette holds the six sheet colors. Alpha is kept as given and is only
// dropped when a ColorMode without alpha writes a pixel.
type Palette struct {
	Background       color.NRGBA // Canvas fill
	Text             color.NRGBA // Metadata text
	Timestamp        color.NRGBA // Timestamp text
	Outline          color.NRGBA // Text stroke
	Shadow           color.NRGBA // Shadow fill
	ShadowBackground color.NRGBA // Shadow plate fill
}

// HexPalette is the string form of a Palette as found in configuration.
type HexPalette struct {
	Background       string `toml:"background"`
	Text             string `toml:"text"`
	Timestamp        string `toml:"timestamp"`
	Outline          string `toml:"outline"`
	Shadow           string `toml:"shadow"`
	ShadowBackground string `toml:"shadow_background"`
}

// DefaultHexPalette returns the default palette strings.
func DefaultHexPalette() HexPalette {
	return HexPalette{
		Background:       DefaultBackground,
		Text:             DefaultText,
		Timestamp:        DefaultTimestamp,
		Outline:          DefaultOutline,
		Shadow:           DefaultShadow,
		ShadowBackground: DefaultShadowBackground,
	}
}

// Parse converts every entry to a color, reporting the first invalid one.
func (h HexPalette) Parse() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		src  string
		dst  *color.NRGBA
	}{
		{"background", h.Background, &p.Background},
		{"text", h.Text, &p.Text},
		{"timestamp", h.Timestamp, &p.Timestamp},
		{"outline", h.Outline, &p.Outline},
		{"shadow", h.Shadow, &p.Shadow},
		{"shadow_background", h.ShadowBackground, &p.ShadowBackground},
	}
	for _, f := range fields {
		c, err := ParseHex(f.name, f.src)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA. Colors without an alpha
// component are fully opaque.
func ParseHex(name, s string) (color.NRGBA, error) {
	if err := errs.ValidateHexColor(name, s); err != nil {
		return color.NRGBA{}, err
	}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errs.Wrap(errs.ErrCodeInvalidColor, err, "%s: invalid color %q", name, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
