package styles

import (
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

// ColorMode selects whether the sheet keeps an alpha channel.
type ColorMode string

const (
	// ModeRGB produces an opaque sheet, written as JPEG.
	ModeRGB ColorMode = "RGB"
	// ModeRGBA keeps translucent pixels, written as PNG.
	ModeRGBA ColorMode = "RGBA"
)

// ParseMode maps a mode name to a ColorMode. "RGB" in any case is opaque;
// every other name, such as "RGBA" or "LA", keeps alpha and is written as
// RGBA.
func ParseMode(s string) (ColorMode, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case name == "":
		return "", errs.New(errs.ErrCodeInvalidMode, "color mode must not be empty")
	case ColorMode(name) == ModeRGB:
		return ModeRGB, nil
	}
	return ModeRGBA, nil
}

// HasAlpha reports whether the mode stores alpha.
func (m ColorMode) HasAlpha() bool {
	return m != ModeRGB
}

// Color returns c as it would be stored in an image of this mode.
// RGB drops alpha without blending.
func (m ColorMode) Color(c color.NRGBA) color.NRGBA {
	if !m.HasAlpha() {
		c.A = 0xff
	}
	return c
}

// New allocates a w x h image of this mode filled with c.
func (m ColorMode) New(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, m.Color(c))
}

// Convert returns a copy of img as stored in this mode. For RGB the color
// channels are kept and alpha is forced opaque, the same way a paste into an
// opaque buffer discards it.
func (m ColorMode) Convert(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	if m.HasAlpha() {
		return dst
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
