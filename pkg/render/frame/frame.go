// Package frame composites one sheet cell: a sampled frame annotated with its
// timestamp, framed by a thin translucent border and mounted on a copy of the
// shared shadow plate.
package frame

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/geometry"
	"github.com/matzehuels/contactsheet/pkg/render/shadow"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
	"github.com/matzehuels/contactsheet/pkg/render/text"
)

// Options configures cell compositing.
type Options struct {
	Layout  geometry.Layout
	Palette styles.Palette
	Mode    styles.ColorMode
	Anchor  Anchor
	Face    font.Face // Timestamp face
}

// Composite annotates img with the timestamp for seconds and pastes it onto a
// private copy of plate. The plate itself is left untouched. Parts of the
// framed cell falling outside the plate are clipped.
func Composite(img image.Image, seconds int64, plate *shadow.Plate, opts Options) (*image.NRGBA, error) {
	if img == nil || plate == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "composite needs a frame and a shadow plate")
	}
	if opts.Face == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "composite needs a timestamp face")
	}

	cell := imaging.Clone(img)
	size := cell.Bounds().Size()

	label := FormatTimestamp(seconds)
	st := text.Style{
		Fill:        opts.Palette.Timestamp,
		Stroke:      opts.Palette.Outline,
		StrokeWidth: opts.Layout.StrokeWidth(),
	}
	tw, th := text.Measure([]string{label}, opts.Face, st)
	pos, err := opts.Anchor.Position(size, image.Pt(tw, th), opts.Layout.Padding)
	if err != nil {
		return nil, err
	}
	cell = text.Draw(cell, pos, []string{label}, opts.Face, st)

	cell = expand(cell, opts.Layout.Border)

	dst := plate.Copy()
	src := opts.Mode.Convert(cell)
	r := src.Bounds().Sub(src.Bounds().Min).Add(plate.Position)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
	return dst, nil
}

// expand surrounds img with a border of styles.BorderColor.
func expand(img *image.NRGBA, border int) *image.NRGBA {
	if border <= 0 {
		return img
	}
	size := img.Bounds().Size()
	framed := imaging.New(size.X+2*border, size.Y+2*border, styles.BorderColor)
	return imaging.Paste(framed, img, image.Pt(border, border))
}
