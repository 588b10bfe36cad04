// Package text measures and renders outlined multi-line labels.
//
// Labels are rendered into their own transparent NRGBA buffer and then
// alpha-composited onto the destination, so translucent fill and stroke
// colors keep their alpha.
package text

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Style controls how a label is drawn.
type Style struct {
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth int // Outline width in pixels, 0 for none
	LineSpacing int // Extra pixels between lines
}

// lineHeight is the ascent plus descent of face, rounded up.
func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// Measure returns the pixel size of lines drawn with face and st, including
// the stroke on every side.
func Measure(lines []string, face font.Face, st Style) (w, h int) {
	if len(lines) == 0 {
		return 0, 0
	}
	for _, line := range lines {
		if lw := font.MeasureString(face, line).Ceil(); lw > w {
			w = lw
		}
	}
	n := len(lines)
	h = n*lineHeight(face) + (n-1)*st.LineSpacing
	return w + 2*st.StrokeWidth, h + 2*st.StrokeWidth
}

// Render draws lines into a new transparent image sized by Measure.
func Render(lines []string, face font.Face, st Style) *image.NRGBA {
	w, h := Measure(lines, face, st)
	label := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return label
	}

	if st.StrokeWidth > 0 {
		mask := gg.NewContext(w, h)
		mask.SetFontFace(face)
		mask.SetColor(color.White)
		r := st.StrokeWidth
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				drawLines(mask, lines, face, st, dx, dy)
			}
		}
		draw.DrawMask(label, label.Bounds(), image.NewUniform(st.Stroke), image.Point{}, mask.Image(), image.Point{}, draw.Over)
	}

	fill := gg.NewContext(w, h)
	fill.SetFontFace(face)
	fill.SetColor(color.White)
	drawLines(fill, lines, face, st, 0, 0)
	draw.DrawMask(label, label.Bounds(), image.NewUniform(st.Fill), image.Point{}, fill.Image(), image.Point{}, draw.Over)

	return label
}

// Draw composites lines onto a copy of dst with the label's top-left at pt.
func Draw(dst image.Image, pt image.Point, lines []string, face font.Face, st Style) *image.NRGBA {
	return imaging.Overlay(dst, Render(lines, face, st), pt, 1.0)
}

func drawLines(dc *gg.Context, lines []string, face font.Face, st Style, dx, dy int) {
	ascent := face.Metrics().Ascent.Ceil()
	step := lineHeight(face) + st.LineSpacing
	for i, line := range lines {
		x := float64(st.StrokeWidth + dx)
		y := float64(st.StrokeWidth + ascent + i*step + dy)
		dc.DrawString(line, x, y)
	}
}
