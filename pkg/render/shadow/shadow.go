// Package shadow builds the soft drop-shadow plate every sheet cell is
// mounted on.
//
// One Plate is built per sheet. Cells only differ in foreground content, so
// the compositor pastes each cell onto a copy of the same plate.
package shadow

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
)

// BlurSigma is the Gaussian sigma of a single blur pass. It matches the
// variance of a 5x5 ring kernel, so Iterations passes soften the shadow the
// way repeated small blurs do.
const BlurSigma = 1.66

// DefaultIterations is the default number of blur passes.
const DefaultIterations = 10

// DefaultOffset is the default shadow displacement.
var DefaultOffset = image.Pt(10, 6)

// Options configures the shadow plate.
type Options struct {
	Mode       styles.ColorMode
	Iterations int         // Number of sequential blur passes
	Border     int         // Margin around the shadow rectangle
	Offset     image.Point // Shadow displacement, may be negative per axis
	Background color.NRGBA // Plate fill
	Color      color.NRGBA // Shadow fill
}

// Plate is a rendered shadow and the point a cell must be pasted at.
type Plate struct {
	Image    *image.NRGBA
	Position image.Point
}

// Size returns the plate size for a cell of w x h.
func Size(w, h int, opts Options) image.Point {
	return image.Pt(
		w+abs(opts.Offset.X)+2*opts.Border,
		h+abs(opts.Offset.Y)+2*opts.Border,
	)
}

// Make renders the shadow plate for cells of w x h pixels.
//
// A positive offset moves the shadow right or down of the cell; a negative
// offset moves the cell instead, since plate coordinates cannot be negative.
func Make(w, h int, opts Options) (*Plate, error) {
	if w <= 0 || h <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "shadow cell size must be positive, got %dx%d", w, h)
	}
	if opts.Border < 0 || opts.Iterations < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "shadow border %d and iterations %d must not be negative",
			opts.Border, opts.Iterations)
	}

	size := Size(w, h, opts)
	plate := opts.Mode.New(size.X, size.Y, opts.Background)

	left := opts.Border + max(opts.Offset.X, 0)
	top := opts.Border + max(opts.Offset.Y, 0)
	fill := opts.Mode.New(w, h, opts.Color)
	plate = imaging.Paste(plate, fill, image.Pt(left, top))

	for i := 0; i < opts.Iterations; i++ {
		plate = imaging.Blur(plate, BlurSigma)
	}

	var pos image.Point
	if opts.Offset.X < 0 {
		pos.X = opts.Border - opts.Offset.X
	}
	if opts.Offset.Y < 0 {
		pos.Y = opts.Border - opts.Offset.Y
	}
	return &Plate{Image: plate, Position: pos}, nil
}

// Copy returns a private copy of the plate image.
func (p *Plate) Copy() *image.NRGBA {
	return imaging.Clone(p.Image)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
