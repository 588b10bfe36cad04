package geometry

import (
	"image"
	"math"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

const (
	// QuantumStep is the step the longer source edge is rounded up to.
	QuantumStep = 2048

	// MaxQuantized caps the quantized longer edge.
	MaxQuantized = 12288

	// ProbeSize is the nominal square size used for the first layout pass.
	ProbeSize = 1024

	// DefaultShrink is the default divisor from quantized edge to cell edge.
	DefaultShrink = 4
)

// Layout holds the derived geometry of one sheet. It is a value type and is
// never mutated after construction; WithMetadataHeight returns a copy.
type Layout struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`

	Padding      int `json:"padding"`
	Border       int `json:"border"`
	ShadowBorder int `json:"shadow_border"`

	FontSize    int `json:"font_size"`
	LineSpacing int `json:"line_spacing"`

	// MetadataHeight is the y coordinate at which the grid starts. It is zero
	// until WithMetadataHeight is applied.
	MetadataHeight int `json:"metadata_height"`

	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`
}

// Quantize rounds n up to the next multiple of QuantumStep, capped at MaxQuantized.
func Quantize(n int) int {
	q := (n + QuantumStep - 1) / QuantumStep * QuantumStep
	if q > MaxQuantized {
		return MaxQuantized
	}
	return q
}

// EnlargeFactor maps a bitrate in kbps to an integer enlargement factor:
// bitrate/10000 rounded half to even, never below 1.
func EnlargeFactor(bitrateKbps int64) int {
	f := int(math.RoundToEven(float64(bitrateKbps) / 10000))
	if f < 1 {
		return 1
	}
	return f
}

// Resolve computes the layout for a source frame of srcW x srcH pixels placed
// in a rows x cols grid. The canvas height is provisional (grid only) until
// WithMetadataHeight is applied.
func Resolve(srcW, srcH, rows, cols, shrink int) (Layout, error) {
	if err := errs.ValidateGrid(rows, cols); err != nil {
		return Layout{}, err
	}
	if err := errs.ValidateShrink(shrink); err != nil {
		return Layout{}, err
	}
	if srcW <= 0 || srcH <= 0 {
		return Layout{}, errs.New(errs.ErrCodeInvalidInput, "source size must be positive, got %dx%d", srcW, srcH)
	}

	ratio := float64(srcH) / float64(srcW)
	l := Layout{Rows: rows, Cols: cols}

	var q int
	if srcW > srcH {
		q = Quantize(srcW)
		l.CellWidth = q / shrink
		l.CellHeight = int(float64(l.CellWidth) * ratio)
	} else {
		q = Quantize(srcH)
		l.CellHeight = q / shrink
		l.CellWidth = int(float64(l.CellHeight) / ratio)
	}
	if l.CellWidth <= 0 || l.CellHeight <= 0 {
		return Layout{}, errs.New(errs.ErrCodeInvalidInput,
			"cell size %dx%d is empty (source %dx%d, shrink %d)", l.CellWidth, l.CellHeight, srcW, srcH, shrink)
	}

	l.Padding = q / 32 / shrink
	l.Border = l.CellWidth / 1024
	l.ShadowBorder = l.Padding / 4
	l.FontSize = l.CellWidth / 16
	l.LineSpacing = l.CellWidth / 256

	l.CanvasWidth = (l.CellWidth+l.Padding+2*l.Border)*cols + l.Padding
	l.CanvasHeight = l.GridHeight()
	return l, nil
}

// GridHeight is the height of all grid rows without the metadata block.
func (l Layout) GridHeight() int {
	return (l.CellHeight + l.Padding + 2*l.Border) * l.Rows
}

// Cells is the number of grid cells.
func (l Layout) Cells() int {
	return l.Rows * l.Cols
}

// StrokeWidth is the outline width used for all text on the sheet.
func (l Layout) StrokeWidth() int {
	return l.FontSize / 16
}

// TextOrigin is where the metadata block is drawn.
func (l Layout) TextOrigin() image.Point {
	return image.Pt(l.Padding, l.Padding*8/10)
}

// WithMetadataHeight returns a copy of l whose grid starts below a metadata
// block of the given measured text height.
func (l Layout) WithMetadataHeight(textHeight int) Layout {
	l.MetadataHeight = l.Padding*16/10 + textHeight
	l.CanvasHeight = l.MetadataHeight + l.GridHeight()
	return l
}

// CellOrigin returns the top-left corner of the cell at row-major index idx.
func (l Layout) CellOrigin(idx int) image.Point {
	row, col := idx/l.Cols, idx%l.Cols
	return image.Pt(
		l.Padding+(l.Padding+l.CellWidth)*col,
		l.MetadataHeight+(l.Padding+l.CellHeight)*row,
	)
}
