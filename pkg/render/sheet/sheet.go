package sheet

import (
	"image"

	"github.com/disintegration/imaging"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/fonts"
	"github.com/matzehuels/contactsheet/pkg/geometry"
	"github.com/matzehuels/contactsheet/pkg/render/frame"
	"github.com/matzehuels/contactsheet/pkg/render/shadow"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
	"github.com/matzehuels/contactsheet/pkg/render/text"
)

// Cell is one sampled frame and the timestamp it was taken at.
type Cell struct {
	Image   image.Image
	Seconds int64
}

// Config carries everything Assemble needs besides the content.
type Config struct {
	Layout           geometry.Layout // Final layout, metadata height not yet applied
	Palette          styles.Palette
	Mode             styles.ColorMode
	Fonts            fonts.Set
	Anchor           frame.Anchor
	ShadowIterations int
	ShadowOffset     image.Point
}

// Sheet is an assembled contact sheet.
type Sheet struct {
	Image  *image.NRGBA
	Layout geometry.Layout // Layout with the metadata height applied
}

// Assemble draws the metadata lines and places one composited cell per entry
// of cells. It returns an error rather than a partial canvas.
func Assemble(meta []string, cells []Cell, cfg Config) (*Sheet, error) {
	l := cfg.Layout
	if len(cells) != l.Cells() {
		return nil, errs.New(errs.ErrCodeInvalidInput, "got %d frames for a %dx%d grid", len(cells), l.Rows, l.Cols)
	}
	if cfg.Fonts.Body == nil || cfg.Fonts.Timestamp == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "sheet fonts are not loaded")
	}

	st := text.Style{
		Fill:        cfg.Palette.Text,
		Stroke:      cfg.Palette.Outline,
		StrokeWidth: l.StrokeWidth(),
		LineSpacing: l.LineSpacing,
	}
	_, textHeight := text.Measure(meta, cfg.Fonts.Body, st)
	l = l.WithMetadataHeight(textHeight)

	canvas := cfg.Mode.New(l.CanvasWidth, l.CanvasHeight, cfg.Palette.Background)
	if len(meta) > 0 {
		canvas = cfg.Mode.Convert(text.Draw(canvas, l.TextOrigin(), meta, cfg.Fonts.Body, st))
	}

	// The plate fits the unbordered cell; the border overhangs the shadow.
	plate, err := shadow.Make(l.CellWidth, l.CellHeight, shadow.Options{
		Mode:       cfg.Mode,
		Iterations: cfg.ShadowIterations,
		Border:     l.ShadowBorder,
		Offset:     cfg.ShadowOffset,
		Background: cfg.Palette.ShadowBackground,
		Color:      cfg.Palette.Shadow,
	})
	if err != nil {
		return nil, err
	}

	opts := frame.Options{
		Layout:  l,
		Palette: cfg.Palette,
		Mode:    cfg.Mode,
		Anchor:  cfg.Anchor,
		Face:    cfg.Fonts.Timestamp,
	}
	for i, c := range cells {
		if c.Image == nil {
			return nil, errs.New(errs.ErrCodeInvalidInput, "frame %d is missing", i)
		}
		resized := imaging.Resize(c.Image, l.CellWidth, l.CellHeight, imaging.Linear)
		cell, err := frame.Composite(resized, c.Seconds, plate, opts)
		if err != nil {
			return nil, err
		}
		canvas = imaging.Paste(canvas, cell, l.CellOrigin(i))
	}

	return &Sheet{Image: canvas, Layout: l}, nil
}
