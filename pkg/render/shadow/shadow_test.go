package shadow

import (
	"image"
	"image/color"
	"testing"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
)

var (
	bg     = color.NRGBA{0x2e, 0x2e, 0x2e, 0xff}
	shadow = color.NRGBA{0x12, 0x12, 0x12, 0x66}
)

func opts(mode styles.ColorMode, iter, border int, off image.Point) Options {
	return Options{Mode: mode, Iterations: iter, Border: border, Offset: off, Background: bg, Color: shadow}
}

func TestMakeSize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		border int
		off    image.Point
		want   image.Point
	}{
		{"default offset", 512, 288, 4, image.Pt(10, 6), image.Pt(512+10+8, 288+6+8)},
		{"negative x", 100, 50, 2, image.Pt(-7, 3), image.Pt(100+7+4, 50+3+4)},
		{"negative both", 100, 50, 0, image.Pt(-5, -9), image.Pt(105, 59)},
		{"no offset", 64, 64, 3, image.Point{}, image.Pt(70, 70)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Make(tt.w, tt.h, opts(styles.ModeRGBA, 2, tt.border, tt.off))
			if err != nil {
				t.Fatalf("Make() error: %v", err)
			}
			if got := p.Image.Bounds().Size(); got != tt.want {
				t.Errorf("plate size = %v, want %v", got, tt.want)
			}
			if got := Size(tt.w, tt.h, opts(styles.ModeRGBA, 0, tt.border, tt.off)); got != tt.want {
				t.Errorf("Size() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMakePosition(t *testing.T) {
	tests := []struct {
		off  image.Point
		want image.Point
	}{
		{image.Pt(10, 6), image.Pt(0, 0)},
		{image.Pt(-10, 6), image.Pt(4+10, 0)},
		{image.Pt(10, -6), image.Pt(0, 4+6)},
		{image.Pt(-3, -2), image.Pt(7, 6)},
	}
	for _, tt := range tests {
		p, err := Make(40, 30, opts(styles.ModeRGB, 0, 4, tt.off))
		if err != nil {
			t.Fatalf("Make(%v) error: %v", tt.off, err)
		}
		if p.Position != tt.want {
			t.Errorf("offset %v: Position = %v, want %v", tt.off, p.Position, tt.want)
		}
	}
}

func TestMakeWithoutBlurPlacesShadow(t *testing.T) {
	p, err := Make(20, 10, opts(styles.ModeRGBA, 0, 4, image.Pt(10, 6)))
	if err != nil {
		t.Fatal(err)
	}
	// Shadow starts at (border+dx, border+dy) and keeps its own alpha.
	if got := p.Image.NRGBAAt(14, 10); got != shadow {
		t.Errorf("shadow pixel = %v, want %v", got, shadow)
	}
	if got := p.Image.NRGBAAt(13, 10); got != bg {
		t.Errorf("pixel left of shadow = %v, want background %v", got, bg)
	}
	if got := p.Image.NRGBAAt(0, 0); got != bg {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestMakeRGBDropsAlpha(t *testing.T) {
	p, err := Make(20, 10, opts(styles.ModeRGB, 0, 4, image.Pt(10, 6)))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Image.NRGBAAt(14, 10); got != (color.NRGBA{0x12, 0x12, 0x12, 0xff}) {
		t.Errorf("RGB shadow pixel = %v, want opaque shadow color", got)
	}
}

func TestBlurIterationsSoften(t *testing.T) {
	sharp, _ := Make(40, 40, opts(styles.ModeRGB, 1, 8, image.Pt(10, 6)))
	soft, _ := Make(40, 40, opts(styles.ModeRGB, 10, 8, image.Pt(10, 6)))

	// Just outside the shadow edge more blur passes leak more shadow.
	x, y := 8+10-2, 8+6+20
	if sharp.Image.NRGBAAt(x, y).R <= soft.Image.NRGBAAt(x, y).R {
		t.Errorf("pixel outside edge: 1 pass R=%d, 10 passes R=%d; expected darker with more passes",
			sharp.Image.NRGBAAt(x, y).R, soft.Image.NRGBAAt(x, y).R)
	}
}

func TestCopyIsPrivate(t *testing.T) {
	p, _ := Make(10, 10, opts(styles.ModeRGBA, 1, 2, image.Pt(1, 1)))
	c := p.Copy()
	c.Pix[0] = 0x01
	if p.Image.Pix[0] == 0x01 {
		t.Error("Copy shares pixels with the plate")
	}
}

func TestMakeErrors(t *testing.T) {
	if _, err := Make(0, 10, opts(styles.ModeRGB, 1, 2, image.Point{})); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("zero width error = %v", err)
	}
	if _, err := Make(10, 10, opts(styles.ModeRGB, -1, 2, image.Point{})); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("negative iterations error = %v", err)
	}
}
