package text

import (
	"image"
	"image/color"
	"testing"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T, size float64) font.Face {
	t.Helper()
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("parse font: %v", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

func TestMeasure(t *testing.T) {
	face := testFace(t, 20)
	lh := lineHeight(face)

	tests := []struct {
		name  string
		lines []string
		st    Style
		wantH int
	}{
		{"empty", nil, Style{}, 0},
		{"one line", []string{"00:00:00"}, Style{}, lh},
		{"two lines spaced", []string{"a", "b"}, Style{LineSpacing: 3}, 2*lh + 3},
		{"stroke adds both sides", []string{"a"}, Style{StrokeWidth: 2}, lh + 4},
		{"six lines", []string{"1", "2", "3", "4", "5", "6"}, Style{LineSpacing: 2, StrokeWidth: 1}, 6*lh + 5*2 + 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := Measure(tt.lines, face, tt.st)
			if h != tt.wantH {
				t.Errorf("height = %d, want %d", h, tt.wantH)
			}
		})
	}
}

func TestMeasureWidthUsesLongestLine(t *testing.T) {
	face := testFace(t, 20)
	short, _ := Measure([]string{"ab"}, face, Style{})
	long, _ := Measure([]string{"ab", "abcdefgh", "abc"}, face, Style{})
	if long <= short {
		t.Errorf("width of longest line %d should exceed %d", long, short)
	}
	stroked, _ := Measure([]string{"ab"}, face, Style{StrokeWidth: 3})
	if stroked != short+6 {
		t.Errorf("stroked width = %d, want %d", stroked, short+6)
	}
}

func TestRenderKeepsAlpha(t *testing.T) {
	face := testFace(t, 24)
	st := Style{Fill: color.NRGBA{255, 255, 255, 0x99}, Stroke: color.NRGBA{0, 0, 0, 0x40}, StrokeWidth: 1}
	label := Render([]string{"88:88:88"}, face, st)

	w, h := Measure([]string{"88:88:88"}, face, st)
	if label.Bounds() != image.Rect(0, 0, w, h) {
		t.Fatalf("bounds = %v, want %dx%d", label.Bounds(), w, h)
	}

	var maxA uint8
	var painted int
	for i := 3; i < len(label.Pix); i += 4 {
		if a := label.Pix[i]; a > 0 {
			painted++
			if a > maxA {
				maxA = a
			}
		}
	}
	if painted == 0 {
		t.Fatal("nothing was drawn")
	}
	// Fill over stroke can never exceed the combined alpha of both layers.
	if limit := uint8(0x99 + 0x40 - 0x99*0x40/255 + 1); maxA > limit {
		t.Errorf("max alpha %d exceeds composite limit %d", maxA, limit)
	}
	if label.NRGBAAt(0, 0).A != 0 {
		t.Error("corner pixel should stay transparent")
	}
}

func TestDrawDoesNotMutate(t *testing.T) {
	face := testFace(t, 16)
	dst := image.NewNRGBA(image.Rect(0, 0, 200, 60))
	for i := range dst.Pix {
		dst.Pix[i] = 0x20
	}
	before := append([]uint8(nil), dst.Pix...)

	out := Draw(dst, image.Pt(5, 5), []string{"hello"}, face, Style{Fill: color.NRGBA{255, 0, 0, 255}})
	if out.Bounds() != dst.Bounds() {
		t.Errorf("Draw bounds = %v, want %v", out.Bounds(), dst.Bounds())
	}
	for i := range before {
		if dst.Pix[i] != before[i] {
			t.Fatal("Draw modified its destination")
		}
	}
}
