package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/geometry"
	"github.com/matzehuels/contactsheet/pkg/render/shadow"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
		{86400, "24:00:00"},
		{90061, "25:01:01"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
	}{
		{"top-right", TopRight},
		{"TOP_LEFT", TopLeft},
		{"bottom-right", BottomRight},
		{" center ", Center},
		{"bottom_left", BottomLeft},
	}
	for _, tt := range tests {
		got, err := ParseAnchor(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseAnchor(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "middle", "top"} {
		if _, err := ParseAnchor(bad); !errs.Is(err, errs.ErrCodeInvalidAnchor) {
			t.Errorf("ParseAnchor(%q) error = %v, want INVALID_ANCHOR", bad, err)
		}
	}
}

func TestAnchorPosition(t *testing.T) {
	frame := image.Pt(512, 288)
	txt := image.Pt(100, 30)
	const padding = 16

	tests := []struct {
		anchor Anchor
		want   image.Point
	}{
		{TopLeft, image.Pt(8, 8)},
		{TopRight, image.Pt(512-100-8, 8)},
		{BottomLeft, image.Pt(8, 288-30-8)},
		{BottomRight, image.Pt(404, 250)},
		{Center, image.Pt(206, 129)},
	}
	for _, tt := range tests {
		got, err := tt.anchor.Position(frame, txt, padding)
		if err != nil {
			t.Fatalf("%s: %v", tt.anchor, err)
		}
		if got != tt.want {
			t.Errorf("%s: Position = %v, want %v", tt.anchor, got, tt.want)
		}
	}

	if _, err := Anchor("left").Position(frame, txt, padding); !errs.Is(err, errs.ErrCodeInvalidAnchor) {
		t.Errorf("unknown anchor error = %v", err)
	}
}

func testFace(t *testing.T, size float64) font.Face {
	t.Helper()
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

func testOptions(t *testing.T, mode styles.ColorMode, border int) (Options, *shadow.Plate) {
	t.Helper()
	pal, err := styles.DefaultHexPalette().Parse()
	if err != nil {
		t.Fatal(err)
	}
	l := geometry.Layout{Rows: 1, Cols: 1, CellWidth: 200, CellHeight: 100, Padding: 16, Border: border, ShadowBorder: 4, FontSize: 32}
	plate, err := shadow.Make(l.CellWidth, l.CellHeight, shadow.Options{
		Mode: mode, Iterations: 2, Border: l.ShadowBorder, Offset: image.Pt(10, 6),
		Background: pal.ShadowBackground, Color: pal.Shadow,
	})
	if err != nil {
		t.Fatal(err)
	}
	return Options{Layout: l, Palette: pal, Mode: mode, Anchor: TopRight, Face: testFace(t, 28)}, plate
}

func TestCompositePlacesFrame(t *testing.T) {
	opts, plate := testOptions(t, styles.ModeRGB, 2)
	red := color.NRGBA{200, 10, 10, 255}
	img := imaging.New(200, 100, red)

	before := imaging.Clone(plate.Image)
	out, err := Composite(img, 3661, plate, opts)
	if err != nil {
		t.Fatalf("Composite() error: %v", err)
	}

	if out.Bounds() != plate.Image.Bounds() {
		t.Errorf("result bounds = %v, want plate bounds %v", out.Bounds(), plate.Image.Bounds())
	}
	for i := range before.Pix {
		if before.Pix[i] != plate.Image.Pix[i] {
			t.Fatal("Composite modified the shared plate")
		}
	}

	// Frame content sits inside the border at the paste position.
	if got := out.NRGBAAt(plate.Position.X+2+20, plate.Position.Y+2+80); got != red {
		t.Errorf("frame pixel = %v, want %v", got, red)
	}
	// RGB mode turns the translucent border into opaque black.
	if got := out.NRGBAAt(plate.Position.X, plate.Position.Y+50); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("border pixel = %v, want opaque black", got)
	}
	// The timestamp is drawn near the top-right corner.
	changed := false
	for y := 2 + 8; y < 2+40; y++ {
		for x := 2 + 100; x < 2+200-8; x++ {
			if out.NRGBAAt(x, y) != red {
				changed = true
			}
		}
	}
	if !changed {
		t.Error("no timestamp pixels found in the top-right region")
	}
}

func TestCompositeRGBAKeepsBorderAlpha(t *testing.T) {
	opts, plate := testOptions(t, styles.ModeRGBA, 3)
	img := imaging.New(200, 100, color.NRGBA{0, 200, 0, 255})

	out, err := Composite(img, 0, plate, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(plate.Position.X+1, plate.Position.Y+50); got != styles.BorderColor {
		t.Errorf("border pixel = %v, want %v", got, styles.BorderColor)
	}
}

func TestCompositeClipsBorderToPlate(t *testing.T) {
	opts, _ := testOptions(t, styles.ModeRGB, 2)
	plate, err := shadow.Make(200, 100, shadow.Options{
		Mode: styles.ModeRGB, Background: opts.Palette.ShadowBackground, Color: opts.Palette.Shadow,
	})
	if err != nil {
		t.Fatal(err)
	}
	red := color.NRGBA{200, 10, 10, 255}

	out, err := Composite(imaging.New(200, 100, red), 0, plate, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Bounds().Size(); got != image.Pt(200, 100) {
		t.Fatalf("result size = %v, want plate size 200x100", got)
	}
	if got := out.NRGBAAt(0, 50); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("left border pixel = %v, want opaque black", got)
	}
	// The right and bottom border fall outside the plate.
	if got := out.NRGBAAt(199, 90); got != red {
		t.Errorf("right edge pixel = %v, want frame content %v", got, red)
	}
}

func TestCompositeErrors(t *testing.T) {
	opts, plate := testOptions(t, styles.ModeRGB, 0)
	img := imaging.New(200, 100, color.NRGBA{A: 255})

	if _, err := Composite(nil, 0, plate, opts); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("nil frame error = %v", err)
	}
	bad := opts
	bad.Anchor = "somewhere"
	if _, err := Composite(img, 0, plate, bad); !errs.Is(err, errs.ErrCodeInvalidAnchor) {
		t.Errorf("bad anchor error = %v", err)
	}
	noFace := opts
	noFace.Face = nil
	if _, err := Composite(img, 0, plate, noFace); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("missing face error = %v", err)
	}
}
