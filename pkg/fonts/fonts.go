// Package fonts loads font faces by name for sheet text.
//
// A name may be a file path or a bare file name such as "arial.ttf" that is
// looked up in the system font directories. Loading never fails: a name that
// cannot be loaded falls back to DefaultName, and if that is missing too, to
// the Go Regular font embedded in the binary.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultName is the system font tried when a requested font fails to load.
const DefaultName = "arial.ttf"

// EmbeddedName identifies the embedded last-resort font.
const EmbeddedName = "goregular"

// minSize is used when a non-positive size is requested.
const minSize = 10

// TimestampShrink is how much smaller the timestamp font is than the body font.
const TimestampShrink = 4

// Face is a loaded font face together with how it was resolved.
type Face struct {
	font.Face

	Name     string // Name that was actually loaded
	Size     int    // Size in pixels
	Fallback bool   // True if the requested name could not be loaded
}

// Set holds the two faces used on a sheet.
type Set struct {
	Body      *Face
	Timestamp *Face
}

var (
	embedded     *truetype.Font
	embeddedErr  error
	embeddedOnce sync.Once
)

// Load returns a face for name at size pixels. It never returns nil.
func Load(name string, size int) *Face {
	if size <= 0 {
		size = minSize
	}
	if f, err := loadNamed(name, size); err == nil {
		return &Face{Face: f, Name: name, Size: size}
	}
	if name != DefaultName {
		if f, err := loadNamed(DefaultName, size); err == nil {
			return &Face{Face: f, Name: DefaultName, Size: size, Fallback: true}
		}
	}
	return &Face{Face: loadEmbedded(size), Name: EmbeddedName, Size: size, Fallback: true}
}

// LoadSet loads the body face at size and the timestamp face TimestampShrink
// pixels smaller.
func LoadSet(bodyName, timestampName string, size int) Set {
	return Set{
		Body:      Load(bodyName, size),
		Timestamp: Load(timestampName, size-TimestampShrink),
	}
}

// Close releases both faces.
func (s Set) Close() error {
	if s.Body != nil {
		s.Body.Close()
	}
	if s.Timestamp != nil {
		s.Timestamp.Close()
	}
	return nil
}

// Resolve maps a font name to a file path. Existing paths are returned as is;
// anything else is searched in the system font directories.
func Resolve(name string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	return findfont.Find(name)
}

func loadNamed(name string, size int) (font.Face, error) {
	if name == "" {
		return nil, os.ErrNotExist
	}
	path, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	return gg.LoadFontFace(path, float64(size))
}

func loadEmbedded(size int) font.Face {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = truetype.Parse(goregular.TTF)
	})
	if embeddedErr != nil {
		// goregular.TTF is a compile-time constant; a parse failure is a broken build.
		panic("fonts: embedded font: " + embeddedErr.Error())
	}
	return truetype.NewFace(embedded, &truetype.Options{Size: float64(size)})
}
