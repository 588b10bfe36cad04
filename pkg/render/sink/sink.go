// Package sink encodes an assembled sheet and writes it to disk.
//
// Opaque sheets (styles.ModeRGB) are written as JPEG, sheets with alpha as
// PNG. Save writes through a temporary file in the target directory and
// renames it into place, so a failed run never leaves a partial image behind.
package sink

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
)

// JPEGQuality is the quality used for opaque sheets.
const JPEGQuality = 90

// Extension returns the file extension, with leading dot, for a sheet in mode.
func Extension(mode styles.ColorMode) string {
	if mode.HasAlpha() {
		return ".png"
	}
	return ".jpg"
}

// Format returns the encoder format for mode.
func Format(mode styles.ColorMode) imaging.Format {
	if mode.HasAlpha() {
		return imaging.PNG
	}
	return imaging.JPEG
}

// Encode writes img to w in the format matching mode.
func Encode(w io.Writer, img image.Image, mode styles.ColorMode) error {
	if err := imaging.Encode(w, img, Format(mode), imaging.JPEGQuality(JPEGQuality)); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode sheet")
	}
	return nil
}

// Render encodes img into memory.
func Render(img image.Image, mode styles.ColorMode) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, mode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes img and atomically writes it to path.
func Save(path string, img image.Image, mode styles.ColorMode) error {
	data, err := Render(img, mode)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile writes data to path via a temporary sibling file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create temp file in %s", dir)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return errs.Wrap(errs.ErrCodeInternal, err, "chmod %s", path)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return errs.Wrap(errs.ErrCodeInternal, err, "rename into %s", path)
	}
	return nil
}
