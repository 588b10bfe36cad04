package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

// Default binary names, looked up in PATH.
const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"
)

// FFmpeg opens videos with the ffprobe and ffmpeg binaries.
// Every frame is decoded by its own ffmpeg process, so Frame is safe for
// concurrent use.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string

	// Attempts bounds how often a frame decode is tried when ffmpeg is
	// killed or returns no frame. Zero means one attempt.
	Attempts   int
	RetryDelay time.Duration
}

// NewFFmpeg returns an FFmpeg using the binaries found in PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		FFmpegPath:  DefaultFFmpeg,
		FFprobePath: DefaultFFprobe,
		Attempts:    DefaultAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// Check verifies that both binaries can be found.
func (f *FFmpeg) Check() error {
	for _, bin := range []string{f.ffmpeg(), f.ffprobe()} {
		if _, err := exec.LookPath(bin); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s not found, install it and make sure it is in PATH", bin)
		}
	}
	return nil
}

// Open probes path and returns a source for it.
func (f *FFmpeg) Open(ctx context.Context, path string) (Source, error) {
	meta, err := f.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	return f.OpenProbed(path, meta), nil
}

// OpenProbed returns a source for path using metadata obtained earlier.
func (f *FFmpeg) OpenProbed(path string, meta Metadata) Source {
	return &ffmpegSource{bin: f.ffmpeg(), path: path, meta: meta, attempts: f.Attempts, delay: f.RetryDelay}
}

// Probe runs ffprobe on path.
func (f *FFmpeg) Probe(ctx context.Context, path string) (Metadata, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Metadata{}, errs.New(errs.ErrCodeFileNotFound, "%s does not exist", path)
	}
	if err != nil {
		return Metadata{}, errs.Wrap(errs.ErrCodeOpenFailed, err, "stat %s", path)
	}

	cmd := exec.CommandContext(ctx, f.ffprobe(),
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return Metadata{}, ctx.Err()
		}
		return Metadata{}, errs.Wrap(errs.ErrCodeOpenFailed, err, "ffprobe %s: %s", filepath.Base(path), lastLine(stderr.String()))
	}

	meta, err := ParseProbe(path, out)
	if err != nil {
		return Metadata{}, err
	}
	if meta.SizeBytes == 0 {
		meta.SizeBytes = info.Size()
	}
	return meta, nil
}

// StripMetadata remuxes src into dst without container metadata. Streams are
// copied, not re-encoded.
func (f *FFmpeg) StripMetadata(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, f.ffmpeg(),
		"-v", "error",
		"-y",
		"-i", src,
		"-map_metadata", "-1",
		"-c:v", "copy",
		"-c:a", "copy",
		dst,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.Wrap(errs.ErrCodeOpenFailed, err, "strip metadata from %s: %s", filepath.Base(src), lastLine(string(out)))
	}
	return nil
}

func (f *FFmpeg) ffmpeg() string {
	if f.FFmpegPath == "" {
		return DefaultFFmpeg
	}
	return f.FFmpegPath
}

func (f *FFmpeg) ffprobe() string {
	if f.FFprobePath == "" {
		return DefaultFFprobe
	}
	return f.FFprobePath
}

type ffmpegSource struct {
	bin  string
	path string
	meta Metadata

	attempts int
	delay    time.Duration
}

func (s *ffmpegSource) Metadata() Metadata { return s.meta }

// Frame seeks to micros and pipes out the first decoded frame as PNG.
func (s *ffmpegSource) Frame(ctx context.Context, micros int64) (image.Image, error) {
	var img image.Image
	err := retry(ctx, s.attempts, s.delay, func() error {
		var err error
		img, err = s.decode(ctx, micros)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *ffmpegSource) decode(ctx context.Context, micros int64) (image.Image, error) {
	cmd := exec.CommandContext(ctx, s.bin,
		"-v", "error",
		"-ss", formatSeek(micros),
		"-i", s.path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		werr := errs.Wrap(errs.ErrCodeSamplingFailed, err, "decode %s at %s: %s",
			s.meta.Filename, formatSeek(micros), lastLine(stderr.String()))
		if killed(err) {
			return nil, transient(werr)
		}
		return nil, werr
	}
	if len(out) == 0 {
		return nil, transient(errs.New(errs.ErrCodeSamplingFailed, "no frame in %s at %s", s.meta.Filename, formatSeek(micros)))
	}
	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSamplingFailed, err, "decode frame of %s at %s", s.meta.Filename, formatSeek(micros))
	}
	return img, nil
}

// Close is a no-op: no process outlives a Frame call.
func (s *ffmpegSource) Close() error { return nil }

// formatSeek renders micros as seconds for -ss.
func formatSeek(micros int64) string {
	return fmt.Sprintf("%d.%06d", micros/1_000_000, micros%1_000_000)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return "no output"
	}
	return s
}
