package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contactsheet/pkg/cache"
	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/fonts"
	"github.com/matzehuels/contactsheet/pkg/geometry"
	"github.com/matzehuels/contactsheet/pkg/observability"
	"github.com/matzehuels/contactsheet/pkg/render/sheet"
	"github.com/matzehuels/contactsheet/pkg/render/sink"
	"github.com/matzehuels/contactsheet/pkg/video"
)

// Prober is an Opener that can probe separately from opening. The Runner
// caches probe results for openers that implement it.
type Prober interface {
	video.Opener
	Probe(ctx context.Context, path string) (video.Metadata, error)
	OpenProbed(path string, meta video.Metadata) video.Source
}

// Stripper remuxes a video without its container metadata. The Runner uses
// it to recover from CORRUPT_METADATA.
type Stripper interface {
	StripMetadata(ctx context.Context, src, dst string) error
}

// Runner generates sheets. It keeps no per-video state, so one Runner may
// serve any number of Generate calls.
type Runner struct {
	Opener video.Opener
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the DefaultKeyer and a nil logger uses log.Default.
func NewRunner(opener video.Opener, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Opener: opener, Cache: c, Keyer: keyer, Logger: logger}
}

// Generate writes the contact sheet for the video at path and returns where
// it went. On error nothing is written.
func (r *Runner) Generate(ctx context.Context, path string, opts Options) (*Result, error) {
	set, err := opts.settings()
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{
		Input:  path,
		Output: OutputPath(path, opts.Output, set.mode),
	}
	name := filepath.Base(path)

	// Stage 1: Probe
	probeStart := time.Now()
	observability.Pipeline().OnProbeStart(ctx, path)
	src, cleanup, err := r.openSource(ctx, path, opts, result)
	result.Stats.ProbeTime = time.Since(probeStart)
	observability.Pipeline().OnProbeComplete(ctx, path, result.Stats.ProbeTime, err)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer cleanup()
	defer src.Close()

	meta := src.Metadata()
	meta.Filename = name
	result.Metadata = meta
	r.Logger.Debug("probed video",
		"file", name,
		"resolution", fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		"duration", time.Duration(meta.DurationMicros)*time.Microsecond,
		"cached", result.CacheInfo.ProbeHit)

	// Stage 2: Sample
	probe, err := geometry.Resolve(geometry.ProbeSize, geometry.ProbeSize, opts.Rows, opts.Cols, opts.Shrink)
	if err != nil {
		return nil, err
	}
	marks, err := video.Marks(meta.DurationMicros, probe.Cells())
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", name, err)
	}
	sampleStart := time.Now()
	observability.Pipeline().OnSampleStart(ctx, path, len(marks))
	frames, err := video.Sample(ctx, src, marks, opts.Workers)
	result.Stats.SampleTime = time.Since(sampleStart)
	observability.Pipeline().OnSampleComplete(ctx, path, result.Stats.SampleTime, err)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", name, err)
	}
	result.Frames = len(frames)
	r.Logger.Debug("sampled frames", "file", name, "frames", len(frames), "duration", result.Stats.SampleTime)

	// Stage 3: Assemble and save
	size := frames[0].Image.Bounds().Size()
	result.Enlarge = geometry.EnlargeFactor(meta.BitrateKbps)
	layout, err := geometry.Resolve(size.X*result.Enlarge, size.Y*result.Enlarge, opts.Rows, opts.Cols, opts.Shrink)
	if err != nil {
		return nil, err
	}

	faces := fonts.LoadSet(opts.TextFont, opts.TimestampFont, layout.FontSize)
	defer faces.Close()
	for _, f := range []struct {
		want string
		got  *fonts.Face
	}{{opts.TextFont, faces.Body}, {opts.TimestampFont, faces.Timestamp}} {
		if f.got.Fallback {
			result.FontFallback = true
			r.Logger.Warn("font not available, using fallback", "font", f.want, "fallback", f.got.Name)
		}
	}

	cells := make([]sheet.Cell, len(frames))
	for i, f := range frames {
		cells[i] = sheet.Cell{Image: f.Image, Seconds: f.Seconds()}
	}

	assembleStart := time.Now()
	observability.Pipeline().OnAssembleStart(ctx, path, layout.CanvasWidth, layout.CanvasHeight)
	sh, err := sheet.Assemble(sheet.MetadataLines(info(meta)), cells, sheet.Config{
		Layout:           layout,
		Palette:          set.palette,
		Mode:             set.mode,
		Fonts:            faces,
		Anchor:           set.anchor,
		ShadowIterations: opts.ShadowIterations,
		ShadowOffset:     set.offset,
	})
	if err == nil {
		err = sink.Save(result.Output, sh.Image, set.mode)
	}
	result.Stats.AssembleTime = time.Since(assembleStart)
	observability.Pipeline().OnAssembleComplete(ctx, path, result.Stats.AssembleTime, err)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", name, err)
	}
	result.Layout = sh.Layout

	r.Logger.Info("wrote contact sheet",
		"file", name,
		"output", result.Output,
		"size", fmt.Sprintf("%dx%d", sh.Layout.CanvasWidth, sh.Layout.CanvasHeight),
		"duration", result.Stats.ProbeTime+result.Stats.SampleTime+result.Stats.AssembleTime)
	return result, nil
}

// openSource opens path, remuxing it without metadata first if probing
// reports CORRUPT_METADATA. The returned cleanup removes any temporary file
// and must be called after the source is closed.
func (r *Runner) openSource(ctx context.Context, path string, opts Options, result *Result) (video.Source, func(), error) {
	noop := func() {}

	src, hit, err := r.open(ctx, path, opts.CacheTTL)
	if err == nil {
		result.CacheInfo.ProbeHit = hit
		return src, noop, nil
	}
	stripper, ok := r.Opener.(Stripper)
	if !errs.IsRecoverable(err) || !opts.StripCorruptMetadata || !ok {
		return nil, noop, err
	}

	r.Logger.Warn("metadata decode error, retrying without metadata", "file", filepath.Base(path))
	tmp, err := os.CreateTemp("", "contactsheet-*"+filepath.Ext(path))
	if err != nil {
		return nil, noop, errs.Wrap(errs.ErrCodeInternal, err, "create temp file")
	}
	tmp.Close()
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err == nil {
			r.Logger.Debug("removed stripped copy", "path", tmp.Name())
		}
	}

	if err := stripper.StripMetadata(ctx, path, tmp.Name()); err != nil {
		cleanup()
		return nil, noop, err
	}
	src, err = r.Opener.Open(ctx, tmp.Name())
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	result.Stripped = true
	return src, cleanup, nil
}

// open opens path, serving probe results from the cache when the opener is
// a Prober.
func (r *Runner) open(ctx context.Context, path string, ttl time.Duration) (video.Source, bool, error) {
	p, ok := r.Opener.(Prober)
	if !ok {
		src, err := r.Opener.Open(ctx, path)
		return src, false, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		src, err := p.Open(ctx, path)
		return src, false, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	key := r.Keyer.ProbeKey(path, fi.Size(), fi.ModTime())

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var meta video.Metadata
		if err := json.Unmarshal(data, &meta); err == nil {
			observability.Cache().OnCacheHit(ctx, "probe")
			return p.OpenProbed(path, meta), true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "probe")

	meta, err := p.Probe(ctx, path)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(meta); err == nil {
		if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
			r.Logger.Debug("probe cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "probe", len(data))
		}
	}
	return p.OpenProbed(path, meta), false, nil
}

// info maps probe metadata onto the sheet's description block.
func info(m video.Metadata) sheet.Info {
	return sheet.Info{
		Filename:        m.Filename,
		SizeBytes:       m.SizeBytes,
		Width:           m.Width,
		Height:          m.Height,
		DurationMicros:  m.DurationMicros,
		VideoCodec:      m.VideoCodec,
		VideoCodecLong:  m.VideoCodecLong,
		BitrateKbps:     m.BitrateKbps,
		FrameRate:       m.FrameRate,
		AudioCodec:      m.AudioCodec,
		AudioSampleRate: m.AudioSampleRate,
		AudioChannels:   m.AudioChannels,
		AudioStreams:    m.AudioStreams,
	}
}
