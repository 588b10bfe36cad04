// Package pipeline turns videos into contact sheets.
//
// A [Runner] drives one sheet through four stages:
//
//  1. Probe: open the video and read its metadata, cached between runs
//  2. Sample: decode one frame per grid cell at evenly spaced marks
//  3. Assemble: resolve the final layout and composite the sheet
//  4. Save: encode the sheet and write it atomically next to the video
//
// [Runner.Batch] applies [Runner.Generate] to every video under a folder. A
// failing video is recorded and skipped; it never aborts the batch.
//
// # Usage
//
//	runner := pipeline.NewRunner(video.NewFFmpeg(), cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Rows, opts.Cols = 4, 4
//	result, err := runner.Generate(ctx, "holiday.mp4", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
package pipeline

import (
	"errors"
	"image"
	"time"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/fonts"
	"github.com/matzehuels/contactsheet/pkg/geometry"
	"github.com/matzehuels/contactsheet/pkg/render/frame"
	"github.com/matzehuels/contactsheet/pkg/render/shadow"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
	"github.com/matzehuels/contactsheet/pkg/video"
)

const (
	// DefaultRows and DefaultCols give a 3x3 grid.
	DefaultRows = 3
	DefaultCols = 3

	// DefaultTimestampFont is looked up relative to the working directory
	// first, then in the system font directories.
	DefaultTimestampFont = "fonts/Georgia.ttf"

	// DefaultWorkers decodes frames one at a time.
	DefaultWorkers = 1

	// DefaultCacheTTL is how long probe results are reused.
	DefaultCacheTTL = 24 * time.Hour
)

// Options is the complete configuration of a run. Every field is always
// defined; start from DefaultOptions and override.
type Options struct {
	Rows   int    `toml:"rows"`
	Cols   int    `toml:"cols"`
	Shrink int    `toml:"shrink"`
	Mode   string `toml:"mode"` // "RGB" writes JPEG, anything else PNG with alpha

	TextFont      string `toml:"text_font"`
	TimestampFont string `toml:"timestamp_font"`

	Colors styles.HexPalette `toml:"colors"`

	ShadowIterations int    `toml:"shadow_iterations"`
	ShadowOffset     [2]int `toml:"shadow_offset"` // dx, dy
	Anchor           string `toml:"timestamp_anchor"`

	Output               string        `toml:"output"` // Directory for sheets; empty writes next to each video
	Workers              int           `toml:"workers"`
	StripCorruptMetadata bool          `toml:"strip_corrupt_metadata"`
	CacheTTL             time.Duration `toml:"cache_ttl"`
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Rows:                 DefaultRows,
		Cols:                 DefaultCols,
		Shrink:               geometry.DefaultShrink,
		Mode:                 string(styles.ModeRGB),
		TextFont:             fonts.DefaultName,
		TimestampFont:        DefaultTimestampFont,
		Colors:               styles.DefaultHexPalette(),
		ShadowIterations:     shadow.DefaultIterations,
		ShadowOffset:         [2]int{shadow.DefaultOffset.X, shadow.DefaultOffset.Y},
		Anchor:               string(frame.DefaultAnchor),
		Workers:              DefaultWorkers,
		StripCorruptMetadata: true,
		CacheTTL:             DefaultCacheTTL,
	}
}

// settings is Options parsed into render types.
type settings struct {
	mode    styles.ColorMode
	palette styles.Palette
	anchor  frame.Anchor
	offset  image.Point
}

// Validate reports every configuration error at once.
func (o Options) Validate() error {
	_, err := o.settings()
	return err
}

func (o Options) settings() (settings, error) {
	var s settings
	var all []error

	if err := errs.ValidateGrid(o.Rows, o.Cols); err != nil {
		all = append(all, err)
	}
	if err := errs.ValidateShrink(o.Shrink); err != nil {
		all = append(all, err)
	}
	if err := errs.ValidateNonNegative("shadow iterations", o.ShadowIterations); err != nil {
		all = append(all, err)
	}
	if err := errs.ValidateNonNegative("workers", o.Workers); err != nil {
		all = append(all, err)
	}
	if o.CacheTTL < 0 {
		all = append(all, errs.New(errs.ErrCodeInvalidConfig, "cache ttl must not be negative, got %s", o.CacheTTL))
	}

	var err error
	if s.mode, err = styles.ParseMode(o.Mode); err != nil {
		all = append(all, err)
	}
	if s.palette, err = o.Colors.Parse(); err != nil {
		all = append(all, err)
	}
	if s.anchor, err = frame.ParseAnchor(o.Anchor); err != nil {
		all = append(all, err)
	}
	s.offset = image.Pt(o.ShadowOffset[0], o.ShadowOffset[1])

	if len(all) > 0 {
		return settings{}, errors.Join(all...)
	}
	return s, nil
}

// Result describes one generated sheet.
type Result struct {
	Input    string
	Output   string
	Metadata video.Metadata
	Layout   geometry.Layout
	Frames   int

	// Enlarge is the bitrate-derived factor applied to the sampled frame size.
	Enlarge int

	// Stripped is true if the video was remuxed without metadata first.
	Stripped bool

	// FontFallback is true if a configured font could not be loaded.
	FontFallback bool

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds stage timings.
type Stats struct {
	ProbeTime    time.Duration
	SampleTime   time.Duration
	AssembleTime time.Duration
}

// CacheInfo reports which lookups hit the cache.
type CacheInfo struct {
	ProbeHit bool
}
