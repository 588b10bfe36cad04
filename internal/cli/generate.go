package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/observability"
	"github.com/matzehuels/contactsheet/pkg/pipeline"
	"github.com/matzehuels/contactsheet/pkg/video"
)

// generateFlags holds the generate command's flags. Only flags set on the
// command line override the config file.
type generateFlags struct {
	config   string
	noCache  bool
	cacheTTL time.Duration

	rows, cols, shrink int
	mode               string
	output             string
	workers            int
	noStrip            bool

	textFont, timestampFont string

	background, text, timestamp, outline, shadow, shadowBackground string

	shadowIterations int
	shadowOffset     []int
	anchor           string
}

func (c *CLI) generateCommand() *cobra.Command {
	return c.generateCommandWith(&generateFlags{})
}

// generateCommandWith binds the command's flags to f.
func (c *CLI) generateCommandWith(f *generateFlags) *cobra.Command {
	def := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate <video|folder>",
		Short: "Write a contact sheet for a video or every video in a folder",
		Long: `Write a contact sheet for a video, or for every video found under a folder.

The sheet is saved as <video>.jpg (mode RGB) or <video>.png (any other mode)
next to the video, or inside --output if that directory exists. Settings are
read from --config first; flags given on the command line take precedence.`,
		Example: `  contactsheet generate holiday.mp4
  contactsheet generate ~/Videos -r 4 -c 4 -o ~/sheets
  contactsheet generate clip.mkv --mode RGBA --anchor bottom-right`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			if err := video.NewFFmpeg().Check(); err != nil {
				return err
			}
			return c.runGenerate(cmd, args[0], opts, f.noCache)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML config file")
	fs.BoolVar(&f.noCache, "no-cache", false, "do not read or write the probe cache")
	fs.DurationVar(&f.cacheTTL, "cache-ttl", def.CacheTTL, "how long probe results are reused")

	fs.IntVarP(&f.rows, "rows", "r", def.Rows, "grid rows")
	fs.IntVarP(&f.cols, "cols", "c", def.Cols, "grid columns")
	fs.IntVar(&f.shrink, "shrink", def.Shrink, "shrink factor from quantized frame size to cell size")
	fs.StringVarP(&f.mode, "mode", "m", def.Mode, "output mode: RGB writes JPEG, RGBA writes PNG")
	fs.StringVarP(&f.output, "output", "o", def.Output, "directory for sheets (default: next to each video)")
	fs.IntVarP(&f.workers, "workers", "w", def.Workers, "frames decoded in parallel")
	fs.BoolVar(&f.noStrip, "no-strip", false, "fail on corrupt metadata instead of remuxing without it")

	fs.StringVarP(&f.textFont, "text-font", "f", def.TextFont, "font for the metadata text")
	fs.StringVar(&f.timestampFont, "time-font", def.TimestampFont, "font for timestamps")

	fs.StringVarP(&f.background, "bg-color", "b", def.Colors.Background, "background color")
	fs.StringVar(&f.text, "text-color", def.Colors.Text, "metadata text color")
	fs.StringVar(&f.timestamp, "time-color", def.Colors.Timestamp, "timestamp color")
	fs.StringVar(&f.outline, "outline", def.Colors.Outline, "text outline color")
	fs.StringVarP(&f.shadow, "shadow", "s", def.Colors.Shadow, "shadow color")
	fs.StringVar(&f.shadowBackground, "shadow-bg", def.Colors.ShadowBackground, "shadow plate background color")

	fs.IntVar(&f.shadowIterations, "shadow-iter", def.ShadowIterations, "shadow blur passes")
	fs.IntSliceVar(&f.shadowOffset, "shadow-offset", def.ShadowOffset[:], "shadow offset dx,dy")
	fs.StringVarP(&f.anchor, "anchor", "a", def.Anchor, "timestamp position: top-left, top-right, bottom-left, bottom-right, center")

	return cmd
}

// options loads the config file, if any, and applies the flags that were
// set explicitly.
func (f *generateFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.config != "" {
		var err error
		if opts, err = pipeline.LoadOptions(f.config); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	setInt := func(name string, dst *int, v int) {
		if changed(name) {
			*dst = v
		}
	}
	setString := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}

	setInt("rows", &opts.Rows, f.rows)
	setInt("cols", &opts.Cols, f.cols)
	setInt("shrink", &opts.Shrink, f.shrink)
	setInt("workers", &opts.Workers, f.workers)
	setInt("shadow-iter", &opts.ShadowIterations, f.shadowIterations)
	setString("mode", &opts.Mode, f.mode)
	setString("output", &opts.Output, f.output)
	setString("text-font", &opts.TextFont, f.textFont)
	setString("time-font", &opts.TimestampFont, f.timestampFont)
	setString("bg-color", &opts.Colors.Background, f.background)
	setString("text-color", &opts.Colors.Text, f.text)
	setString("time-color", &opts.Colors.Timestamp, f.timestamp)
	setString("outline", &opts.Colors.Outline, f.outline)
	setString("shadow", &opts.Colors.Shadow, f.shadow)
	setString("shadow-bg", &opts.Colors.ShadowBackground, f.shadowBackground)
	setString("anchor", &opts.Anchor, f.anchor)

	if changed("cache-ttl") {
		opts.CacheTTL = f.cacheTTL
	}
	if changed("no-strip") {
		opts.StripCorruptMetadata = !f.noStrip
	}
	if changed("shadow-offset") {
		if len(f.shadowOffset) != 2 {
			return opts, errs.New(errs.ErrCodeInvalidConfig, "--shadow-offset takes two values dx,dy, got %d", len(f.shadowOffset))
		}
		opts.ShadowOffset = [2]int{f.shadowOffset[0], f.shadowOffset[1]}
	}
	return opts, nil
}

func (c *CLI) runGenerate(cmd *cobra.Command, root string, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner := c.newRunner(noCache)
	defer runner.Cache.Close()

	videos, err := pipeline.Videos(root)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Generating contact sheets for "+filepath.Base(root))
	observability.SetPipelineHooks(&statusHooks{spinner: spinner, total: len(videos)})
	defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})

	spinner.Start()
	batch, err := runner.Batch(ctx, root, opts)
	if spinner.Cancelled() {
		spinner.StopWithError("Cancelled")
		return ctx.Err()
	}
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, res := range batch.Results {
		printSuccess("%s", filepath.Base(res.Input))
		printFile(res.Output)
		printSheetStats(res.Frames, res.Layout.CanvasWidth, res.Layout.CanvasHeight, res.CacheInfo.ProbeHit)
		if res.Stripped {
			printDetail("metadata stripped before sampling")
		}
		if res.FontFallback {
			printWarning("a configured font was not found, fallback font used")
		}
	}
	for _, fail := range batch.Failed {
		printError("%s: %s", filepath.Base(fail.Path), errs.UserMessage(fail.Err))
	}

	switch {
	case batch.Total() == 0:
		printInfo("No videos found in %s", root)
		return nil
	case len(batch.Failed) > 0:
		prog.done(fmt.Sprintf("Generated %d of %d sheets", len(batch.Results), batch.Total()))
		return fmt.Errorf("%d of %d videos failed", len(batch.Failed), batch.Total())
	}
	prog.done(fmt.Sprintf("Generated %d sheets", len(batch.Results)))
	return nil
}
