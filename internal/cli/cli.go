// Package cli implements the contactsheet command-line interface.
//
// Commands:
//   - generate: write a contact sheet for a video, or for every video in a folder
//   - layout: print the sheet geometry for given frame dimensions
//   - cache: manage the probe cache
//   - completion: shell completion scripts
//
// Every command supports --verbose (-v) for debug logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/contactsheet/pkg/buildinfo"
	"github.com/matzehuels/contactsheet/pkg/cache"
	"github.com/matzehuels/contactsheet/pkg/pipeline"
	"github.com/matzehuels/contactsheet/pkg/video"
)

// appName names the cache directory.
const appName = "contactsheet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Contactsheet renders a grid of timestamped frames for a video",
		Long:         `Contactsheet samples evenly spaced frames from a video and lays them out as a contact sheet: a metadata header above a grid of timestamped, shadowed thumbnails sized to the source resolution.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a runner backed by ffmpeg and, unless noCache is set,
// the on-disk probe cache.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(video.NewFFmpeg(), c.newCache(noCache), keyer, c.Logger)
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache unavailable, caching disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns $XDG_CACHE_HOME/contactsheet, or ~/.cache/contactsheet.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
