package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/render/sink"
	"github.com/matzehuels/contactsheet/pkg/render/styles"
)

// videoPattern selects the files a folder batch processes.
var videoPattern = regexp.MustCompile(`(?i)\.(mov|mp4|m4v|mpg|mpeg|flv|wmv|avi|mkv|m2ts|ts)$`)

// IsVideo reports whether name has a known video extension.
func IsVideo(name string) bool {
	return videoPattern.MatchString(name)
}

// OutputPath returns where the sheet for videoPath is written: inside dir if
// dir is an existing directory, otherwise next to the video.
func OutputPath(videoPath, dir string, mode styles.ColorMode) string {
	name := filepath.Base(videoPath) + sink.Extension(mode)
	if dir != "" {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return filepath.Join(dir, name)
		}
	}
	return filepath.Join(filepath.Dir(videoPath), name)
}

// Failure is a video that could not be turned into a sheet.
type Failure struct {
	Path string
	Err  error
}

// BatchResult collects the outcome of a batch.
type BatchResult struct {
	Results []*Result
	Failed  []Failure
}

// Total returns the number of videos attempted.
func (b *BatchResult) Total() int {
	return len(b.Results) + len(b.Failed)
}

// Videos lists the videos under root in lexical order. A root that is a
// file is returned as is, whatever its extension.
func Videos(root string) ([]string, error) {
	fi, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, errs.New(errs.ErrCodeFileNotFound, "%s does not exist", root)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeOpenFailed, err, "stat %s", root)
	}
	if !fi.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsVideo(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeOpenFailed, err, "walk %s", root)
	}
	return paths, nil
}

// Batch generates a sheet for every video under root. Configuration errors
// fail the whole batch before any video is opened; per-video failures are
// collected in BatchResult.Failed. Cancelling ctx stops before the next video.
func (r *Runner) Batch(ctx context.Context, root string, opts Options) (*BatchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	paths, err := Videos(root)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("found videos", "root", root, "count", len(paths))

	batch := &BatchResult{}
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		r.Logger.Info("processing", "file", filepath.Base(path), "n", i+1, "of", len(paths))
		res, err := r.Generate(ctx, path, opts)
		if err != nil {
			if ctx.Err() != nil {
				return batch, ctx.Err()
			}
			r.Logger.Error("failed", "file", filepath.Base(path), "code", errs.GetCode(err), "error", err)
			batch.Failed = append(batch.Failed, Failure{Path: path, Err: err})
			continue
		}
		batch.Results = append(batch.Results, res)
	}
	return batch, nil
}
