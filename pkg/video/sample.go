package video

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

// MaxLeadIn caps how far into the video the first mark is placed.
const MaxLeadIn int64 = 5_000_000

// Frame is a decoded frame and the mark it was requested at.
type Frame struct {
	Image  image.Image
	Micros int64
}

// Seconds returns the mark in whole seconds.
func (f Frame) Seconds() int64 {
	return f.Micros / 1_000_000
}

// Marks returns k evenly spaced time marks for a video of durationMicros.
//
// The first mark sits at start = min(duration/k, MaxLeadIn) and the last at
// duration-start. A single mark is placed at the middle of the video.
func Marks(durationMicros int64, k int) ([]int64, error) {
	if k <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidGrid, "need at least one frame, got %d", k)
	}
	if durationMicros <= 0 {
		return nil, errs.New(errs.ErrCodeSamplingFailed, "video has no duration")
	}
	if k == 1 {
		return []int64{durationMicros / 2}, nil
	}

	start := min(durationMicros/int64(k), MaxLeadIn)
	end := durationMicros - start
	span := end - start
	last := int64(k - 1)

	marks := make([]int64, k)
	for i := range marks {
		marks[i] = start + span*int64(i)/last
	}
	return marks, nil
}

// Sample decodes one frame per mark. Frames are returned in mark order.
//
// With workers > 1 up to that many frames are decoded concurrently. Any
// failure cancels the remaining work and fails the whole sample.
func Sample(ctx context.Context, src Source, marks []int64, workers int) ([]Frame, error) {
	frames := make([]Frame, len(marks))

	if workers <= 1 {
		for i, m := range marks {
			img, err := decode(ctx, src, m)
			if err != nil {
				return nil, err
			}
			frames[i] = Frame{Image: img, Micros: m}
		}
		return frames, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range marks {
		g.Go(func() error {
			img, err := decode(gctx, src, m)
			if err != nil {
				return err
			}
			frames[i] = Frame{Image: img, Micros: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

func decode(ctx context.Context, src Source, micros int64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := src.Frame(ctx, micros)
	if err != nil {
		if ctx.Err() != nil || errs.Is(err, errs.ErrCodeSamplingFailed) {
			return nil, err
		}
		return nil, errs.Wrap(errs.ErrCodeSamplingFailed, err, "no frame at %.3fs", float64(micros)/1e6)
	}
	if img == nil {
		return nil, errs.New(errs.ErrCodeSamplingFailed, "no frame at %.3fs", float64(micros)/1e6)
	}
	return img, nil
}
