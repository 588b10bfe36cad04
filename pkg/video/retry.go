package video

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

// Decode retry defaults for FFmpeg.
const (
	DefaultAttempts   = 3
	DefaultRetryDelay = 200 * time.Millisecond
)

// transientError marks a decode failure worth another attempt: ffmpeg was
// killed by a signal, or exited cleanly without writing a frame.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func transient(err error) error { return &transientError{err: err} }

// killed reports whether err is an ffmpeg process that died from a signal
// rather than exiting with a status.
func killed(err error) bool {
	var exit *exec.ExitError
	return errors.As(err, &exit) && !exit.Exited()
}

// retry runs fn up to attempts times, doubling delay after each transient
// failure. Any other error is returned at once. The returned error is never
// a *transientError.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		var t *transientError
		if !errors.As(err, &t) {
			return err
		}
		lastErr = t.err

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
