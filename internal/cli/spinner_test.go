package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("Sampling frames...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop alone should not report cancellation")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Sampling frames...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation of its parent context")
	}
	s.Stop()
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Probing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report a timed out parent context")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinner("1/3 a.mp4")
	s.Start()
	s.SetMessage("2/3 a-much-longer-file-name.mkv")
	time.Sleep(100 * time.Millisecond)
	s.SetMessage("3/3 c.mp4")
	s.Stop()

	if s.width < len("2/3 a-much-longer-file-name.mkv") {
		t.Errorf("width = %d, want the widest message drawn", s.width)
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Stopping twice...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner("Never started")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	s := newSpinner("Writing sheet...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Wrote clip.mp4.jpg")

	s = newSpinner("Writing sheet...")
	s.Start()
	s.StopWithError("Could not write clip.mp4.jpg")
}
