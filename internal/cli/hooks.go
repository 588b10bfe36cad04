package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/contactsheet/pkg/observability"
)

// statusHooks mirrors pipeline progress into the spinner message. Every
// video starts with a probe, so OnProbeStart advances the counter.
type statusHooks struct {
	observability.NoopPipelineHooks

	spinner *Spinner
	current int
	total   int
}

func (h *statusHooks) status(path, msg string) {
	prefix := ""
	if h.total > 1 {
		prefix = fmt.Sprintf("[%d/%d] ", h.current, h.total)
	}
	h.spinner.SetMessage(prefix + msg + " " + filepath.Base(path))
}

func (h *statusHooks) OnProbeStart(_ context.Context, path string) {
	h.current++
	h.status(path, "Probing")
}

func (h *statusHooks) OnSampleStart(_ context.Context, path string, frames int) {
	h.status(path, fmt.Sprintf("Sampling %d frames from", frames))
}

func (h *statusHooks) OnAssembleStart(_ context.Context, path string, width, height int) {
	h.status(path, fmt.Sprintf("Assembling %dx%d sheet for", width, height))
}
