package hardware

import (
	"context"
	"os/exec"
	"time"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/logger"
)

const scriptTimeout = 30 * time.Second

// execScripts runs per-profile hook scripts with a bounded runtime so a
// hung script cannot stall profile switching.
type execScripts struct {
	timeout time.Duration
}

// NewScripts returns the exec-backed script runner.
func NewScripts() Scripts {
	return &execScripts{timeout: scriptTimeout}
}

func (s *execScripts) Run(ctx context.Context, path string) error {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrap(ErrScriptFailed, err).WithData(string(output))
	}

	logger.Debug().Str("script", path).Msg("profile script completed")

	return nil
}
