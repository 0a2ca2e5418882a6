package hardware

import (
	"os"
	"path/filepath"
	"strconv"

	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/power"
)

const pstateDir = "/sys/devices/system/cpu/intel_pstate"

// sysfsPStates drives the intel_pstate scaling driver. Machines without
// the driver (AMD, older kernels) are skipped rather than failed: the
// tuning descriptor's pstate section simply has nothing to act on.
type sysfsPStates struct {
	dir string
}

// NewPStates returns the sysfs-backed performance-state driver.
func NewPStates() PStates {
	return &sysfsPStates{dir: pstateDir}
}

func (p *sysfsPStates) SetBounds(min, max power.Percent, turbo bool) error {
	if _, err := os.Stat(p.dir); os.IsNotExist(err) {
		logger.Debug().Msg("intel_pstate driver not present")
		return nil
	}

	if err := writeSysfs(filepath.Join(p.dir, "min_perf_pct"), strconv.Itoa(int(min))); err != nil {
		return err
	}
	if err := writeSysfs(filepath.Join(p.dir, "max_perf_pct"), strconv.Itoa(int(max))); err != nil {
		return err
	}

	noTurbo := "1"
	if turbo {
		noTurbo = "0"
	}
	if err := writeSysfs(filepath.Join(p.dir, "no_turbo"), noTurbo); err != nil {
		return err
	}

	logger.Debug().
		Int("min", int(min)).
		Int("max", int(max)).
		Bool("turbo", turbo).
		Msg("pstate bounds set")

	return nil
}
