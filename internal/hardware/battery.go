package hardware

import (
	"os"
	"path/filepath"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/power"
)

const powerSupplyRoot = "/sys/class/power_supply"

// sysfsPowerSupply reads battery charge and AC state from
// /sys/class/power_supply.
type sysfsPowerSupply struct {
	root string
}

// NewPowerSupply returns the sysfs-backed power-supply reader.
func NewPowerSupply() PowerSupply {
	return &sysfsPowerSupply{root: powerSupplyRoot}
}

// NewPowerSupplyAt returns a power-supply reader rooted at an explicit
// directory.
func NewPowerSupplyAt(root string) PowerSupply {
	return &sysfsPowerSupply{root: root}
}

func (s *sysfsPowerSupply) BatteryPercent() (power.Percent, error) {
	supplies, err := s.suppliesOfType("Battery")
	if err != nil {
		return 0, err
	}
	if len(supplies) == 0 {
		return 0, errors.New(ErrNoBattery)
	}

	capacity, err := readSysfsInt(filepath.Join(supplies[0], "capacity"))
	if err != nil {
		return 0, err
	}

	return power.Percent(capacity), nil
}

func (s *sysfsPowerSupply) OnAC() (bool, error) {
	supplies, err := s.suppliesOfType("Mains")
	if err != nil {
		return false, err
	}
	// No AC adapter device means a machine that is always mains-powered.
	if len(supplies) == 0 {
		return true, nil
	}

	for _, supply := range supplies {
		online, err := readSysfsInt(filepath.Join(supply, "online"))
		if err != nil {
			return false, err
		}
		if online == 1 {
			return true, nil
		}
	}

	return false, nil
}

func (s *sysfsPowerSupply) suppliesOfType(wanted string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errors.Wrap(ErrSysfsRead, err)
	}

	var matches []string
	for _, entry := range entries {
		dir := filepath.Join(s.root, entry.Name())
		kind, err := readSysfsString(filepath.Join(dir, "type"))
		if err != nil {
			continue
		}
		if kind == wanted {
			matches = append(matches, dir)
		}
	}

	return matches, nil
}
