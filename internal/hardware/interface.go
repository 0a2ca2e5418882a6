package hardware

import (
	"context"

	"codeberg.org/mutker/powerctl/internal/power"
)

// Backlights adjusts display and keyboard brightness.
type Backlights interface {
	SetScreen(level power.Percent) error
	SetKeyboard(level power.Percent) error
}

// PStates bounds the CPU performance-state range.
type PStates interface {
	SetBounds(min, max power.Percent, turbo bool) error
}

// Graphics controls the graphics mux and discrete GPU power.
type Graphics interface {
	Vendor() (power.Vendor, error)
	SetVendor(vendor power.Vendor) error
	Power() (bool, error)
	SetPower(on bool) error
	AutoPower() error
	Switchable() bool
}

// FanCurves applies a named fan curve to the system fans.
type FanCurves interface {
	Apply(name string) error
	Names() []string
}

// PowerSupply reports the battery charge and power source.
type PowerSupply interface {
	BatteryPercent() (power.Percent, error)
	OnAC() (bool, error)
}

// Scripts runs per-profile hook scripts.
type Scripts interface {
	Run(ctx context.Context, path string) error
}
