package power

import "codeberg.org/mutker/powerctl/internal/errors"

// Vendor identifies a graphics mode.
type Vendor string

const (
	VendorIntel  Vendor = "intel"
	VendorNvidia Vendor = "nvidia"
)

// ParseVendor resolves a graphics vendor identifier.
func ParseVendor(s string) (Vendor, error) {
	switch Vendor(s) {
	case VendorIntel, VendorNvidia:
		return Vendor(s), nil
	default:
		return "", errors.WithData(ErrUnsupportedVendor, s)
	}
}

// Controller is the operation set a power-management control surface
// provides. Two implementations exist: the daemon, which owns the policy
// state and drives real hardware, and the client, which forwards every
// call over DBus to a running daemon. A process only ever holds one of
// the two.
type Controller interface {
	// SetProfile activates the named profile and records it as the
	// last active profile.
	SetProfile(profile Profile) error
	// GetProfile returns the currently active profile.
	GetProfile() (Profile, error)
	// ListProfiles returns all profiles in fixed taxonomy order.
	ListProfiles() ([]Profile, error)

	// SetFanCurve selects a named fan curve.
	SetFanCurve(name string) error

	// GetGraphics returns the active graphics vendor.
	GetGraphics() (Vendor, error)
	// SetGraphics switches the graphics mode. Takes effect on reboot.
	SetGraphics(vendor Vendor) error
	// GetGraphicsPower reports whether the discrete GPU is powered.
	GetGraphicsPower() (bool, error)
	// SetGraphicsPower forces the discrete GPU on or off.
	SetGraphicsPower(on bool) error
	// AutoGraphicsPower returns the discrete GPU to runtime power
	// management.
	AutoGraphicsPower() error
	// GetSwitchable reports whether the machine has switchable graphics.
	GetSwitchable() (bool, error)
}
