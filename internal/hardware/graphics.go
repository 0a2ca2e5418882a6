package hardware

import (
	"os"
	"path/filepath"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/power"
)

const (
	pciDevicesRoot = "/sys/bus/pci/devices"
	nvidiaModule   = "/sys/module/nvidia"
	modprobeConf   = "/etc/modprobe.d/powerctl-graphics.conf"

	vendorIntel  = "0x8086"
	vendorNvidia = "0x10de"

	// PCI class prefix for display controllers
	classDisplay = "0x03"
)

var blacklistConf = []byte(`# Automatically generated by powerctl
blacklist nouveau
blacklist nvidia
blacklist nvidia-drm
blacklist nvidia-modeset
alias nouveau off
alias nvidia off
`)

// pciGraphics implements switchable-graphics control for machines with
// both an integrated and a discrete GPU. The graphics mode is selected by
// writing (or removing) a modprobe blacklist that takes effect on the
// next boot; discrete GPU power is controlled through PCI runtime power
// management.
type pciGraphics struct {
	devicesRoot  string
	modulePath   string
	modprobePath string
}

// NewGraphics returns the PCI-backed graphics driver.
func NewGraphics() Graphics {
	return &pciGraphics{
		devicesRoot:  pciDevicesRoot,
		modulePath:   nvidiaModule,
		modprobePath: modprobeConf,
	}
}

func (g *pciGraphics) Switchable() bool {
	return g.displayDevice(vendorIntel) != "" && g.displayDevice(vendorNvidia) != ""
}

func (g *pciGraphics) Vendor() (power.Vendor, error) {
	if _, err := os.Stat(g.modprobePath); err == nil {
		return power.VendorIntel, nil
	}
	if g.displayDevice(vendorNvidia) != "" {
		return power.VendorNvidia, nil
	}

	return power.VendorIntel, nil
}

func (g *pciGraphics) SetVendor(vendor power.Vendor) error {
	if !g.Switchable() {
		return errors.New(errors.ErrUnsupported)
	}

	switch vendor {
	case power.VendorIntel:
		if err := os.WriteFile(g.modprobePath, blacklistConf, 0o644); err != nil {
			return errors.Wrap(ErrModprobeWrite, err)
		}
	case power.VendorNvidia:
		if err := os.Remove(g.modprobePath); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(ErrModprobeWrite, err)
		}
	default:
		return errors.WithData(power.ErrUnsupportedVendor, string(vendor))
	}

	logger.Info().Str("vendor", string(vendor)).Msg("graphics mode set; reboot required")

	return nil
}

func (g *pciGraphics) Power() (bool, error) {
	device := g.displayDevice(vendorNvidia)
	if device == "" {
		return false, errors.New(errors.ErrUnsupported)
	}

	status, err := readSysfsString(filepath.Join(device, "power", "runtime_status"))
	if err != nil {
		return false, err
	}

	return status != "suspended", nil
}

func (g *pciGraphics) SetPower(on bool) error {
	device := g.displayDevice(vendorNvidia)
	if device == "" {
		return errors.New(errors.ErrUnsupported)
	}

	if !on {
		// Cutting power while the driver holds the device wedges the bus.
		if _, err := os.Stat(g.modulePath); err == nil {
			return errors.New(errors.ErrResourceBusy).
				WithMessage("discrete graphics driver is loaded; unload it before powering off")
		}
	}

	control := "auto"
	if on {
		control = "on"
	}

	return writeSysfs(filepath.Join(device, "power", "control"), control)
}

func (g *pciGraphics) AutoPower() error {
	device := g.displayDevice(vendorNvidia)
	if device == "" {
		return errors.New(errors.ErrUnsupported)
	}

	return writeSysfs(filepath.Join(device, "power", "control"), "auto")
}

// displayDevice returns the sysfs path of the first display-class PCI
// device with the given vendor ID, or "".
func (g *pciGraphics) displayDevice(vendorID string) string {
	devices, err := filepath.Glob(filepath.Join(g.devicesRoot, "*"))
	if err != nil {
		return ""
	}

	for _, device := range devices {
		vendor, err := readSysfsString(filepath.Join(device, "vendor"))
		if err != nil || vendor != vendorID {
			continue
		}
		class, err := readSysfsString(filepath.Join(device, "class"))
		if err != nil {
			continue
		}
		if len(class) >= len(classDisplay) && class[:len(classDisplay)] == classDisplay {
			return device
		}
	}

	return ""
}
