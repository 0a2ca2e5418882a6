package hardware

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/power"
)

const (
	backlightRoot = "/sys/class/backlight"
	ledsRoot      = "/sys/class/leds"
)

// sysfsBacklights drives every display backlight under
// /sys/class/backlight and every keyboard backlight LED under
// /sys/class/leds. Percentages are scaled against each device's
// max_brightness.
type sysfsBacklights struct {
	backlightRoot string
	ledsRoot      string
}

// NewBacklights returns the sysfs-backed backlight driver.
func NewBacklights() Backlights {
	return &sysfsBacklights{
		backlightRoot: backlightRoot,
		ledsRoot:      ledsRoot,
	}
}

func (b *sysfsBacklights) SetScreen(level power.Percent) error {
	devices, err := filepath.Glob(filepath.Join(b.backlightRoot, "*"))
	if err != nil {
		return errors.Wrap(ErrSysfsRead, err)
	}
	if len(devices) == 0 {
		logger.Debug().Msg("no display backlight devices found")
		return nil
	}

	for _, device := range devices {
		if err := setBrightness(device, level); err != nil {
			return err
		}
	}

	return nil
}

func (b *sysfsBacklights) SetKeyboard(level power.Percent) error {
	devices, err := filepath.Glob(filepath.Join(b.ledsRoot, "*kbd_backlight*"))
	if err != nil {
		return errors.Wrap(ErrSysfsRead, err)
	}
	if len(devices) == 0 {
		logger.Debug().Msg("no keyboard backlight devices found")
		return nil
	}

	for _, device := range devices {
		if err := setBrightness(device, level); err != nil {
			return err
		}
	}

	return nil
}

func setBrightness(device string, level power.Percent) error {
	max, err := readSysfsInt(filepath.Join(device, "max_brightness"))
	if err != nil {
		return err
	}

	raw := max * int(level) / 100
	if err := writeSysfs(filepath.Join(device, "brightness"), strconv.Itoa(raw)); err != nil {
		return err
	}
	logger.Debug().
		Str("device", filepath.Base(device)).
		Int("brightness", raw).
		Msg("backlight set")

	return nil
}

func readSysfsInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrap(ErrSysfsRead, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrap(ErrSysfsRead, err)
	}

	return value, nil
}

func readSysfsString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(ErrSysfsRead, err)
	}

	return strings.TrimSpace(string(data)), nil
}

func writeSysfs(path, value string) error {
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return errors.Wrap(ErrSysfsWrite, err)
	}

	return nil
}
