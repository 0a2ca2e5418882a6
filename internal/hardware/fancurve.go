package hardware

import (
	"path/filepath"
	"sort"
	"strconv"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/power"
)

const hwmonRoot = "/sys/class/hwmon"

// CurvePoint maps a temperature in degrees Celsius to a fan duty cycle.
type CurvePoint struct {
	Temp int
	Duty power.Percent
}

// curves is the fixed table of named fan curves.
var curves = map[string][]CurvePoint{
	"standard": {
		{Temp: 0, Duty: 30},
		{Temp: 50, Duty: 35},
		{Temp: 65, Duty: 50},
		{Temp: 75, Duty: 75},
		{Temp: 85, Duty: 100},
	},
	"quiet": {
		{Temp: 0, Duty: 0},
		{Temp: 55, Duty: 25},
		{Temp: 70, Duty: 45},
		{Temp: 80, Duty: 70},
		{Temp: 90, Duty: 100},
	},
	"aggressive": {
		{Temp: 0, Duty: 40},
		{Temp: 45, Duty: 55},
		{Temp: 60, Duty: 80},
		{Temp: 70, Duty: 100},
	},
}

// hwmonFanCurves applies a named curve to every hwmon fan with a manual
// pwm control, using the sensor's current temperature to pick the duty.
type hwmonFanCurves struct {
	root string
}

// NewFanCurves returns the hwmon-backed fan-curve driver.
func NewFanCurves() FanCurves {
	return &hwmonFanCurves{root: hwmonRoot}
}

func (f *hwmonFanCurves) Names() []string {
	return CurveNames()
}

func (f *hwmonFanCurves) Apply(name string) error {
	curve, ok := curves[name]
	if !ok {
		return errors.WithData(ErrUnknownCurve, name)
	}

	monitors, err := filepath.Glob(filepath.Join(f.root, "hwmon*"))
	if err != nil {
		return errors.Wrap(ErrSysfsRead, err)
	}

	applied := 0
	for _, monitor := range monitors {
		if err := f.applyToMonitor(monitor, curve); err != nil {
			return err
		}
		applied++
	}

	logger.Info().
		Str("curve", name).
		Int("monitors", applied).
		Msg("fan curve applied")

	return nil
}

func (f *hwmonFanCurves) applyToMonitor(monitor string, curve []CurvePoint) error {
	pwms, err := filepath.Glob(filepath.Join(monitor, "pwm[0-9]"))
	if err != nil {
		return errors.Wrap(ErrSysfsRead, err)
	}
	if len(pwms) == 0 {
		return nil
	}

	// temp1_input is in millidegrees
	temp, err := readSysfsInt(filepath.Join(monitor, "temp1_input"))
	if err != nil {
		return nil
	}
	duty := DutyFor(curve, temp/1000)

	for _, pwm := range pwms {
		if err := writeSysfs(pwm+"_enable", "1"); err != nil {
			return err
		}
		raw := int(duty) * 255 / 100
		if err := writeSysfs(pwm, strconv.Itoa(raw)); err != nil {
			return err
		}
	}

	return nil
}

// DutyFor interpolates the duty cycle for a temperature along a curve.
func DutyFor(curve []CurvePoint, temp int) power.Percent {
	if len(curve) == 0 {
		return 0
	}
	if temp <= curve[0].Temp {
		return curve[0].Duty
	}

	for i := 1; i < len(curve); i++ {
		if temp >= curve[i].Temp {
			continue
		}
		prev, next := curve[i-1], curve[i]
		span := next.Temp - prev.Temp
		if span == 0 {
			return next.Duty
		}
		scaled := int(next.Duty-prev.Duty) * (temp - prev.Temp) / span

		return prev.Duty + power.Percent(scaled)
	}

	return curve[len(curve)-1].Duty
}

// CurveNames returns the names of all known fan curves in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
