package power

import "codeberg.org/mutker/powerctl/internal/errors"

// Percent is a 0-100 hardware setting value.
type Percent int

// Backlight holds keyboard and screen brightness levels.
type Backlight struct {
	Keyboard Percent `toml:"keyboard"`
	Screen   Percent `toml:"screen"`
}

// PState bounds the CPU performance-state range.
type PState struct {
	Min   Percent `toml:"min"`
	Max   Percent `toml:"max"`
	Turbo bool    `toml:"turbo"`
}

// Validate checks the performance-state bounds.
func (p PState) Validate() error {
	if p.Min < 0 || p.Max > 100 {
		return errors.WithData(ErrInvalidTuning, "pstate bounds must be within 0-100")
	}
	if p.Min > p.Max {
		return errors.WithData(ErrInvalidTuning, "pstate min must not exceed max")
	}

	return nil
}

// Tuning is the per-profile hardware directive set. A nil sub-field means
// the corresponding subsystem is left untouched, which is distinct from
// setting it to zero.
type Tuning struct {
	Backlight *Backlight
	PState    *PState
	Script    string
}

// Validate checks every present sub-field.
func (t Tuning) Validate() error {
	if t.Backlight != nil {
		if t.Backlight.Keyboard < 0 || t.Backlight.Keyboard > 100 ||
			t.Backlight.Screen < 0 || t.Backlight.Screen > 100 {
			return errors.WithData(ErrInvalidTuning, "backlight levels must be within 0-100")
		}
	}
	if t.PState != nil {
		if err := t.PState.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// DefaultTuning returns the compiled-in tuning for a profile.
func DefaultTuning(p Profile) Tuning {
	switch p {
	case Battery:
		return Tuning{
			Backlight: &Backlight{Keyboard: 0, Screen: 10},
			PState:    &PState{Min: 0, Max: 50, Turbo: false},
		}
	case Performance:
		return Tuning{
			Backlight: &Backlight{Keyboard: 100, Screen: 100},
			PState:    &PState{Min: 50, Max: 100, Turbo: true},
		}
	case Balanced:
		fallthrough
	default:
		return Tuning{
			Backlight: &Backlight{Keyboard: 50, Screen: 40},
			PState:    &PState{Min: 0, Max: 100, Turbo: true},
		}
	}
}
