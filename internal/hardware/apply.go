package hardware

import (
	"context"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/power"
)

// TuningApplier translates a tuning descriptor into driver calls. Absent
// sub-descriptors are skipped entirely: "not present" means "leave that
// subsystem alone", never "set it to zero".
type TuningApplier struct {
	Backlights Backlights
	PStates    PStates
	Scripts    Scripts
}

// NewTuningApplier wires the applier to the real sysfs drivers.
func NewTuningApplier() *TuningApplier {
	return &TuningApplier{
		Backlights: NewBacklights(),
		PStates:    NewPStates(),
		Scripts:    NewScripts(),
	}
}

// Apply drives every subsystem the descriptor names. All subsystems are
// attempted even when an earlier one fails; the first failure is
// reported.
func (a *TuningApplier) Apply(ctx context.Context, tuning power.Tuning) error {
	var firstErr error

	if tuning.Backlight != nil {
		if err := a.Backlights.SetKeyboard(tuning.Backlight.Keyboard); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := a.Backlights.SetScreen(tuning.Backlight.Screen); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if tuning.PState != nil {
		if err := a.PStates.SetBounds(tuning.PState.Min, tuning.PState.Max, tuning.PState.Turbo); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if tuning.Script != "" {
		if err := a.Scripts.Run(ctx, tuning.Script); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return errors.Wrap(ErrApplyFailed, firstErr)
	}

	return nil
}
