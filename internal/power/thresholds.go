package power

import "codeberg.org/mutker/powerctl/internal/errors"

// Thresholds holds the battery percentages that drive automatic profile
// switching. Below Critical the power-saving profile is forced; the profile
// only reverts once the charge climbs back above Normal.
//
// The on-disk key for Critical is spelled "crtical". The misspelling
// shipped in the first release and existing config files depend on it.
type Thresholds struct {
	Critical Percent
	Normal   Percent
}

// DefaultThresholds returns the compiled-in switching thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 25, Normal: 50}
}

// NewThresholds builds a validated threshold pair.
func NewThresholds(critical, normal Percent) (Thresholds, error) {
	t := Thresholds{Critical: critical, Normal: normal}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}

	return t, nil
}

// Validate checks the threshold invariants.
func (t Thresholds) Validate() error {
	if t.Critical < 0 || t.Normal > 100 {
		return errors.WithData(ErrInvalidThresholds, "thresholds must be within 0-100")
	}
	if t.Critical >= t.Normal {
		return errors.WithData(ErrInvalidThresholds, "critical threshold must be below normal")
	}

	return nil
}

// Policy combines thresholds with the configured default profiles for each
// power source.
type Policy struct {
	Thresholds     Thresholds
	BatteryDefault Profile
	ACDefault      Profile
}

// Resolve picks the profile the daemon should be running given the current
// battery charge, power source and previously active profile. The band
// between Critical and Normal is a hysteresis band: once the charge has
// dropped below Critical the power-saving profile sticks until the charge
// climbs past Normal, so the profile does not oscillate at the boundary.
func (p Policy) Resolve(percent Percent, onAC bool, last Profile) Profile {
	if !onAC {
		if percent <= p.Thresholds.Critical {
			return Battery
		}
		if last == Battery && percent < p.Thresholds.Normal {
			return Battery
		}

		return p.BatteryDefault
	}

	return p.ACDefault
}
