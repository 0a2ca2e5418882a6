package power

import (
	"codeberg.org/mutker/powerctl/internal/errors"
)

// Profile is one of the named power-policy states.
type Profile uint8

const (
	// Battery is the power-saving profile.
	Battery Profile = iota
	// Balanced is the default profile while on battery power.
	Balanced
	// Performance is the default profile while on AC power.
	Performance
)

// profileIDs is the canonical wire identifier for each profile. The
// mapping is explicit rather than derived so the on-disk and DBus
// identifiers can never drift from the enum.
var profileIDs = map[Profile]string{
	Battery:     "battery",
	Balanced:    "balanced",
	Performance: "performance",
}

var profilesByID = map[string]Profile{
	"battery":     Battery,
	"balanced":    Balanced,
	"performance": Performance,
}

// String returns the canonical identifier for the profile.
func (p Profile) String() string {
	return profileIDs[p]
}

// Valid reports whether p is a member of the taxonomy.
func (p Profile) Valid() bool {
	_, ok := profileIDs[p]
	return ok
}

// ParseProfile resolves a canonical identifier to its profile. Matching is
// exact: no case folding, no trimming.
func ParseProfile(s string) (Profile, error) {
	p, ok := profilesByID[s]
	if !ok {
		return Battery, errors.WithData(ErrInvalidProfile, s)
	}

	return p, nil
}

// Profiles returns all profiles in fixed taxonomy order.
func Profiles() []Profile {
	return []Profile{Battery, Balanced, Performance}
}
