// Package config owns the persisted power-policy document: which profiles
// are active by default, the battery thresholds that drive automatic
// switching, and the hardware tuning each profile implies. The daemon is
// the only writer; clients see projections of it over DBus.
package config

import (
	"codeberg.org/mutker/powerctl/internal/power"
)

const (
	// DefaultDir is the well-known parent directory of the config file.
	DefaultDir = "/etc/powerctl"
	// DefaultPath is the well-known location of the config file.
	DefaultPath = "/etc/powerctl/config.toml"
)

// Defaults selects the profile for each power source and records the last
// profile that was activated so it can be restored after a restart.
type Defaults struct {
	Battery      power.Profile
	AC           power.Profile
	LastProfile  power.Profile
	Experimental bool
}

// DefaultDefaults returns the compiled-in profile defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Battery:      power.Balanced,
		AC:           power.Performance,
		LastProfile:  power.Balanced,
		Experimental: false,
	}
}

// Profiles maps every member of the profile taxonomy to its tuning.
// Holding one struct field per profile keeps the mapping total: a config
// can never carry fewer or extra entries.
type Profiles struct {
	Battery     power.Tuning
	Balanced    power.Tuning
	Performance power.Tuning
}

// DefaultProfiles returns the compiled-in tuning for all profiles.
func DefaultProfiles() Profiles {
	return Profiles{
		Battery:     power.DefaultTuning(power.Battery),
		Balanced:    power.DefaultTuning(power.Balanced),
		Performance: power.DefaultTuning(power.Performance),
	}
}

// Config is the root persisted policy document.
type Config struct {
	Defaults   Defaults
	Thresholds power.Thresholds
	Profiles   Profiles
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Defaults:   DefaultDefaults(),
		Thresholds: power.DefaultThresholds(),
		Profiles:   DefaultProfiles(),
	}
}

// Tuning returns the tuning for the given profile.
func (c *Config) Tuning(p power.Profile) power.Tuning {
	switch p {
	case power.Battery:
		return c.Profiles.Battery
	case power.Performance:
		return c.Profiles.Performance
	case power.Balanced:
		fallthrough
	default:
		return c.Profiles.Balanced
	}
}

// Policy returns the automatic-switching policy derived from the config.
func (c *Config) Policy() power.Policy {
	return power.Policy{
		Thresholds:     c.Thresholds,
		BatteryDefault: c.Defaults.Battery,
		ACDefault:      c.Defaults.AC,
	}
}

// Validate checks every invariant the document must hold.
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	for _, p := range power.Profiles() {
		if err := c.Tuning(p).Validate(); err != nil {
			return err
		}
	}

	return nil
}
