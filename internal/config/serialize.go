package config

import (
	"bytes"
	"fmt"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/pelletier/go-toml/v2"
)

// document mirrors the on-disk TOML shape. Every field is optional so a
// partially written or hand-edited file falls back to the compiled-in
// defaults field by field. Unknown keys are ignored for forward
// compatibility.
//
// Two keys carry historical spellings that existing files depend on:
// the critical threshold is stored as "crtical", and a profile's hook
// script is stored under the key "battery". Both must be read and
// written as-is.
type document struct {
	Defaults struct {
		Battery      *string `toml:"battery"`
		AC           *string `toml:"ac"`
		LastProfile  *string `toml:"last_profile"`
		Experimental *bool   `toml:"experimental"`
	} `toml:"defaults"`
	Threshold struct {
		Critical *power.Percent `toml:"crtical"`
		Normal   *power.Percent `toml:"normal"`
	} `toml:"threshold"`
	Profiles struct {
		Battery     tuningDocument `toml:"battery"`
		Balanced    tuningDocument `toml:"balanced"`
		Performance tuningDocument `toml:"performance"`
	} `toml:"profiles"`
}

type tuningDocument struct {
	Backlight *power.Backlight `toml:"backlight"`
	PState    *power.PState    `toml:"pstate"`
	Script    *string          `toml:"script"`
	Battery   *string          `toml:"battery"`
}

// Parse decodes a persisted document, filling absent fields from the
// compiled-in defaults.
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(ErrParse, err)
	}

	cfg := Default()

	if err := applyProfileField(&cfg.Defaults.Battery, doc.Defaults.Battery); err != nil {
		return nil, err
	}
	if err := applyProfileField(&cfg.Defaults.AC, doc.Defaults.AC); err != nil {
		return nil, err
	}
	if err := applyProfileField(&cfg.Defaults.LastProfile, doc.Defaults.LastProfile); err != nil {
		return nil, err
	}
	if doc.Defaults.Experimental != nil {
		cfg.Defaults.Experimental = *doc.Defaults.Experimental
	}

	if doc.Threshold.Critical != nil {
		cfg.Thresholds.Critical = *doc.Threshold.Critical
	}
	if doc.Threshold.Normal != nil {
		cfg.Thresholds.Normal = *doc.Threshold.Normal
	}

	cfg.Profiles.Battery = doc.Profiles.Battery.merge(cfg.Profiles.Battery)
	cfg.Profiles.Balanced = doc.Profiles.Balanced.merge(cfg.Profiles.Balanced)
	cfg.Profiles.Performance = doc.Profiles.Performance.merge(cfg.Profiles.Performance)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyProfileField(dst *power.Profile, src *string) error {
	if src == nil {
		return nil
	}

	p, err := power.ParseProfile(*src)
	if err != nil {
		return errors.Wrap(ErrParse, err)
	}
	*dst = p

	return nil
}

func (d tuningDocument) merge(defaults power.Tuning) power.Tuning {
	tuning := defaults
	if d.Backlight != nil {
		tuning.Backlight = d.Backlight
	}
	if d.PState != nil {
		tuning.PState = d.PState
	}
	// The historical key wins, matching the serializer below.
	if d.Battery != nil {
		tuning.Script = *d.Battery
	} else if d.Script != nil {
		tuning.Script = *d.Script
	}

	return tuning
}

// Serialize renders the config as an annotated TOML document with a
// stable section order: defaults, threshold, then one section per profile
// in taxonomy order.
func Serialize(cfg *Config) []byte {
	var out bytes.Buffer
	out.Grow(2048)

	out.WriteString("# This config is automatically generated by powerctl.\n\n")

	serializeDefaults(&out, cfg.Defaults)
	serializeThresholds(&out, cfg.Thresholds)
	for _, p := range power.Profiles() {
		fmt.Fprintf(&out, "[profiles.%s]\n", p)
		serializeTuning(&out, cfg.Tuning(p))
	}

	return out.Bytes()
}

func serializeDefaults(out *bytes.Buffer, defaults Defaults) {
	fmt.Fprintf(out, "[defaults]\n"+
		"# The default profile that will be set on disconnecting from AC.\n"+
		"battery = '%s'\n"+
		"# The default profile that will be set on connecting to AC.\n"+
		"ac = '%s'\n"+
		"# The last profile that was activated\n"+
		"last_profile = '%s'\n",
		defaults.Battery, defaults.AC, defaults.LastProfile)

	out.WriteString("# Uncomment to enable extra untested power-saving features\n")
	if defaults.Experimental {
		out.WriteString("experimental = true\n\n")
	} else {
		out.WriteString("# experimental = true\n\n")
	}
}

func serializeThresholds(out *bytes.Buffer, thresholds power.Thresholds) {
	fmt.Fprintf(out, "[threshold]\n"+
		"# Defines what percentage of battery is required to set the profile to 'battery'.\n"+
		"crtical = %d\n"+
		"# Defines what percentage of battery is required to revert the critical change.\n"+
		"normal = %d\n\n",
		thresholds.Critical, thresholds.Normal)
}

func serializeTuning(out *bytes.Buffer, tuning power.Tuning) {
	if tuning.Backlight != nil {
		fmt.Fprintf(out, "backlight = { keyboard = %d, screen = %d }\n",
			tuning.Backlight.Keyboard, tuning.Backlight.Screen)
	}
	if tuning.PState != nil {
		fmt.Fprintf(out, "pstate = { min = %d, max = %d, turbo = %t }\n",
			tuning.PState.Min, tuning.PState.Max, tuning.PState.Turbo)
	}
	if tuning.Script != "" {
		fmt.Fprintf(out, "battery = '%s'\n", tuning.Script)
	} else {
		out.WriteString("# script = '$PATH'\n")
	}
	out.WriteByte('\n')
}
