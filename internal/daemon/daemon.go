// Package daemon implements the privileged control surface: it owns the
// persisted power policy, serves client requests over DBus and keeps the
// active profile in line with the battery state.
package daemon

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/powerctl/internal/config"
	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/hardware"
	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/power"
	"codeberg.org/mutker/powerctl/internal/telemetry"
)

// Applier drives the hardware a tuning descriptor names.
type Applier interface {
	Apply(ctx context.Context, tuning power.Tuning) error
}

// Options configures a daemon. Nil driver fields are filled with the
// real sysfs-backed implementations; tests substitute fakes.
type Options struct {
	Store        *config.Store
	Applier      Applier
	Graphics     hardware.Graphics
	FanCurves    hardware.FanCurves
	Supply       hardware.PowerSupply
	Collector    telemetry.Collector
	Experimental bool
}

// Daemon is the sole owner of the in-memory configuration aggregate. One
// mutex serializes every read-then-write of the aggregate; it is held
// for the mutation and persist only, never across hardware application,
// so a slow or failing driver cannot stall policy decisions.
type Daemon struct {
	mu  sync.Mutex
	cfg *config.Config

	store     *config.Store
	applier   Applier
	graphics  hardware.Graphics
	fans      hardware.FanCurves
	supply    hardware.PowerSupply
	collector telemetry.Collector

	experimental bool
}

var _ power.Controller = (*Daemon)(nil)

// New loads the persisted configuration and builds the control surface.
func New(opts Options) *Daemon {
	store := opts.Store
	if store == nil {
		store = config.NewStore()
	}
	d := &Daemon{
		cfg:          store.Load(),
		store:        store,
		applier:      opts.Applier,
		graphics:     opts.Graphics,
		fans:         opts.FanCurves,
		supply:       opts.Supply,
		collector:    opts.Collector,
		experimental: opts.Experimental,
	}
	if d.applier == nil {
		d.applier = hardware.NewTuningApplier()
	}
	if d.graphics == nil {
		d.graphics = hardware.NewGraphics()
	}
	if d.fans == nil {
		d.fans = hardware.NewFanCurves()
	}
	if d.supply == nil {
		d.supply = hardware.NewPowerSupply()
	}
	if opts.Experimental {
		d.cfg.Defaults.Experimental = true
	}

	return d
}

// SetProfile activates the named profile on behalf of a client.
func (d *Daemon) SetProfile(profile power.Profile) error {
	return d.activate(context.Background(), profile, telemetry.SourceManual)
}

// GetProfile returns the currently active profile.
func (d *Daemon) GetProfile() (power.Profile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.cfg.Defaults.LastProfile, nil
}

// ListProfiles returns the fixed profile taxonomy. The taxonomy is
// immutable, so no lock is taken.
func (d *Daemon) ListProfiles() ([]power.Profile, error) {
	return power.Profiles(), nil
}

// SetFanCurve applies a named fan curve.
func (d *Daemon) SetFanCurve(name string) error {
	return d.fans.Apply(name)
}

// GetGraphics returns the active graphics vendor.
func (d *Daemon) GetGraphics() (power.Vendor, error) {
	return d.graphics.Vendor()
}

// SetGraphics switches the graphics mode.
func (d *Daemon) SetGraphics(vendor power.Vendor) error {
	if _, err := power.ParseVendor(string(vendor)); err != nil {
		return err
	}

	return d.graphics.SetVendor(vendor)
}

// GetGraphicsPower reports whether the discrete GPU is powered.
func (d *Daemon) GetGraphicsPower() (bool, error) {
	return d.graphics.Power()
}

// SetGraphicsPower forces the discrete GPU on or off.
func (d *Daemon) SetGraphicsPower(on bool) error {
	return d.graphics.SetPower(on)
}

// AutoGraphicsPower returns the discrete GPU to runtime power management.
func (d *Daemon) AutoGraphicsPower() error {
	return d.graphics.AutoPower()
}

// GetSwitchable reports whether the machine has switchable graphics.
func (d *Daemon) GetSwitchable() (bool, error) {
	return d.graphics.Switchable(), nil
}

// activate records the profile as last active, persists the aggregate
// and then applies the hardware tuning. Policy state sticks even when
// persisting or applying fails: the error is reported, the next
// successful persist or apply reconciles.
func (d *Daemon) activate(ctx context.Context, profile power.Profile, source telemetry.Source) error {
	if !profile.Valid() {
		return errors.WithData(power.ErrInvalidProfile, int(profile))
	}

	d.mu.Lock()
	d.cfg.Defaults.LastProfile = profile
	tuning := d.cfg.Tuning(profile)
	persistErr := d.store.Persist(d.cfg)
	d.mu.Unlock()

	if persistErr != nil {
		logger.ErrorWithCode(errors.Wrap(ErrPersist, persistErr)).
			Msg("failed to persist config; in-memory state kept")
	}

	applyErr := d.applier.Apply(ctx, tuning)
	if applyErr != nil {
		logger.ErrorWithCode(errors.Wrap(ErrApplyTuning, applyErr)).
			Msgf("failed to apply tuning for profile %s", profile)
	}

	logger.Info().
		Str("profile", profile.String()).
		Str("source", string(source)).
		Msg("profile activated")

	d.record(ctx, profile, source)

	if persistErr != nil {
		return errors.Wrap(ErrPersist, persistErr)
	}

	return applyErr
}

// record stores a transition in the telemetry database, best-effort.
func (d *Daemon) record(ctx context.Context, profile power.Profile, source telemetry.Source) {
	if d.collector == nil {
		return
	}

	transition := &telemetry.Transition{
		Timestamp: time.Now(),
		Profile:   profile,
		Source:    source,
	}
	if percent, err := d.supply.BatteryPercent(); err == nil {
		transition.BatteryPercent = percent
	}
	if onAC, err := d.supply.OnAC(); err == nil {
		transition.OnAC = onAC
	}

	if err := d.collector.Record(ctx, transition); err != nil {
		logger.Warn().Err(err).Msg("failed to record profile transition")
	}
}
