package daemon

import (
	"context"
	"time"

	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/telemetry"
)

// Run restores the last active profile and then polls the battery at
// the given interval, switching profiles per the threshold policy. It
// returns when ctx is cancelled; an in-flight mutation and persist is
// allowed to complete first.
func (d *Daemon) Run(ctx context.Context, interval time.Duration) error {
	d.mu.Lock()
	last := d.cfg.Defaults.LastProfile
	d.mu.Unlock()

	if err := d.activate(ctx, last, telemetry.SourceStartup); err != nil {
		logger.Warn().Err(err).Msg("failed to restore last profile")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return nil
		case <-ticker.C:
			d.poll(ctx)
		}
	}
}

// poll reads the power supply and applies the automatic-switching
// policy. Machines without a battery are left on the current profile.
func (d *Daemon) poll(ctx context.Context) {
	percent, err := d.supply.BatteryPercent()
	if err != nil {
		logger.Debug().Err(err).Msg("no battery reading; skipping automatic switch")
		return
	}
	onAC, err := d.supply.OnAC()
	if err != nil {
		logger.Debug().Err(err).Msg("no AC reading; skipping automatic switch")
		return
	}

	d.mu.Lock()
	policy := d.cfg.Policy()
	last := d.cfg.Defaults.LastProfile
	d.mu.Unlock()

	next := policy.Resolve(percent, onAC, last)
	if next == last {
		return
	}

	logger.Info().
		Str("from", last.String()).
		Str("to", next.String()).
		Int("battery_percent", int(percent)).
		Bool("on_ac", onAC).
		Msg("automatic profile switch")

	if err := d.activate(ctx, next, telemetry.SourceAutomatic); err != nil {
		logger.Warn().Err(err).Msg("automatic profile switch failed")
	}
}
