package telemetry

import (
	"context"
	"time"

	"codeberg.org/mutker/powerctl/internal/power"
)

// Collector records profile transitions for later inspection.
type Collector interface {
	Record(ctx context.Context, transition *Transition) error
	Close() error
}

// Source identifies what triggered a profile transition.
type Source string

const (
	// SourceManual marks a transition requested by a client.
	SourceManual Source = "manual"
	// SourceAutomatic marks a transition driven by the battery monitor.
	SourceAutomatic Source = "automatic"
	// SourceStartup marks the profile restored when the daemon starts.
	SourceStartup Source = "startup"
)

// Transition is one profile change together with the power conditions
// that accompanied it.
type Transition struct {
	Timestamp      time.Time
	Profile        power.Profile
	BatteryPercent power.Percent
	OnAC           bool
	Source         Source
}
