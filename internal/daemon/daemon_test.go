package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"codeberg.org/mutker/powerctl/internal/config"
	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	mu      sync.Mutex
	applied []power.Tuning
}

func (f *fakeApplier) Apply(_ context.Context, tuning power.Tuning) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, tuning)
	return nil
}

func (f *fakeApplier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

type fakeSupply struct {
	mu      sync.Mutex
	percent power.Percent
	onAC    bool
}

func (f *fakeSupply) BatteryPercent() (power.Percent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.percent, nil
}

func (f *fakeSupply) OnAC() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.onAC, nil
}

func (f *fakeSupply) set(percent power.Percent, onAC bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.percent = percent
	f.onAC = onAC
}

type fakeFans struct {
	applied []string
}

func (f *fakeFans) Apply(name string) error {
	if name != "standard" && name != "quiet" && name != "aggressive" {
		return errors.New("unknown_curve")
	}
	f.applied = append(f.applied, name)
	return nil
}

func (f *fakeFans) Names() []string {
	return []string{"aggressive", "quiet", "standard"}
}

type fakeGraphics struct {
	vendor  power.Vendor
	powered bool
}

func (f *fakeGraphics) Vendor() (power.Vendor, error)  { return f.vendor, nil }
func (f *fakeGraphics) SetVendor(v power.Vendor) error { f.vendor = v; return nil }
func (f *fakeGraphics) Power() (bool, error)           { return f.powered, nil }
func (f *fakeGraphics) SetPower(on bool) error         { f.powered = on; return nil }
func (f *fakeGraphics) AutoPower() error               { return nil }
func (f *fakeGraphics) Switchable() bool               { return true }

func testDaemon(t *testing.T) (*Daemon, *config.Store, *fakeApplier, *fakeSupply) {
	t.Helper()

	store := config.NewStoreAt(filepath.Join(t.TempDir(), "config.toml"))
	applier := &fakeApplier{}
	supply := &fakeSupply{percent: 100, onAC: true}
	d := New(Options{
		Store:     store,
		Applier:   applier,
		Graphics:  &fakeGraphics{vendor: power.VendorIntel},
		FanCurves: &fakeFans{},
		Supply:    supply,
	})

	return d, store, applier, supply
}

func TestSetProfilePersistsLastProfile(t *testing.T) {
	d, store, applier, _ := testDaemon(t)

	require.NoError(t, d.SetProfile(power.Performance))

	got, err := d.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, power.Performance, got)

	// A fresh load must observe the persisted last_profile.
	reloaded := store.Load()
	assert.Equal(t, power.Performance, reloaded.Defaults.LastProfile)

	require.Equal(t, 1, applier.count())
	assert.Equal(t, power.DefaultTuning(power.Performance), applier.applied[0])
}

func TestSetProfileRejectsInvalid(t *testing.T) {
	d, _, applier, _ := testDaemon(t)

	err := d.SetProfile(power.Profile(42))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, power.ErrInvalidProfile))

	got, err := d.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, power.Balanced, got, "a rejected set must not change state")
	assert.Zero(t, applier.count())
}

func TestSetProfileIdempotent(t *testing.T) {
	d, _, applier, _ := testDaemon(t)

	require.NoError(t, d.SetProfile(power.Battery))
	require.NoError(t, d.SetProfile(power.Battery))

	got, err := d.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, power.Battery, got)
	assert.Equal(t, 2, applier.count())
}

func TestListProfiles(t *testing.T) {
	d, _, _, _ := testDaemon(t)

	profiles, err := d.ListProfiles()
	require.NoError(t, err)
	assert.Equal(t, []power.Profile{power.Battery, power.Balanced, power.Performance}, profiles)
}

func TestConcurrentSetProfile(t *testing.T) {
	d, store, _, _ := testDaemon(t)

	var wg sync.WaitGroup
	profiles := []power.Profile{power.Battery, power.Balanced, power.Performance}
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(p power.Profile) {
			defer wg.Done()
			assert.NoError(t, d.SetProfile(p))
		}(profiles[i%len(profiles)])

		// A concurrent reader must never observe a torn value.
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := d.GetProfile()
			assert.NoError(t, err)
			assert.True(t, got.Valid(), "observed profile %d is outside the taxonomy", got)
		}()
	}
	wg.Wait()

	// Whatever write completed last, memory and disk must agree.
	final, err := d.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, final, store.Load().Defaults.LastProfile)
}

func TestAutomaticSwitchHysteresis(t *testing.T) {
	d, _, _, supply := testDaemon(t)
	ctx := context.Background()

	// Critical charge on battery forces the power-saving profile.
	supply.set(10, false)
	d.poll(ctx)
	got, _ := d.GetProfile()
	assert.Equal(t, power.Battery, got)

	// Inside the hysteresis band the profile sticks.
	supply.set(40, false)
	d.poll(ctx)
	got, _ = d.GetProfile()
	assert.Equal(t, power.Battery, got)

	// Above the band it reverts to the battery default.
	supply.set(55, false)
	d.poll(ctx)
	got, _ = d.GetProfile()
	assert.Equal(t, power.Balanced, got)

	// Plugging in switches to the AC default.
	supply.set(55, true)
	d.poll(ctx)
	got, _ = d.GetProfile()
	assert.Equal(t, power.Performance, got)
}

func TestPollWithoutBatteryKeepsProfile(t *testing.T) {
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "config.toml"))
	d := New(Options{
		Store:     store,
		Applier:   &fakeApplier{},
		Graphics:  &fakeGraphics{},
		FanCurves: &fakeFans{},
		Supply:    brokenSupply{},
	})

	d.poll(context.Background())
	got, err := d.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, power.Balanced, got)
}

type brokenSupply struct{}

func (brokenSupply) BatteryPercent() (power.Percent, error) {
	return 0, errors.New(errors.ErrResourceNotFound)
}

func (brokenSupply) OnAC() (bool, error) {
	return false, errors.New(errors.ErrResourceNotFound)
}

func TestExperimentalFlagEnablesConfig(t *testing.T) {
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "config.toml"))
	d := New(Options{
		Store:        store,
		Applier:      &fakeApplier{},
		Graphics:     &fakeGraphics{},
		FanCurves:    &fakeFans{},
		Supply:       &fakeSupply{},
		Experimental: true,
	})

	d.mu.Lock()
	experimental := d.cfg.Defaults.Experimental
	d.mu.Unlock()
	assert.True(t, experimental)
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	store := config.NewStoreAt(path)
	d := New(Options{
		Store:     store,
		Applier:   &fakeApplier{},
		Graphics:  &fakeGraphics{},
		FanCurves: &fakeFans{},
		Supply:    &fakeSupply{},
	})

	// Make the config path unwritable by replacing it with a directory.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(path, 0o755))

	err := d.SetProfile(power.Performance)
	require.Error(t, err, "persist failure must be surfaced")

	got, gerr := d.GetProfile()
	require.NoError(t, gerr)
	assert.Equal(t, power.Performance, got, "in-memory state is not rolled back")
}
