package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/mutker/powerctl/internal/config"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *config.Store {
	t.Helper()
	return config.NewStoreAt(filepath.Join(t.TempDir(), "config.toml"))
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	store := tempStore(t)

	cfg := store.Load()
	require.NotNil(t, cfg)
	assert.Equal(t, power.Balanced, cfg.Defaults.Battery)
	assert.Equal(t, power.Performance, cfg.Defaults.AC)
	assert.Equal(t, power.Balanced, cfg.Defaults.LastProfile)
	assert.False(t, cfg.Defaults.Experimental)
	assert.Equal(t, power.Percent(25), cfg.Thresholds.Critical)
	assert.Equal(t, power.Percent(50), cfg.Thresholds.Normal)

	// The first load persists the defaults; a second load must observe
	// the same values from disk.
	_, err := os.Stat(store.Path())
	require.NoError(t, err, "expected the default config to be written")

	again := store.Load()
	assert.Equal(t, cfg, again)
}

func TestLoadKeepsUnparsableFile(t *testing.T) {
	store := tempStore(t)
	garbage := []byte("this is not a valid TOML file\n{{{")
	require.NoError(t, os.WriteFile(store.Path(), garbage, 0o644))

	cfg := store.Load()
	assert.Equal(t, config.Default(), cfg)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, garbage, data, "an unparsable file must be left byte-for-byte unchanged")
}

func TestLoadRejectsUnknownProfile(t *testing.T) {
	store := tempStore(t)
	doc := []byte("[defaults]\nbattery = 'turbo'\n")
	require.NoError(t, os.WriteFile(store.Path(), doc, 0o644))

	cfg := store.Load()
	assert.Equal(t, config.Default(), cfg)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, doc, data)
}

func TestSerializeParseRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.Battery = power.Battery
	cfg.Defaults.AC = power.Balanced
	cfg.Defaults.LastProfile = power.Performance
	cfg.Defaults.Experimental = true
	cfg.Thresholds = power.Thresholds{Critical: 10, Normal: 90}
	cfg.Profiles.Battery.Script = "/usr/local/bin/on-battery.sh"
	cfg.Profiles.Balanced.Backlight = &power.Backlight{Keyboard: 30, Screen: 60}
	cfg.Profiles.Performance.PState = &power.PState{Min: 70, Max: 100, Turbo: true}

	parsed, err := config.Parse(config.Serialize(cfg))
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestSerializeSectionOrderAndSpelling(t *testing.T) {
	out := string(config.Serialize(config.Default()))

	// Historical key spellings must be preserved for existing files.
	assert.Contains(t, out, "crtical = 25")
	assert.NotContains(t, out, "critical =")

	defaults := strings.Index(out, "[defaults]")
	threshold := strings.Index(out, "[threshold]")
	battery := strings.Index(out, "[profiles.battery]")
	balanced := strings.Index(out, "[profiles.balanced]")
	performance := strings.Index(out, "[profiles.performance]")
	require.NotEqual(t, -1, defaults)
	require.NotEqual(t, -1, threshold)
	require.NotEqual(t, -1, battery)
	require.NotEqual(t, -1, balanced)
	require.NotEqual(t, -1, performance)
	assert.True(t, defaults < threshold && threshold < battery &&
		battery < balanced && balanced < performance,
		"sections must appear in a fixed order")

	// Experimental is written commented out until enabled.
	assert.Contains(t, out, "# experimental = true")
	assert.Contains(t, out, "# script = '$PATH'")
}

func TestSerializeExperimentalUncommented(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.Experimental = true

	out := string(config.Serialize(cfg))
	assert.Contains(t, out, "\nexperimental = true\n")
}

func TestParseFillsMissingFields(t *testing.T) {
	doc := []byte(`
[defaults]
ac = 'balanced'

[threshold]
crtical = 15
`)
	cfg, err := config.Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, power.Balanced, cfg.Defaults.AC)
	assert.Equal(t, power.Balanced, cfg.Defaults.Battery, "missing fields use compiled-in defaults")
	assert.Equal(t, power.Percent(15), cfg.Thresholds.Critical)
	assert.Equal(t, power.Percent(50), cfg.Thresholds.Normal)
	assert.Equal(t, power.DefaultTuning(power.Performance), cfg.Profiles.Performance)
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	doc := []byte(`
[defaults]
battery = 'battery'
color = 'green'

[threshold]
critical = 99

[future_section]
answer = 42
`)
	cfg, err := config.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, power.Battery, cfg.Defaults.Battery)
	assert.Equal(t, power.Percent(25), cfg.Thresholds.Critical,
		"the correctly spelled key is not recognized")
}

func TestParseRejectsInvalidThresholds(t *testing.T) {
	doc := []byte(`
[threshold]
crtical = 80
normal = 40
`)
	_, err := config.Parse(doc)
	require.Error(t, err)
}

func TestParseAcceptsHistoricalScriptKey(t *testing.T) {
	doc := []byte(`
[profiles.balanced]
battery = '/opt/hooks/balanced.sh'
`)
	cfg, err := config.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "/opt/hooks/balanced.sh", cfg.Profiles.Balanced.Script)
}

func TestPersistReportsFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config.toml"), 0o755))

	store := config.NewStoreAt(filepath.Join(dir, "config.toml"))
	err := store.Persist(config.Default())
	require.Error(t, err)
}
