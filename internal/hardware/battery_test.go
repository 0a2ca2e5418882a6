package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/hardware"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSupply(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content+"\n"), 0o644))
	}
}

func TestBatteryPercent(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "42"})
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "0"})

	supply := hardware.NewPowerSupplyAt(root)

	percent, err := supply.BatteryPercent()
	require.NoError(t, err)
	assert.Equal(t, power.Percent(42), percent)

	onAC, err := supply.OnAC()
	require.NoError(t, err)
	assert.False(t, onAC)
}

func TestOnACWhenAdapterOnline(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})

	supply := hardware.NewPowerSupplyAt(root)
	onAC, err := supply.OnAC()
	require.NoError(t, err)
	assert.True(t, onAC)
}

func TestNoBattery(t *testing.T) {
	root := t.TempDir()

	supply := hardware.NewPowerSupplyAt(root)
	_, err := supply.BatteryPercent()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, hardware.ErrNoBattery))

	// A machine without an AC adapter device is treated as mains powered.
	onAC, err := supply.OnAC()
	require.NoError(t, err)
	assert.True(t, onAC)
}
