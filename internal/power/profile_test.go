package power_test

import (
	"testing"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRoundTrip(t *testing.T) {
	for _, p := range power.Profiles() {
		parsed, err := power.ParseProfile(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed, "expected %q to parse back to the same profile", p.String())
	}
}

func TestParseProfileRejectsUnknown(t *testing.T) {
	invalid := []string{
		"",
		"Battery",
		"BALANCED",
		" balanced",
		"balanced ",
		"performance\n",
		"powersave",
		"high-performance",
	}

	for _, s := range invalid {
		_, err := power.ParseProfile(s)
		require.Error(t, err, "expected %q to be rejected", s)
		assert.True(t, errors.HasCode(err, power.ErrInvalidProfile))
	}
}

func TestProfilesOrder(t *testing.T) {
	profiles := power.Profiles()
	require.Len(t, profiles, 3)
	assert.Equal(t, power.Battery, profiles[0])
	assert.Equal(t, power.Balanced, profiles[1])
	assert.Equal(t, power.Performance, profiles[2])
}

func TestParseVendor(t *testing.T) {
	for _, s := range []string{"intel", "nvidia"} {
		v, err := power.ParseVendor(s)
		require.NoError(t, err)
		assert.Equal(t, power.Vendor(s), v)
	}

	_, err := power.ParseVendor("amd")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, power.ErrUnsupportedVendor))
}
