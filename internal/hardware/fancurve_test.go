package hardware_test

import (
	"testing"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/hardware"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanCurveNames(t *testing.T) {
	names := hardware.CurveNames()
	assert.Equal(t, []string{"aggressive", "quiet", "standard"}, names)
}

func TestApplyUnknownCurve(t *testing.T) {
	fans := hardware.NewFanCurves()
	err := fans.Apply("turbofan")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, hardware.ErrUnknownCurve))
}

func TestDutyFor(t *testing.T) {
	curve := []hardware.CurvePoint{
		{Temp: 0, Duty: 30},
		{Temp: 50, Duty: 50},
		{Temp: 80, Duty: 100},
	}

	cases := []struct {
		temp int
		want power.Percent
	}{
		{-10, 30},
		{0, 30},
		{25, 40},
		{50, 50},
		{65, 75},
		{80, 100},
		{95, 100},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, hardware.DutyFor(curve, c.temp), "temp=%d", c.temp)
	}
}
