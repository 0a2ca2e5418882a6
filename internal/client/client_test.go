package client

import (
	"testing"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorRecoversCode(t *testing.T) {
	busErr := dbus.NewError(
		power.BusErrorPrefix+"invalid_profile",
		[]interface{}{"invalid_profile: turbo"},
	)

	err := domainError(*busErr)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, power.ErrInvalidProfile))
	assert.Equal(t, "invalid_profile: turbo", err.Error())
}

func TestDomainErrorWrapsForeignErrors(t *testing.T) {
	busErr := dbus.NewError(
		"org.freedesktop.DBus.Error.ServiceUnknown",
		[]interface{}{"the name org.powerctl.PowerDaemon was not provided"},
	)

	err := domainError(*busErr)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrCall))
}

func TestDomainErrorNil(t *testing.T) {
	assert.NoError(t, domainError(nil))
}
