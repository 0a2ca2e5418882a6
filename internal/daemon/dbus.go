package daemon

import (
	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/godbus/dbus/v5"
)

// Connect exports the daemon on the system bus and claims the service
// name. A failure to become the primary owner means another daemon is
// already running.
func (d *Daemon) Connect() (*dbus.Conn, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, errors.Wrap(ErrBusConnect, err)
	}

	if err := d.export(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

func (d *Daemon) export(conn *dbus.Conn) error {
	if err := conn.Export(&busObject{d}, power.BusPath, power.BusInterface); err != nil {
		return errors.Wrap(ErrBusExport, err)
	}

	reply, err := conn.RequestName(power.BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return errors.Wrap(ErrBusExport, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New(ErrNameTaken).
			WithMessage("another power daemon owns " + power.BusName)
	}

	logger.Info().Str("name", power.BusName).Msg("registered on system bus")

	return nil
}

// busObject adapts the controller to DBus method signatures: profiles
// and vendors travel as their canonical string identifiers, and domain
// errors travel as named DBus errors carrying the error code.
type busObject struct {
	d *Daemon
}

func (o *busObject) SetProfile(name string) *dbus.Error {
	profile, err := power.ParseProfile(name)
	if err != nil {
		return busError(err)
	}

	return busError(o.d.SetProfile(profile))
}

func (o *busObject) GetProfile() (string, *dbus.Error) {
	profile, err := o.d.GetProfile()
	if err != nil {
		return "", busError(err)
	}

	return profile.String(), nil
}

func (o *busObject) ListProfiles() ([]string, *dbus.Error) {
	profiles, err := o.d.ListProfiles()
	if err != nil {
		return nil, busError(err)
	}

	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.String())
	}

	return names, nil
}

func (o *busObject) SetFanCurve(name string) *dbus.Error {
	return busError(o.d.SetFanCurve(name))
}

func (o *busObject) GetGraphics() (string, *dbus.Error) {
	vendor, err := o.d.GetGraphics()
	if err != nil {
		return "", busError(err)
	}

	return string(vendor), nil
}

func (o *busObject) SetGraphics(vendor string) *dbus.Error {
	parsed, err := power.ParseVendor(vendor)
	if err != nil {
		return busError(err)
	}

	return busError(o.d.SetGraphics(parsed))
}

func (o *busObject) GetGraphicsPower() (bool, *dbus.Error) {
	on, err := o.d.GetGraphicsPower()
	if err != nil {
		return false, busError(err)
	}

	return on, nil
}

func (o *busObject) SetGraphicsPower(on bool) *dbus.Error {
	return busError(o.d.SetGraphicsPower(on))
}

func (o *busObject) AutoGraphicsPower() *dbus.Error {
	return busError(o.d.AutoGraphicsPower())
}

func (o *busObject) GetSwitchable() (bool, *dbus.Error) {
	switchable, err := o.d.GetSwitchable()
	if err != nil {
		return false, busError(err)
	}

	return switchable, nil
}

func busError(err error) *dbus.Error {
	if err == nil {
		return nil
	}

	return dbus.NewError(
		power.BusErrorPrefix+string(errors.CodeOf(err)),
		[]interface{}{err.Error()},
	)
}
