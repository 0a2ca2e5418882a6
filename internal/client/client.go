// Package client implements the caller side of the power controller: a
// thin proxy that forwards every operation to a running daemon over the
// system bus.
package client

import (
	"strings"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/power"
	"github.com/godbus/dbus/v5"
)

const (
	ErrConnect = errors.ErrorCode("bus_connect_failed")
	ErrCall    = errors.ErrorCode("daemon_call_failed")
)

// Client forwards controller operations to the daemon over DBus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

var _ power.Controller = (*Client)(nil)

// New connects to the system bus and binds the daemon's object.
func New() (*Client, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, errors.Wrap(ErrConnect, err)
	}

	return &Client{
		conn: conn,
		obj:  conn.Object(power.BusName, dbus.ObjectPath(power.BusPath)),
	}, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(method string, args ...interface{}) *dbus.Call {
	return c.obj.Call(power.BusInterface+"."+method, 0, args...)
}

func (c *Client) SetProfile(profile power.Profile) error {
	return domainError(c.call("SetProfile", profile.String()).Err)
}

func (c *Client) GetProfile() (power.Profile, error) {
	var name string
	if err := c.call("GetProfile").Store(&name); err != nil {
		return power.Battery, domainError(err)
	}

	return power.ParseProfile(name)
}

func (c *Client) ListProfiles() ([]power.Profile, error) {
	var names []string
	if err := c.call("ListProfiles").Store(&names); err != nil {
		return nil, domainError(err)
	}

	profiles := make([]power.Profile, 0, len(names))
	for _, name := range names {
		p, err := power.ParseProfile(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func (c *Client) SetFanCurve(name string) error {
	return domainError(c.call("SetFanCurve", name).Err)
}

func (c *Client) GetGraphics() (power.Vendor, error) {
	var vendor string
	if err := c.call("GetGraphics").Store(&vendor); err != nil {
		return "", domainError(err)
	}

	return power.ParseVendor(vendor)
}

func (c *Client) SetGraphics(vendor power.Vendor) error {
	return domainError(c.call("SetGraphics", string(vendor)).Err)
}

func (c *Client) GetGraphicsPower() (bool, error) {
	var on bool
	if err := c.call("GetGraphicsPower").Store(&on); err != nil {
		return false, domainError(err)
	}

	return on, nil
}

func (c *Client) SetGraphicsPower(on bool) error {
	return domainError(c.call("SetGraphicsPower", on).Err)
}

func (c *Client) AutoGraphicsPower() error {
	return domainError(c.call("AutoGraphicsPower").Err)
}

func (c *Client) GetSwitchable() (bool, error) {
	var switchable bool
	if err := c.call("GetSwitchable").Store(&switchable); err != nil {
		return false, domainError(err)
	}

	return switchable, nil
}

// domainError recovers the daemon-side error code from a named DBus
// error so callers see the same taxonomy on both sides of the bus.
func domainError(err error) error {
	if err == nil {
		return nil
	}

	var busErr dbus.Error
	if errors.As(err, &busErr) && strings.HasPrefix(busErr.Name, power.BusErrorPrefix) {
		code := errors.ErrorCode(strings.TrimPrefix(busErr.Name, power.BusErrorPrefix))
		if len(busErr.Body) > 0 {
			if msg, ok := busErr.Body[0].(string); ok {
				return errors.WithMessage(code, msg)
			}
		}

		return errors.New(code)
	}

	return errors.Wrap(ErrCall, err)
}
