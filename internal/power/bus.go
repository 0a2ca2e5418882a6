package power

// DBus contract shared by the daemon and the client. Kept next to the
// Controller interface so the transport names can never drift between
// the two implementations.
const (
	BusName      = "org.powerctl.PowerDaemon"
	BusPath      = "/org/powerctl/PowerDaemon"
	BusInterface = "org.powerctl.PowerDaemon"

	// BusErrorPrefix prefixes the domain error code in DBus error names,
	// letting the client recover the code a daemon-side operation failed
	// with.
	BusErrorPrefix = "org.powerctl.PowerDaemon.Error."
)
