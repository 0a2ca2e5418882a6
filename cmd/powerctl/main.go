package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/powerctl/internal/client"
	"codeberg.org/mutker/powerctl/internal/config"
	"codeberg.org/mutker/powerctl/internal/daemon"
	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/logger"
	"codeberg.org/mutker/powerctl/internal/pid"
	"codeberg.org/mutker/powerctl/internal/power"
	"codeberg.org/mutker/powerctl/internal/settings"
	"codeberg.org/mutker/powerctl/internal/telemetry"
	"github.com/spf13/pflag"
)

const usage = `Utility for managing power profiles and switchable graphics

Usage:
  powerctl config                      Display and verify the powerctl configuration
  powerctl daemon [--experimental]     Run the power daemon (requires root)
  powerctl profile [<name>] [--list]   Query or set the power profile
  powerctl fan-curve <name>            Set a fan curve profile
  powerctl graphics [<subcommand>]     Query or set the graphics mode

Graphics subcommands:
  intel | nvidia                       Set the graphics mode
  switchable                           Determine if the system has switchable graphics
  power [auto|off|on]                  Query or set the discrete graphics power state

Flags:
  -v, --verbose        Set log verbosity to debug
  -q, --quiet          Disable log output
  -l, --list           List available power profiles
      --experimental   Enable experimental power-saving features
`

func main() {
	flags := pflag.NewFlagSet("powerctl", pflag.ContinueOnError)
	verbose := flags.BoolP("verbose", "v", false, "set log verbosity to debug")
	quiet := flags.BoolP("quiet", "q", false, "disable log output")
	experimental := flags.Bool("experimental", false, "enable experimental power-saving features")
	list := flags.BoolP("list", "l", false, "list available power profiles")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(1)
	}

	logger.Init(*verbose, *quiet, logger.IsService())

	var err error
	switch args[0] {
	case "config":
		err = runConfig()
	case "daemon":
		err = runDaemon(*experimental)
	case "profile":
		err = runProfile(args[1:], *list)
	case "fan-curve":
		err = runFanCurve(args[1:])
	case "graphics":
		err = runGraphics(args[1:])
	default:
		flags.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "powerctl: %s\n", err)
		os.Exit(1)
	}
}

// runConfig prints the persisted configuration, surfacing parse errors
// instead of falling back to defaults the way the daemon does.
func runConfig() error {
	store := config.NewStore()

	data, err := os.ReadFile(store.Path())
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrap(config.ErrRead, err)
		}

		fmt.Printf("no config at %s; compiled-in defaults:\n\n", store.Path())
		os.Stdout.Write(config.Serialize(config.Default()))

		return nil
	}

	cfg, err := config.Parse(data)
	if err != nil {
		return err
	}

	os.Stdout.Write(config.Serialize(cfg))

	return nil
}

func runDaemon(experimental bool) error {
	if os.Geteuid() != 0 {
		return errors.New(errors.ErrPermissionDenied).
			WithMessage("the daemon must be run as root")
	}

	s, err := settings.Load()
	if err != nil {
		return err
	}
	if s.Debug() {
		logger.SetLogLevel(logger.DebugLevel)
	}

	if err := pid.Write(); err != nil {
		return err
	}
	defer pid.Remove()

	var collector telemetry.Collector
	if s.Telemetry {
		collector, err = telemetry.NewService(telemetry.Config{DBPath: s.Database})
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry disabled")
		} else {
			defer collector.Close()
		}
	}

	d := daemon.New(daemon.Options{
		Collector:    collector,
		Experimental: experimental,
	})

	conn, err := d.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	return d.Run(ctx, time.Duration(s.Interval)*time.Second)
}

func runProfile(args []string, list bool) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	defer c.Close()

	if list {
		profiles, err := c.ListProfiles()
		if err != nil {
			return err
		}
		for _, p := range profiles {
			fmt.Println(p)
		}

		return nil
	}

	if len(args) == 0 {
		profile, err := c.GetProfile()
		if err != nil {
			return err
		}
		fmt.Println(profile)

		return nil
	}

	profile, err := power.ParseProfile(args[0])
	if err != nil {
		return err
	}

	return c.SetProfile(profile)
}

func runFanCurve(args []string) error {
	if len(args) == 0 {
		return errors.New(errors.ErrInvalidArgument).
			WithMessage("fan-curve requires a curve name")
	}

	c, err := client.New()
	if err != nil {
		return err
	}
	defer c.Close()

	return c.SetFanCurve(args[0])
}

func runGraphics(args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	defer c.Close()

	if len(args) == 0 {
		vendor, err := c.GetGraphics()
		if err != nil {
			return err
		}
		fmt.Println(vendor)

		return nil
	}

	switch args[0] {
	case "intel", "nvidia":
		vendor, err := power.ParseVendor(args[0])
		if err != nil {
			return err
		}

		return c.SetGraphics(vendor)
	case "switchable":
		switchable, err := c.GetSwitchable()
		if err != nil {
			return err
		}
		if switchable {
			fmt.Println("switchable")
		} else {
			fmt.Println("not switchable")
		}

		return nil
	case "power":
		return runGraphicsPower(c, args[1:])
	default:
		return errors.WithData(errors.ErrInvalidArgument, args[0])
	}
}

func runGraphicsPower(c *client.Client, args []string) error {
	if len(args) == 0 {
		on, err := c.GetGraphicsPower()
		if err != nil {
			return err
		}
		if on {
			fmt.Println("on")
		} else {
			fmt.Println("off")
		}

		return nil
	}

	switch args[0] {
	case "auto":
		return c.AutoGraphicsPower()
	case "on":
		return c.SetGraphicsPower(true)
	case "off":
		return c.SetGraphicsPower(false)
	default:
		return errors.WithData(errors.ErrInvalidArgument, args[0])
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
