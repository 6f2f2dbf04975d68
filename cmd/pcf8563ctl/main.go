// Command pcf8563ctl reads and configures a PCF8563 real-time clock attached to the I2C bus of a Linux host.
//
// Usage:
//
//	pcf8563ctl [--bus NAME] COMMAND [ARGS...]   run one command, see "pcf8563ctl shell" then "help"
//	pcf8563ctl shell                            interactive prompt
//	pcf8563ctl publish --broker tcp://host:1883 publish the clock on MQTT
package main // import "github.com/ajanata/tinygo-drivers/cmd/pcf8563ctl"

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phsym/console-slog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"tinygo.org/x/drivers"

	"github.com/ajanata/tinygo-drivers/pcf8563"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp(os.Stdout, openPeriph).RunContext(ctx, os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pcf8563ctl: %+v\n", err)
		stop()
		os.Exit(1)
	}
}

type openFunc func(name string) (drivers.I2C, io.Closer, error)

func openPeriph(name string) (drivers.I2C, io.Closer, error) {
	bus, err := openBus(name)
	if err != nil {
		return nil, nil, err
	}
	return bus, bus, nil
}

type env struct {
	stdout io.Writer
	open   openFunc
	log    *slog.Logger
}

func newApp(stdout io.Writer, open openFunc) *cli.App {
	e := &env{stdout: stdout, open: open}
	return &cli.App{
		Name:      "pcf8563ctl",
		Usage:     "read and configure a PCF8563 real-time clock over I2C",
		ArgsUsage: "[command [args...]]",
		Writer:    stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bus",
				Usage:   "I2C bus name or number, empty for the first bus found",
				EnvVars: []string{"PCF8563_BUS"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error; debug traces every bus transaction",
				EnvVars: []string{"PCF8563_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "log-json",
				Usage:   "log JSON instead of text",
				EnvVars: []string{"PCF8563_LOG_JSON"},
			},
		},
		Before: func(c *cli.Context) error {
			log, err := newLogger(c.App.ErrWriter, c.String("log-level"), c.Bool("log-json"))
			if err != nil {
				return err
			}
			e.log = log
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.ShowAppHelp(c)
			}
			return e.withDevice(c, func(dev *pcf8563.Device) error {
				return execute(dev, e.stdout, c.Args().Slice())
			})
		},
		Commands: []*cli.Command{
			{
				Name:  "shell",
				Usage: "interactive prompt",
				Action: func(c *cli.Context) error {
					return e.withDevice(c, func(dev *pcf8563.Device) error {
						return shell(dev, e.stdout, e.log)
					})
				},
			},
			{
				Name:  "publish",
				Usage: "publish the clock reading on MQTT whenever it changes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "broker", Value: "tcp://localhost:1883", EnvVars: []string{"PCF8563_BROKER"}},
					&cli.StringFlag{Name: "topic", Value: "pcf8563/time", EnvVars: []string{"PCF8563_TOPIC"}},
					&cli.StringFlag{Name: "client-id", Value: "pcf8563ctl", EnvVars: []string{"PCF8563_CLIENT_ID"}},
					&cli.DurationFlag{Name: "interval", Value: 250 * time.Millisecond, EnvVars: []string{"PCF8563_INTERVAL"}},
					&cli.UintFlag{Name: "qos", Value: 0, EnvVars: []string{"PCF8563_QOS"}},
					&cli.BoolFlag{Name: "retain", EnvVars: []string{"PCF8563_RETAIN"}},
				},
				Action: e.publish,
			},
		},
	}
}

func (e *env) withDevice(c *cli.Context, fn func(dev *pcf8563.Device) error) error {
	bus, closer, err := e.open(c.String("bus"))
	if err != nil {
		return err
	}
	defer closer.Close()

	dev := pcf8563.New(tracingBus{I2C: bus, log: e.log})
	defer dev.Destroy()
	return fn(&dev)
}

func (e *env) publish(c *cli.Context) error {
	if c.Uint("qos") > 2 {
		return fmt.Errorf("invalid qos %d", c.Uint("qos"))
	}
	if c.Duration("interval") <= 0 {
		return fmt.Errorf("invalid interval %v", c.Duration("interval"))
	}
	cfg := publishConfig{
		Topic:    c.String("topic"),
		QoS:      byte(c.Uint("qos")),
		Retain:   c.Bool("retain"),
		Interval: c.Duration("interval"),
	}

	return e.withDevice(c, func(dev *pcf8563.Device) error {
		client, err := connect(c.String("broker"), c.String("client-id"))
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		e.log.Info("publishing", slog.String("broker", c.String("broker")), slog.String("topic", cfg.Topic))

		p := &publisher{rtc: dev, client: client, cfg: cfg, log: e.log}
		g, ctx := errgroup.WithContext(c.Context)
		g.Go(func() error {
			return p.run(ctx)
		})
		g.Go(func() error {
			return watchConnection(ctx, client, cfg.Interval, e.log)
		})
		return g.Wait()
	})
}

// watchConnection logs when the broker connection drops and comes back.
func watchConnection(ctx context.Context, client interface{ IsConnected() bool }, every time.Duration,
	log *slog.Logger) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	connected := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if up := client.IsConnected(); up != connected {
			connected = up
			if connected {
				log.Info("broker connection restored")
			} else {
				log.Warn("broker connection lost")
			}
		}
	}
}

func newLogger(w io.Writer, level string, asJSON bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
	}
	return slog.New(console.NewHandler(w, &console.HandlerOptions{Level: lvl})), nil
}
