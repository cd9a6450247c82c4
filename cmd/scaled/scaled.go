//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fako1024/foodscale/pkg/api"
	"github.com/fako1024/foodscale/pkg/config"
	"github.com/fako1024/foodscale/pkg/debounce"
	"github.com/fako1024/foodscale/pkg/device"
	"github.com/fako1024/foodscale/pkg/display"
	"github.com/fako1024/foodscale/pkg/felicita"
	"github.com/fako1024/foodscale/pkg/input"
	"github.com/fako1024/foodscale/pkg/metrics"
	"github.com/fako1024/foodscale/pkg/mock"
	"github.com/fako1024/foodscale/pkg/network"
	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/fako1024/foodscale/pkg/session"
	"go.uber.org/zap"
)

type flags struct {
	configPath string
	debug      bool
	sensor     string
	addr       string
	mockRaw    int64
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run() (err error) {

	// Parse command line options
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to YAML configuration file")
	flag.BoolVar(&f.debug, "debug", false, "enable debug logging")
	flag.StringVar(&f.sensor, "sensor", "mock", "load cell source (mock|felicita)")
	flag.StringVar(&f.addr, "addr", "", "listen address of the status API (overrides configuration)")
	flag.Int64Var(&f.mockRaw, "mock-raw", 0, "raw value reported by the mock load cell")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if f.addr != "" {
		cfg.APIAddr = f.addr
	}

	var log *zap.SugaredLogger
	if f.debug {
		log = scale.NewDefaultLogger(true)
	} else if log, err = scale.NewLogger(cfg.LogLevel); err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	sensor, factor, closeSensor, err := openSensor(f, cfg, log)
	if err != nil {
		return err
	}
	defer closeSensor()

	rec := metrics.New()
	gate := input.NewGate()

	reader, err := scale.NewReader(sensor,
		scale.WithScaleFactor(factor),
		scale.WithSamples(cfg.Scale.Samples),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize scale reader: %w", err)
	}

	state, err := input.NewState(cfg.Categories)
	if err != nil {
		return fmt.Errorf("failed to initialize input state: %w", err)
	}
	controller, err := input.NewController(state,
		input.WithDebouncer(debounce.New(debounce.WithWindow(cfg.Input.DebounceWindow))),
		input.WithGate(gate),
		input.WithRecorder(rec),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize input controller: %w", err)
	}

	presenter, err := display.NewPresenter(
		display.NewConsole(os.Stdout, 2, display.DefaultWidth),
		display.WithRecorder(rec),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}

	client, err := network.New(cfg.Network.Endpoint,
		network.WithLogger(scale.Prefixed(log, "network")),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize network client: %w", err)
	}

	sess, err := session.New(client, reader, state, gate,
		session.WithCredentials(cfg.Credentials()),
		session.WithEndpoint(cfg.Network.Endpoint),
		session.WithAssociateAttempts(cfg.Network.AssociateAttempts),
		session.WithRetryDelay(cfg.Network.RetryDelay),
		session.WithLogger(scale.Prefixed(log, "session")),
		session.WithRecorder(rec),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize send session: %w", err)
	}

	dev, err := device.New(state, reader, presenter, sess,
		device.WithPollInterval(cfg.PollInterval),
		device.WithLogger(scale.Prefixed(log, "device")),
		device.WithRecorder(rec),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}

	srv, err := api.New(dev, controller,
		api.WithMetrics(rec.Handler()),
		api.WithLogger(scale.Prefixed(log, "api")),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize api: %w", err)
	}

	apiErr := make(chan error, 1)
	go func() {
		apiErr <- srv.Listen(cfg.APIAddr)
	}()
	defer func() {
		if serr := srv.Shutdown(); serr != nil {
			log.Warnf("failed to shut down api: %s", serr)
		}
	}()

	// Zero the scale on start
	state.RequestTare()

	devErr := make(chan error, 1)
	go func() {
		devErr <- dev.Run(ctx)
	}()

	select {
	case err = <-apiErr:
		stop()
		<-devErr
		return fmt.Errorf("api terminated: %w", err)
	case err = <-devErr:
		log.Infof("got signal, shutting down")
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func openSensor(f flags, cfg *config.Config, log *zap.SugaredLogger) (scale.ForceSensor, float64, func(), error) {
	switch f.sensor {
	case "mock":
		return mock.NewSensor(f.mockRaw), cfg.Scale.Factor, func() {}, nil
	case "felicita":
		s, err := felicita.New(felicita.WithLogger(scale.Prefixed(log, "felicita")))
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to initialize Felicita scale: %w", err)
		}

		// A Felicita reports centigrams, the reference calibration does not apply
		factor := cfg.Scale.Factor
		if factor == scale.DefaultScaleFactor {
			factor = felicita.CountsPerGram
		}

		return s, factor, func() {
			if err := s.Close(); err != nil {
				log.Warnf("failed to close Felicita scale: %s", err)
			}
		}, nil
	default:
		return nil, 0, nil, fmt.Errorf("unknown sensor `%s`", f.sensor)
	}
}
