//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fako1024/foodscale/pkg/config"
	"github.com/fako1024/foodscale/pkg/link"
	"github.com/fako1024/foodscale/pkg/network"
	"github.com/fako1024/foodscale/pkg/scale"
	"go.bug.st/serial"
)

type flags struct {
	configPath string
	port       string
	baudRate   int
	list       bool
	debug      bool
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
	flag.StringVar(&f.port, "port", "/dev/ttyUSB0", "serial port the controller is attached to")
	flag.IntVar(&f.baudRate, "baud", 115200, "baud rate of the serial port")
	flag.BoolVar(&f.list, "list", false, "list available serial ports and exit")
	flag.BoolVar(&f.debug, "debug", false, "enable debug logging")
	flag.Parse()

	if f.list {
		ports, err := serial.GetPortsList()
		if err != nil {
			return fmt.Errorf("failed to list serial ports: %w", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := scale.NewDefaultLogger(f.debug)
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load(ctx, f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := network.New(cfg.Network.Endpoint,
		network.WithLogger(scale.Prefixed(log, "network")),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize network client: %w", err)
	}

	port, err := serial.Open(f.port, &serial.Mode{
		BaudRate: f.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", f.port, err)
	}
	defer func() {
		_ = port.Close()
	}()

	// Closing the port unblocks a pending read
	go func() {
		<-ctx.Done()
		log.Infof("got signal, closing serial port %s", f.port)
		_ = port.Close()
	}()

	log.Infof("relaying requests from %s (%d baud) to %s", f.port, f.baudRate, cfg.Network.Endpoint)
	if err := link.Serve(ctx, port, client, scale.Prefixed(log, "link")); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serial link terminated: %w", err)
	}

	return nil
}
