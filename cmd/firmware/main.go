//go:build tinygo

package main

import (
	"context"
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/fako1024/foodscale/pkg/config"
	"github.com/fako1024/foodscale/pkg/debounce"
	"github.com/fako1024/foodscale/pkg/device"
	"github.com/fako1024/foodscale/pkg/display"
	"github.com/fako1024/foodscale/pkg/hx711"
	"github.com/fako1024/foodscale/pkg/input"
	"github.com/fako1024/foodscale/pkg/link"
	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/fako1024/foodscale/pkg/session"
)

var log scale.Logger = printLogger{}

func main() {
	if err := run(); err != nil {
		log.Errorf("halted: %s", err)
		for {
			time.Sleep(time.Hour)
		}
	}
}

func run() error {
	cfg := config.Default()

	screen, err := newLCD(machine.I2C0, pinSDA, pinSCL)
	if err != nil {
		return err
	}
	presenter, err := display.NewPresenter(screen, display.WithWidth(lcdColumns))
	if err != nil {
		return err
	}

	pinHX711Data.Configure(machine.PinConfig{Mode: machine.PinInput})
	pinHX711Clock.Configure(machine.PinConfig{Mode: machine.PinOutput})
	sensor := hx711.New(pinHX711Data, pinHX711Clock, hx711.WithInterruptGuard(interruptGuard))

	reader, err := scale.NewReader(sensor,
		scale.WithScaleFactor(cfg.Scale.Factor),
		scale.WithSamples(cfg.Scale.Samples),
	)
	if err != nil {
		return err
	}

	state, err := input.NewState(cfg.Categories)
	if err != nil {
		return err
	}
	controller, err := input.NewController(state,
		input.WithDebouncer(debounce.New(debounce.WithWindow(cfg.Input.DebounceWindow))),
	)
	if err != nil {
		return err
	}
	mask := input.NewMask(controller, input.WithInterruptGuard(interruptGuard))
	if err := configureButtons(mask); err != nil {
		return err
	}

	if err := linkUART.Configure(machine.UARTConfig{
		BaudRate: linkBaudRate,
		TX:       pinTX,
		RX:       pinRX,
	}); err != nil {
		return err
	}
	network := link.NewClient(&serialLine{
		uart:    linkUART,
		timeout: linkTimeout,
	})

	sess, err := session.New(network, reader, state, mask,
		session.WithCredentials(cfg.Credentials()),
		session.WithEndpoint(cfg.Network.Endpoint),
		session.WithAssociateAttempts(cfg.Network.AssociateAttempts),
		session.WithRetryDelay(cfg.Network.RetryDelay),
		session.WithLogger(log),
	)
	if err != nil {
		return err
	}

	dev, err := device.New(state, reader, presenter, sess,
		device.WithPollInterval(cfg.PollInterval),
		device.WithLogger(log),
	)
	if err != nil {
		return err
	}

	// Zero the scale on power up
	state.RequestTare()

	return dev.Run(context.Background())
}

func configureButtons(handler input.EdgeHandler) error {
	buttons := [scale.NumActions]machine.Pin{
		scale.ActionTare: pinTare,
		scale.ActionSend: pinSend,
		scale.ActionPrev: pinPrev,
		scale.ActionNext: pinNext,
	}

	for i, pin := range buttons {
		action := scale.Action(i)
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		if err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
			handler.Handle(action)
		}); err != nil {
			return err
		}
	}

	return nil
}

func interruptGuard() func() {
	state := interrupt.Disable()
	return func() {
		interrupt.Restore(state)
	}
}
