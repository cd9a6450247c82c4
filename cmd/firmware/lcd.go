//go:build tinygo

package main

import (
	"machine"
	"strings"
	"time"

	"tinygo.org/x/drivers/hd44780i2c"
)

// lcd adapts an HD44780 character display to scale.Display
type lcd struct {
	dev   hd44780i2c.Device
	blank []byte
}

func newLCD(bus *machine.I2C, sda, scl machine.Pin) (*lcd, error) {
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400000,
		SDA:       sda,
		SCL:       scl,
	}); err != nil {
		return nil, err
	}

	// Small delay for bus stabilization
	time.Sleep(10 * time.Millisecond)

	dev := hd44780i2c.New(bus, lcdAddress)
	if err := dev.Configure(hd44780i2c.Config{
		Width:  lcdColumns,
		Height: lcdRows,
	}); err != nil {
		return nil, err
	}
	dev.BacklightOn(true)
	dev.ClearDisplay()

	return &lcd{
		dev:   dev,
		blank: []byte(strings.Repeat(" ", lcdColumns)),
	}, nil
}

func (l *lcd) ClearRow(row int) {
	l.dev.SetCursor(0, uint8(row))
	l.dev.Print(l.blank)
}

func (l *lcd) WriteAt(row, col int, text string) {
	l.dev.SetCursor(uint8(col), uint8(row))
	l.dev.Print([]byte(text))
}
