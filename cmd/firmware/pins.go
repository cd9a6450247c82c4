//go:build tinygo

package main

import (
	"machine"
	"time"
)

const (

	// Display geometry (16x2 character LCD behind a PCF8574 expander)
	lcdAddress = 0x27
	lcdColumns = 16
	lcdRows    = 2

	// Serial link to the bridge
	linkBaudRate = 115200
	linkTimeout  = 15 * time.Second
)

var (

	// Push-buttons, active low
	pinTare = machine.D0
	pinSend = machine.D1
	pinPrev = machine.D2
	pinNext = machine.D3

	// I2C bus of the display
	pinSDA = machine.D4
	pinSCL = machine.D5

	// UART of the bridge link
	linkUART = machine.UART0
	pinTX    = machine.D6
	pinRX    = machine.D7

	// HX711 load cell amplifier
	pinHX711Data  = machine.D8
	pinHX711Clock = machine.D9
)
