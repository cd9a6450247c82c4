//go:build tinygo

package main

import "fmt"

// printLogger writes log lines to the default serial console
type printLogger struct{}

func (printLogger) Error(args ...interface{}) { println("ERROR", fmt.Sprint(args...)) }

func (printLogger) Errorf(format string, args ...interface{}) {
	println("ERROR", fmt.Sprintf(format, args...))
}

func (printLogger) Warn(args ...interface{}) { println("WARN ", fmt.Sprint(args...)) }

func (printLogger) Warnf(format string, args ...interface{}) {
	println("WARN ", fmt.Sprintf(format, args...))
}

func (printLogger) Info(args ...interface{}) { println("INFO ", fmt.Sprint(args...)) }

func (printLogger) Infof(format string, args ...interface{}) {
	println("INFO ", fmt.Sprintf(format, args...))
}

func (printLogger) Debug(args ...interface{}) {}

func (printLogger) Debugf(format string, args ...interface{}) {}
