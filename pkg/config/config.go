// Package config holds the fixed configuration of the scale. The compiled-in
// defaults are used as is on the controller, host binaries may layer a YAML
// file and environment variables on top (see Load).
package config

import (
	"errors"
	"time"

	"github.com/fako1024/foodscale/pkg/debounce"
	"github.com/fako1024/foodscale/pkg/device"
	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/fako1024/foodscale/pkg/session"
)

// Config denotes the complete scale configuration
type Config struct {
	Network NetworkConfig `koanf:"network"`
	Scale   ScaleConfig   `koanf:"scale"`
	Input   InputConfig   `koanf:"input"`

	// Categories lists the selectable food categories in display order
	Categories []string `koanf:"categories"`

	// PollInterval is the pause between two main loop iterations
	PollInterval time.Duration `koanf:"poll_interval"`

	// APIAddr is the listen address of the status API (host only)
	APIAddr string `koanf:"api_addr"`

	// LogLevel controls verbosity: debug, info, warn, error
	LogLevel string `koanf:"log_level"`
}

// NetworkConfig contains the network login and the collector endpoint
type NetworkConfig struct {
	SSID              string        `koanf:"ssid"`
	Password          string        `koanf:"password"`
	Endpoint          string        `koanf:"endpoint"`
	AssociateAttempts int           `koanf:"associate_attempts"`
	RetryDelay        time.Duration `koanf:"retry_delay"`
}

// ScaleConfig contains the load cell calibration
type ScaleConfig struct {
	Factor  float64 `koanf:"factor"`
	Samples int     `koanf:"samples"`
}

// InputConfig contains the button settings
type InputConfig struct {
	DebounceWindow time.Duration `koanf:"debounce_window"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			SSID:              "foodscale",
			Password:          "changeme",
			Endpoint:          session.DefaultEndpoint,
			AssociateAttempts: session.DefaultAssociateAttempts,
			RetryDelay:        session.DefaultRetryDelay,
		},
		Scale: ScaleConfig{
			Factor:  scale.DefaultScaleFactor,
			Samples: scale.DefaultSamples,
		},
		Input: InputConfig{
			DebounceWindow: debounce.DefaultWindow,
		},
		Categories:   []string{"Milo", "Coffee", "Tea", "Sugar"},
		PollInterval: device.DefaultPollInterval,
		APIAddr:      ":8088",
		LogLevel:     "info",
	}
}

// Credentials returns the network login
func (c *Config) Credentials() scale.Credentials {
	return scale.Credentials{
		SSID:     c.Network.SSID,
		Password: c.Network.Password,
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	var errs []error

	if len(c.Categories) == 0 {
		errs = append(errs, errors.New("at least one category is required"))
	}
	for _, name := range c.Categories {
		if name == "" {
			errs = append(errs, errors.New("category names must not be empty"))
			break
		}
	}
	if c.Scale.Factor == 0 {
		errs = append(errs, errors.New("scale factor must not be zero"))
	}
	if c.Scale.Samples <= 0 {
		errs = append(errs, errors.New("sample count must be positive"))
	}
	if c.Network.Endpoint == "" {
		errs = append(errs, errors.New("endpoint must not be empty"))
	}
	if c.Network.AssociateAttempts < 0 {
		errs = append(errs, errors.New("associate attempts must not be negative"))
	}
	if c.Input.DebounceWindow < 0 {
		errs = append(errs, errors.New("debounce window must not be negative"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}

	return errors.Join(errs...)
}
