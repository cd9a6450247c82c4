package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"Milo", "Coffee", "Tea", "Sugar"}, cfg.Categories)
	assert.Equal(t, "http://192.168.0.151:8090/postjson", cfg.Network.Endpoint)
	assert.Equal(t, 2067., cfg.Scale.Factor)
	assert.Equal(t, 5, cfg.Scale.Samples)
	assert.Equal(t, 200*time.Millisecond, cfg.Input.DebounceWindow)
	assert.Equal(t, "foodscale", cfg.Credentials().SSID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "no categories", modify: func(c *Config) { c.Categories = nil }},
		{name: "empty category", modify: func(c *Config) { c.Categories = []string{"Tea", ""} }},
		{name: "zero factor", modify: func(c *Config) { c.Scale.Factor = 0 }},
		{name: "no samples", modify: func(c *Config) { c.Scale.Samples = 0 }},
		{name: "no endpoint", modify: func(c *Config) { c.Network.Endpoint = "" }},
		{name: "negative attempts", modify: func(c *Config) { c.Network.AssociateAttempts = -1 }},
		{name: "negative window", modify: func(c *Config) { c.Input.DebounceWindow = -time.Second }},
		{name: "no poll interval", modify: func(c *Config) { c.PollInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
