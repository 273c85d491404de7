// Package config loads the station daemon configuration from an optional
// YAML file, environment variables, and built-in defaults, in that order
// of increasing precedence for the identity fields.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment
// provides a value.
const (
	DefaultModel      = "Model"
	DefaultVendorName = "Vendor name"
	DefaultBootReason = "PowerUp"

	DefaultQueueFetchIntervalMillis = 50
	DefaultMessageExpirySeconds     = 10
)

// Environment variables overriding the station identity.
const (
	EnvModel        = "MODEL"
	EnvVendorName   = "VENDOR_NAME"
	EnvSerialNumber = "SERIAL_NUMBER"
)

// Station is the identity the station reports in BootNotification.
type Station struct {
	Model        string `yaml:"model,omitempty"`
	VendorName   string `yaml:"vendor_name,omitempty"`
	SerialNumber string `yaml:"serial_number,omitempty"` // omitted from the wire when empty
	BootReason   string `yaml:"boot_reason,omitempty"`
}

// Queue tunes the outbound delivery queue. Units are integral because the
// YAML decoder has no native duration support.
type Queue struct {
	FetchIntervalMillis  int `yaml:"fetch_interval_ms,omitempty"` // period of the queue-fetch timer
	MessageExpirySeconds int `yaml:"message_expiry_s,omitempty"`  // in-flight window before the queue advances
}

// FetchInterval returns the queue-fetch timer period.
func (q Queue) FetchInterval() time.Duration {
	return time.Duration(q.FetchIntervalMillis) * time.Millisecond
}

// MessageExpiry returns the in-flight window.
func (q Queue) MessageExpiry() time.Duration {
	return time.Duration(q.MessageExpirySeconds) * time.Second
}

// Config is the full daemon configuration.
type Config struct {
	// URL is the CSMS websocket endpoint, e.g. "ws://csms.example:9000/station-01".
	URL     string  `yaml:"url,omitempty"`
	Station Station `yaml:"station,omitempty"`
	Queue   Queue   `yaml:"queue,omitempty"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Station: Station{
			Model:      DefaultModel,
			VendorName: DefaultVendorName,
			BootReason: DefaultBootReason,
		},
		Queue: Queue{
			FetchIntervalMillis:  DefaultQueueFetchIntervalMillis,
			MessageExpirySeconds: DefaultMessageExpirySeconds,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty), and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnv overrides identity fields from the environment. Empty values
// are ignored so an empty MODEL still falls back to the default.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvModel); v != "" {
		c.Station.Model = v
	}
	if v := os.Getenv(EnvVendorName); v != "" {
		c.Station.VendorName = v
	}
	if v := os.Getenv(EnvSerialNumber); v != "" {
		c.Station.SerialNumber = v
	}
}

// applyDefaults fills fields a config file may have set to empty or zero.
func (c *Config) applyDefaults() {
	if c.Station.Model == "" {
		c.Station.Model = DefaultModel
	}
	if c.Station.VendorName == "" {
		c.Station.VendorName = DefaultVendorName
	}
	if c.Station.BootReason == "" {
		c.Station.BootReason = DefaultBootReason
	}
	if c.Queue.FetchIntervalMillis <= 0 {
		c.Queue.FetchIntervalMillis = DefaultQueueFetchIntervalMillis
	}
	if c.Queue.MessageExpirySeconds <= 0 {
		c.Queue.MessageExpirySeconds = DefaultMessageExpirySeconds
	}
}

// Validate checks that the configuration is usable for dialing the CSMS.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("CSMS url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid CSMS url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("CSMS url scheme must be ws or wss, got %q", u.Scheme)
	}
	return nil
}
