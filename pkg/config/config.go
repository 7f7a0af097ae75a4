// Package config loads selene.yaml.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Driver kinds.
const (
	DriverHTML      = "html"
	DriverWebDriver = "webdriver"
)

// Defaults.
const (
	DefaultTimeoutMs      = 4000
	DefaultPollIntervalMs = 100
	DefaultWebDriverURL   = "http://127.0.0.1:4444"
)

// Config is the run configuration.
type Config struct {
	Driver       string                 `yaml:"driver"`       // html or webdriver
	HTML         []string               `yaml:"html"`         // documents for the html driver
	WebDriverURL string                 `yaml:"webdriverUrl"` // WebDriver server
	URL          string                 `yaml:"url"`          // page to open in a webdriver session
	Capabilities map[string]interface{} `yaml:"capabilities"` // W3C alwaysMatch capabilities
	Timeout      int                    `yaml:"timeout"`      // wait timeout in ms
	PollInterval int                    `yaml:"pollInterval"` // wait poll interval in ms
	Verbose      bool                   `yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Driver:       DriverHTML,
		WebDriverURL: DefaultWebDriverURL,
		Timeout:      DefaultTimeoutMs,
		PollInterval: DefaultPollIntervalMs,
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SELENE_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SELENE_DRIVER"); ok && v != "" {
		c.Driver = v
	}
	if v, ok := lookup("SELENE_WEBDRIVER_URL"); ok && v != "" {
		c.WebDriverURL = v
	}
	if v, ok := lookup("SELENE_URL"); ok && v != "" {
		c.URL = v
	}
	if v, ok := lookup("SELENE_TIMEOUT"); ok && v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SELENE_TIMEOUT: %w", err)
		}
		c.Timeout = ms
	}
	if v, ok := lookup("SELENE_POLL_INTERVAL"); ok && v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SELENE_POLL_INTERVAL: %w", err)
		}
		c.PollInterval = ms
	}
	return nil
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverHTML:
		if len(c.HTML) == 0 {
			return fmt.Errorf("html driver needs at least one document")
		}
	case DriverWebDriver:
		if c.WebDriverURL == "" {
			return fmt.Errorf("webdriver driver needs webdriverUrl")
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverHTML, DriverWebDriver)
	}
	if c.Timeout < 0 || c.PollInterval < 0 {
		return fmt.Errorf("timeout and pollInterval must not be negative")
	}
	return nil
}

// TimeoutDuration returns Timeout as a duration.
func (c Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// PollDuration returns PollInterval as a duration.
func (c Config) PollDuration() time.Duration {
	return time.Duration(c.PollInterval) * time.Millisecond
}
