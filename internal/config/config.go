// Package config loads the command line configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/banner"
	"github.com/goliatone/go-contactform/pkg/messages"
	"github.com/goliatone/go-contactform/pkg/reachability"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds every setting of the cactat tool. Form optionally points at a
// page definition file replacing the bundled one.
type Config struct {
	Locale         string        `yaml:"locale"`
	LogLevel       string        `yaml:"log_level"`
	BannerDuration time.Duration `yaml:"banner_duration"`
	Form           string        `yaml:"form"`
	Reachability   Reachability  `yaml:"reachability"`
	Fixtures       Fixtures      `yaml:"fixtures"`
}

// Reachability configures the check command.
type Reachability struct {
	URL     string        `yaml:"url"`
	Marker  string        `yaml:"marker"`
	Timeout time.Duration `yaml:"timeout"`
}

// Fixtures configures where file references resolve.
type Fixtures struct {
	Dir     string            `yaml:"dir"`
	Aliases map[string]string `yaml:"aliases"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Locale:         messages.DefaultLocale.String(),
		LogLevel:       "info",
		BannerDuration: banner.DefaultDuration,
		Reachability: Reachability{
			URL:     reachability.DefaultURL,
			Marker:  reachability.DefaultMarker,
			Timeout: reachability.DefaultTimeout,
		},
		Fixtures: Fixtures{Dir: "."},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Locale) == "":
		return fmt.Errorf("%w: locale is empty", ErrInvalid)
	case c.BannerDuration <= 0:
		return fmt.Errorf("%w: banner_duration must be positive, got %s", ErrInvalid, c.BannerDuration)
	case c.Reachability.Timeout <= 0:
		return fmt.Errorf("%w: reachability.timeout must be positive, got %s", ErrInvalid, c.Reachability.Timeout)
	case strings.TrimSpace(c.Reachability.URL) == "":
		return fmt.Errorf("%w: reachability.url is empty", ErrInvalid)
	}
	for name, path := range c.Fixtures.Aliases {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(path) == "" {
			return fmt.Errorf("%w: fixture alias %q has an empty name or path", ErrInvalid, name)
		}
	}
	return nil
}
