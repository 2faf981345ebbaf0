// Package server serves a schema as an HTML form page with a small JSON API.
package server

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/internal/demo"
)

// Config is the server configuration file.
type Config struct {
	Addr string `yaml:"addr"`
	// SchemaPath names a schemafile document. Empty serves the demo product
	// form.
	SchemaPath  string `yaml:"schema_path"`
	WatchSchema bool   `yaml:"watch_schema"`

	Title          string            `yaml:"title"`
	SubmitLabel    string            `yaml:"submit_label"`
	SuccessMessage string            `yaml:"success_message"`
	HiddenValues   map[string]string `yaml:"hidden_values"`
	Marker         MarkerConfig      `yaml:"marker"`
	// AllowMarkup disables sanitising of re-populated values.
	AllowMarkup bool `yaml:"allow_markup"`

	MetricsPrefix string `yaml:"metrics_prefix"`
	LogLevel      string `yaml:"log_level"`
}

// MarkerConfig names the hidden field that gates validation on POST.
type MarkerConfig struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

const (
	defaultAddr           = ":8080"
	defaultTitle          = "This is a dummy form"
	defaultSubmitLabel    = "Save Changes"
	defaultSuccessMessage = "It all worked"
	defaultMarkerName     = "submit-hidden"
	defaultMetricsPrefix  = "formkit"
	defaultLogLevel       = "info"
)

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads a YAML configuration file. Environment variables in the
// file are expanded and zero values receive defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("server: read config: %w", err)
	}
	return ParseConfig([]byte(os.ExpandEnv(string(data))))
}

// ParseConfig decodes YAML configuration and applies defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("server: parse config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("server: validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = defaultAddr
	}
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.SubmitLabel == "" {
		c.SubmitLabel = defaultSubmitLabel
	}
	if c.SuccessMessage == "" {
		c.SuccessMessage = defaultSuccessMessage
	}
	if c.Marker.Name == "" {
		c.Marker.Name = defaultMarkerName
	}
	// Generated per process when unset.
	if c.Marker.Value == "" {
		c.Marker.Value = uuid.NewString()
	}
	if c.HiddenValues == nil && c.SchemaPath == "" {
		c.HiddenValues = map[string]string{"id": demo.NewID}
	}
	if c.MetricsPrefix == "" {
		c.MetricsPrefix = defaultMetricsPrefix
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Marker.Name) != c.Marker.Name {
		errs = append(errs, fmt.Errorf("marker name %q has surrounding whitespace", c.Marker.Name))
	}
	if c.WatchSchema && c.SchemaPath == "" {
		errs = append(errs, errors.New("watch_schema requires schema_path"))
	}
	return errors.Join(errs...)
}
