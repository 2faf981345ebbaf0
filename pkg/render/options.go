package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const (
	defaultErrorClass  = "error"
	defaultNumericSize = 3
)

// Option configures a FormRenderer.
type Option func(*config)

type config struct {
	sanitize    func(string) string
	errorClass  string
	numericSize int
}

func newConfig(options []Option) config {
	cfg := config{
		errorClass:  defaultErrorClass,
		numericSize: defaultNumericSize,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// WithValueSanitizer filters every previously submitted value before it is
// written back into the form. The tree does no escaping of its own.
func WithValueSanitizer(fn func(string) string) Option {
	return func(cfg *config) {
		cfg.sanitize = fn
	}
}

// StrictValues sanitises re-populated values with bluemonday's strict
// policy, which strips markup and escapes the remaining text.
func StrictValues() Option {
	return WithValueSanitizer(func(value string) string {
		return strictPolicy().Sanitize(value)
	})
}

// WithErrorClass overrides the class applied to rows in error.
func WithErrorClass(class string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			cfg.errorClass = trimmed
		}
	}
}

// WithNumericSize overrides the size hint used when a numeric field has none.
func WithNumericSize(size int) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.numericSize = size
		}
	}
}

var (
	strictOnce   sync.Once
	strictValues *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictValues = bluemonday.StrictPolicy()
	})
	return strictValues
}
