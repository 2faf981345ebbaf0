package tui

import "strings"

// OutputFormat controls how a Submission is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the validation report as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the raw submission as
	// application/x-www-form-urlencoded.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one key=value line per raw entry.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat resolves a format name; the empty string means JSON.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(raw))); format {
	case "":
		return OutputFormatJSON, true
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, true
	default:
		return "", false
	}
}

// ContentType reports the media type of the format.
func (f OutputFormat) ContentType() string {
	switch f {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Theme captures optional prefixes the collector applies to messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme marks errors with "! ".
var DefaultTheme = Theme{ErrorPrefix: "! "}

const (
	defaultMaxAttempts = 3
	// SkipOption is the first entry of optional select prompts.
	SkipOption = "(skip)"
)

// Option configures the Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithHiddenValues supplies values for hidden fields, which are never
// prompted.
func WithHiddenValues(values map[string]string) Option {
	return func(c *Collector) {
		for id, value := range values {
			c.hidden[id] = value
		}
	}
}

// WithMaxAttempts bounds how many validation rounds run before Collect
// gives up. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}
