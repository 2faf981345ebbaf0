package tui

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// Submission is the outcome of Collect: the raw answers as a browser would
// have posted them, and the result of validating them.
type Submission struct {
	Raw    map[string]string
	Result *validation.Result
}

// Encode serializes the submission. JSON carries the validation report,
// the other formats the raw answers.
func (s *Submission) Encode(format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for key, value := range s.Raw {
			values.Set(key, value)
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, key := range slices.Sorted(maps.Keys(s.Raw)) {
			fmt.Fprintf(&b, "%s=%s\n", key, s.Raw[key])
		}
		return []byte(b.String()), nil
	case OutputFormatJSON, "":
		if s.Result == nil {
			return nil, fmt.Errorf("tui: submission has no result")
		}
		return json.Marshal(s.Result.Report())
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", format)
	}
}
