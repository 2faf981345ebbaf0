package validation

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// integerULPs is how far, in units of least precision, a product may sit from
// an integer and still count as one: 2.2 pounds at 100 pence per pound is
// 220.00000000000003 in binary floating point.
const integerULPs = 4

// Option configures a Validator.
type Option func(*Validator)

// WithFrozenResults freezes every Result before Validate returns it.
func WithFrozenResults() Option {
	return func(v *Validator) {
		v.freeze = true
	}
}

// Validator validates submissions against one schema. It holds no per-request
// state and is safe for concurrent use.
type Validator struct {
	schema *model.Schema
	freeze bool
}

// New constructs a validator for schema.
func New(schema *model.Schema, options ...Option) *Validator {
	if schema == nil {
		contractViolation(1, "New", "", ErrNilSchema)
	}
	v := &Validator{schema: schema}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate is shorthand for New(schema).Validate(raw).
func Validate(raw map[string]string, schema *model.Schema) *Result {
	return New(schema).Validate(raw)
}

// Schema returns the schema the validator checks against.
func (v *Validator) Schema() *model.Schema {
	return v.schema
}

// Validate checks raw against every field and returns the complete result.
// Missing keys and empty strings are both treated as absent.
func (v *Validator) Validate(raw map[string]string) *Result {
	result := NewResult(v.schema, raw)
	for _, field := range v.schema.Fields() {
		v.validateField(field, raw, result)
	}
	if v.freeze {
		result.Freeze()
	}
	return result
}

// ValidateValues validates parsed form values, using the first value of each key.
func (v *Validator) ValidateValues(values url.Values) *Result {
	return v.Validate(FlattenValues(values))
}

// FlattenValues keeps the first value of every key.
func FlattenValues(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for key, list := range values {
		if len(list) == 0 {
			continue
		}
		out[key] = list[0]
	}
	return out
}

func (v *Validator) validateField(field model.Field, raw map[string]string, result *Result) {
	value := raw[field.ID]
	if value == "" {
		switch {
		case field.Kind == model.KindHidden:
			result.AddError(field.ID, msgInvalidHidden(field.ID))
		case field.Required:
			result.AddError(field.ID, msgRequired(field.DisplayTitle()))
		}
		return
	}

	result.SetValue(field.ID, value)

	switch {
	case field.Kind == model.KindSelect:
		if !field.Options.Has(value) {
			result.AddError(field.ID, msgInvalidOption(value, field.DisplayTitle()))
		}
	case field.Kind.IsNumeric():
		coerceNumber(field, value, raw, result)
	}
}

// coerceNumber runs the numeric pipeline: parse, unit multiplication for
// number fields, the integer check for integer and number fields, then both
// bound checks regardless of earlier failures. The integer check rounds to
// the nearest integer within a few ULPs rather than truncating, so 2.2
// pounds is accepted as 220 pence.
func coerceNumber(field model.Field, value string, raw map[string]string, result *Result) {
	title := field.DisplayTitle()

	n, ok := parseNumber(value)
	if !ok {
		result.AddError(field.ID, msgNotANumber(title))
		return
	}

	if field.Kind == model.KindNumber {
		unit := raw[model.UnitsKey(field.ID)]
		multiplier, known := field.Units.Multiplier(unit)
		if !known {
			result.DeleteValue(field.ID)
			result.AddError(field.ID, msgUnknownUnits(unit, title))
			return
		}
		n *= multiplier
		if math.IsInf(n, 0) || math.IsNaN(n) {
			result.DeleteValue(field.ID)
			result.AddError(field.ID, msgOutOfRange(title))
			return
		}
	}

	integral := true
	if field.Kind != model.KindFloat {
		var whole float64
		whole, integral = nearestInteger(n)
		if integral {
			n = whole
		} else {
			result.AddError(field.ID, msgNotInteger(title))
		}
	}

	if field.Min != nil && n < *field.Min {
		result.AddError(field.ID, msgBelowMin(title, *field.Min))
	}
	if field.Max != nil && n > *field.Max {
		result.AddError(field.ID, msgAboveMax(title, *field.Max))
	}

	if field.Kind != model.KindFloat && integral && n >= math.MinInt64 && n < math.MaxInt64 {
		result.SetValue(field.ID, int64(n))
		return
	}
	result.SetValue(field.ID, n)
}

func parseNumber(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func nearestInteger(n float64) (float64, bool) {
	whole := math.Round(n)
	magnitude := math.Abs(n)
	ulp := math.Nextafter(magnitude, math.Inf(1)) - magnitude
	return whole, math.Abs(n-whole) <= integerULPs*ulp
}
