package validation

import (
	"maps"
	"slices"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Result is the outcome of one validation pass.
//
// Values holds the coerced value of every field that was present: strings for
// text kinds, int64 for integral integer/number values and float64 otherwise.
// Errors holds the messages of every failing field in the order they were
// produced.
type Result struct {
	schema    *model.Schema
	submitted map[string]string
	values    map[string]any
	errors    map[string][]string
	frozen    bool
}

// NewResult creates an empty result bound to schema. raw is retained so
// renderers can redisplay what was submitted.
func NewResult(schema *model.Schema, raw map[string]string) *Result {
	if schema == nil {
		contractViolation(1, "NewResult", "", ErrNilSchema)
	}
	return &Result{
		schema:    schema,
		submitted: maps.Clone(raw),
		values:    make(map[string]any),
		errors:    make(map[string][]string),
	}
}

// Schema returns the schema the result was produced against.
func (r *Result) Schema() *model.Schema {
	return r.schema
}

// SetValue records the coerced value of id.
func (r *Result) SetValue(id string, value any) {
	r.guard("SetValue", id)
	r.values[id] = value
}

// DeleteValue drops any recorded value of id.
func (r *Result) DeleteValue(id string) {
	r.guard("DeleteValue", id)
	delete(r.values, id)
}

// AddError appends a message to the errors of id.
func (r *Result) AddError(id, message string) {
	r.guard("AddError", id)
	r.errors[id] = append(r.errors[id], message)
}

// Freeze marks the result read-only. Later mutations panic.
func (r *Result) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Result) Frozen() bool {
	return r.frozen
}

func (r *Result) guard(op, id string) {
	if r.frozen {
		contractViolation(2, op, id, ErrFrozen)
	}
	if !r.schema.Has(id) {
		contractViolation(2, op, id, ErrUnknownField)
	}
}

// IsValid reports whether no field is in error.
func (r *Result) IsValid() bool {
	return len(r.errors) == 0
}

// IsFieldInError reports whether id has at least one error.
func (r *Result) IsFieldInError(id string) bool {
	return len(r.errors[id]) > 0
}

// FieldErrors returns the messages recorded for id, or nil.
func (r *Result) FieldErrors(id string) []string {
	return slices.Clone(r.errors[id])
}

// FieldsInError returns the ids in error, sorted.
func (r *Result) FieldsInError() []string {
	return slices.Sorted(maps.Keys(r.errors))
}

// Value returns the coerced value of id.
func (r *Result) Value(id string) (any, bool) {
	v, ok := r.values[id]
	return v, ok
}

// Values returns a copy of the coerced values.
func (r *Result) Values() map[string]any {
	return maps.Clone(r.values)
}

// Errors returns a copy of the error map.
func (r *Result) Errors() map[string][]string {
	out := make(map[string][]string, len(r.errors))
	for id, messages := range r.errors {
		out[id] = slices.Clone(messages)
	}
	return out
}

// Submitted returns the raw string submitted under key, which may be a field
// id or a companion key such as model.UnitsKey(id).
func (r *Result) Submitted(key string) (string, bool) {
	v, ok := r.submitted[key]
	return v, ok
}

// Report is a serialisation-friendly snapshot of a Result.
type Report struct {
	Valid  bool                `json:"valid"`
	Values map[string]any      `json:"values"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Report snapshots the result for encoding.
func (r *Result) Report() Report {
	report := Report{Valid: r.IsValid(), Values: r.Values()}
	if !report.Valid {
		report.Errors = r.Errors()
	}
	return report
}
