package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidSchema is wrapped by every error NewSchema returns.
var ErrInvalidSchema = errors.New("model: invalid schema")

// FieldError describes one structural problem with a field declaration.
type FieldError struct {
	ID     string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.ID, e.Reason)
}

// Schema is an ordered, immutable set of fields. Build it with NewSchema.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema validates the declarations and returns the schema. All problems
// are reported together, joined under ErrInvalidSchema.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	var problems []error
	for i, field := range fields {
		field.ID = strings.TrimSpace(field.ID)
		if field.Kind == "" {
			field.Kind = KindText
		}
		if field.ID == "" {
			problems = append(problems, &FieldError{ID: fmt.Sprintf("#%d", i), Reason: "id is required"})
			continue
		}
		if _, exists := s.index[field.ID]; exists {
			problems = append(problems, &FieldError{ID: field.ID, Reason: "duplicate id"})
			continue
		}
		problems = append(problems, checkField(field)...)
		s.index[field.ID] = len(s.fields)
		s.fields = append(s.fields, field)
	}

	for _, field := range s.fields {
		if field.Kind != KindNumber {
			continue
		}
		if _, clash := s.index[UnitsKey(field.ID)]; clash {
			problems = append(problems, &FieldError{ID: UnitsKey(field.ID), Reason: fmt.Sprintf("collides with the unit selector of %q", field.ID)})
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(problems...))
	}
	return s, nil
}

// MustSchema is NewSchema for package-level declarations; it panics on error.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func checkField(field Field) []error {
	var problems []error
	fail := func(format string, args ...any) {
		problems = append(problems, &FieldError{ID: field.ID, Reason: fmt.Sprintf(format, args...)})
	}

	if _, err := ParseKind(string(field.Kind)); err != nil {
		fail("unknown kind %q", field.Kind)
		return problems
	}

	switch {
	case field.Kind == KindSelect && field.Options.Len() == 0:
		fail("select requires options")
	case field.Kind != KindSelect && field.Options.Len() > 0:
		fail("options are only valid on select fields")
	}
	if field.Kind == KindSelect {
		seen := make(map[string]struct{}, field.Options.Len())
		for _, opt := range field.Options.List() {
			if _, dup := seen[opt.Value]; dup {
				fail("duplicate option value %q", opt.Value)
			}
			seen[opt.Value] = struct{}{}
		}
	}

	switch field.Units.Kind() {
	case UnitsTable:
		if field.Kind != KindNumber {
			fail("unit tables are only valid on number fields")
			break
		}
		if len(field.Units.table) == 0 {
			fail("unit table is empty")
		}
		seen := make(map[string]struct{}, len(field.Units.table))
		for _, unit := range field.Units.table {
			if strings.TrimSpace(unit.Label) == "" {
				fail("unit label is required")
			}
			if _, dup := seen[unit.Label]; dup {
				fail("duplicate unit %q", unit.Label)
			}
			seen[unit.Label] = struct{}{}
			if !(unit.Multiplier > 0) || math.IsInf(unit.Multiplier, 0) {
				fail("unit %q multiplier must be a positive number", unit.Label)
			}
		}
	case UnitsDisplay:
		if field.Kind == KindNumber {
			fail("number requires a unit table, not display units")
		}
	default:
		if field.Kind == KindNumber {
			fail("number requires a unit table")
		}
	}

	if !field.Kind.IsNumeric() {
		if field.Min != nil || field.Max != nil {
			fail("min/max are only valid on numeric fields")
		}
		if field.Step != nil || field.Size != 0 {
			fail("size/step are only valid on numeric fields")
		}
	}
	if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
		fail("min %v is greater than max %v", *field.Min, *field.Max)
	}
	if field.Size < 0 {
		fail("size must not be negative")
	}
	return problems
}

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by id.
func (s *Schema) Field(id string) (Field, bool) {
	idx, ok := s.index[id]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx], true
}

// Has reports whether id is declared.
func (s *Schema) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns the field ids in declaration order.
func (s *Schema) IDs() []string {
	out := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		out = append(out, field.ID)
	}
	return out
}

// Len reports the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}
