package model

import (
	"fmt"
	"strings"
)

// Kind enumerates the supported field kinds.
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindSelect   Kind = "select"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindNumber   Kind = "number"
	KindHidden   Kind = "hidden"
)

// UnitsSuffix is appended to a number field id to name its unit selector.
const UnitsSuffix = "-number-units"

// UnitsKey returns the submission key carrying the unit selected for id.
func UnitsKey(id string) string {
	return id + UnitsSuffix
}

// ParseKind resolves a kind name. The empty string resolves to KindText.
func ParseKind(raw string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case "":
		return KindText, nil
	case KindText, KindTextArea, KindSelect, KindInteger, KindFloat, KindNumber, KindHidden:
		return kind, nil
	default:
		return "", fmt.Errorf("model: unknown field kind %q", raw)
	}
}

// IsNumeric reports whether values of this kind are parsed as numbers.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInteger, KindFloat, KindNumber:
		return true
	default:
		return false
	}
}

// Field describes a single form field.
type Field struct {
	ID       string
	Kind     Kind
	Title    string
	Required bool
	// Min and Max bound numeric kinds. For number fields they apply to the
	// value after unit multiplication.
	Min   *float64
	Max   *float64
	Units Units
	// Options lists the allowed values of a select field.
	Options Options
	// Size and Step are rendering hints for numeric inputs.
	Size int
	Step *float64
}

// DisplayTitle is the label used in messages: the declared title, or the
// name derived from the id when no title is set.
func (f Field) DisplayTitle() string {
	if title := strings.TrimSpace(f.Title); title != "" {
		return title
	}
	return IDToName(f.ID)
}

// Float returns a pointer to v, for Min/Max/Step literals.
func Float(v float64) *float64 {
	return &v
}
