package render

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// FieldDescriptor is the JSON view of one field for client-side forms.
type FieldDescriptor struct {
	ID       string          `json:"id"`
	Kind     model.Kind      `json:"kind"`
	Label    string          `json:"label"`
	Title    string          `json:"title,omitempty"`
	Required bool            `json:"required"`
	Min      *float64        `json:"min,omitempty"`
	Max      *float64        `json:"max,omitempty"`
	Step     *float64        `json:"step,omitempty"`
	Units    *UnitDescriptor `json:"units,omitempty"`
	Options  []OptionView    `json:"options,omitempty"`
	Value    string          `json:"value,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
}

// UnitDescriptor describes display units or the unit selector of a field.
type UnitDescriptor struct {
	Display  string       `json:"display,omitempty"`
	Key      string       `json:"key,omitempty"`
	Choices  []OptionView `json:"choices,omitempty"`
	Selected string       `json:"selected,omitempty"`
}

// OptionView is a value/label pair.
type OptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormDescriptor is the document emitted by JSONRenderer.
type FormDescriptor struct {
	Valid  *bool             `json:"valid,omitempty"`
	Fields []FieldDescriptor `json:"fields"`
}

// JSONRenderer emits a FormDescriptor for clients that build their own
// controls. It follows the same prefill rules as the HTML table.
type JSONRenderer struct {
	forms *FormRenderer
}

var _ Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer constructs a JSON renderer.
func NewJSONRenderer(options ...Option) *JSONRenderer {
	return &JSONRenderer{forms: NewFormRenderer(options...)}
}

func (r *JSONRenderer) Name() string {
	return "json"
}

func (r *JSONRenderer) ContentType() string {
	return "application/json"
}

func (r *JSONRenderer) Render(ctx context.Context, schema *model.Schema, prior *validation.Result) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, ErrNilSchema
	}
	payload, err := json.Marshal(r.Describe(schema, prior))
	if err != nil {
		return nil, fmt.Errorf("render: encode form descriptor: %w", err)
	}
	return payload, nil
}

// Describe builds the descriptor without encoding it.
func (r *JSONRenderer) Describe(schema *model.Schema, prior *validation.Result) FormDescriptor {
	desc := FormDescriptor{Fields: make([]FieldDescriptor, 0, schema.Len())}
	if prior != nil {
		valid := prior.IsValid()
		desc.Valid = &valid
	}
	for _, field := range schema.Fields() {
		fd := FieldDescriptor{
			ID:       field.ID,
			Kind:     field.Kind,
			Label:    model.IDToName(field.ID),
			Title:    field.Title,
			Required: field.Required || field.Kind == model.KindHidden,
			Min:      field.Min,
			Max:      field.Max,
			Step:     field.Step,
			Options:  optionViews(field.Options),
		}
		fd.Value, _ = r.forms.prefill(prior, field)
		if prior != nil {
			fd.Errors = prior.FieldErrors(field.ID)
		}
		switch field.Units.Kind() {
		case model.UnitsDisplay:
			fd.Units = &UnitDescriptor{Display: field.Units.Display()}
		case model.UnitsTable:
			key := model.UnitsKey(field.ID)
			selected, _ := r.forms.submitted(prior, key)
			fd.Units = &UnitDescriptor{
				Key:      key,
				Choices:  optionViews(model.NamedOptions(field.Units.Labels()...)),
				Selected: selected,
			}
		}
		desc.Fields = append(desc.Fields, fd)
	}
	return desc
}

func optionViews(options model.Options) []OptionView {
	list := options.List()
	if len(list) == 0 {
		return nil
	}
	out := make([]OptionView, 0, len(list))
	for _, opt := range list {
		out = append(out, OptionView{Value: opt.Value, Label: opt.Label})
	}
	return out
}
