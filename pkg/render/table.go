package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// FormRenderer builds the editable table for a schema. It keeps no state
// between calls, so identical inputs always yield identical trees.
type FormRenderer struct {
	cfg config
}

// NewFormRenderer constructs a renderer applying the provided options.
func NewFormRenderer(options ...Option) *FormRenderer {
	return &FormRenderer{cfg: newConfig(options)}
}

// RenderForm renders schema with a default FormRenderer.
func RenderForm(schema *model.Schema, prior *validation.Result) (*markup.Node, *HiddenInputs) {
	return NewFormRenderer().RenderForm(schema, prior)
}

// RenderForm returns a <table> with one label/input row per visible field and
// the hidden-kind inputs separately. When prior is set, submitted values are
// written back and rows in error are flagged with the error class and a
// title listing their messages.
func (r *FormRenderer) RenderForm(schema *model.Schema, prior *validation.Result) (*markup.Node, *HiddenInputs) {
	table := markup.El("table")
	hidden := newHiddenInputs()

	for _, field := range schema.Fields() {
		if field.Kind == model.KindHidden {
			input := markup.Input(markup.A("type", "hidden", "id", field.ID, "name", field.ID))
			if value, ok := r.prefill(prior, field); ok {
				input.SetAttribute("value", value)
			}
			hidden.add(field.ID, input)
			continue
		}
		table.AppendChildren(r.row(field, prior))
	}
	return table, hidden
}

func (r *FormRenderer) row(field model.Field, prior *validation.Result) *markup.Node {
	title := strings.TrimSpace(field.Title)

	row := markup.El("tr")
	header := row.CreateChild("th", nil)
	cell := row.CreateChild("td", nil)

	label := header.CreateChild("label", markup.A("for", field.ID))
	label.AppendText(model.IDToName(field.ID))

	input := r.control(field, prior)
	cell.AppendChildren(input)

	if title != "" {
		row.SetAttribute("title", title)
		label.SetAttribute("title", title)
		input.SetAttribute("title", title)
	}

	if field.Kind.IsNumeric() {
		r.decorateNumeric(field, input, cell, prior)
	}

	if prior != nil && prior.IsFieldInError(field.ID) {
		row.SetAttribute("class", r.cfg.errorClass)
		row.SetAttribute("title", strings.Join(prior.FieldErrors(field.ID), "\n"))
	}
	return row
}

func (r *FormRenderer) control(field model.Field, prior *validation.Result) *markup.Node {
	value, hasValue := r.prefill(prior, field)
	ident := markup.A("id", field.ID, "name", field.ID)

	switch field.Kind {
	case model.KindTextArea:
		area := markup.New("textarea", ident)
		if hasValue {
			area.AppendText(value)
		}
		return area
	case model.KindSelect:
		return markup.Select(field.Options.List(), ident, value)
	default:
		input := markup.Input(ident)
		if field.Kind.IsNumeric() {
			input.SetAttribute("type", "number")
		} else {
			input.SetAttribute("type", "text")
		}
		if hasValue {
			input.SetAttribute("value", value)
		}
		return input
	}
}

func (r *FormRenderer) decorateNumeric(field model.Field, input, cell *markup.Node, prior *validation.Result) {
	size := field.Size
	if size <= 0 {
		size = r.cfg.numericSize
	}
	input.SetAttribute("size", strconv.Itoa(size))
	if field.Min != nil {
		input.SetAttribute("min", formatNumber(*field.Min))
	}
	if field.Max != nil {
		input.SetAttribute("max", formatNumber(*field.Max))
	}

	switch {
	case field.Step != nil:
		input.SetAttribute("step", formatNumber(*field.Step))
	case field.Kind == model.KindInteger:
		input.SetAttribute("step", "1")
	default:
		input.SetAttribute("step", "any")
	}

	switch field.Units.Kind() {
	case model.UnitsTable:
		key := model.UnitsKey(field.ID)
		selected, _ := r.submitted(prior, key)
		units := model.NamedOptions(field.Units.Labels()...)
		cell.AppendChildren(markup.Select(units.List(), markup.A("id", key, "name", key), selected))
	case model.UnitsDisplay:
		cell.AppendText(field.Units.Display())
	}
}

// prefill prefers the raw submission so users see what they typed. Results
// built without raw input fall back to the coerced value, except for number
// fields whose stored value is in the smallest unit.
func (r *FormRenderer) prefill(prior *validation.Result, field model.Field) (string, bool) {
	if value, ok := r.submitted(prior, field.ID); ok {
		return value, true
	}
	if prior == nil || field.Kind == model.KindNumber {
		return "", false
	}
	coerced, ok := prior.Value(field.ID)
	if !ok {
		return "", false
	}
	value := formatValue(coerced)
	if value == "" {
		return "", false
	}
	if r.cfg.sanitize != nil {
		value = r.cfg.sanitize(value)
	}
	return value, true
}

func (r *FormRenderer) submitted(prior *validation.Result, key string) (string, bool) {
	if prior == nil {
		return "", false
	}
	value, ok := prior.Submitted(key)
	if !ok || value == "" {
		return "", false
	}
	if r.cfg.sanitize != nil {
		value = r.cfg.sanitize(value)
	}
	return value, true
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return formatNumber(value)
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
