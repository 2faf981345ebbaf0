package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const defaultSubmitLabel = "Save Changes"

// FormOptions describes the <form> wrapper assembled around the table.
type FormOptions struct {
	Method      string
	Action      string
	SubmitLabel string
	// HiddenValues assigns values to hidden schema fields by id. Names the
	// schema does not declare are rendered as extra hidden inputs, sorted by
	// name, after the schema's own.
	HiddenValues map[string]string
	// Extra hidden fields appended after the schema's hidden inputs, such as
	// the submission marker.
	Extra []HiddenField
}

// BuildForm renders the table and wraps it in a <form>. The last row holds the
// submit button and every hidden input.
func (r *FormRenderer) BuildForm(schema *model.Schema, prior *validation.Result, opts FormOptions) *markup.Node {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "POST"
	}
	submitLabel := opts.SubmitLabel
	if strings.TrimSpace(submitLabel) == "" {
		submitLabel = defaultSubmitLabel
	}

	table, hidden := r.RenderForm(schema, prior)
	undeclared := hidden.SetValues(opts.HiddenValues)

	cell := markup.New("td", markup.A("colspan", "2"))
	cell.AppendChildren(markup.Input(markup.A("type", "submit", "value", submitLabel)))
	cell.AppendChildren(hidden.Children()...)
	extras := append(SortedHiddenFields(undeclared), opts.Extra...)
	for _, extra := range extras {
		if extra.Name == "" {
			continue
		}
		cell.AppendChildren(extra.Node())
	}
	table.CreateChild("tr", nil, cell)

	form := markup.New("form", markup.A("method", method))
	if action := strings.TrimSpace(opts.Action); action != "" {
		form.SetAttribute("action", action)
	}
	form.AppendChildren(table)
	return form
}
