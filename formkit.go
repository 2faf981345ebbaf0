// Package formkit ties a field schema to its validator and HTML renderer so a
// form can be declared once and used for both validating submissions and
// drawing the editable table.
package formkit

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Field aliases model.Field so simple callers need a single import.
type Field = model.Field

// Schema aliases model.Schema.
type Schema = model.Schema

// Result aliases validation.Result.
type Result = validation.Result

// Option configures a Form.
type Option func(*config)

type config struct {
	render     []render.Option
	validation []validation.Option
	form       render.FormOptions
}

// WithRenderOptions forwards options to the underlying FormRenderer.
func WithRenderOptions(options ...render.Option) Option {
	return func(cfg *config) {
		cfg.render = append(cfg.render, options...)
	}
}

// WithFormOptions sets the <form> wrapper used by Build.
func WithFormOptions(form render.FormOptions) Option {
	return func(cfg *config) {
		cfg.form = form
	}
}

// FreezeResults makes every Result returned by Validate read-only.
func FreezeResults() Option {
	return func(cfg *config) {
		cfg.validation = append(cfg.validation, validation.WithFrozenResults())
	}
}

// Form is a schema bundled with its validator and renderer. It is safe for
// concurrent use.
type Form struct {
	schema    *model.Schema
	validator *validation.Validator
	renderer  *render.FormRenderer
	form      render.FormOptions
}

// New wraps schema. A nil schema is a contract violation and panics.
func New(schema *model.Schema, options ...Option) *Form {
	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Form{
		schema:    schema,
		validator: validation.New(schema, cfg.validation...),
		renderer:  render.NewFormRenderer(cfg.render...),
		form:      cfg.form,
	}
}

// Define builds the schema from fields and wraps it.
func Define(fields []model.Field, options ...Option) (*Form, error) {
	schema, err := model.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	return New(schema, options...), nil
}

// MustDefine is Define for package-level declarations; it panics on error.
func MustDefine(fields []model.Field, options ...Option) *Form {
	form, err := Define(fields, options...)
	if err != nil {
		panic(err)
	}
	return form
}

// Schema returns the wrapped schema.
func (f *Form) Schema() *model.Schema {
	return f.schema
}

// Validate checks a raw submission.
func (f *Form) Validate(raw map[string]string) *validation.Result {
	return f.validator.Validate(raw)
}

// ValidateValues checks parsed form values, using the first value per key.
func (f *Form) ValidateValues(values url.Values) *validation.Result {
	return f.validator.ValidateValues(values)
}

// ValidateRequest parses the request body and validates the posted values.
func (f *Form) ValidateRequest(r *http.Request) (*validation.Result, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("formkit: parse form: %w", err)
	}
	return f.validator.ValidateValues(r.PostForm), nil
}

// Render returns the field table and the hidden inputs. Pass the result of a
// failed Validate as prior to repopulate the table and flag errors.
func (f *Form) Render(prior *validation.Result) (*markup.Node, *render.HiddenInputs) {
	return f.renderer.RenderForm(f.schema, prior)
}

// Build returns the complete <form>, using the options given to
// WithFormOptions plus any extra hidden fields.
func (f *Form) Build(prior *validation.Result, extra ...render.HiddenField) *markup.Node {
	opts := f.form
	if len(extra) > 0 {
		opts.Extra = append(append([]render.HiddenField(nil), f.form.Extra...), extra...)
	}
	return f.renderer.BuildForm(f.schema, prior, opts)
}

// Errors renders the messages of result as a list, or nil when valid.
func (f *Form) Errors(result *validation.Result) *markup.Node {
	return render.ErrorList(result)
}
