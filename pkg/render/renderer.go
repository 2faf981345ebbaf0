package render

import (
	"context"
	"errors"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Renderer converts a schema, optionally annotated with a prior result, into
// a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema *model.Schema, prior *validation.Result) ([]byte, error)
}

// ErrNilSchema is returned by renderers invoked without a schema.
var ErrNilSchema = errors.New("render: schema is required")

// TableRenderer renders the full HTML <form>.
type TableRenderer struct {
	forms *FormRenderer
	opts  FormOptions
}

var _ Renderer = (*TableRenderer)(nil)

// NewTableRenderer wraps a FormRenderer built from options.
func NewTableRenderer(form FormOptions, options ...Option) *TableRenderer {
	return &TableRenderer{forms: NewFormRenderer(options...), opts: form}
}

func (r *TableRenderer) Name() string {
	return "table"
}

func (r *TableRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *TableRenderer) Render(ctx context.Context, schema *model.Schema, prior *validation.Result) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, ErrNilSchema
	}
	return []byte(r.forms.BuildForm(schema, prior, r.opts).String()), nil
}
