package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Collector fills a schema interactively. Fields are prompted in schema
// order, the answers are validated, and only the fields in error are asked
// again until the submission is valid or the attempts run out.
type Collector struct {
	driver      PromptDriver
	hidden      map[string]string
	maxAttempts int
	theme       Theme
}

// New constructs a collector with defaults (survey driver, three attempts).
func New(options ...Option) *Collector {
	c := &Collector{
		hidden:      make(map[string]string),
		maxAttempts: defaultMaxAttempts,
		theme:       DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Collect prompts for every visible field and validates the answers. When
// the result is still invalid it returns the last Submission together with
// an error wrapping ErrInvalidSubmission.
func (c *Collector) Collect(ctx context.Context, schema *model.Schema) (*Submission, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if schema == nil {
		return nil, ErrNilSchema
	}

	validator := validation.New(schema)
	raw := make(map[string]string)
	var pending []model.Field
	for _, field := range schema.Fields() {
		if field.Kind == model.KindHidden {
			if value, ok := c.hidden[field.ID]; ok {
				raw[field.ID] = value
			}
			continue
		}
		pending = append(pending, field)
	}

	var result *validation.Result
	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := c.promptField(ctx, field, raw, result); err != nil {
				return nil, err
			}
		}

		result = validator.Validate(raw)
		sub := &Submission{Raw: raw, Result: result}
		if result.IsValid() {
			return sub, nil
		}

		for _, id := range result.FieldsInError() {
			for _, message := range result.FieldErrors(id) {
				if err := c.driver.Info(ctx, c.theme.ErrorPrefix+message); err != nil {
					return nil, err
				}
			}
		}

		pending = pending[:0]
		for _, field := range schema.Fields() {
			if field.Kind != model.KindHidden && result.IsFieldInError(field.ID) {
				pending = append(pending, field)
			}
		}
		if len(pending) == 0 {
			return sub, fmt.Errorf("%w: hidden fields in error: %s", ErrInvalidSubmission, strings.Join(result.FieldsInError(), ", "))
		}
		if attempt >= c.maxAttempts {
			return sub, fmt.Errorf("%w after %d attempts", ErrInvalidSubmission, attempt)
		}
	}
}

func (c *Collector) promptField(ctx context.Context, field model.Field, raw map[string]string, prior *validation.Result) error {
	message := c.theme.PromptPrefix + promptLabel(field)
	help := strings.TrimSpace(field.Title)
	if prior != nil {
		if errs := prior.FieldErrors(field.ID); len(errs) > 0 {
			help = strings.Join(errs, " ")
		}
	}

	switch field.Kind {
	case model.KindTextArea:
		value, err := c.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: raw[field.ID], Help: help})
		if err != nil {
			return err
		}
		store(raw, field.ID, value)
	case model.KindSelect:
		value, err := c.choose(ctx, message, help, field.Options.List(), raw[field.ID], !field.Required)
		if err != nil {
			return err
		}
		store(raw, field.ID, value)
	default:
		value, err := c.driver.Input(ctx, InputConfig{Message: message, Default: raw[field.ID], Help: help})
		if err != nil {
			return err
		}
		store(raw, field.ID, strings.TrimSpace(value))
	}

	if field.Kind == model.KindNumber {
		key := model.UnitsKey(field.ID)
		unit, err := c.choose(ctx, c.theme.PromptPrefix+model.IDToName(field.ID)+" units", "", model.NamedOptions(field.Units.Labels()...).List(), raw[key], false)
		if err != nil {
			return err
		}
		store(raw, key, unit)
	}
	return nil
}

type choice struct {
	value string
	label string
}

// choose prompts a select over options, optionally led by SkipOption, and
// returns the chosen value. Skipping returns the empty string.
func (c *Collector) choose(ctx context.Context, message, help string, options []markup.Option, current string, skippable bool) (string, error) {
	choices := make([]choice, 0, len(options)+1)
	if skippable {
		choices = append(choices, choice{label: SkipOption})
	}
	for _, opt := range options {
		choices = append(choices, choice{value: opt.Value, label: opt.Label})
	}

	labels := make([]string, len(choices))
	defaultIdx := -1
	for i, ch := range choices {
		labels[i] = ch.label
		if current != "" && ch.value == current {
			defaultIdx = i
		}
	}

	for {
		idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIdx, Help: help})
		if err != nil {
			return "", err
		}
		if idx >= 0 && idx < len(choices) {
			return choices[idx].value, nil
		}
		if err := c.driver.Info(ctx, c.theme.ErrorPrefix+"Invalid selection"); err != nil {
			return "", err
		}
	}
}

func promptLabel(field model.Field) string {
	label := model.IDToName(field.ID)
	if field.Units.Kind() == model.UnitsDisplay {
		label += " (" + field.Units.Display() + ")"
	}
	if field.Required {
		label += " *"
	}
	return label
}

func store(raw map[string]string, key, value string) {
	if value == "" {
		delete(raw, key)
		return
	}
	raw[key] = value
}
