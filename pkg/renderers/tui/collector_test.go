package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	textAreas    []string
	infoMessages []string
	inputConfigs []InputConfig
	selectCfgs   []SelectConfig
	inputPos     int
	selectPos    int
	textPos      int
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func productSchema() *model.Schema {
	return model.MustSchema(
		model.Field{ID: "name", Required: true},
		model.Field{ID: "description", Kind: model.KindTextArea},
		model.Field{ID: "price", Kind: model.KindNumber, Required: true, Min: model.Float(0), Units: model.UnitTable(
			model.Unit{Label: "pounds", Multiplier: 100},
			model.Unit{Label: "pence", Multiplier: 1},
		)},
		model.Field{ID: "colour", Kind: model.KindSelect, Options: model.Pairs(
			markup.Option{Value: "r", Label: "Red"},
			markup.Option{Value: "g", Label: "Green"},
		)},
		model.Field{ID: "id", Kind: model.KindHidden},
	)
}

func TestCollectPromptsInSchemaOrder(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Widget", " 2.5 "},
		textAreas: []string{"Nice"},
		selectIdx: []int{0, 2},
	}
	c := New(WithPromptDriver(driver), WithHiddenValues(map[string]string{"id": "@new@"}))

	sub, err := c.Collect(context.Background(), productSchema())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	wantRaw := map[string]string{
		"name":               "Widget",
		"description":        "Nice",
		"price":              "2.5",
		"price-number-units": "pounds",
		"colour":             "g",
		"id":                 "@new@",
	}
	if diff := cmp.Diff(wantRaw, sub.Raw); diff != "" {
		t.Fatalf("raw mismatch (-want +got):\n%s", diff)
	}
	if got, _ := sub.Result.Value("price"); got != int64(250) {
		t.Fatalf("expected price 250, got %#v", got)
	}

	wantSelects := [][]string{{"Pounds", "Pence"}, {SkipOption, "Red", "Green"}}
	var gotSelects [][]string
	for _, cfg := range driver.selectCfgs {
		gotSelects = append(gotSelects, cfg.Options)
	}
	if diff := cmp.Diff(wantSelects, gotSelects); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[0].Message != "Name *" {
		t.Fatalf("unexpected prompt label %q", driver.inputConfigs[0].Message)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("unexpected messages: %v", driver.infoMessages)
	}
}

func TestCollectRepromptsOnlyFieldsInError(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Bo", "0", "3"}}
	schema := model.MustSchema(
		model.Field{ID: "name", Required: true},
		model.Field{ID: "count", Kind: model.KindInteger, Required: true, Min: model.Float(1)},
	)

	sub, err := New(WithPromptDriver(driver)).Collect(context.Background(), schema)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got, _ := sub.Result.Value("count"); got != int64(3) {
		t.Fatalf("expected count 3, got %#v", got)
	}

	wantInfo := []string{"! Field 'Count' must be greater than or equal to 1."}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	retry := driver.inputConfigs[2]
	if retry.Message != "Count *" || retry.Default != "0" || !strings.Contains(retry.Help, "greater than or equal to 1") {
		t.Fatalf("unexpected retry prompt %+v", retry)
	}
}

func TestCollectGivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x", "y"}}
	schema := model.MustSchema(model.Field{ID: "count", Kind: model.KindInteger})

	sub, err := New(WithPromptDriver(driver), WithMaxAttempts(2)).Collect(context.Background(), schema)
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	if diff := cmp.Diff([]string{"Field 'Count' must be a number."}, sub.Result.FieldErrors("count")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if driver.inputPos != 2 {
		t.Fatalf("expected 2 prompts, got %d", driver.inputPos)
	}
}

func TestCollectStopsWhenOnlyHiddenFieldsFail(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Bo"}}
	schema := model.MustSchema(model.Field{ID: "name"}, model.Field{ID: "id", Kind: model.KindHidden})

	sub, err := New(WithPromptDriver(driver)).Collect(context.Background(), schema)
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	if diff := cmp.Diff([]string{"id"}, sub.Result.FieldsInError()); diff != "" {
		t.Fatalf("fields in error mismatch (-want +got):\n%s", diff)
	}
	if driver.inputPos != 1 {
		t.Fatalf("hidden errors must not trigger re-prompts")
	}
}

func TestCollectPropagatesAbort(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}
	_, err := New(WithPromptDriver(driver)).Collect(context.Background(), model.MustSchema(model.Field{ID: "name"}))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := New(WithPromptDriver(driver)).Collect(context.Background(), nil); !errors.Is(err, ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
}

func TestSubmissionEncode(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "a"}, model.Field{ID: "b", Kind: model.KindInteger})
	raw := map[string]string{"a": "x y", "b": "2"}
	sub := &Submission{Raw: raw, Result: validation.Validate(raw, schema)}

	form, err := sub.Encode(OutputFormatFormURLEncoded)
	if err != nil || string(form) != "a=x+y&b=2" {
		t.Fatalf("unexpected form encoding %q (%v)", form, err)
	}
	pretty, err := sub.Encode(OutputFormatPrettyText)
	if err != nil || string(pretty) != "a=x y\nb=2\n" {
		t.Fatalf("unexpected pretty encoding %q (%v)", pretty, err)
	}

	payload, err := sub.Encode(OutputFormatJSON)
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"valid": true, "values": map[string]any{"a": "x y", "b": float64(2)}}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	if _, err := sub.Encode("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, ok := ParseOutputFormat(" FORM "); !ok || f != OutputFormatFormURLEncoded {
		t.Fatalf("unexpected parse result %q %v", f, ok)
	}
	if f, _ := ParseOutputFormat(""); f.ContentType() != "application/json" {
		t.Fatalf("empty format should default to JSON")
	}
	if _, ok := ParseOutputFormat("yaml"); ok {
		t.Fatalf("expected yaml to be rejected")
	}
}
