package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
)

func TestNewSchemaPreservesOrderAndDefaults(t *testing.T) {
	schema, err := model.NewSchema(
		model.Field{ID: " name ", Required: true},
		model.Field{ID: "price", Kind: model.KindNumber, Units: model.UnitTable(
			model.Unit{Label: "pounds", Multiplier: 100},
			model.Unit{Label: "pence", Multiplier: 1},
		)},
		model.Field{ID: "id", Kind: model.KindHidden},
	)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}

	if diff := cmp.Diff([]string{"name", "price", "id"}, schema.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	name, ok := schema.Field("name")
	if !ok || name.Kind != model.KindText {
		t.Fatalf("expected name to default to text kind, got %+v", name)
	}
	if name.DisplayTitle() != "Name" {
		t.Fatalf("expected derived title, got %q", name.DisplayTitle())
	}
	price, _ := schema.Field("price")
	if mult, ok := price.Units.Multiplier("pounds"); !ok || mult != 100 {
		t.Fatalf("expected pounds multiplier 100, got %v %v", mult, ok)
	}
	if _, ok := price.Units.Multiplier("euros"); ok {
		t.Fatalf("did not expect euros to resolve")
	}
	if schema.Has("missing") || schema.Len() != 3 {
		t.Fatalf("unexpected schema membership")
	}
}

func TestNewSchemaReportsEveryProblem(t *testing.T) {
	_, err := model.NewSchema(
		model.Field{ID: ""},
		model.Field{ID: "colour", Kind: model.KindSelect},
		model.Field{ID: "colour"},
		model.Field{ID: "price", Kind: model.KindNumber},
		model.Field{ID: "weight", Kind: model.KindFloat, Units: model.UnitTable(model.Unit{Label: "kg", Multiplier: 1})},
		model.Field{ID: "notes", Kind: model.KindTextArea, Min: model.Float(1)},
		model.Field{ID: "tags", Options: model.Items("a")},
		model.Field{ID: "range", Kind: model.KindInteger, Min: model.Float(10), Max: model.Float(1)},
		model.Field{ID: "mystery", Kind: model.Kind("blob")},
		model.Field{ID: "cost", Kind: model.KindNumber, Units: model.UnitTable(model.Unit{Label: "p", Multiplier: 0})},
	)
	if err == nil {
		t.Fatalf("expected schema error")
	}
	if !errors.Is(err, model.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}

	var fieldErr *model.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError in chain, got %v", err)
	}

	msg := err.Error()
	for _, fragment := range []string{
		`"#0": id is required`,
		`"colour": select requires options`,
		`"colour": duplicate id`,
		`"price": number requires a unit table`,
		`"weight": unit tables are only valid on number fields`,
		`"notes": min/max are only valid on numeric fields`,
		`"tags": options are only valid on select fields`,
		`"range": min 10 is greater than max 1`,
		`"mystery": unknown kind "blob"`,
		`"cost": unit "p" multiplier must be a positive number`,
	} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("expected %q in error:\n%s", fragment, msg)
		}
	}
}

func TestNewSchemaRejectsUnitSelectorCollision(t *testing.T) {
	_, err := model.NewSchema(
		model.Field{ID: "price", Kind: model.KindNumber, Units: model.UnitTable(model.Unit{Label: "pence", Multiplier: 1})},
		model.Field{ID: "price-number-units"},
	)
	if err == nil || !strings.Contains(err.Error(), "collides with the unit selector") {
		t.Fatalf("expected collision error, got %v", err)
	}
}

func TestMustSchemaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	model.MustSchema(model.Field{ID: "choice", Kind: model.KindSelect})
}

func TestParseKind(t *testing.T) {
	cases := map[string]model.Kind{
		"":         model.KindText,
		"TextArea": model.KindTextArea,
		" number ": model.KindNumber,
		"hidden":   model.KindHidden,
	}
	for raw, want := range cases {
		got, err := model.ParseKind(raw)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := model.ParseKind("date"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestOptionsShapes(t *testing.T) {
	items := model.Items("red", "green")
	if items.Kind() != model.OptionsItems || !items.Has("green") || items.Has("blue") {
		t.Fatalf("unexpected items options %+v", items.List())
	}

	named := model.NamedOptions("pounds", "fluid_ounces")
	want := []markup.Option{{Value: "pounds", Label: "Pounds"}, {Value: "fluid_ounces", Label: "Fluid Ounces"}}
	if diff := cmp.Diff(want, named.List()); diff != "" {
		t.Fatalf("named options mismatch (-want +got):\n%s", diff)
	}
	if named.Kind() != model.OptionsPairs {
		t.Fatalf("expected pairs kind")
	}
}

func TestUnitsKey(t *testing.T) {
	if got := model.UnitsKey("price"); got != "price-number-units" {
		t.Fatalf("unexpected units key %q", got)
	}
}
