package validation_test

import (
	"net/url"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func priceUnits() model.Units {
	return model.UnitTable(
		model.Unit{Label: "pounds", Multiplier: 100},
		model.Unit{Label: "pence", Multiplier: 1},
	)
}

func productSchema(t *testing.T) *model.Schema {
	t.Helper()
	schema, err := model.NewSchema(
		model.Field{ID: "name", Required: true},
		model.Field{ID: "description", Kind: model.KindTextArea, Title: "A description of the object."},
		model.Field{ID: "price", Kind: model.KindNumber, Required: true, Min: model.Float(0), Units: priceUnits()},
		model.Field{ID: "height", Kind: model.KindInteger, Title: "Height", Units: model.DisplayUnits("cm"), Min: model.Float(1), Max: model.Float(1000)},
		model.Field{ID: "ratio", Kind: model.KindFloat, Max: model.Float(1)},
		model.Field{ID: "colour", Kind: model.KindSelect, Options: model.Items("red", "green")},
		model.Field{ID: "id", Kind: model.KindHidden},
	)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return schema
}

func TestValidateEndToEnd(t *testing.T) {
	schema := model.MustSchema(
		model.Field{ID: "name", Required: true},
		model.Field{ID: "price", Kind: model.KindNumber, Required: true, Min: model.Float(0), Units: priceUnits()},
	)

	result := validation.Validate(map[string]string{
		"name":               "",
		"price":              "3",
		"price-number-units": "pounds",
	}, schema)

	wantErrors := map[string][]string{"name": {"Required field 'Name' not completed."}}
	if diff := cmp.Diff(wantErrors, result.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got, _ := result.Value("price"); got != int64(300) {
		t.Fatalf("expected price 300, got %#v", got)
	}
	if result.IsValid() {
		t.Fatalf("expected invalid result")
	}
}

func TestOptionalAbsentFieldsProduceNothing(t *testing.T) {
	schema := productSchema(t)
	result := validation.New(schema).Validate(map[string]string{
		"name":               "Widget",
		"price":              "1",
		"price-number-units": "pence",
		"id":                 "@new@",
		"height":             "",
	})

	if !result.IsValid() {
		t.Fatalf("expected valid result, got %v", result.Errors())
	}
	for _, id := range []string{"description", "height", "ratio", "colour"} {
		if _, ok := result.Value(id); ok {
			t.Errorf("expected no value for %q", id)
		}
		if result.IsFieldInError(id) {
			t.Errorf("expected no error for %q", id)
		}
	}
	want := map[string]any{"name": "Widget", "price": int64(1), "id": "@new@"}
	if diff := cmp.Diff(want, result.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestHiddenFieldAlwaysRequired(t *testing.T) {
	for _, required := range []bool{false, true} {
		schema := model.MustSchema(model.Field{ID: "id", Kind: model.KindHidden, Required: required})
		result := validation.Validate(nil, schema)
		want := []string{"Invalid 'id' supplied."}
		if diff := cmp.Diff(want, result.FieldErrors("id")); diff != "" {
			t.Fatalf("required=%v hidden errors mismatch (-want +got):\n%s", required, diff)
		}
	}
}

func TestNumberUnitCoercion(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "price", Kind: model.KindNumber, Units: priceUnits()})

	cases := []struct {
		name string
		raw  map[string]string
		want any
	}{
		{name: "pounds", raw: map[string]string{"price": "2", "price-number-units": "pounds"}, want: int64(200)},
		{name: "pence", raw: map[string]string{"price": "2", "price-number-units": "pence"}, want: int64(2)},
		{name: "fractional pounds", raw: map[string]string{"price": "2.2", "price-number-units": "pounds"}, want: int64(220)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := validation.Validate(tc.raw, schema)
			if !result.IsValid() {
				t.Fatalf("expected valid, got %v", result.Errors())
			}
			if got, _ := result.Value("price"); got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestNumberUnknownUnits(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "price", Kind: model.KindNumber, Min: model.Float(1000), Units: priceUnits()})

	for name, raw := range map[string]map[string]string{
		"unrecognised": {"price": "2", "price-number-units": "euros"},
		"missing":      {"price": "2"},
	} {
		t.Run(name, func(t *testing.T) {
			result := validation.Validate(raw, schema)
			errs := result.FieldErrors("price")
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			want := "Unknown units selection '" + raw["price-number-units"] + "' for 'Price'."
			if errs[0] != want {
				t.Fatalf("unexpected message %q", errs[0])
			}
			if _, ok := result.Value("price"); ok {
				t.Fatalf("expected no value for price")
			}
		})
	}
}

func TestNumberOverflowAfterMultiplication(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "price", Kind: model.KindNumber, Max: model.Float(1000), Units: priceUnits()})
	result := validation.Validate(map[string]string{"price": "1e308", "price-number-units": "pounds"}, schema)

	want := []string{"Field 'Price' is out of range."}
	if diff := cmp.Diff(want, result.FieldErrors("price")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got, ok := result.Value("price"); ok {
		t.Fatalf("expected no value for price, got %#v", got)
	}
	if _, err := json.Marshal(result.Report()); err != nil {
		t.Fatalf("report should encode: %v", err)
	}
}

func TestNumberIntegerCheckAfterMultiplication(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "price", Kind: model.KindNumber, Title: "Price", Units: priceUnits()})
	result := validation.Validate(map[string]string{"price": "2.5", "price-number-units": "pence"}, schema)

	want := []string{"Field 'Price' must be an integer (in its smallest unit)."}
	if diff := cmp.Diff(want, result.FieldErrors("price")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got, _ := result.Value("price"); got != 2.5 {
		t.Fatalf("expected float value to be kept, got %#v", got)
	}
}

func TestIntegerBoundsAndCoercion(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "height", Kind: model.KindInteger, Title: "Height", Min: model.Float(1), Max: model.Float(1000)})

	cases := []struct {
		raw        string
		wantErrors []string
		wantValue  any
	}{
		{raw: "0", wantErrors: []string{"Field 'Height' must be greater than or equal to 1."}, wantValue: int64(0)},
		{raw: "1001", wantErrors: []string{"Field 'Height' must be less than or equal to 1000."}, wantValue: int64(1001)},
		{raw: "5.5", wantErrors: []string{"Field 'Height' must be an integer (in its smallest unit)."}, wantValue: 5.5},
		{raw: "5", wantValue: int64(5)},
		{raw: "abc", wantErrors: []string{"Field 'Height' must be a number."}, wantValue: "abc"},
		{raw: "NaN", wantErrors: []string{"Field 'Height' must be a number."}, wantValue: "NaN"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			result := validation.Validate(map[string]string{"height": tc.raw}, schema)
			if diff := cmp.Diff(tc.wantErrors, result.FieldErrors("height")); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if got, _ := result.Value("height"); got != tc.wantValue {
				t.Fatalf("expected value %#v, got %#v", tc.wantValue, got)
			}
		})
	}
}

func TestIntegerAndBoundErrorsBothFire(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "count", Kind: model.KindInteger, Min: model.Float(10)})
	result := validation.Validate(map[string]string{"count": "2.5"}, schema)

	want := []string{
		"Field 'Count' must be an integer (in its smallest unit).",
		"Field 'Count' must be greater than or equal to 10.",
	}
	if diff := cmp.Diff(want, result.FieldErrors("count")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFloatSkipsIntegerCheck(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "ratio", Kind: model.KindFloat, Min: model.Float(0), Max: model.Float(1)})

	result := validation.Validate(map[string]string{"ratio": "0.25"}, schema)
	if !result.IsValid() {
		t.Fatalf("expected valid, got %v", result.Errors())
	}
	if got, _ := result.Value("ratio"); got != 0.25 {
		t.Fatalf("expected 0.25, got %#v", got)
	}

	result = validation.Validate(map[string]string{"ratio": "1.5"}, schema)
	want := []string{"Field 'Ratio' must be less than or equal to 1."}
	if diff := cmp.Diff(want, result.FieldErrors("ratio")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectRejectsUnknownOption(t *testing.T) {
	schema := productSchema(t)
	raw := map[string]string{
		"name": "x", "price": "1", "price-number-units": "pence", "id": "1",
		"colour": "blue",
	}
	result := validation.Validate(raw, schema)
	want := map[string][]string{"colour": {"Invalid selection 'blue' for 'Colour'."}}
	if diff := cmp.Diff(want, result.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorsAggregateAcrossFields(t *testing.T) {
	schema := productSchema(t)
	result := validation.Validate(map[string]string{
		"price":  "-1",
		"height": "2000",
	}, schema)

	wantFields := []string{"height", "id", "name", "price"}
	if diff := cmp.Diff(wantFields, result.FieldsInError()); diff != "" {
		t.Fatalf("fields in error mismatch (-want +got):\n%s", diff)
	}
	if got := result.FieldErrors("price"); len(got) != 1 || got[0] != "Unknown units selection '' for 'Price'." {
		t.Fatalf("unexpected price errors %v", got)
	}
	if result.FieldErrors("description") != nil {
		t.Fatalf("expected nil errors for clean field")
	}
}

func TestValidateValuesUsesFirstValue(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "name", Required: true})
	result := validation.New(schema).ValidateValues(url.Values{"name": {"first", "second"}, "extra": {}})
	if got, _ := result.Value("name"); got != "first" {
		t.Fatalf("expected first value, got %#v", got)
	}
	if submitted, ok := result.Submitted("name"); !ok || submitted != "first" {
		t.Fatalf("expected submitted value retained, got %q", submitted)
	}
}

func TestValidatorFreezesResults(t *testing.T) {
	schema := model.MustSchema(model.Field{ID: "name"})
	result := validation.New(schema, validation.WithFrozenResults()).Validate(nil)
	if !result.Frozen() {
		t.Fatalf("expected frozen result")
	}
}
