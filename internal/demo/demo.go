// Package demo holds the product form used by the example server, the CLI and
// tests.
package demo

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/model"
)

//go:embed product.yaml
var files embed.FS

// ProductFile is the name of the embedded YAML declaration of Product.
const ProductFile = "product.yaml"

// NewID is the hidden id value of a record that has not been saved yet.
const NewID = "@new@"

// FS exposes the embedded schema files.
func FS() fs.FS {
	return files
}

// Product returns the product schema: a required name, an optional
// description, a price entered in pounds or pence and stored in pence, a
// height in centimetres and a hidden record id.
func Product() *model.Schema {
	return model.MustSchema(
		model.Field{ID: "name", Title: "The name of the object", Required: true},
		model.Field{ID: "description", Kind: model.KindTextArea, Title: "A description of the object."},
		model.Field{
			ID:       "price",
			Kind:     model.KindNumber,
			Required: true,
			Title:    "How much the object costs.",
			Min:      model.Float(0),
			Units: model.UnitTable(
				model.Unit{Label: "pounds", Multiplier: 100},
				model.Unit{Label: "pence", Multiplier: 1},
			),
		},
		model.Field{
			ID:    "height",
			Kind:  model.KindInteger,
			Title: "How tall the object is.",
			Units: model.DisplayUnits("cm"),
			Min:   model.Float(1),
			Max:   model.Float(1000),
		},
		model.Field{ID: "id", Kind: model.KindHidden},
	)
}
