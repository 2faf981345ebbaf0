// Package schemafile loads field schemas from YAML or JSON documents.
//
// A document carries a top-level "fields" entry, either a mapping from field
// id to definition or a sequence of definitions with an "id" key. Declaration
// order is schema order:
//
//	fields:
//	  price:
//	    kind: number
//	    required: true
//	    min: 0
//	    units:
//	      pounds: 100
//	      pence: 1
//	  colour:
//	    kind: select
//	    options: [red, green]
//
// Units given as a scalar are display units; a mapping is a unit table.
// Options given as a sequence are bare values; a mapping pairs values with
// labels.
package schemafile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrEmpty is returned for documents with no content.
var ErrEmpty = errors.New("schemafile: document is empty")

const defaultSource = "schema"

// Parse decodes a schema document.
func Parse(data []byte) (*model.Schema, error) {
	return parse(data, defaultSource)
}

// Load reads and decodes name from fsys.
func Load(fsys fs.FS, name string) (*model.Schema, error) {
	if fsys == nil {
		return nil, errors.New("schemafile: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", name, err)
	}
	return parse(data, name)
}

// LoadFile reads and decodes a schema from the local filesystem.
func LoadFile(path string) (*model.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return parse(data, path)
}

type fieldFile struct {
	ID       string    `yaml:"id"`
	Kind     string    `yaml:"kind"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Required bool      `yaml:"required"`
	Min      *float64  `yaml:"min"`
	Max      *float64  `yaml:"max"`
	Size     int       `yaml:"size"`
	Step     *float64  `yaml:"step"`
	Units    yaml.Node `yaml:"units"`
	Options  yaml.Node `yaml:"options"`
}

var knownKeys = map[string]struct{}{
	"id": {}, "kind": {}, "type": {}, "title": {}, "required": {},
	"min": {}, "max": {}, "size": {}, "step": {}, "units": {}, "options": {},
}

func parse(data []byte, source string) (*model.Schema, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, source)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: parse %s: %w", source, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, source)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errAt(source, root, "document must be a mapping")
	}

	list := lookup(root, "fields")
	if list == nil {
		return nil, errAt(source, root, `missing "fields"`)
	}

	var fields []model.Field
	switch list.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(list.Content); i += 2 {
			key, value := list.Content[i], list.Content[i+1]
			field, err := decodeField(source, value, key.Value)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
	case yaml.SequenceNode:
		for _, value := range list.Content {
			field, err := decodeField(source, value, "")
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
	default:
		return nil, errAt(source, list, `"fields" must be a mapping or a sequence`)
	}

	schema, err := model.NewSchema(fields...)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", source, err)
	}
	return schema, nil
}

func decodeField(source string, node *yaml.Node, id string) (model.Field, error) {
	if node.Kind != yaml.MappingNode {
		// A bare key declares a default text field.
		if id != "" && node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			return model.Field{ID: id}, nil
		}
		return model.Field{}, errAt(source, node, "field definition must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if _, ok := knownKeys[key.Value]; !ok {
			return model.Field{}, errAt(source, key, "unknown field key %q", key.Value)
		}
	}

	var raw fieldFile
	if err := node.Decode(&raw); err != nil {
		return model.Field{}, fmt.Errorf("schemafile: %s:%d: %w", source, node.Line, err)
	}
	if id == "" {
		id = raw.ID
	} else if raw.ID != "" && raw.ID != id {
		return model.Field{}, errAt(source, node, "id %q conflicts with key %q", raw.ID, id)
	}
	if strings.TrimSpace(id) == "" {
		return model.Field{}, errAt(source, node, "field id is required")
	}

	kindName := raw.Kind
	if kindName == "" {
		kindName = raw.Type
	} else if raw.Type != "" && raw.Type != raw.Kind {
		return model.Field{}, errAt(source, node, "kind %q conflicts with type %q", raw.Kind, raw.Type)
	}
	kind, err := model.ParseKind(kindName)
	if err != nil {
		return model.Field{}, fmt.Errorf("schemafile: %s:%d: field %q: %w", source, node.Line, id, err)
	}

	field := model.Field{
		ID:       id,
		Kind:     kind,
		Title:    raw.Title,
		Required: raw.Required,
		Min:      raw.Min,
		Max:      raw.Max,
		Size:     raw.Size,
		Step:     raw.Step,
	}
	if field.Units, err = decodeUnits(source, &raw.Units); err != nil {
		return model.Field{}, err
	}
	if field.Options, err = decodeOptions(source, &raw.Options); err != nil {
		return model.Field{}, err
	}
	return field, nil
}

func decodeUnits(source string, node *yaml.Node) (model.Units, error) {
	switch node.Kind {
	case 0:
		return model.Units{}, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return model.Units{}, nil
		}
		return model.DisplayUnits(node.Value), nil
	case yaml.MappingNode:
		units := make([]model.Unit, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			label, value := node.Content[i], node.Content[i+1]
			var multiplier float64
			if err := value.Decode(&multiplier); err != nil {
				return model.Units{}, errAt(source, value, "unit %q multiplier must be a number", label.Value)
			}
			units = append(units, model.Unit{Label: label.Value, Multiplier: multiplier})
		}
		return model.UnitTable(units...), nil
	default:
		return model.Units{}, errAt(source, node, "units must be a string or a mapping")
	}
}

func decodeOptions(source string, node *yaml.Node) (model.Options, error) {
	switch node.Kind {
	case 0:
		return model.Options{}, nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return model.Options{}, errAt(source, item, "option must be a scalar")
			}
			values = append(values, item.Value)
		}
		return model.Items(values...), nil
	case yaml.MappingNode:
		pairs := make([]markup.Option, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, label := node.Content[i], node.Content[i+1]
			if label.Kind != yaml.ScalarNode {
				return model.Options{}, errAt(source, label, "option %q label must be a scalar", value.Value)
			}
			pairs = append(pairs, markup.Option{Value: value.Value, Label: label.Value})
		}
		return model.Pairs(pairs...), nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return model.Options{}, nil
		}
	}
	return model.Options{}, errAt(source, node, "options must be a sequence or a mapping")
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func errAt(source string, node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("schemafile: %s:%d: %s", source, node.Line, fmt.Sprintf(format, args...))
}
