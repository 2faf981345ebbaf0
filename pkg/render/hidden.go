package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
)

// HiddenInputs holds the hidden-kind inputs of a rendered form, keyed by
// field id in schema order. They are kept out of the visible table so the
// caller can assign values and place them inside the form.
type HiddenInputs struct {
	ids   []string
	nodes map[string]*markup.Node
}

func newHiddenInputs() *HiddenInputs {
	return &HiddenInputs{nodes: make(map[string]*markup.Node)}
}

func (h *HiddenInputs) add(id string, node *markup.Node) {
	if _, exists := h.nodes[id]; !exists {
		h.ids = append(h.ids, id)
	}
	h.nodes[id] = node
}

// Get returns the input for id, or nil.
func (h *HiddenInputs) Get(id string) *markup.Node {
	return h.nodes[id]
}

// IDs returns the field ids in schema order.
func (h *HiddenInputs) IDs() []string {
	out := make([]string, len(h.ids))
	copy(out, h.ids)
	return out
}

// Len reports the number of hidden inputs.
func (h *HiddenInputs) Len() int {
	return len(h.ids)
}

// SetValues assigns value attributes by field id and returns the entries
// whose id is not a hidden field of the schema.
func (h *HiddenInputs) SetValues(values map[string]string) map[string]string {
	var unknown map[string]string
	for id, value := range values {
		if node := h.nodes[id]; node != nil {
			node.SetAttribute("value", value)
			continue
		}
		if unknown == nil {
			unknown = make(map[string]string)
		}
		unknown[id] = value
	}
	return unknown
}

// Children returns the inputs as tree children, ready for AppendChildren.
func (h *HiddenInputs) Children() []markup.Child {
	out := make([]markup.Child, 0, len(h.ids))
	for _, id := range h.ids {
		out = append(out, h.nodes[id])
	}
	return out
}

// HiddenField is a hidden name/value pair that is not part of the schema, such
// as the submission marker.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// Node builds the hidden input for f.
func (f HiddenField) Node() *markup.Node {
	return markup.Input(markup.A("type", "hidden", "name", f.Name, "value", f.Value))
}

// SubmissionMarker is the hidden field whose presence gates validation.
func SubmissionMarker(name, value string) HiddenField {
	return Hidden(name, value)
}

// IsSubmission reports whether raw carries the marker with the expected value.
func IsSubmission(raw map[string]string, marker HiddenField) bool {
	if marker.Name == "" {
		return false
	}
	got, ok := raw[marker.Name]
	return ok && got == marker.Value
}

// SortedHiddenFields turns a name/value map into hidden fields ordered by
// trimmed name. Blank names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		if key := strings.TrimSpace(name); key != "" {
			clean[key] = value
		}
	}
	if len(clean) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(clean))
	for _, name := range slices.Sorted(maps.Keys(clean)) {
		out = append(out, HiddenField{Name: name, Value: clean[name]})
	}
	return out
}
