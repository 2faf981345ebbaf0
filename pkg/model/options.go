package model

import "github.com/goliatone/go-formkit/pkg/markup"

// OptionsKind records how an option list was declared.
type OptionsKind uint8

const (
	// OptionsItems declares bare values; each value is its own label.
	OptionsItems OptionsKind = iota
	// OptionsPairs declares explicit value to label pairs.
	OptionsPairs
)

// Options is the ordered set of choices offered by a select field.
type Options struct {
	kind  OptionsKind
	items []markup.Option
}

// Items declares options whose labels equal their values.
func Items(values ...string) Options {
	items := make([]markup.Option, 0, len(values))
	for _, value := range values {
		items = append(items, markup.Option{Value: value, Label: value})
	}
	return Options{kind: OptionsItems, items: items}
}

// Pairs declares options with explicit labels.
func Pairs(pairs ...markup.Option) Options {
	items := make([]markup.Option, len(pairs))
	copy(items, pairs)
	return Options{kind: OptionsPairs, items: items}
}

// NamedOptions declares options labelled by IDToName of each value.
func NamedOptions(values ...string) Options {
	items := make([]markup.Option, 0, len(values))
	for _, value := range values {
		items = append(items, markup.Option{Value: value, Label: IDToName(value)})
	}
	return Options{kind: OptionsPairs, items: items}
}

// Kind reports how the options were declared.
func (o Options) Kind() OptionsKind { return o.kind }

// Len reports the number of options.
func (o Options) Len() int { return len(o.items) }

// List returns a copy of the options in declaration order.
func (o Options) List() []markup.Option {
	if len(o.items) == 0 {
		return nil
	}
	out := make([]markup.Option, len(o.items))
	copy(out, o.items)
	return out
}

// Has reports whether value is one of the declared option values.
func (o Options) Has(value string) bool {
	for _, item := range o.items {
		if item.Value == value {
			return true
		}
	}
	return false
}
