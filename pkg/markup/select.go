package markup

// Option is one <option> entry of a select control.
type Option struct {
	Value string
	Label string
}

// Input builds a void <input> node.
func Input(attrs Attrs) *Node {
	return New("input", attrs)
}

// Select builds a <select> whose options appear in order. The option whose
// value equals selected is marked selected="selected".
func Select(options []Option, attrs Attrs, selected string) *Node {
	sel := New("select", attrs)
	for _, option := range options {
		opt := New("option", Attrs{{Name: "value", Value: option.Value}})
		if option.Value == selected {
			opt.SetAttribute("selected", "selected")
		}
		opt.AppendText(option.Label)
		sel.AppendChildren(opt)
	}
	return sel
}
