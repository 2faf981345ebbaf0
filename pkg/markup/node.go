package markup

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list; serialization follows its order.
type Attrs []Attr

// A builds Attrs from alternating name/value arguments.
func A(pairs ...string) Attrs {
	if len(pairs)%2 != 0 {
		violation("A", "", ErrOddAttrs)
	}
	out := make(Attrs, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// Child is implemented by the values a Node can hold: *Node and Text.
type Child interface {
	isChild()
}

// Text is a literal child written verbatim.
type Text string

func (Text) isChild() {}

// Node is a single element in the tree.
type Node struct {
	tag      string
	attrs    []Attr
	children []Child
	attached bool
}

func (*Node) isChild() {}

// New creates a node with the supplied attributes and children. Later
// duplicates in attrs overwrite earlier values in place.
func New(tag string, attrs Attrs, children ...Child) *Node {
	return newNode("New", 2, tag, attrs, children)
}

// El is shorthand for New without attributes.
func El(tag string, children ...Child) *Node {
	return newNode("El", 2, tag, nil, children)
}

// newNode builds a node; depth counts the frames between appendChildren and
// the public caller.
func newNode(op string, depth int, tag string, attrs Attrs, children []Child) *Node {
	n := &Node{tag: tag}
	for _, attr := range attrs {
		n.setAttribute(attr.Name, attr.Value)
	}
	if len(children) > 0 {
		n.appendChildren(op, depth, children)
	}
	return n
}

// Tag returns the element name.
func (n *Node) Tag() string {
	return n.tag
}

// Attribute returns the value of name and whether it is set.
func (n *Node) Attribute(name string) (string, bool) {
	for _, attr := range n.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Attributes returns a copy of the attributes in insertion order.
func (n *Node) Attributes() Attrs {
	if len(n.attrs) == 0 {
		return nil
	}
	out := make(Attrs, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// SetAttribute sets name to value, keeping the original position when the
// attribute already exists.
func (n *Node) SetAttribute(name, value string) {
	n.setAttribute(name, value)
}

// RemoveAttribute deletes name. Removing an unset attribute is a no-op.
func (n *Node) RemoveAttribute(name string) {
	for i, attr := range n.attrs {
		if attr.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// SetOptionalAttribute sets name when value is non-nil and removes it otherwise.
func (n *Node) SetOptionalAttribute(name string, value *string) {
	if value == nil {
		n.RemoveAttribute(name)
		return
	}
	n.setAttribute(name, *value)
}

func (n *Node) setAttribute(name, value string) {
	for i, attr := range n.attrs {
		if attr.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// Children returns a copy of the child list.
func (n *Node) Children() []Child {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]Child, len(n.children))
	copy(out, n.children)
	return out
}

// Len reports the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// AppendChildren appends children in order. Pass a slice with list... to
// append an existing collection.
func (n *Node) AppendChildren(children ...Child) {
	n.appendChildren("AppendChildren", 1, children)
}

// AppendText appends each string as a Text child.
func (n *Node) AppendText(text ...string) {
	for _, t := range text {
		n.children = append(n.children, Text(t))
	}
}

// CreateChild creates a node, appends it and returns it.
func (n *Node) CreateChild(tag string, attrs Attrs, children ...Child) *Node {
	child := newNode("CreateChild", 2, tag, attrs, children)
	n.appendChildren("CreateChild", 1, []Child{child})
	return child
}

func (n *Node) appendChildren(op string, depth int, children []Child) {
	for _, child := range children {
		node, ok := child.(*Node)
		if !ok {
			if child != nil {
				n.children = append(n.children, child)
			}
			continue
		}
		switch {
		case node == nil:
			violationAt(depth, op, n.tag, ErrNilNode)
		case node.attached:
			violationAt(depth, op, n.tag, ErrNodeAttached)
		case node == n || node.contains(n):
			violationAt(depth, op, n.tag, ErrCycle)
		}
		node.attached = true
		n.children = append(n.children, node)
	}
}

func (n *Node) contains(target *Node) bool {
	for _, child := range n.children {
		node, ok := child.(*Node)
		if !ok {
			continue
		}
		if node == target || node.contains(target) {
			return true
		}
	}
	return false
}
