package markup

import (
	"io"
	"strings"
)

// DefaultSelfClosingTags lists the void elements rendered as <tag />.
var DefaultSelfClosingTags = []string{"area", "base", "basefont", "br", "hr", "input", "img", "link", "meta"}

// Serializer writes nodes as markup. Its self-closing set decides how
// childless nodes are closed.
type Serializer struct {
	selfClosing map[string]struct{}
}

var defaultSerializer = NewSerializer(DefaultSelfClosingTags...)

// NewSerializer builds a serializer with the given self-closing tags.
func NewSerializer(selfClosing ...string) *Serializer {
	set := make(map[string]struct{}, len(selfClosing))
	for _, tag := range selfClosing {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return &Serializer{selfClosing: set}
}

// DefaultSerializer returns the serializer used by Node.String.
func DefaultSerializer() *Serializer {
	return defaultSerializer
}

// IsSelfClosing reports whether a childless tag renders as <tag />.
func (s *Serializer) IsSelfClosing(tag string) bool {
	_, ok := s.selfClosing[tag]
	return ok
}

// Serialize renders n and its descendants.
func (s *Serializer) Serialize(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	s.write(&b, n)
	return b.String()
}

// WriteNode writes the serialized form of n to w.
func (s *Serializer) WriteNode(w io.Writer, n *Node) (int64, error) {
	written, err := io.WriteString(w, s.Serialize(n))
	return int64(written), err
}

func (s *Serializer) write(b *strings.Builder, n *Node) {
	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, attr := range n.attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}

	if len(n.children) == 0 {
		if s.IsSelfClosing(n.tag) {
			b.WriteString(" />\n")
			return
		}
		b.WriteString("></")
		b.WriteString(n.tag)
		b.WriteByte('>')
		return
	}

	b.WriteString(">\n")
	for _, child := range n.children {
		switch c := child.(type) {
		case *Node:
			s.write(b, c)
		case Text:
			b.WriteString(string(c))
		}
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}

// String serializes the node with the default serializer.
func (n *Node) String() string {
	return defaultSerializer.Serialize(n)
}

// WriteTo implements io.WriterTo using the default serializer.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	return defaultSerializer.WriteNode(w, n)
}
