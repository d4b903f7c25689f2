// Package rendering interprets a TemplateSchema over ResumeData into a continuous HTML document tree.
package rendering

import (
	"html"
	"strconv"
	"strings"
)

// Node is one element of the continuous document tree
type Node struct {
	Tag      string
	Attrs    []Attr
	Style    Style
	Text     string
	Children []*Node
}

// Attr is an HTML attribute. Order is preserved so output is deterministic.
type Attr struct {
	Key   string
	Value string
}

// Decl is one CSS declaration
type Decl struct {
	Prop  string
	Value string
}

// Style is an ordered list of CSS declarations
type Style []Decl

// Get returns the value of prop, or "" if absent. Later declarations win.
func (s Style) Get(prop string) string {
	v := ""
	for _, d := range s {
		if d.Prop == prop {
			v = d.Value
		}
	}
	return v
}

// String renders the declarations as an inline style attribute value
func (s Style) String() string {
	var sb strings.Builder
	for i, d := range s {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(d.Prop)
		sb.WriteByte(':')
		sb.WriteString(SanitizeCSSValue(d.Value))
	}
	return sb.String()
}

// el builds an element node
func el(tag string, style Style, children ...*Node) *Node {
	kids := make([]*Node, 0, len(children))
	for _, c := range children {
		if c != nil {
			kids = append(kids, c)
		}
	}
	return &Node{Tag: tag, Style: style, Children: kids}
}

// text builds a leaf node holding escaped text
func text(tag, content string, style Style) *Node {
	return &Node{Tag: tag, Style: style, Text: content}
}

// attr appends an attribute and returns the node for chaining
func (n *Node) attr(key, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Attr returns the value of the named attribute
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Walk visits n and its descendants depth-first. Returning false skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TextContent concatenates the text of n and its descendants
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(m *Node) bool {
		sb.WriteString(m.Text)
		return true
	})
	return sb.String()
}

// WriteHTML serializes the subtree. Output depends only on the tree, never on map order or time.
func (n *Node) WriteHTML(sb *strings.Builder) {
	if n == nil {
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Value))
		sb.WriteByte('"')
	}
	if len(n.Style) > 0 {
		sb.WriteString(` style="`)
		sb.WriteString(html.EscapeString(n.Style.String()))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	sb.WriteString(html.EscapeString(n.Text))
	for _, c := range n.Children {
		c.WriteHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// px formats a length in original-document units
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// pct formats a percentage
func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// num formats a unitless number
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
