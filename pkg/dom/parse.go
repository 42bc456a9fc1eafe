package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a full HTML document and returns a Document whose Root is the
// body element.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	body := findNode(node, "body")
	if body == nil {
		return nil, fmt.Errorf("parse document: no body element")
	}
	return &Document{Root: fromNode(body)}, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses a markup fragment in body context and returns its
// top-level elements. Text nodes containing only whitespace are dropped at
// the top level.
func ParseFragment(s string) ([]*Element, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	var out []*Element
	for _, n := range nodes {
		e := fromNode(n)
		if e == nil {
			continue
		}
		if e.IsText() && strings.TrimSpace(e.Text) == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// fromNode converts an html.Node subtree into an Element subtree.
// Comments, doctypes and other non-content nodes are dropped.
func fromNode(n *html.Node) *Element {
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data)
	case html.ElementNode:
		e := NewElement(n.Data)
		for _, a := range n.Attr {
			e.SetAttr(a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromNode(c); child != nil {
				e.AppendChild(child)
			}
		}
		return e
	default:
		return nil
	}
}

// toNode converts an Element subtree into an html.Node subtree. Attributes
// are emitted in sorted name order so serialization is deterministic.
func toNode(e *Element) *html.Node {
	if e.IsText() {
		return &html.Node{Type: html.TextNode, Data: e.Text}
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.Tag,
		DataAtom: atom.Lookup([]byte(e.Tag)),
	}
	for _, name := range e.AttrNames() {
		v, _ := e.Attr(name)
		n.Attr = append(n.Attr, html.Attribute{Key: name, Val: v})
	}
	for _, c := range e.children {
		n.AppendChild(toNode(c))
	}
	return n
}

// OuterHTML serializes the element including its own tag.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, toNode(e)); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for _, c := range e.children {
		if err := html.Render(&buf, toNode(c)); err != nil {
			return ""
		}
	}
	return buf.String()
}

// SetInnerHTML replaces the element's children with the parsed fragment.
func (e *Element) SetInnerHTML(markup string) error {
	children, err := ParseFragment(markup)
	if err != nil {
		return err
	}
	for _, c := range e.Children() {
		c.Detach()
	}
	for _, c := range children {
		e.AppendChild(c)
	}
	return nil
}
