package dom

import (
	"sort"
	"strings"
)

// Element is a node in the document tree. A Tag of "" marks a text node,
// whose content lives in Text.
type Element struct {
	Tag  string
	Text string

	attrs     map[string]string
	parent    *Element
	children  []*Element
	listeners map[string][]*Listener
}

// Document is an element tree with a designated root. Popover panels are
// attached to Root, and document-level listeners are registered on it.
type Document struct {
	Root *Element
}

// NewDocument creates an empty document with a body root element.
func NewDocument() *Document {
	return &Document{Root: NewElement("body")}
}

// NewElement creates an element with the given tag and no attributes.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// NewText creates a text node.
func NewText(text string) *Element {
	return &Element{Text: text}
}

// IsText reports whether the element is a text node.
func (e *Element) IsText() bool { return e.Tag == "" }

// Attr returns the value of the named attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// AttrNames returns the element's attribute names in sorted order.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.attrs))
	for n := range e.attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ID returns the element's id attribute, or "".
func (e *Element) ID() string {
	v, _ := e.attrs["id"]
	return v
}

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	v, ok := e.attrs["class"]
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// HasClass reports whether the element carries the given class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// Parent returns the element's parent, or nil for a detached element.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the element's child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// AppendChild attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	child.Detach()
	child.parent = e
	e.children = append(e.children, child)
}

// Detach removes the element from its parent, if any. The element keeps its
// own subtree and listeners and can be re-attached later.
func (e *Element) Detach() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Attached reports whether the element currently has a parent.
func (e *Element) Attached() bool { return e.parent != nil }

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of the element's subtree.
func (e *Element) TextContent() string {
	if e.IsText() {
		return e.Text
	}
	var b strings.Builder
	for _, c := range e.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}
