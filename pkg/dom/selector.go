package dom

import (
	"fmt"
	"strings"
)

// simpleSelector is one compound simple selector: tag#id.class[attr=value].
type simpleSelector struct {
	tag      string
	id       string
	classes  []string
	attrs    [][2]string // name, value; empty value with presence-only form
	presence map[string]bool
}

// ParseSelector validates a selector string. It returns an error describing
// the first malformed part. The selector language is intentionally small:
// compound simple selectors (tag, #id, .class, [attr], [attr=value]) with
// comma-separated alternatives.
func ParseSelector(s string) error {
	_, err := parseSelectorList(s)
	return err
}

func parseSelectorList(s string) ([]simpleSelector, error) {
	parts := strings.Split(s, ",")
	out := make([]simpleSelector, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty selector in %q", s)
		}
		sel, err := parseCompound(part)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func parseCompound(s string) (simpleSelector, error) {
	var sel simpleSelector
	sel.presence = make(map[string]bool)
	i := 0
	readName := func() string {
		start := i
		for i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
		sel.tag = strings.ToLower(readName())
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			name := readName()
			if name == "" {
				return sel, fmt.Errorf("selector %q: empty id", s)
			}
			sel.id = name
		case '.':
			i++
			name := readName()
			if name == "" {
				return sel, fmt.Errorf("selector %q: empty class", s)
			}
			sel.classes = append(sel.classes, name)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return sel, fmt.Errorf("selector %q: unterminated attribute", s)
			}
			body := s[i+1 : i+end]
			i += end + 1
			if body == "" {
				return sel, fmt.Errorf("selector %q: empty attribute", s)
			}
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				name := body[:eq]
				val := strings.Trim(body[eq+1:], `"'`)
				if name == "" {
					return sel, fmt.Errorf("selector %q: empty attribute name", s)
				}
				sel.attrs = append(sel.attrs, [2]string{name, val})
			} else {
				sel.presence[body] = true
			}
		default:
			return sel, fmt.Errorf("selector %q: unexpected %q", s, s[i])
		}
	}
	return sel, nil
}

func (sel simpleSelector) matches(e *Element) bool {
	if e.IsText() {
		return false
	}
	if sel.tag != "" && !strings.EqualFold(sel.tag, e.Tag) {
		return false
	}
	if sel.id != "" && e.ID() != sel.id {
		return false
	}
	for _, c := range sel.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	for name := range sel.presence {
		if !e.HasAttr(name) {
			return false
		}
	}
	for _, kv := range sel.attrs {
		v, ok := e.Attr(kv[0])
		if !ok || v != kv[1] {
			return false
		}
	}
	return true
}

// Matches reports whether the element matches the selector. A malformed
// selector matches nothing; use ParseSelector to surface syntax errors.
func (e *Element) Matches(selector string) bool {
	list, err := parseSelectorList(selector)
	if err != nil {
		return false
	}
	for _, sel := range list {
		if sel.matches(e) {
			return true
		}
	}
	return false
}

// Closest returns the first of the element and its ancestors that matches
// the selector, or nil.
func (e *Element) Closest(selector string) *Element {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil
	}
	for n := e; n != nil; n = n.parent {
		for _, sel := range list {
			if sel.matches(n) {
				return n
			}
		}
	}
	return nil
}

// Find returns all descendants of e (excluding e itself) matching the
// selector, in document order.
func (e *Element) Find(selector string) []*Element {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	var walk func(n *Element)
	walk = func(n *Element) {
		for _, c := range n.children {
			for _, sel := range list {
				if sel.matches(c) {
					out = append(out, c)
					break
				}
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// FindFirst returns the first descendant matching the selector, or nil.
func (e *Element) FindFirst(selector string) *Element {
	all := e.Find(selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}
