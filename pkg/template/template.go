package template

import (
	"html"
	"strings"
)

// Delimiter wraps placeholder names in templates: a data key "title" binds
// to the literal text "__title__".
const Delimiter = "__"

// Render substitutes placeholder values into a template. Every occurrence
// of __name__ is replaced for each key in data. When escape is true, values
// are HTML-escaped (&, <, >, and both quote characters) before insertion;
// when false they are inserted verbatim and the caller vouches for them.
//
// Placeholder names are treated as literal text, so names containing
// pattern metacharacters substitute correctly.
func Render(template string, data map[string]string, escape bool) string {
	out := template
	for name, value := range data {
		if escape {
			value = html.EscapeString(value)
		}
		out = strings.ReplaceAll(out, Delimiter+name+Delimiter, value)
	}
	return out
}
