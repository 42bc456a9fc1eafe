// Package template renders popover markup from placeholder templates.
//
// # Placeholders
//
// A template is a markup string containing placeholders of the form
// __name__. Render replaces every occurrence of each placeholder with the
// corresponding value from the data map, optionally HTML-escaping the value
// first. Matching is literal substring search, never pattern matching, so
// placeholder names containing regex metacharacters (a key named "a.b"
// matches only the literal "__a.b__") behave exactly like plain names.
//
// # Content modes
//
// The widget's configured content decides whether templating happens at
// all. Classify sorts a content value into one of three modes:
//
//   - Values: a map of placeholder data, substituted into the template
//   - Markup: a ready markup string (or element), used directly as the body
//   - Remote: a URL string whose fetched response becomes Markup
//
// # Template sources
//
// SourceFrom extracts a template from a document element: holder elements
// (<template>, or <script type="text/x-popover-template">) contribute their
// inner markup; any other element contributes its outer markup including
// its own tag.
package template
