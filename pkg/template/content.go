package template

import (
	"regexp"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/errors"
)

// Content is a classified popover content value. The concrete type selects
// the rendering path: Values goes through Render, Markup is used directly
// as the popover body, Remote is fetched first.
type Content interface {
	isContent()
}

// Values is placeholder data for template substitution.
type Values map[string]string

// Markup is a ready markup fragment used verbatim as the popover body.
type Markup string

// Remote is a URL whose fetched response body becomes the popover Markup.
type Remote string

func (Values) isContent() {}
func (Markup) isContent() {}
func (Remote) isContent() {}

// urlPattern recognizes absolute http(s) URLs and absolute or relative
// paths. A plain markup string never starts with these prefixes.
var urlPattern = regexp.MustCompile(`^(?:https?://|/|\./|\.\./)`)

// IsURL reports whether s looks like a fetchable URL rather than markup.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// Classify sorts a configured content value into its Content mode.
//
// Accepted types: nil (no content), an existing Content, map[string]string
// (Values), *dom.Element (its outer markup), and string — classified as
// Remote when it matches the URL pattern and Markup otherwise. Anything
// else is an INVALID_CONTENT error.
func Classify(v any) (Content, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case Content:
		return c, nil
	case map[string]string:
		return Values(c), nil
	case *dom.Element:
		if c == nil {
			return nil, nil
		}
		return Markup(c.OuterHTML()), nil
	case string:
		if IsURL(c) {
			return Remote(c), nil
		}
		return Markup(c), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidContent, "unsupported content type %T", v)
	}
}
