package popover

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/errors"
)

// Declarative activation attributes. An element carrying AttrActivate is
// picked up by Controller.ActivateAll; AttrOptions holds a JSON options
// patch applied on top of the programmatic options.
const (
	AttrActivate = "data-popover"
	AttrOptions  = "data-popover-options"
)

// Default option values.
const (
	// DefaultTemplate is the panel skeleton used when no template is
	// configured. The __content__ placeholder receives the popover body.
	DefaultTemplate = `<div class="popover">__content__</div>`

	// DefaultHideSelector matches elements inside the panel that close the
	// popover when clicked.
	DefaultHideSelector = ".popover-hide"

	// DefaultHoverDelay debounces hover-triggered shows and hides.
	DefaultHoverDelay = 200 * time.Millisecond

	// DefaultFadeDuration is the opacity transition length.
	DefaultFadeDuration = 150 * time.Millisecond
)

// Options configures one popover instance. Options are resolved once at
// activation and immutable afterwards.
type Options struct {
	// Template is the markup skeleton the panel is built from.
	Template string

	// TemplateFrom selects a template holder element in the document; when
	// set it takes precedence over Template. Holder elements (<template>,
	// <script type="text/x-popover-template">) contribute their inner
	// markup, any other element its outer markup.
	TemplateFrom string

	// Content is the popover body. Accepted types follow template.Classify:
	// a map[string]string of placeholder values, a markup string or
	// *dom.Element, or a URL string resolved through the remote fetcher.
	// Markup and fetched bodies are injected through the template's
	// __content__ placeholder; a template without that placeholder drops
	// the body.
	Content any

	// Process transforms fetched remote content before rendering.
	// template.Sanitize is the recommended value for untrusted sources.
	Process func([]byte) []byte

	// Escape HTML-escapes substituted placeholder values.
	Escape bool

	// HideSelector matches elements inside the panel whose clicks are
	// allowed to propagate and close the popover. Clicks elsewhere in the
	// panel are contained.
	HideSelector string

	// Click shows the popover when the trigger is clicked.
	Click bool

	// Hover shows/hides the popover on trigger hover, debounced by
	// HoverDelay.
	Hover bool

	// HoverDelay debounces hover-triggered transitions.
	HoverDelay time.Duration

	// FadeDuration is the opacity transition length; the panel is detached
	// once a hide's fade has run out.
	FadeDuration time.Duration
}

// Defaults returns the built-in option values: click-triggered, escaping
// enabled, no hover.
func Defaults() Options {
	return Options{
		Template:     DefaultTemplate,
		Escape:       true,
		HideSelector: DefaultHideSelector,
		Click:        true,
		Hover:        false,
		HoverDelay:   DefaultHoverDelay,
		FadeDuration: DefaultFadeDuration,
	}
}

// Overrides is the declarative options patch decoded from the
// data-popover-options attribute. Absent fields keep the programmatic
// value; durations are given in milliseconds.
type Overrides struct {
	Template     *string `json:"template"`
	TemplateFrom *string `json:"templateFrom"`
	Content      *string `json:"content"`
	Escape       *bool   `json:"escape"`
	HideSelector *string `json:"hideSelector"`
	Click        *bool   `json:"click"`
	Hover        *bool   `json:"hover"`
	HoverDelay   *int    `json:"hoverDelay"`
	FadeDuration *int    `json:"fadeDuration"`
}

// apply overlays the patch onto o and returns the result.
func (o Options) apply(p Overrides) Options {
	if p.Template != nil {
		o.Template = *p.Template
	}
	if p.TemplateFrom != nil {
		o.TemplateFrom = *p.TemplateFrom
	}
	if p.Content != nil {
		o.Content = *p.Content
	}
	if p.Escape != nil {
		o.Escape = *p.Escape
	}
	if p.HideSelector != nil {
		o.HideSelector = *p.HideSelector
	}
	if p.Click != nil {
		o.Click = *p.Click
	}
	if p.Hover != nil {
		o.Hover = *p.Hover
	}
	if p.HoverDelay != nil {
		o.HoverDelay = time.Duration(*p.HoverDelay) * time.Millisecond
	}
	if p.FadeDuration != nil {
		o.FadeDuration = time.Duration(*p.FadeDuration) * time.Millisecond
	}
	return o
}

// resolveOptions computes the effective options for an element: base
// options overlaid with the element's declarative attribute patch.
// Malformed JSON is a loud INVALID_OPTIONS failure, not a silent fallback.
func resolveOptions(base Options, el *dom.Element) (Options, error) {
	raw, ok := el.Attr(AttrOptions)
	if ok && strings.TrimSpace(raw) != "" {
		var patch Overrides
		if err := json.Unmarshal([]byte(raw), &patch); err != nil {
			return base, errors.Wrap(errors.ErrCodeInvalidOptions, err,
				"element %s: malformed %s", describe(el), AttrOptions)
		}
		base = base.apply(patch)
	}
	if err := base.validate(); err != nil {
		return base, err
	}
	return base, nil
}

func (o Options) validate() error {
	if o.HideSelector != "" {
		if err := dom.ParseSelector(o.HideSelector); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSelector, err, "hide selector %q", o.HideSelector)
		}
	}
	if o.TemplateFrom != "" {
		if err := dom.ParseSelector(o.TemplateFrom); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSelector, err, "template selector %q", o.TemplateFrom)
		}
	}
	return nil
}

// describe renders an element as tag#id for error messages and logs.
func describe(el *dom.Element) string {
	if el == nil {
		return "<nil>"
	}
	if id := el.ID(); id != "" {
		return el.Tag + "#" + id
	}
	return el.Tag
}
