package popover

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/errors"
)

func TestDefaults(t *testing.T) {
	o := Defaults()
	if !o.Click || o.Hover {
		t.Error("defaults should be click-triggered, hover off")
	}
	if !o.Escape {
		t.Error("escaping should default to on")
	}
	if o.Template != DefaultTemplate || o.HideSelector != DefaultHideSelector {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

func TestResolveOptionsWithoutAttribute(t *testing.T) {
	el := dom.NewElement("a")
	got, err := resolveOptions(Defaults(), el)
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if diff := cmp.Diff(Defaults(), got, cmpopts.IgnoreFields(Options{}, "Process")); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveOptionsAppliesPatch(t *testing.T) {
	el := dom.NewElement("a")
	el.SetAttr(AttrOptions, `{
		"template": "<aside>__content__</aside>",
		"content": "/fragments/tip.html",
		"escape": false,
		"hover": true,
		"hoverDelay": 50,
		"fadeDuration": 0
	}`)

	got, err := resolveOptions(Defaults(), el)
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if got.Template != "<aside>__content__</aside>" {
		t.Errorf("Template = %q", got.Template)
	}
	if got.Content != "/fragments/tip.html" {
		t.Errorf("Content = %v", got.Content)
	}
	if got.Escape {
		t.Error("escape=false not applied")
	}
	if !got.Hover || got.HoverDelay != 50*time.Millisecond {
		t.Errorf("hover patch not applied: %+v", got)
	}
	if got.FadeDuration != 0 {
		t.Errorf("FadeDuration = %v, want 0", got.FadeDuration)
	}
	// Untouched fields keep their base values.
	if !got.Click || got.HideSelector != DefaultHideSelector {
		t.Errorf("absent fields must keep base values: %+v", got)
	}
}

func TestResolveOptionsMalformedJSON(t *testing.T) {
	el := dom.NewElement("a")
	el.SetAttr(AttrOptions, `{"hover": yes}`)

	_, err := resolveOptions(Defaults(), el)
	if !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("err = %v, want INVALID_OPTIONS", err)
	}
}

func TestResolveOptionsEmptyAttribute(t *testing.T) {
	el := dom.NewElement("a")
	el.SetAttr(AttrOptions, "  ")

	if _, err := resolveOptions(Defaults(), el); err != nil {
		t.Errorf("blank attribute should be ignored, got %v", err)
	}
}

func TestValidateRejectsBadSelectors(t *testing.T) {
	o := Defaults()
	o.HideSelector = "["
	if err := o.validate(); !errors.Is(err, errors.ErrCodeInvalidSelector) {
		t.Errorf("bad hide selector: err = %v, want INVALID_SELECTOR", err)
	}

	o = Defaults()
	o.TemplateFrom = "["
	if err := o.validate(); !errors.Is(err, errors.ErrCodeInvalidSelector) {
		t.Errorf("bad template selector: err = %v, want INVALID_SELECTOR", err)
	}
}

func TestDescribe(t *testing.T) {
	el := dom.NewElement("a")
	if got := describe(el); got != "a" {
		t.Errorf("describe = %q", got)
	}
	el.SetAttr("id", "trig")
	if got := describe(el); got != "a#trig" {
		t.Errorf("describe = %q", got)
	}
	if got := describe(nil); got != "<nil>" {
		t.Errorf("describe(nil) = %q", got)
	}
}
