package template

import (
	"strings"
	"testing"

	"github.com/matzehuels/popover/pkg/dom"
)

func TestRenderEscaped(t *testing.T) {
	got := Render("__a__-__b__", map[string]string{"a": "<x>", "b": "y"}, true)
	if got != "&lt;x&gt;-y" {
		t.Errorf("Render = %q, want %q", got, "&lt;x&gt;-y")
	}
}

func TestRenderVerbatim(t *testing.T) {
	got := Render("__a__-__b__", map[string]string{"a": "<x>", "b": "y"}, false)
	if got != "<x>-y" {
		t.Errorf("Render = %q, want %q", got, "<x>-y")
	}
}

func TestRenderReplacesAllOccurrences(t *testing.T) {
	got := Render("__name__ and __name__ again", map[string]string{"name": "bob"}, false)
	if got != "bob and bob again" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderLiteralMetacharacterNames(t *testing.T) {
	// A key named "a.b" must match only the literal "__a.b__", never treat
	// the dot as a wildcard.
	tpl := "__a.b__ __axb__ __a+b__"
	got := Render(tpl, map[string]string{"a.b": "DOT", "a+b": "PLUS"}, false)
	if got != "DOT __axb__ PLUS" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderExactNameMatching(t *testing.T) {
	// "head" must not substitute into "__headline__".
	got := Render("__headline__", map[string]string{"head": "X"}, false)
	if got != "__headline__" {
		t.Errorf("Render = %q, prefix keys must not match", got)
	}
}

func TestRenderEscapesQuotes(t *testing.T) {
	got := Render(`<a title="__t__">`, map[string]string{"t": `"quoted" & 'single'`}, true)
	want := `<a title="&#34;quoted&#34; &amp; &#39;single&#39;">`
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnknownPlaceholderLeftIntact(t *testing.T) {
	got := Render("__known__ __unknown__", map[string]string{"known": "v"}, false)
	if got != "v __unknown__" {
		t.Errorf("Render = %q", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"map", map[string]string{"a": "b"}, Values{"a": "b"}},
		{"markup string", "<b>hi</b>", Markup("<b>hi</b>")},
		{"plain text", "hello there", Markup("hello there")},
		{"absolute url", "https://example.com/tip", Remote("https://example.com/tip")},
		{"http url", "http://example.com/tip", Remote("http://example.com/tip")},
		{"absolute path", "/fragments/tip.html", Remote("/fragments/tip.html")},
		{"relative path", "./tip.html", Remote("./tip.html")},
		{"parent path", "../tip.html", Remote("../tip.html")},
	}
	for _, tc := range cases {
		got, err := Classify(tc.in)
		if err != nil {
			t.Errorf("%s: Classify error: %v", tc.name, err)
			continue
		}
		switch want := tc.want.(type) {
		case Values:
			v, ok := got.(Values)
			if !ok || v["a"] != want["a"] {
				t.Errorf("%s: got %#v, want %#v", tc.name, got, want)
			}
		default:
			if got != tc.want {
				t.Errorf("%s: got %#v, want %#v", tc.name, got, tc.want)
			}
		}
	}
}

func TestClassifyElement(t *testing.T) {
	els, err := dom.ParseFragment(`<b>hi</b>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	got, err := Classify(els[0])
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != Markup("<b>hi</b>") {
		t.Errorf("Classify(element) = %#v", got)
	}
}

func TestClassifyNilAndPassthrough(t *testing.T) {
	if c, err := Classify(nil); c != nil || err != nil {
		t.Errorf("Classify(nil) = %#v, %v", c, err)
	}
	if c, _ := Classify(Remote("/x")); c != Remote("/x") {
		t.Errorf("Classify should pass existing Content through, got %#v", c)
	}
}

func TestClassifyUnsupported(t *testing.T) {
	if _, err := Classify(42); err == nil {
		t.Error("Classify(int) should error")
	}
}

func TestIsURL(t *testing.T) {
	for _, s := range []string{"https://a/b", "http://a", "/x", "./x", "../x"} {
		if !IsURL(s) {
			t.Errorf("IsURL(%q) = false", s)
		}
	}
	for _, s := range []string{"hello", "<div>/</div>", "www.example.com", ""} {
		if IsURL(s) {
			t.Errorf("IsURL(%q) = true", s)
		}
	}
}

func TestSourceFromTemplateHolder(t *testing.T) {
	doc, err := dom.ParseString(`<body><template id="tpl"><div class="popover">__content__</div></template></body>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	holder := doc.Root.FindFirst("#tpl")
	if holder == nil {
		t.Fatal("holder not found")
	}
	got := SourceFrom(holder)
	if got != `<div class="popover">__content__</div>` {
		t.Errorf("SourceFrom(template) = %q, want inner markup only", got)
	}
}

func TestSourceFromScriptHolder(t *testing.T) {
	doc, err := dom.ParseString(`<body><script id="tpl" type="text/x-popover-template"><div>__content__</div></script></body>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	holder := doc.Root.FindFirst("#tpl")
	if holder == nil {
		t.Fatal("holder not found")
	}
	got := SourceFrom(holder)
	if got != `<div>__content__</div>` {
		t.Errorf("SourceFrom(script holder) = %q", got)
	}
}

func TestSourceFromPlainElement(t *testing.T) {
	els, err := dom.ParseFragment(`<div id="tpl" class="popover">__content__</div>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	got := SourceFrom(els[0])
	if got != `<div class="popover" id="tpl">__content__</div>` {
		t.Errorf("SourceFrom(plain element) = %q, want outer markup", got)
	}
}

func TestSourceFromNil(t *testing.T) {
	if got := SourceFrom(nil); got != "" {
		t.Errorf("SourceFrom(nil) = %q", got)
	}
}

func TestSanitizeStripsScripts(t *testing.T) {
	in := `<p>ok</p><script>alert(1)</script><a href="#" onclick="x()">link</a>`
	out := string(Sanitize([]byte(in)))
	for _, bad := range []string{"<script>", "onclick"} {
		if strings.Contains(out, bad) {
			t.Errorf("Sanitize left %q in %q", bad, out)
		}
	}
	if !strings.Contains(out, "<p>ok</p>") {
		t.Errorf("Sanitize should keep safe markup, got %q", out)
	}
	if string(SanitizeString("<p>x</p>")) != "<p>x</p>" {
		t.Error("SanitizeString should keep safe markup")
	}
}
