package dom

import (
	"strings"
	"testing"
)

func TestAttributes(t *testing.T) {
	e := NewElement("div")

	if _, ok := e.Attr("id"); ok {
		t.Error("new element should have no attributes")
	}

	e.SetAttr("id", "tip")
	e.SetAttr("class", "popover fancy")

	if v, ok := e.Attr("id"); !ok || v != "tip" {
		t.Errorf("Attr(id) = %q, %v", v, ok)
	}
	if e.ID() != "tip" {
		t.Errorf("ID() = %q", e.ID())
	}
	if !e.HasClass("fancy") || e.HasClass("missing") {
		t.Error("HasClass mismatch")
	}

	e.RemoveAttr("id")
	if e.HasAttr("id") {
		t.Error("RemoveAttr should remove the attribute")
	}
}

func TestTreeStructure(t *testing.T) {
	parent := NewElement("div")
	a := NewElement("span")
	b := NewElement("a")

	parent.AppendChild(a)
	parent.AppendChild(b)

	if len(parent.Children()) != 2 {
		t.Fatalf("children = %d, want 2", len(parent.Children()))
	}
	if a.Parent() != parent {
		t.Error("child parent not set")
	}
	if !parent.Contains(a) || !parent.Contains(parent) {
		t.Error("Contains should include self and descendants")
	}

	// Re-appending moves rather than duplicates.
	other := NewElement("section")
	other.AppendChild(a)
	if len(parent.Children()) != 1 {
		t.Errorf("children after move = %d, want 1", len(parent.Children()))
	}
	if a.Parent() != other {
		t.Error("moved child should have new parent")
	}

	b.Detach()
	if b.Attached() || len(parent.Children()) != 0 {
		t.Error("Detach should remove the child")
	}
	b.Detach() // idempotent
}

func TestTextContent(t *testing.T) {
	els, err := ParseFragment(`<div>Hello <b>bold</b> world</div>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(els) != 1 {
		t.Fatalf("fragments = %d, want 1", len(els))
	}
	if got := els[0].TextContent(); got != "Hello bold world" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseString(`<html><body><div id="page"><a data-popover href="#">trigger</a></div></body></html>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if doc.Root.Tag != "body" {
		t.Errorf("root tag = %q, want body", doc.Root.Tag)
	}
	trigger := doc.Root.FindFirst("[data-popover]")
	if trigger == nil {
		t.Fatal("trigger not found")
	}
	if trigger.Tag != "a" {
		t.Errorf("trigger tag = %q, want a", trigger.Tag)
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	els, err := ParseFragment(`<div class="popover" id="p1"><span class="close">x</span></div>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	out := els[0].OuterHTML()

	// Attributes serialize in sorted name order.
	if out != `<div class="popover" id="p1"><span class="close">x</span></div>` {
		t.Errorf("OuterHTML = %q", out)
	}
	if inner := els[0].InnerHTML(); inner != `<span class="close">x</span>` {
		t.Errorf("InnerHTML = %q", inner)
	}
}

func TestSetInnerHTML(t *testing.T) {
	e := NewElement("div")
	e.AppendChild(NewText("old"))

	if err := e.SetInnerHTML(`<p>new</p>`); err != nil {
		t.Fatalf("SetInnerHTML: %v", err)
	}
	if !strings.Contains(e.InnerHTML(), "<p>new</p>") {
		t.Errorf("InnerHTML = %q", e.InnerHTML())
	}
	if strings.Contains(e.TextContent(), "old") {
		t.Error("old children should be replaced")
	}
}
