package template_test

import (
	"fmt"

	"github.com/matzehuels/popover/pkg/template"
)

func ExampleRender() {
	tpl := `<div class="popover"><h3>__title__</h3><p>__body__</p></div>`
	out := template.Render(tpl, map[string]string{
		"title": "Hint",
		"body":  "Use <b> sparingly",
	}, true)
	fmt.Println(out)
	// Output: <div class="popover"><h3>Hint</h3><p>Use &lt;b&gt; sparingly</p></div>
}

func ExampleClassify() {
	for _, v := range []any{
		map[string]string{"title": "Hint"},
		"<b>ready markup</b>",
		"https://example.com/fragments/tip.html",
	} {
		c, _ := template.Classify(v)
		fmt.Printf("%T\n", c)
	}
	// Output:
	// template.Values
	// template.Markup
	// template.Remote
}
