package popover_test

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/popover"
)

// ExampleController shows the basic lifecycle: activate a trigger, click
// it, and dismiss the popover with an outside click.
func ExampleController() {
	doc, _ := dom.ParseString(`<html><body>
		<a id="more">more info</a>
		<p id="elsewhere">other content</p>
	</body></html>`)

	c := popover.NewController(doc, popover.WithLogger(log.New(io.Discard)))
	defer c.Close()

	opts := popover.Defaults()
	opts.Content = map[string]string{"content": "Hello from a popover."}
	opts.FadeDuration = 0

	trigger := doc.Root.FindFirst("#more")
	p, _ := c.Activate(trigger, &opts)

	c.Dispatch(trigger, dom.EventClick)
	fmt.Println("after click:", p.State())

	c.Flush()
	c.Dispatch(doc.Root.FindFirst("#elsewhere"), dom.EventClick)
	fmt.Println("after outside click:", p.State())

	// Output:
	// after click: shown
	// after outside click: hidden
}

// ExamplePopover_Call drives an instance through the string method API.
func ExamplePopover_Call() {
	doc, _ := dom.ParseString(`<html><body><a id="t">trigger</a></body></html>`)
	c := popover.NewController(doc, popover.WithLogger(log.New(io.Discard)))
	defer c.Close()

	opts := popover.Defaults()
	opts.Content = "static body"
	p, _ := c.Activate(doc.Root.FindFirst("#t"), &opts)

	p.Call("show")
	fmt.Println(p.State())
	err := p.Call("toggle")
	fmt.Println(err != nil)

	// Output:
	// shown
	// true
}
