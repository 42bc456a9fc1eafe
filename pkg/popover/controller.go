package popover

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/fetch"
	"github.com/matzehuels/popover/pkg/loop"
	"github.com/matzehuels/popover/pkg/observability"
)

// Controller owns the popover instances of one document: it activates
// trigger elements, routes interaction events, and runs the event loop
// that serializes all widget state.
type Controller struct {
	doc       *dom.Document
	loop      *loop.Loop
	reg       *registry
	instances map[*dom.Element]*Popover
	fetcher   *fetch.Fetcher
	logger    *log.Logger
	defaults  Options
	exclusive bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithFetcher sets the remote content fetcher.
func WithFetcher(f *fetch.Fetcher) ControllerOption {
	return func(c *Controller) { c.fetcher = f }
}

// WithDefaults replaces the controller-wide default options used when
// Activate is called without explicit options.
func WithDefaults(o Options) ControllerOption {
	return func(c *Controller) { c.defaults = o }
}

// WithExclusive makes popovers mutually exclusive: showing one hides every
// other live instance of this controller.
func WithExclusive() ControllerOption {
	return func(c *Controller) { c.exclusive = true }
}

// NewController creates a controller for doc and starts its event loop.
func NewController(doc *dom.Document, opts ...ControllerOption) *Controller {
	c := &Controller{
		doc:       doc,
		loop:      loop.New(),
		reg:       &registry{},
		instances: make(map[*dom.Element]*Popover),
		fetcher:   fetch.New(),
		logger:    log.Default(),
		defaults:  Defaults(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document returns the document this controller manages.
func (c *Controller) Document() *dom.Document { return c.doc }

// Activate binds a popover to el. A nil opts uses the controller defaults;
// either way the element's data-popover-options attribute is applied on
// top. Activating an already-active element returns the existing instance.
func (c *Controller) Activate(el *dom.Element, opts *Options) (*Popover, error) {
	var (
		p   *Popover
		err error
	)
	c.loop.Do(func() { p, err = c.activate(el, opts) })
	return p, err
}

func (c *Controller) activate(el *dom.Element, opts *Options) (*Popover, error) {
	if existing, ok := c.instances[el]; ok {
		return existing, nil
	}

	base := c.defaults
	if opts != nil {
		base = *opts
	}
	resolved, err := resolveOptions(base, el)
	if err != nil {
		return nil, err
	}

	p := &Popover{
		id:      uuid.NewString(),
		ctrl:    c,
		trigger: el,
		opts:    resolved,
		logger:  c.logger,
	}
	if resolved.Click {
		p.triggerListeners = append(p.triggerListeners,
			el.On(dom.EventClick, p.onTriggerClick))
	}
	if resolved.Hover {
		p.triggerListeners = append(p.triggerListeners,
			el.On(dom.EventMouseEnter, p.onTriggerEnter),
			el.On(dom.EventMouseLeave, p.onTriggerLeave))
	}

	c.instances[el] = p
	c.reg.add(p)

	observability.Widget().OnActivate(context.Background(), p.id, describe(el))
	c.logger.Debug("popover activated", "id", p.id, "trigger", describe(el))
	return p, nil
}

// ActivateAll scans root (the document root when nil) for elements carrying
// the data-popover attribute and activates each with the controller
// defaults. Already-active elements are left untouched. The first
// activation error stops the scan; instances activated before it remain.
func (c *Controller) ActivateAll(root *dom.Element) ([]*Popover, error) {
	var (
		out []*Popover
		err error
	)
	c.loop.Do(func() {
		if root == nil {
			root = c.doc.Root
		}
		targets := root.Find("[" + AttrActivate + "]")
		if root.HasAttr(AttrActivate) {
			targets = append([]*dom.Element{root}, targets...)
		}
		for _, el := range targets {
			var p *Popover
			if p, err = c.activate(el, nil); err != nil {
				return
			}
			out = append(out, p)
		}
	})
	return out, err
}

// ContentAdded rescans a subtree after markup was inserted, activating any
// new declarative triggers. Elements that are already active are skipped.
func (c *Controller) ContentAdded(root *dom.Element) ([]*Popover, error) {
	return c.ActivateAll(root)
}

// Instances returns the live instances in activation order.
func (c *Controller) Instances() []*Popover {
	var out []*Popover
	c.loop.Do(func() { out = c.reg.list() })
	return out
}

// InstanceFor returns the instance bound to el, or nil.
func (c *Controller) InstanceFor(el *dom.Element) *Popover {
	var p *Popover
	c.loop.Do(func() { p = c.instances[el] })
	return p
}

// Dispatch delivers an interaction event at target on the controller's
// loop. Hosts translate their input (mouse, touch, TUI cursor) into these
// events.
func (c *Controller) Dispatch(target *dom.Element, typ string) {
	c.loop.Do(func() { dom.Dispatch(target, typ) })
}

// Flush waits until all queued loop work, including deferred next-turn
// callbacks, has run. Useful for hosts that need the rendered tree to be
// settled before drawing.
func (c *Controller) Flush() {
	c.loop.Do(func() {})
}

// HideAll hides every live instance.
func (c *Controller) HideAll() {
	c.loop.Do(func() { c.reg.hideOthers(nil) })
}

// Close destroys all instances and stops the event loop. The controller
// must not be used afterwards.
func (c *Controller) Close() {
	c.loop.Do(func() {
		for _, p := range c.reg.list() {
			p.destroy()
		}
	})
	c.loop.Close()
}

// deregister removes a destroyed instance. Loop goroutine only.
func (c *Controller) deregister(p *Popover) {
	c.reg.remove(p)
	delete(c.instances, p.trigger)
}
