package popover

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/loop"
	"github.com/matzehuels/popover/pkg/observability"
	"github.com/matzehuels/popover/pkg/template"
)

// AttrPanelFor marks a panel element with the id of the instance that owns
// it, so hosts can find panels in the rendered tree.
const AttrPanelFor = "data-popover-for"

// State is the visibility state of a popover instance.
type State int

const (
	// Hidden is the resting state: the panel is faded out or not built yet.
	Hidden State = iota
	// Shown means the panel is attached and fading in or fully visible.
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

// Popover is one widget instance bound to a trigger element.
//
// All fields are owned by the controller's loop goroutine. Exported methods
// marshal onto the loop; lowercase methods assume they are already on it.
type Popover struct {
	id      string
	ctrl    *Controller
	trigger *dom.Element
	opts    Options
	logger  *log.Logger

	state     State
	explicit  bool // shown by click or Show(); hover-leave must not hide
	destroyed bool

	panel *dom.Element

	// pendingShow marks a show request waiting on a remote content fetch.
	pendingShow bool
	fetchSeq    int
	cancelFetch context.CancelFunc

	showTimer   *loop.Timer
	hideTimer   *loop.Timer
	detachTimer *loop.Timer

	triggerListeners []*dom.Listener
	panelListeners   []*dom.Listener
	docListener      *dom.Listener
}

// ID returns the instance's unique identifier.
func (p *Popover) ID() string { return p.id }

// Trigger returns the element this instance is bound to.
func (p *Popover) Trigger() *dom.Element { return p.trigger }

// Options returns the resolved options of this instance.
func (p *Popover) Options() Options { return p.opts }

// State reports the current visibility state.
func (p *Popover) State() State {
	var s State
	p.ctrl.loop.Do(func() { s = p.state })
	return s
}

// Panel returns the panel element, or nil when it has not been built yet.
func (p *Popover) Panel() *dom.Element {
	var el *dom.Element
	p.ctrl.loop.Do(func() { el = p.panel })
	return el
}

// Show shows the popover explicitly. An explicit show is sticky against
// hover-leave: only a hide (outside click, Hide, a hide-selector click, or
// an exclusivity sweep) dismisses it.
func (p *Popover) Show() {
	p.ctrl.loop.Do(func() { p.requestShow(true) })
}

// Hide hides the popover. Hiding an already-hidden instance is a no-op.
func (p *Popover) Hide() {
	p.ctrl.loop.Do(p.requestHide)
}

// Destroy removes all listeners, cancels timers and in-flight fetches,
// detaches the panel, and deregisters the instance. The trigger element
// itself stays in the document.
func (p *Popover) Destroy() {
	p.ctrl.loop.Do(p.destroy)
}

// Call invokes a method by name: "show", "hide", or "destroy". Unknown
// names fail with an UNKNOWN_METHOD error.
func (p *Popover) Call(method string) error {
	switch method {
	case "show":
		p.Show()
	case "hide":
		p.Hide()
	case "destroy":
		p.Destroy()
	default:
		return errors.New(errors.ErrCodeUnknownMethod, "unknown popover method %q", method)
	}
	return nil
}

// =============================================================================
// State transitions (loop goroutine only)
// =============================================================================

// requestShow moves the instance toward the shown state. With a built panel
// the transition is synchronous; remote content defers it until the fetch
// delivers. A show request while already shown restarts the fade-in and
// cancels any pending hide.
func (p *Popover) requestShow(explicit bool) {
	if p.destroyed {
		return
	}
	if explicit {
		p.explicit = true
	}
	p.cancelTimer(&p.showTimer)
	p.cancelTimer(&p.hideTimer)

	if p.state == Shown {
		p.applyOpacity(1)
		return
	}
	if p.panel == nil {
		p.pendingShow = true
		p.buildPanel()
		if p.panel == nil {
			// Fetch in flight, or the build failed and was logged.
			return
		}
	}
	p.completeShow()
}

// completeShow attaches the panel and performs the hidden-to-shown
// transition. The panel must exist.
func (p *Popover) completeShow() {
	p.pendingShow = false
	p.cancelTimer(&p.detachTimer)

	if p.ctrl.exclusive {
		p.ctrl.reg.hideOthers(p)
	}
	if !p.panel.Attached() {
		p.ctrl.doc.Root.AppendChild(p.panel)
	}
	p.applyOpacity(1)

	if p.state == Hidden {
		p.state = Shown
		observability.Widget().OnShow(context.Background(), p.id, p.explicit)
		p.logger.Debug("popover shown", "id", p.id, "trigger", describe(p.trigger), "explicit", p.explicit)
	}

	// Arm the outside-click listener on the next turn of the loop, so the
	// click that opened the popover cannot immediately close it.
	if p.docListener == nil {
		p.ctrl.loop.NextTick(func() {
			if p.destroyed || p.state != Shown || p.docListener != nil {
				return
			}
			p.docListener = p.ctrl.doc.Root.On(dom.EventClick, p.onDocumentClick)
		})
	}
}

// requestHide moves the instance to the hidden state. The panel fades out
// and is detached once the fade has run; it is kept for reuse by the next
// show.
func (p *Popover) requestHide() {
	if p.destroyed {
		return
	}
	p.cancelTimer(&p.showTimer)
	p.cancelTimer(&p.hideTimer)
	p.pendingShow = false
	p.explicit = false

	if p.state != Shown {
		return
	}
	p.state = Hidden
	p.removeDocListener()
	p.applyOpacity(0)

	p.cancelTimer(&p.detachTimer)
	if p.opts.FadeDuration <= 0 {
		p.panel.Detach()
	} else {
		p.detachTimer = p.ctrl.loop.After(p.opts.FadeDuration, func() {
			p.detachTimer = nil
			if p.panel != nil && p.state == Hidden {
				p.panel.Detach()
			}
		})
	}

	observability.Widget().OnHide(context.Background(), p.id)
	p.logger.Debug("popover hidden", "id", p.id, "trigger", describe(p.trigger))
}

func (p *Popover) destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true

	p.cancelTimer(&p.showTimer)
	p.cancelTimer(&p.hideTimer)
	p.cancelTimer(&p.detachTimer)
	if p.cancelFetch != nil {
		p.cancelFetch()
		p.cancelFetch = nil
	}
	for _, l := range p.triggerListeners {
		l.Remove()
	}
	p.triggerListeners = nil
	for _, l := range p.panelListeners {
		l.Remove()
	}
	p.panelListeners = nil
	p.removeDocListener()

	if p.panel != nil {
		p.panel.Detach()
		p.panel = nil
	}
	p.state = Hidden
	p.ctrl.deregister(p)

	observability.Widget().OnDestroy(context.Background(), p.id)
	p.logger.Debug("popover destroyed", "id", p.id, "trigger", describe(p.trigger))
}

// =============================================================================
// Panel construction
// =============================================================================

// templateSource resolves the template markup, preferring a TemplateFrom
// holder element when one matches.
func (p *Popover) templateSource() string {
	if p.opts.TemplateFrom != "" {
		if holder := p.ctrl.doc.Root.FindFirst(p.opts.TemplateFrom); holder != nil {
			return template.SourceFrom(holder)
		}
		p.logger.Warn("template holder not found, using inline template",
			"id", p.id, "selector", p.opts.TemplateFrom)
	}
	return p.opts.Template
}

// buildPanel materializes the panel from the configured content. For remote
// content it starts a fetch and returns with p.panel still nil; the fetch
// completion finishes the build on the loop.
func (p *Popover) buildPanel() {
	content, err := template.Classify(p.opts.Content)
	if err != nil {
		p.logger.Error("invalid popover content", "id", p.id, "err", err)
		p.pendingShow = false
		return
	}

	tpl := p.templateSource()
	var markup string
	switch c := content.(type) {
	case nil:
		markup = tpl
	case template.Values:
		markup = template.Render(tpl, c, p.opts.Escape)
	case template.Markup:
		markup = p.renderBody(tpl, string(c))
	case template.Remote:
		p.startFetch(string(c))
		return
	}
	p.materialize(markup)
}

// renderBody injects raw body markup into the template. The body lands
// wherever the template carries a __content__ placeholder; a template
// without one drops the body, which is worth surfacing.
func (p *Popover) renderBody(tpl, body string) string {
	if !strings.Contains(tpl, "__content__") {
		p.logger.Debug("template has no __content__ placeholder, body markup is dropped",
			"id", p.id, "trigger", describe(p.trigger))
	}
	return template.Render(tpl, map[string]string{"content": body}, false)
}

// materialize parses markup into the panel element and wires its listeners.
// The first parsed element becomes the panel root.
func (p *Popover) materialize(markup string) {
	els, err := dom.ParseFragment(markup)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidMarkup, err, "parse panel markup")
	} else if len(els) == 0 {
		err = errors.New(errors.ErrCodeInvalidMarkup, "template produced no panel element")
	}
	if err != nil {
		p.logger.Error("popover panel build failed", "id", p.id, "err", err)
		p.pendingShow = false
		return
	}
	panel := els[0]
	panel.SetAttr(AttrPanelFor, p.id)

	p.panelListeners = append(p.panelListeners,
		panel.On(dom.EventClick, p.onPanelClick))
	if p.opts.Hover {
		p.panelListeners = append(p.panelListeners,
			panel.On(dom.EventMouseEnter, p.onPanelEnter),
			panel.On(dom.EventMouseLeave, p.onPanelLeave))
	}
	p.panel = panel
}

// startFetch begins resolving remote content. A newer fetch supersedes an
// older one: the old context is cancelled and its result discarded.
func (p *Popover) startFetch(url string) {
	if p.cancelFetch != nil {
		p.cancelFetch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancelFetch = cancel
	p.fetchSeq++
	seq := p.fetchSeq

	go func() {
		data, err := p.ctrl.fetcher.Fetch(ctx, url)
		p.ctrl.loop.Post(func() { p.fetchDone(seq, url, data, err) })
	}()
}

// fetchDone runs on the loop when a fetch settles. Stale results (a newer
// fetch started, or the instance was destroyed) are dropped. Failures keep
// the popover hidden; there is no retry, the next show tries again.
func (p *Popover) fetchDone(seq int, url string, data []byte, err error) {
	if p.destroyed || seq != p.fetchSeq {
		return
	}
	p.cancelFetch = nil

	if err != nil {
		if !errors.Is(err, errors.ErrCodeFetchAborted) {
			p.logger.Warn("popover content fetch failed", "id", p.id, "url", url, "err", err)
		}
		p.pendingShow = false
		return
	}

	if p.opts.Process != nil {
		data = p.opts.Process(data)
	}
	p.materialize(p.renderBody(p.templateSource(), string(data)))
	if p.panel != nil && p.pendingShow {
		p.completeShow()
	}
}

// =============================================================================
// Event handlers (loop goroutine only)
// =============================================================================

func (p *Popover) onTriggerClick(e *dom.Event) {
	if p.destroyed {
		return
	}
	// Contain the click so it cannot trip any armed outside-click listener.
	e.StopPropagation()
	p.requestShow(true)
}

func (p *Popover) onTriggerEnter(*dom.Event) {
	if p.destroyed {
		return
	}
	p.cancelTimer(&p.hideTimer)
	if p.state == Shown || p.showTimer != nil {
		return
	}
	p.showTimer = p.ctrl.loop.After(p.opts.HoverDelay, func() {
		p.showTimer = nil
		p.requestShow(false)
	})
}

func (p *Popover) onTriggerLeave(*dom.Event) {
	if p.destroyed {
		return
	}
	p.cancelTimer(&p.showTimer)
	p.scheduleHoverHide()
}

// onPanelEnter keeps a hover-shown popover open while the pointer is over
// the panel itself.
func (p *Popover) onPanelEnter(*dom.Event) {
	if p.destroyed {
		return
	}
	p.cancelTimer(&p.hideTimer)
}

func (p *Popover) onPanelLeave(*dom.Event) {
	if p.destroyed {
		return
	}
	p.scheduleHoverHide()
}

// scheduleHoverHide debounces a hover-originated hide. Explicitly shown
// popovers ignore hover-leave entirely.
func (p *Popover) scheduleHoverHide() {
	if p.state != Shown || p.explicit || p.hideTimer != nil {
		return
	}
	p.hideTimer = p.ctrl.loop.After(p.opts.HoverDelay, func() {
		p.hideTimer = nil
		p.requestHide()
	})
}

// onPanelClick contains clicks inside the panel unless they land on a
// hide-selector element, whose clicks propagate to the document listener
// and close the popover.
func (p *Popover) onPanelClick(e *dom.Event) {
	if p.destroyed || p.opts.HideSelector == "" {
		e.StopPropagation()
		return
	}
	if m := e.Target.Closest(p.opts.HideSelector); m != nil && p.panel.Contains(m) {
		return
	}
	e.StopPropagation()
}

// onDocumentClick is the one-shot outside-click listener: any click that
// bubbles to the document root while shown hides the popover.
func (p *Popover) onDocumentClick(*dom.Event) {
	p.removeDocListener()
	p.requestHide()
}

func (p *Popover) removeDocListener() {
	if p.docListener != nil {
		p.docListener.Remove()
		p.docListener = nil
	}
}

func (p *Popover) cancelTimer(t **loop.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// applyOpacity writes the fade state into the panel's style attribute so a
// renderer can animate the transition.
func (p *Popover) applyOpacity(v float64) {
	if p.panel == nil {
		return
	}
	p.panel.SetAttr("style", fmt.Sprintf("opacity:%s;transition:opacity %dms ease",
		strconv.FormatFloat(v, 'f', -1, 64), p.opts.FadeDuration.Milliseconds()))
}
