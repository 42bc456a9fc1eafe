package dom

// Event types understood by the widget engine. Dispatch accepts arbitrary
// type strings; these are the ones popovers react to.
const (
	EventClick      = "click"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
)

// Event is a dispatched interaction event. Events bubble from the target
// element up through its ancestors until a handler calls StopPropagation.
type Event struct {
	Type   string
	Target *Element

	current *Element
	stopped bool
}

// CurrentTarget returns the element whose listener is currently running.
func (e *Event) CurrentTarget() *Element { return e.current }

// StopPropagation prevents the event from reaching any further element in
// the bubble path. Remaining listeners on the current element still run.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether propagation has been stopped.
func (e *Event) Stopped() bool { return e.stopped }

// Handler is an event callback.
type Handler func(*Event)

// Listener is a registered handler. The handle removes exactly the
// registration it was returned for, so the same function can be attached
// multiple times and removed individually.
type Listener struct {
	typ string
	fn  Handler
	el  *Element
}

// On registers a handler for the given event type and returns its handle.
func (e *Element) On(typ string, fn Handler) *Listener {
	if e.listeners == nil {
		e.listeners = make(map[string][]*Listener)
	}
	l := &Listener{typ: typ, fn: fn, el: e}
	e.listeners[typ] = append(e.listeners[typ], l)
	return l
}

// Off removes a listener previously returned by On. Removing a listener
// twice, or a nil listener, is a no-op.
func (e *Element) Off(l *Listener) {
	if l == nil || l.el != e {
		return
	}
	list := e.listeners[l.typ]
	for i, x := range list {
		if x == l {
			e.listeners[l.typ] = append(list[:i], list[i+1:]...)
			break
		}
	}
	l.el = nil
}

// Remove detaches the listener from its element. Safe on nil and on
// already-removed listeners.
func (l *Listener) Remove() {
	if l == nil || l.el == nil {
		return
	}
	l.el.Off(l)
}

// Dispatch delivers an event of the given type at target and bubbles it up
// to the root. Handlers may remove listeners (including themselves) during
// dispatch; the listener list is snapshotted per element. The returned
// event reports whether propagation was stopped.
func Dispatch(target *Element, typ string) *Event {
	evt := &Event{Type: typ, Target: target}
	for n := target; n != nil; n = n.parent {
		evt.current = n
		list := n.listeners[typ]
		if len(list) == 0 {
			continue
		}
		snapshot := make([]*Listener, len(list))
		copy(snapshot, list)
		for _, l := range snapshot {
			if l.el == nil {
				continue // removed by an earlier handler
			}
			l.fn(evt)
		}
		if evt.stopped {
			break
		}
	}
	return evt
}

// Dispatch delivers an event at target within this document. It is a
// convenience wrapper around the package-level Dispatch.
func (d *Document) Dispatch(target *Element, typ string) *Event {
	return Dispatch(target, typ)
}
