package popover

// registry is the ordered collection of live instances owned by a
// Controller. Insertion order is activation order; the exclusivity sweep
// iterates it in that order, skipping the instance being shown.
//
// The registry is only touched on the controller's loop goroutine, so it
// needs no locking.
type registry struct {
	items []*Popover
}

func (r *registry) add(p *Popover) {
	r.items = append(r.items, p)
}

func (r *registry) remove(p *Popover) {
	for i, q := range r.items {
		if q == p {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// list returns a snapshot, so callbacks triggered during iteration may
// mutate the registry safely.
func (r *registry) list() []*Popover {
	out := make([]*Popover, len(r.items))
	copy(out, r.items)
	return out
}

// hideOthers hides every live instance except keep. Used to enforce
// one-popover-at-a-time when the controller is exclusive.
func (r *registry) hideOthers(keep *Popover) {
	for _, q := range r.list() {
		if q != keep {
			q.requestHide()
		}
	}
}
