package dispatcher

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
)

// PathListener is an agent the dispatcher routes.
// The dispatcher calls these methods from Update with its lock held, so
// implementations must not call back into the Dispatcher.
type PathListener interface {
	// Path returns the path the agent is currently following.
	Path() []*maze.Node
	// Mailbox returns the agent's delivery slot.
	Mailbox() *Mailbox
	// HaltCurrentAndRequestNewPath stops following the current path and
	// returns where the agent is. ok is false when it cannot tell.
	HaltCurrentAndRequestNewPath() (loc maze.Location, ok bool)
}

// ID is a stable handle to a registered listener. A deregistered ID never
// matches a later registration that reuses its slot.
type ID struct {
	index uint32
	gen   uint32
}

func (id ID) String() string { return fmt.Sprintf("%d#%d", id.index, id.gen) }

// RegisterOption configures one registration.
type RegisterOption func(*slot)

// WithPathfinder routes this listener with pf instead of the dispatcher's.
func WithPathfinder(pf search.Pathfinder) RegisterOption {
	return func(s *slot) {
		if pf != nil {
			s.pf = pf
		}
	}
}

// slot is one arena entry.
type slot struct {
	gen      uint32
	live     bool
	order    uint64 // registration sequence, older first
	listener PathListener
	pf       search.Pathfinder
	cooldown *Cooldown
	cancel   context.CancelFunc // in-flight search, if any
}

// registry is an arena of slots with a free list. Not safe for concurrent
// use; the Dispatcher guards it.
type registry struct {
	slots []slot
	free  []uint32
	seq   uint64
	live  int
}

func (r *registry) add(l PathListener, s slot) ID {
	r.seq++
	s.live, s.listener, s.order = true, l, r.seq
	r.live++

	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		s.gen = r.slots[idx].gen
		r.slots[idx] = s
		return ID{index: idx, gen: s.gen}
	}
	r.slots = append(r.slots, s)
	return ID{index: uint32(len(r.slots) - 1), gen: s.gen}
}

// get returns the live slot of id, or nil.
func (r *registry) get(id ID) *slot {
	if int(id.index) >= len(r.slots) {
		return nil
	}
	s := &r.slots[id.index]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return s
}

// remove frees the slot of id and bumps its generation.
func (r *registry) remove(id ID) (slot, bool) {
	s := r.get(id)
	if s == nil {
		return slot{}, false
	}
	old := *s
	*s = slot{gen: s.gen + 1}
	r.free = append(r.free, id.index)
	r.live--
	return old, true
}

// each calls fn for every live slot in registration order.
func (r *registry) each(fn func(id ID, s *slot)) {
	ids := make([]ID, 0, r.live)
	for i := range r.slots {
		if r.slots[i].live {
			ids = append(ids, ID{index: uint32(i), gen: r.slots[i].gen})
		}
	}
	// slots are reused, so index order is not registration order
	sort.Slice(ids, func(i, j int) bool {
		return r.slots[ids[i].index].order < r.slots[ids[j].index].order
	})
	for _, id := range ids {
		fn(id, &r.slots[id.index])
	}
}
