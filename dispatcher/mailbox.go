package dispatcher

import (
	"sync"

	"github.com/katalvlaran/mazechase/maze"
)

// Mailbox is the single-slot handoff between the dispatcher and one agent.
// The agent owns it and reads it on its own loop with Waiting and Take;
// workers write into it. Every request gets a generation and a result is
// accepted only for the latest one, so a late answer to a superseded
// request can never overwrite a newer path.
//
// The zero value is ready to use.
type Mailbox struct {
	mu      sync.Mutex
	gen     uint64
	waiting bool
	path    []*maze.Node
	fresh   bool
}

// Waiting reports whether a request is in flight.
func (m *Mailbox) Waiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting
}

// Take returns a delivered path once. ok is false when nothing new arrived.
// A delivered path may be empty: the target was unreachable.
func (m *Mailbox) Take() (path []*maze.Node, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fresh {
		return nil, false
	}
	path, m.path, m.fresh = m.path, nil, false
	return path, true
}

// begin opens a new generation. Unless forced it refuses while waiting.
func (m *Mailbox) begin(forced bool) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.waiting && !forced {
		return 0, false
	}
	m.gen++
	m.waiting = true
	return m.gen, true
}

// complete delivers path for gen. It reports false for a superseded gen.
func (m *Mailbox) complete(gen uint64, path []*maze.Node) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.path, m.fresh, m.waiting = path, true, false
	return true
}

// abort clears the waiting flag of gen without delivering.
func (m *Mailbox) abort(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen {
		m.waiting = false
	}
}

// put delivers path directly and supersedes any request in flight.
func (m *Mailbox) put(path []*maze.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.path, m.fresh, m.waiting = path, true, false
}

// reset supersedes any request in flight and drops an undelivered path.
func (m *Mailbox) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.path, m.fresh, m.waiting = nil, false, false
}
