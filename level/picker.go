package level

import "math/rand"

// Picker hands out items in random order forever: every round is a fresh
// shuffle of all items, so each item comes up once per round.
type Picker[T any] struct {
	items []T
	rng   *rand.Rand
	next  int
}

// NewPicker copies items and draws from rng. rng must not be shared with
// other goroutines.
func NewPicker[T any](items []T, rng *rand.Rand) *Picker[T] {
	return &Picker[T]{items: append([]T(nil), items...), rng: rng}
}

// Next returns the next item; ok is false when there are none.
func (p *Picker[T]) Next() (item T, ok bool) {
	if len(p.items) == 0 {
		return item, false
	}
	if p.next == 0 {
		p.rng.Shuffle(len(p.items), func(i, j int) {
			p.items[i], p.items[j] = p.items[j], p.items[i]
		})
	}
	item = p.items[p.next]
	p.next = (p.next + 1) % len(p.items)
	return item, true
}

// Len returns the number of items in a round.
func (p *Picker[T]) Len() int { return len(p.items) }
