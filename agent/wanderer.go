package agent

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Wanderer is a target that walks the maze edge by edge, picking a random
// next edge at every node and avoiding the way back unless it is a dead end.
// Motion along an edge is a tween, so it glides rather than snaps.
//
// Wanderer implements dispatcher.Tracker.
type Wanderer struct {
	g      *maze.Graph
	rng    *rand.Rand
	speed  float64
	easing ease.TweenFunc

	mu       sync.Mutex
	from, to *maze.Node
	prev     *maze.Node
	tween    *gween.Tween
	progress float32
	elapsed  float32 // seconds spent on the current edge
	duration float32
}

// NewWanderer places a wanderer on spawn.
func NewWanderer(g *maze.Graph, spawn *maze.Node, opts ...WanderOption) (*Wanderer, error) {
	if spawn == nil {
		return nil, ErrNilNode
	}
	if g == nil || !g.Contains(spawn) {
		return nil, fmt.Errorf("%w: %v", ErrForeignNode, spawn)
	}
	o := DefaultWanderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	w := &Wanderer{g: g, rng: o.Rand, speed: o.Speed, easing: o.Easing, from: spawn}
	w.pick()
	return w, nil
}

// pick chooses the next edge from w.from. Must be called with w.mu held.
func (w *Wanderer) pick() {
	w.to, w.tween, w.progress, w.elapsed = nil, nil, 0, 0
	ns := w.g.Neighbors(w.from)
	if len(ns) == 0 {
		return
	}
	choices := make([]maze.Neighbor, 0, len(ns))
	for _, nb := range ns {
		if nb.Node != w.prev {
			choices = append(choices, nb)
		}
	}
	if len(choices) == 0 {
		choices = ns
	}
	next := choices[w.rng.Intn(len(choices))].Node

	a, b := w.g.Center(w.from), w.g.Center(next)
	length := math.Abs(float64(b.X-a.X)) + math.Abs(float64(b.Y-a.Y))
	w.to = next
	w.duration = float32(length / w.speed)
	w.tween = gween.New(0, 1, w.duration, w.easing)
}

// Update moves the wanderer by dt. Time left over at a node carries into
// the next edge.
func (w *Wanderer) Update(dt time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	left := float32(dt.Seconds())
	for left > 0 && w.tween != nil {
		cur, done := w.tween.Update(left)
		w.progress = cur
		if !done {
			w.elapsed += left
			return
		}
		left -= w.duration - w.elapsed
		w.prev, w.from = w.from, w.to
		w.pick()
	}
}

// Teleport puts the wanderer on n and forgets its heading.
func (w *Wanderer) Teleport(n *maze.Node) error {
	if n == nil || !w.g.Contains(n) {
		return fmt.Errorf("%w: %v", ErrForeignNode, n)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.from, w.prev = n, nil
	w.pick()
	return nil
}

// Node returns the node the wanderer last left or stands on.
func (w *Wanderer) Node() *maze.Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.from
}

// Heading returns the node the wanderer is walking to, nil when it has
// nowhere to go.
func (w *Wanderer) Heading() *maze.Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.to
}

// Center returns the pixel centre of the wanderer.
func (w *Wanderer) Center() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.center()
}

func (w *Wanderer) center() image.Point {
	a := w.g.Center(w.from)
	if w.to == nil {
		return a
	}
	b := w.g.Center(w.to)
	f := float64(w.progress)
	return image.Pt(
		a.X+int(math.Round(float64(b.X-a.X)*f)),
		a.Y+int(math.Round(float64(b.Y-a.Y)*f)),
	)
}

// Rect returns the tile-sized rectangle centred on the wanderer.
func (w *Wanderer) Rect() image.Rectangle {
	w.mu.Lock()
	defer w.mu.Unlock()
	half := w.g.Geometry().TileSize / 2
	tl := w.center().Sub(image.Pt(half, half))
	size := w.g.Geometry().TileSize
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(size, size))}
}

// TopLeft returns the top-left corner of Rect.
func (w *Wanderer) TopLeft() (image.Point, bool) { return w.Rect().Min, true }
