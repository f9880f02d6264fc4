package dispatcher

import (
	"github.com/katalvlaran/mazechase/maze"
	"github.com/sirupsen/logrus"
)

// occupant is a listener and the edge it is currently walking.
type occupant struct {
	id   ID
	s    *slot
	from *maze.Node
	to   *maze.Node
}

// sameEdge reports whether two occupants walk the same undirected edge,
// head-on or one behind the other.
func sameEdge(a, b occupant) bool {
	return (a.from == b.from && a.to == b.to) || (a.from == b.to && a.to == b.from)
}

// resolveConflicts finds listeners sharing an edge and turns the later
// registered one around. Must be called with d.mu held.
func (d *Dispatcher) resolveConflicts() {
	var occ []occupant
	d.reg.each(func(id ID, s *slot) {
		if p := s.listener.Path(); len(p) >= 2 {
			occ = append(occ, occupant{id: id, s: s, from: p[0], to: p[1]})
		}
	})

	for j := 1; j < len(occ); j++ {
		for i := 0; i < j; i++ {
			if sameEdge(occ[i], occ[j]) {
				d.reroute(occ[j])
				break
			}
		}
	}
}

// reroute searches a new path for v that starts by going back the way it
// came, on a copy of the graph where the edge it was walking is blocked.
func (d *Dispatcher) reroute(v occupant) {
	if v.s.cooldown.State() != Deactivated {
		return
	}
	dir, ok := maze.DirectionTo(v.from, v.to)
	if !ok {
		return
	}

	blocked := d.g.WithoutEdge(v.from, dir)
	start := maze.Between(v.to, v.from)
	v.s.cooldown.Start()

	outcome := d.submit(v.s, job{
		id:       v.id,
		graph:    blocked,
		start:    start,
		target:   d.target,
		pf:       v.s.pf,
		cooldown: v.s.cooldown,
	}, true)
	if outcome != Submitted {
		v.s.cooldown.Pause()
	}
	d.stats.reroutes.Add(1)
	d.log.WithFields(logrus.Fields{
		"listener": v.id.String(), "edge": start.String(), "outcome": outcome.String(),
	}).Debug("dispatcher: conflict reroute")
}
