// Package agent holds the moving parts of a chase: a Pursuer that follows
// paths computed by a dispatcher.Dispatcher, and a Wanderer, a target that
// strolls the maze from node to node.
//
// Both are driven by Update(dt) from a single game loop. A Pursuer registers
// itself with the dispatcher on construction and receives paths through its
// Mailbox; Detach removes it again.
//
//	p, err := agent.NewPursuer(d, spawn, agent.WithSpeed(96))
//	if err != nil {
//		return err
//	}
//	defer p.Detach()
//	for range ticker.C {
//		p.Update(dt)
//		d.Update(dt)
//	}
package agent
