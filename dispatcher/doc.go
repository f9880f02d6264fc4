// Package dispatcher routes pursuing agents towards a moving target.
//
// A Dispatcher owns a fixed pool of workers fed by a bounded job queue.
// Agents register as PathListeners and ask for paths with Request; results
// come back through each agent's Mailbox, a generation-tagged single slot
// that drops answers to superseded requests. Request never blocks: when the
// queue is full the request is dropped and the agent asks again later.
//
// Every RefreshInterval of game time Update re-resolves the target's
// position. When it moved, listeners whose path already passes through the
// new location keep the leading part of it; the others are halted and
// re-routed with a forced request that cancels any search in flight.
//
// Update also looks for listeners walking the same edge. The one registered
// later is turned around and re-routed on a copy of the graph where the
// shared edge is blocked in its direction of travel; the live graph is never
// modified. A per-listener Cooldown keeps this from oscillating.
//
// Listeners are held in an arena indexed by ID and must be removed with
// Deregister; a stale ID is ignored.
package dispatcher
