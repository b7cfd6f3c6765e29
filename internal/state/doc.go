// Package state holds the dashboard's application state and the reducer
// that evolves it.
//
// # Overview
//
// Everything the UI renders comes from one immutable AppState snapshot.
// Network results, user input and auth changes all arrive as Events; Reduce
// turns (state, event) into the next state without side effects, and Store
// serializes those transitions for the rest of the program.
//
// # Architecture
//
//	Sync driver (internal/app):        UI (internal/ui):
//	┌────────────────────┐            ┌────────────────────┐
//	│ Dispatch(Request)  │            │ Dispatch(Change)   │
//	│ client call        │            │                    │
//	│ Dispatch(Receive)  │──┐      ┌──│ Snapshot()         │
//	└────────────────────┘  │      │  └────────────────────┘
//	                        ↓      │
//	                 ┌──────────────────┐
//	                 │ Store            │
//	                 │  Reduce(s, ev)   │──→ Subscribe() channels
//	                 └──────────────────┘
//
// # Reducer Contract
//
//   - Reduce(nil, ev) returns Default() whatever ev is
//   - unknown events and rejected receives return the input pointer
//   - the input state is never modified; untouched maps and slices are
//     shared with the result, so pointer equality means "unchanged"
//   - payload slices carried by receive events are copied before they are
//     stored, so callers may reuse their buffers
//
// # Composition
//
// Reduce composes three smaller pieces:
//
//   - fetch.Resource tracks each request cycle (ping, boot, realms, user
//     preferences, pricelists)
//   - resolve picks the current region on boot and the current realm on a
//     realm list, honoring the stored preference only as a region/realm pair
//   - keyed builds the region, realm and two-level item class lookup tables
//
// On a boot receive the region is resolved and the realm list is put into
// the prompted level, because realms depend on the region just chosen. A
// region change does the same. A realm list receive or a realm change
// prompts the pricelists.
//
// # Concurrency Model
//
// Store uses a readers-writer lock:
//
//   - Dispatch(): write lock, reduce, publish
//   - Snapshot(): read lock, returns the shared pointer
//
// Reduce never blocks and performs no I/O, so the lock is held only for the
// duration of one transition. Subscribers get a buffered channel holding at
// most one pending state; a slow subscriber skips intermediate states and
// sees the latest.
//
// # Stale Receives
//
// Each Request increments the resource's sequence number. Receive events
// that carry a Seq are dropped unless it matches the latest request, which
// protects against a slow response for an old region overwriting a newer
// one. Receive events with Seq zero behave as untagged: they complete
// whatever request is in flight.
package state
