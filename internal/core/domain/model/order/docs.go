// Package order provides the Order aggregate: an immutable snapshot of what a
// customer bought from one restaurant, plus the status it has reached in the
// delivery lifecycle.
//
// Status moves follow a fixed graph:
//
//	pending ──> confirmed ──> preparing ──> ready ──> picked_up ──> out_for_delivery ──> delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> cancelled
//
// delivered and cancelled are terminal. Who may request each move is decided
// by the lifecycle service; this package only guards the graph itself and
// the driver-assignment invariant (a driver is set exactly from picked_up on).
package order
