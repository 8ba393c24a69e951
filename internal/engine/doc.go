// Package engine runs an interactive force-directed layout for one graph.
//
// An Engine moves through three states:
//
//	Uninitialized --Initialize--> Running --Dispose--> Disposed
//
// While running, a single goroutine owns the simulation, the scene model, the
// viewport transform and the tooltip. Every public method is turned into a
// request that this goroutine applies between ticks, so callers never observe
// a half-updated frame. Interaction arrives as typed Intents (DragStart,
// HoverEnter, Zoom, ...) posted through Dispatch.
//
// The tick scheduler stops once the layout settles and restarts when an
// interaction reheats the simulation. Each tick (and each applied intent)
// publishes an immutable Frame to subscribers; rendering back ends turn frames
// into SVG, JSON or anything else.
//
// Engines share nothing: each owns a copy of its theme, its own random source
// and its own tooltip.
package engine
