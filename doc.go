// Package toggler implements a two-task alternating debounce scheduler.
//
// A [Toggler] is handed the same pair of tasks over and over. Every call arms
// whichever of the two was not armed by the previous call and cancels the
// pending fire of the other, so the pair strictly alternates. Each task slot
// has its own trailing-edge debounce delay: a burst of calls collapses into a
// single fire of the task armed last, once its delay settles.
//
// Timing is delegated to a [Scheduler], a single-delay debounce primitive.
// The package ships [Debouncer] as the default, and any [SchedulerFactory]
// may be plugged in with [WithSchedulerFactory].
package toggler
