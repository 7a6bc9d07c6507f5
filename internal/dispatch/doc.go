// Package dispatch bridges a callback-driven native SDK into ordinary Go
// calls that block until their result arrives.
//
// # Overview
//
// The SDK only delivers results when its pump function is invoked, so
// something must call the pump continuously while any request is pending,
// and stop burning a core the moment nothing is. This package provides the
// three pieces that make that safe:
//
//   - Dispatcher: one goroutine per session that runs the pump in a tight
//     loop while interest exists and parks with a bounded timeout otherwise
//   - Guard: a scoped token pairing one pending callback with one unit of
//     dispatcher interest
//   - Producer/Consumer: a one-shot result channel carrying exactly one
//     outcome from the callback's goroutine to the awaiting caller
//
// # Lifecycle
//
// Every asynchronous call follows the same shape:
//
//	guard := d.Acquire()
//	tx, rx := dispatch.NewResult[Outcome]()
//	registerCallback(func(out Outcome) {
//		tx.Send(out)
//		guard.Release()
//	})
//	out, err := rx.Await(ctx)
//
// Acquire bumps the interest counter and wakes the dispatcher; Release
// drops it once the callback has fired. The dispatcher therefore runs for
// exactly the union of all pending calls' lifetimes.
//
// # Retirement
//
// The dispatcher goroutine exits only when two conditions hold at once:
// the interest counter is zero and every reference to the dispatcher
// (the owning handle plus all live guards) has been released. Until then
// it alternates between pumping and 100ms parks.
//
// # Wake race
//
// A guard can be acquired in the window between the dispatcher observing
// zero interest and parking. The wake channel covers the common case; the
// bounded park timeout guarantees the dispatcher re-checks interest within
// 100ms even if the wake signal was consumed by an earlier iteration, so
// no waiter is ever stranded.
//
// # Cancellation
//
// Abandoning a Consumer (context cancellation, shutdown) never panics and
// never hangs the producer: a Send into an abandoned channel is a silent
// no-op that hands the value back. Dropping a Producer without sending
// resolves the Consumer with ErrCancelled. Both sides may release in any
// order; delivery happens at most once.
package dispatch
