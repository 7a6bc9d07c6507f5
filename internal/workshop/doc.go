// Package workshop exposes the three upload operations against the native
// workshop API as ordinary blocking calls.
//
// # Overview
//
// The native API is callback-driven: every call registers a closure that
// only fires during a later RunCallbacks pump. A Session hides that behind
// three context-aware methods:
//
//	summary, err := session.LookupItem(ctx, id)
//	created, err := session.CreateItem(ctx)
//	result, err := session.SubmitContent(ctx, id, info)
//
// Each method acquires a dispatch.Guard, registers exactly one callback
// that forwards the native result through a one-shot channel, and awaits
// it. Abandoning the wait (context cancellation, shutdown) surfaces as
// dispatch.ErrCancelled; the in-flight native call is not interrupted, it
// just delivers into a channel nobody reads.
//
// # Lookup filtering
//
// LookupItem accepts cached platform responses up to six minutes old and
// strips long descriptions, child items, metadata, and extra previews from
// the payload. Two post-filters apply: non-community entries become
// ErrNoMatch, and entries whose consumer app differs from (or does not
// report) the session's app require explicit user confirmation through the
// injected Confirmer. Declining is a cancellation, not a lookup failure.
//
// # Error taxonomy
//
// Native errors pass through opaquely, wrapped with the failing operation
// for context. ErrNoMatch and dispatch.ErrCancelled are the only sentinels
// callers are expected to branch on.
package workshop
