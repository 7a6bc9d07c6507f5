// Package flow implements the upload workflow state machine.
//
// # Overview
//
// The workflow walks a user from an item id (or a blank entry for a new
// item) through form editing to a submitted workshop item:
//
//	Entry ──proceed(id)──▶ Searching ──found──▶ Editing
//	Entry ──proceed("")─────────────────────────▶ Editing
//	Editing ──proceed(valid, existing id)──▶ Submitting
//	Editing ──proceed(valid, no id)──▶ Creating ──id──▶ Submitting
//	Submitting ──matching id echo──▶ Done
//
// Every failure edge lands in a state that holds the error alongside the
// user's data (Searching with Err, CreateFailed, SubmitFailed), and every
// such state has a go-back edge returning to an editable state with that
// data intact. Nothing is retried automatically.
//
// # Purity
//
// Machine.Handle is a pure function of (state, event) apart from the
// injected draft validator; async operations are returned as Command
// descriptions, never executed here. The eventual follow-up transition for
// a launched operation arrives as an ordinary event (ItemFound, IDReceived,
// OpFailed) delivered by whoever ran the command.
//
// Events that have no meaning in the current state are ignored without a
// transition, which makes stale async results harmless: by the time the
// machine has navigated away, the delivering event no longer matches.
package flow
