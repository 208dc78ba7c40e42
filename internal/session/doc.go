// Package session models one upload-review-edit session as an immutable value.
//
// State is never mutated in place. Every transition is a method with a value
// receiver that returns the next State and an error; when the error is non-nil
// the returned State is the receiver unchanged. Slices handed out by accessors
// are copies.
//
// Phases:
//
//	Idle -> FileSelected -> Previewing -> Uploading -> Reviewing
//	Reviewing -> Editing(card) -> Recalculating(card) -> Reviewing
//	Editing(card) -> Reviewing                  (cancel, draft discarded)
//	any idle phase -> Idle                      (reset / retry)
//
// Uploading and Recalculating are busy phases: every user transition is
// refused with ErrBusy until the matching *Succeeded or *Failed transition
// arrives. An error message is only ever carried by a non-busy state.
//
// Only one card can be edited at a time. Starting an edit on another card
// while one is open is refused with ErrEditInProgress; the open edit must be
// saved or cancelled first.
package session
