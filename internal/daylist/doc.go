// Package daylist edits the ordered day entries of a single timecard.
//
// An Editor keeps between one and Max entries. Every structural change
// (insert, remove) relabels the entries from their 1-based position, and
// labels are never set by the user.
// Refused operations return a sentinel error and leave the list untouched:
//
//	ErrCapacityExceeded  insert at the configured maximum
//	ErrMinimumEntries    remove of the last remaining entry
//	ErrIndexOutOfRange   index outside the list
//	ErrReadOnlyField     update of day or hours_worked
//	ErrUnknownField      update of any other unsupported field
package daylist
