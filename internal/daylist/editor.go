package daylist

import (
	"fmt"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
)

// DefaultMax is the number of days in a week.
const DefaultMax = 7

// Field names accepted by Update. They match the JSON keys of models.Day.
const (
	FieldDay         = "day"
	FieldTimeIn      = "time_in"
	FieldTimeOut     = "time_out"
	FieldHoursWorked = "hours_worked"
)

// Editor owns an ordered list of day entries.
//
// Editor is not safe for concurrent use. Callers that need value semantics
// (see package session) use New over a copy and read the result via Days.
type Editor struct {
	days []models.Day
	max  int
}

// New returns an editor over a copy of days. A max below one falls back to
// DefaultMax. Labels of the initial days are kept as delivered by the service
// until the first structural change.
func New(days []models.Day, max int) *Editor {
	if max < 1 {
		max = DefaultMax
	}
	return &Editor{days: models.CloneDays(days), max: max}
}

// Days returns a copy of the current entries.
func (e *Editor) Days() []models.Day {
	return models.CloneDays(e.days)
}

func (e *Editor) Len() int { return len(e.days) }

func (e *Editor) Max() int { return e.max }

func (e *Editor) CanInsert() bool { return len(e.days) < e.max }

func (e *Editor) CanRemove() bool { return len(e.days) > 1 }

// InsertAfter places blank right after position index and relabels.
// On an empty editor the entry is appended regardless of index.
func (e *Editor) InsertAfter(index int, blank models.Day) error {
	if !e.CanInsert() {
		return fmt.Errorf("%w: max %d", ErrCapacityExceeded, e.max)
	}

	if len(e.days) == 0 {
		e.days = append(e.days, blank)
		e.Relabel()
		return nil
	}

	if err := e.checkIndex(index); err != nil {
		return err
	}

	days := make([]models.Day, 0, len(e.days)+1)
	days = append(days, e.days[:index+1]...)
	days = append(days, blank)
	days = append(days, e.days[index+1:]...)
	e.days = days
	e.Relabel()
	return nil
}

// Append inserts blank after the last entry.
func (e *Editor) Append(blank models.Day) error {
	return e.InsertAfter(len(e.days)-1, blank)
}

// Remove deletes the entry at index and relabels.
func (e *Editor) Remove(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if !e.CanRemove() {
		return ErrMinimumEntries
	}

	days := make([]models.Day, 0, len(e.days)-1)
	days = append(days, e.days[:index]...)
	days = append(days, e.days[index+1:]...)
	e.days = days
	e.Relabel()
	return nil
}

// Update sets time_in or time_out of the entry at index. The label is
// derived from position and hours_worked comes from the service, so both
// are read-only.
func (e *Editor) Update(index int, field, value string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}

	d := &e.days[index]
	switch field {
	case FieldTimeIn:
		d.TimeIn = value
	case FieldTimeOut:
		d.TimeOut = value
	case FieldDay, FieldHoursWorked:
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Relabel rewrites every label from its 1-based position.
func (e *Editor) Relabel() {
	for i := range e.days {
		e.days[i].Day = Label(i + 1)
	}
}

func (e *Editor) checkIndex(index int) error {
	if index < 0 || index >= len(e.days) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(e.days))
	}
	return nil
}
