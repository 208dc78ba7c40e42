package session

import (
	"fmt"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/daylist"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
)

// State is a snapshot of the session. The zero value is not usable; call New.
type State struct {
	phase Phase

	source  rotation.Image
	angle   rotation.Angle
	preview string

	timecards []models.Timecard
	editing   int
	draft     []models.Day

	errMsg string
	rawMsg string

	maxDays int
}

// New returns an idle session whose day lists hold at most maxDays entries.
func New(maxDays int) State {
	if maxDays < 1 {
		maxDays = daylist.DefaultMax
	}
	return State{phase: PhaseIdle, editing: -1, maxDays: maxDays}
}

func (s State) Phase() Phase { return s.phase }

func (s State) Busy() bool { return s.phase.Busy() }

func (s State) MaxDays() int { return s.maxDays }

// Source is the image as selected, before rotation.
func (s State) Source() rotation.Image { return s.source }

func (s State) HasFile() bool { return len(s.source.Data) > 0 }

func (s State) Angle() rotation.Angle { return s.angle }

// Preview is the reference of the rendered preview, empty when stale.
func (s State) Preview() string { return s.preview }

func (s State) Timecards() []models.Timecard { return models.CloneTimecards(s.timecards) }

func (s State) Card(i int) (models.Timecard, bool) {
	if i < 0 || i >= len(s.timecards) {
		return models.Timecard{}, false
	}
	return s.timecards[i].Clone(), true
}

// Editing returns the index of the card being edited, if any.
func (s State) Editing() (int, bool) {
	if s.phase != PhaseEditing && s.phase != PhaseRecalculating {
		return -1, false
	}
	return s.editing, true
}

// Draft returns a copy of the pending days of the card being edited.
func (s State) Draft() []models.Day { return models.CloneDays(s.draft) }

// Err is the message to display for the last failed service call.
func (s State) Err() string { return s.errMsg }

// RawResponse is the unparsed service output attached to the last error.
func (s State) RawResponse() string { return s.rawMsg }

func (s State) CanUpload() bool {
	return s.phase == PhaseFileSelected || s.phase == PhasePreviewing
}

func (s State) CanInsert() bool {
	return s.phase == PhaseEditing && len(s.draft) < s.maxDays
}

func (s State) CanRemove() bool {
	return s.phase == PhaseEditing && len(s.draft) > 1
}

func (s State) String() string {
	switch s.phase {
	case PhaseEditing, PhaseRecalculating:
		return fmt.Sprintf("%s card %d", s.phase, s.editing+1)
	case PhaseReviewing:
		return fmt.Sprintf("%s %d card(s)", s.phase, len(s.timecards))
	case PhaseFileSelected, PhasePreviewing:
		return fmt.Sprintf("%s %s %s", s.phase, s.source.Filename, s.angle)
	}
	return s.phase.String()
}
