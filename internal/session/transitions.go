package session

import (
	"fmt"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/daylist"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
)

func (s State) guard(allowed ...Phase) error {
	if s.phase.Busy() {
		return ErrBusy
	}
	for _, p := range allowed {
		if s.phase == p {
			return nil
		}
	}
	if s.phase == PhaseEditing {
		return ErrEditInProgress
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, s.phase)
}

func (s State) clearErr() State {
	s.errMsg, s.rawMsg = "", ""
	return s
}

// SelectFile starts over with a new image. Previous timecards are dropped.
func (s State) SelectFile(img rotation.Image) (State, error) {
	if err := s.guard(PhaseIdle, PhaseFileSelected, PhasePreviewing, PhaseReviewing); err != nil {
		return s, err
	}
	if len(img.Data) == 0 {
		return s, ErrNoFile
	}

	next := New(s.maxDays)
	next.phase = PhaseFileSelected
	next.source = img
	return next, nil
}

// SetRotation changes the pending rotation. The preview becomes stale.
func (s State) SetRotation(a rotation.Angle) (State, error) {
	if err := s.guard(PhaseFileSelected, PhasePreviewing); err != nil {
		return s, err
	}
	if !a.Valid() {
		return s, fmt.Errorf("%w: %d", rotation.ErrInvalidAngle, int(a))
	}
	s = s.clearErr()
	s.phase = PhaseFileSelected
	s.angle = a
	s.preview = ""
	return s, nil
}

func (s State) RotateClockwise() (State, error) {
	return s.SetRotation(rotation.NextClockwise(s.angle))
}

func (s State) RotateCounterClockwise() (State, error) {
	return s.SetRotation(rotation.PreviousClockwise(s.angle))
}

// ShowPreview records a rendered preview for the current rotation.
func (s State) ShowPreview(ref string) (State, error) {
	if err := s.guard(PhaseFileSelected, PhasePreviewing); err != nil {
		return s, err
	}
	s.phase = PhasePreviewing
	s.preview = ref
	return s, nil
}

func (s State) BeginUpload() (State, error) {
	if err := s.guard(PhaseFileSelected, PhasePreviewing); err != nil {
		return s, err
	}
	s = s.clearErr()
	s.phase = PhaseUploading
	return s, nil
}

func (s State) UploadSucceeded(cards []models.Timecard) (State, error) {
	if s.phase != PhaseUploading {
		return s, fmt.Errorf("%w: upload result in %s", ErrInvalidTransition, s.phase)
	}
	s.phase = PhaseReviewing
	s.timecards = models.CloneTimecards(cards)
	s.editing = -1
	s.draft = nil
	return s, nil
}

// UploadFailed returns to the file the user selected and records msg.
func (s State) UploadFailed(msg, raw string) (State, error) {
	if s.phase != PhaseUploading {
		return s, fmt.Errorf("%w: upload failure in %s", ErrInvalidTransition, s.phase)
	}
	s.phase = PhaseFileSelected
	if s.preview != "" {
		s.phase = PhasePreviewing
	}
	s.errMsg, s.rawMsg = msg, raw
	return s, nil
}

// StartEdit opens card i for editing with a draft copy of its days.
// Re-opening the card already being edited is a no-op.
func (s State) StartEdit(i int) (State, error) {
	if s.phase == PhaseEditing && s.editing == i {
		return s, nil
	}
	if err := s.guard(PhaseReviewing); err != nil {
		return s, err
	}
	if i < 0 || i >= len(s.timecards) {
		return s, fmt.Errorf("%w: %d", ErrNoSuchCard, i+1)
	}
	s = s.clearErr()
	s.phase = PhaseEditing
	s.editing = i
	s.draft = models.CloneDays(s.timecards[i].Days)
	return s, nil
}

// CancelEdit discards the draft.
func (s State) CancelEdit() (State, error) {
	if err := s.editGuard(); err != nil {
		return s, err
	}
	s = s.clearErr()
	s.phase = PhaseReviewing
	s.editing = -1
	s.draft = nil
	return s, nil
}

func (s State) editGuard() error {
	if s.phase.Busy() {
		return ErrBusy
	}
	if s.phase != PhaseEditing {
		return ErrNotEditing
	}
	return nil
}

func (s State) withDraft(op func(e *daylist.Editor) error) (State, error) {
	if err := s.editGuard(); err != nil {
		return s, err
	}
	e := daylist.New(s.draft, s.maxDays)
	if err := op(e); err != nil {
		return s, err
	}
	s.draft = e.Days()
	return s, nil
}

// InsertDay adds a blank day after position after (0-based).
func (s State) InsertDay(after int) (State, error) {
	return s.withDraft(func(e *daylist.Editor) error {
		return e.InsertAfter(after, models.BlankDay())
	})
}

// AppendDay adds a blank day at the end of the draft.
func (s State) AppendDay() (State, error) {
	return s.withDraft(func(e *daylist.Editor) error {
		return e.Append(models.BlankDay())
	})
}

func (s State) RemoveDay(i int) (State, error) {
	return s.withDraft(func(e *daylist.Editor) error {
		return e.Remove(i)
	})
}

func (s State) UpdateDay(i int, field, value string) (State, error) {
	return s.withDraft(func(e *daylist.Editor) error {
		return e.Update(i, field, value)
	})
}

// BeginSave checks that the draft can be sent and marks the request in
// flight. A draft with an unparseable clock time stays open for editing.
func (s State) BeginSave() (State, error) {
	if err := s.editGuard(); err != nil {
		return s, err
	}
	if _, err := models.ToEditRequest(s.draft); err != nil {
		return s, err
	}
	s = s.clearErr()
	s.phase = PhaseRecalculating
	return s, nil
}

// SaveSucceeded replaces the edited card's days and total with the service
// result exactly; nothing from the draft is merged in.
func (s State) SaveSucceeded(res models.EditResult) (State, error) {
	if s.phase != PhaseRecalculating {
		return s, fmt.Errorf("%w: save result in %s", ErrInvalidTransition, s.phase)
	}
	cards := models.CloneTimecards(s.timecards)
	cards[s.editing].Days = models.CloneDays(res.Entries)
	cards[s.editing].TotalHoursWorked = res.TotalHoursWorked

	s.timecards = cards
	s.phase = PhaseReviewing
	s.editing = -1
	s.draft = nil
	return s, nil
}

// SaveFailed reopens the draft and records msg.
func (s State) SaveFailed(msg, raw string) (State, error) {
	if s.phase != PhaseRecalculating {
		return s, fmt.Errorf("%w: save failure in %s", ErrInvalidTransition, s.phase)
	}
	s.phase = PhaseEditing
	s.errMsg, s.rawMsg = msg, raw
	return s, nil
}

// Reset drops everything and returns to Idle.
func (s State) Reset() (State, error) {
	if s.phase.Busy() {
		return s, ErrBusy
	}
	return New(s.maxDays), nil
}
