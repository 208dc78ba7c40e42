package session

import (
	"testing"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/daylist"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() rotation.Image {
	return rotation.Image{Data: []byte{1, 2, 3}, MIMEType: rotation.MIMEPNG, Filename: "card.png", Width: 3, Height: 1}
}

func testCards() []models.Timecard {
	return []models.Timecard{
		{
			Name: "Alice",
			Days: []models.Day{
				{Day: "1st Day", TimeIn: "09:00 AM", TimeOut: "05:00 PM", HoursWorked: "8:00"},
				{Day: "2nd Day", TimeIn: "09:00 AM", TimeOut: "01:00 PM", HoursWorked: "4:00"},
			},
			TotalHoursWorked: "12:00",
		},
		{
			Name:             "Bob",
			Days:             []models.Day{{Day: "1st Day", TimeIn: "10:00 AM", TimeOut: "11:00 AM", HoursWorked: "1:00"}},
			TotalHoursWorked: "1:00",
		},
	}
}

// reviewing drives a fresh session up to the Reviewing phase.
func reviewing(t *testing.T) State {
	t.Helper()
	s := New(daylist.DefaultMax)
	var err error
	s, err = s.SelectFile(testImage())
	require.NoError(t, err)
	s, err = s.ShowPreview("preview-1")
	require.NoError(t, err)
	s, err = s.BeginUpload()
	require.NoError(t, err)
	s, err = s.UploadSucceeded(testCards())
	require.NoError(t, err)
	require.Equal(t, PhaseReviewing, s.Phase())
	return s
}

func TestHappyPath(t *testing.T) {
	s := New(0)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, daylist.DefaultMax, s.MaxDays())
	assert.False(t, s.CanUpload())

	s, err := s.SelectFile(testImage())
	require.NoError(t, err)
	assert.Equal(t, PhaseFileSelected, s.Phase())
	assert.True(t, s.CanUpload())

	s, err = s.RotateClockwise()
	require.NoError(t, err)
	assert.Equal(t, rotation.Deg90, s.Angle())

	s, err = s.ShowPreview("p")
	require.NoError(t, err)
	assert.Equal(t, PhasePreviewing, s.Phase())
	assert.Equal(t, "p", s.Preview())

	s, err = s.BeginUpload()
	require.NoError(t, err)
	assert.True(t, s.Busy())

	s, err = s.UploadSucceeded(testCards())
	require.NoError(t, err)
	assert.Len(t, s.Timecards(), 2)
	_, editing := s.Editing()
	assert.False(t, editing)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s := reviewing(t)
	before := s.Timecards()

	e, err := s.StartEdit(0)
	require.NoError(t, err)
	e, err = e.UpdateDay(0, daylist.FieldTimeIn, "07:00 AM")
	require.NoError(t, err)
	e, err = e.AppendDay()
	require.NoError(t, err)

	assert.Equal(t, PhaseReviewing, s.Phase())
	assert.Empty(t, cmp.Diff(before, s.Timecards()))
	assert.Len(t, e.Draft(), 3)
	assert.Equal(t, "09:00 AM", e.Timecards()[0].Days[0].TimeIn, "draft edits stay out of the card until saved")

	cards := e.Timecards()
	cards[0].Name = "changed"
	assert.Equal(t, "Alice", e.Timecards()[0].Name)
}

func TestRotation(t *testing.T) {
	s, err := New(7).SelectFile(testImage())
	require.NoError(t, err)
	s, err = s.ShowPreview("p")
	require.NoError(t, err)

	s, err = s.RotateCounterClockwise()
	require.NoError(t, err)
	assert.Equal(t, rotation.Deg270, s.Angle())
	assert.Equal(t, PhaseFileSelected, s.Phase())
	assert.Empty(t, s.Preview(), "rotation makes the preview stale")

	_, err = s.SetRotation(rotation.Angle(45))
	require.ErrorIs(t, err, rotation.ErrInvalidAngle)

	_, err = New(7).RotateClockwise()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSelectFile(t *testing.T) {
	_, err := New(7).SelectFile(rotation.Image{})
	require.ErrorIs(t, err, ErrNoFile)

	s := reviewing(t)
	s, err = s.SelectFile(testImage())
	require.NoError(t, err)
	assert.Empty(t, s.Timecards(), "a new upload clears previous timecards")
	assert.Equal(t, rotation.Deg0, s.Angle())
}

func TestBusyRefusesUserTransitions(t *testing.T) {
	s, err := New(7).SelectFile(testImage())
	require.NoError(t, err)
	s, err = s.BeginUpload()
	require.NoError(t, err)

	checks := map[string]func() (State, error){
		"select": func() (State, error) { return s.SelectFile(testImage()) },
		"rotate": func() (State, error) { return s.RotateClockwise() },
		"upload": func() (State, error) { return s.BeginUpload() },
		"edit":   func() (State, error) { return s.StartEdit(0) },
		"reset":  func() (State, error) { return s.Reset() },
		"insert": func() (State, error) { return s.AppendDay() },
	}
	for name, fn := range checks {
		next, err := fn()
		require.ErrorIs(t, err, ErrBusy, name)
		assert.Equal(t, PhaseUploading, next.Phase(), name)
	}
}

func TestUploadFailed_KeepsFileAndError(t *testing.T) {
	s, _ := New(7).SelectFile(testImage())
	s, _ = s.ShowPreview("p")
	s, _ = s.BeginUpload()

	s, err := s.UploadFailed("HTTP error! status: 500", "raw")
	require.NoError(t, err)
	assert.Equal(t, PhasePreviewing, s.Phase())
	assert.Equal(t, "HTTP error! status: 500", s.Err())
	assert.Equal(t, "raw", s.RawResponse())
	assert.False(t, s.Busy())

	s, err = s.BeginUpload()
	require.NoError(t, err)
	assert.Empty(t, s.Err(), "an error never coexists with a request in flight")

	_, err = New(7).UploadFailed("x", "")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStartEdit_SecondCardIsBlocked(t *testing.T) {
	s := reviewing(t)

	s, err := s.StartEdit(0)
	require.NoError(t, err)
	s, err = s.UpdateDay(1, daylist.FieldTimeOut, "03:00 PM")
	require.NoError(t, err)

	blocked, err := s.StartEdit(1)
	require.ErrorIs(t, err, ErrEditInProgress)
	idx, ok := blocked.Editing()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "03:00 PM", blocked.Draft()[1].TimeOut, "pending edits survive the refused switch")

	same, err := s.StartEdit(0)
	require.NoError(t, err)
	assert.Equal(t, "03:00 PM", same.Draft()[1].TimeOut, "re-opening the same card keeps the draft")

	s, err = s.CancelEdit()
	require.NoError(t, err)
	s, err = s.StartEdit(1)
	require.NoError(t, err)
	idx, _ = s.Editing()
	assert.Equal(t, 1, idx)
}

func TestStartEdit_NoSuchCard(t *testing.T) {
	_, err := reviewing(t).StartEdit(5)
	require.ErrorIs(t, err, ErrNoSuchCard)
}

func TestEditingWhileOpenBlocksNewFile(t *testing.T) {
	s, _ := reviewing(t).StartEdit(0)
	_, err := s.SelectFile(testImage())
	require.ErrorIs(t, err, ErrEditInProgress)
}

func TestDraftOperations(t *testing.T) {
	s, _ := reviewing(t).StartEdit(0)

	s, err := s.InsertDay(0)
	require.NoError(t, err)
	draft := s.Draft()
	require.Len(t, draft, 3)
	assert.Equal(t, models.Day{Day: "2nd Day"}, draft[1])
	assert.Equal(t, "3rd Day", draft[2].Day)

	s, err = s.RemoveDay(0)
	require.NoError(t, err)
	assert.Equal(t, "1st Day", s.Draft()[0].Day)

	_, err = s.UpdateDay(0, daylist.FieldHoursWorked, "9:00")
	require.ErrorIs(t, err, daylist.ErrReadOnlyField)
}

func TestDraftCapacityAndFloor(t *testing.T) {
	s, _ := reviewing(t).StartEdit(1)
	require.True(t, s.CanInsert())
	require.False(t, s.CanRemove())

	_, err := s.RemoveDay(0)
	require.ErrorIs(t, err, daylist.ErrMinimumEntries)

	for len(s.Draft()) < 7 {
		s, err = s.AppendDay()
		require.NoError(t, err)
	}
	assert.False(t, s.CanInsert())

	next, err := s.AppendDay()
	require.ErrorIs(t, err, daylist.ErrCapacityExceeded)
	assert.Len(t, next.Draft(), 7)
}

func TestDraftOpsOutsideEditing(t *testing.T) {
	_, err := reviewing(t).AppendDay()
	require.ErrorIs(t, err, ErrNotEditing)
	_, err = reviewing(t).CancelEdit()
	require.ErrorIs(t, err, ErrNotEditing)
}

func TestSave_ReplacesDaysAndTotalExactly(t *testing.T) {
	s, _ := reviewing(t).StartEdit(0)
	s, err := s.UpdateDay(0, daylist.FieldTimeIn, "09:00 AM")
	require.NoError(t, err)
	s, err = s.AppendDay()
	require.NoError(t, err)

	s, err = s.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, PhaseRecalculating, s.Phase())

	res := models.EditResult{
		Entries: []models.Day{
			{Day: "1st Day", TimeIn: "09:00 AM", TimeOut: "05:00 PM", HoursWorked: "8:00"},
		},
		TotalHoursWorked: "8h 00m",
	}
	s, err = s.SaveSucceeded(res)
	require.NoError(t, err)

	card, ok := s.Card(0)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(res.Entries, card.Days))
	assert.Equal(t, "8h 00m", card.TotalHoursWorked)
	assert.Equal(t, PhaseReviewing, s.Phase())
	assert.Nil(t, s.Draft())

	other, _ := s.Card(1)
	assert.Equal(t, testCards()[1], other)
}

func TestSave_InvalidClockStaysEditing(t *testing.T) {
	s, _ := reviewing(t).StartEdit(0)
	s, _ = s.UpdateDay(0, daylist.FieldTimeOut, "quarter past")

	next, err := s.BeginSave()
	require.ErrorIs(t, err, models.ErrInvalidClock)
	assert.Equal(t, PhaseEditing, next.Phase())
}

func TestSaveFailed_ReopensDraft(t *testing.T) {
	s, _ := reviewing(t).StartEdit(0)
	s, _ = s.UpdateDay(0, daylist.FieldTimeIn, "08:00 AM")
	s, _ = s.BeginSave()

	s, err := s.SaveFailed("HTTP error! status: 502", "")
	require.NoError(t, err)
	assert.Equal(t, PhaseEditing, s.Phase())
	assert.Equal(t, "08:00 AM", s.Draft()[0].TimeIn)
	assert.Equal(t, "HTTP error! status: 502", s.Err())

	_, err = reviewing(t).SaveSucceeded(models.EditResult{})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReset(t *testing.T) {
	s, _ := reviewing(t).StartEdit(0)
	s, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Timecards())
	assert.False(t, s.HasFile())
	assert.Empty(t, s.Preview())
	assert.Equal(t, "idle", s.String())
}
