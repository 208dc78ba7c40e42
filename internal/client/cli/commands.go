package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophtimecard/internal/client/client"
	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/daylist"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
	"github.com/dmitrijs2005/gophtimecard/internal/session"
)

var errNoTimecards = errors.New("no timecards yet, open and upload an image first")

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

// index converts a 1-based number typed by the user to a 0-based index.
func index(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n - 1, nil
}

var fieldAliases = map[string]string{
	"in":                     daylist.FieldTimeIn,
	"out":                    daylist.FieldTimeOut,
	daylist.FieldTimeIn:      daylist.FieldTimeIn,
	daylist.FieldTimeOut:     daylist.FieldTimeOut,
	daylist.FieldDay:         daylist.FieldDay,
	daylist.FieldHoursWorked: daylist.FieldHoursWorked,
	"hours":                  daylist.FieldHoursWorked,
}

func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("open <path|s3://bucket/key>")
	}
	if a.state.Phase() == session.PhaseEditing {
		return session.ErrEditInProgress
	}
	if n := len(a.state.Timecards()); n > 0 && !a.confirm(ctx, fmt.Sprintf("Discard %d extracted timecard(s)?", n)) {
		return nil
	}

	img, err := a.source.Open(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	next, err := a.state.SelectFile(img)
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Selected %s (%s, %d bytes)\n", img.Filename, img.MIMEType, img.Size())
	if !rotation.CanEncode(img.MIMEType) {
		fmt.Fprintln(a.out, "Note: this format can be uploaded as is but not rotated.")
	}
	return nil
}

func (a *App) Rotate(ctx context.Context, args []string) error {
	var (
		next session.State
		err  error
	)
	switch {
	case len(args) == 0, args[0] == "cw":
		next, err = a.state.RotateClockwise()
	case args[0] == "ccw":
		next, err = a.state.RotateCounterClockwise()
	default:
		angle, perr := rotation.ParseAngle(args[0])
		if perr != nil {
			return perr
		}
		next, err = a.state.SetRotation(angle)
	}
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Rotation: %s clockwise\n", a.state.Angle())
	return nil
}

// Preview renders the rotated image to a file for an external viewer.
func (a *App) Preview(ctx context.Context, _ []string) error {
	if _, err := a.state.ShowPreview(""); err != nil {
		return err
	}

	img, err := a.service.Normalize(a.state.Source(), a.state.Angle())
	if err != nil {
		return err
	}
	path, err := a.previews.Publish(img)
	if err != nil {
		return err
	}

	next, err := a.state.ShowPreview(path)
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Preview (%s): %s\n", a.state.Angle(), path)
	return nil
}

// Upload sends the rotated image for extraction. On failure the selected
// file and rotation are kept so the user can adjust and retry.
func (a *App) Upload(ctx context.Context, _ []string) error {
	next, err := a.state.BeginUpload()
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploading %s (%s) ...\n", a.state.Source().Filename, a.state.Angle())

	cards, err := a.service.Extract(ctx, a.state.Source(), a.state.Angle())
	if err != nil {
		msg, raw := client.Display(err)
		next, terr := a.state.UploadFailed(msg, raw)
		if cerr := a.commit(ctx, next, terr); cerr != nil {
			return cerr
		}
		if raw != "" {
			msg += " (type 'error' for the raw response)"
		}
		return errors.New(msg)
	}

	next, err = a.state.UploadSucceeded(cards)
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Extracted %d timecard(s)\n", len(cards))
	if len(cards) == 0 {
		return nil
	}
	return a.List(ctx, nil)
}

func (a *App) List(_ context.Context, _ []string) error {
	cards := a.state.Timecards()
	if len(cards) == 0 {
		return errNoTimecards
	}
	editing, ok := a.state.Editing()
	if !ok {
		editing = -1
	}
	renderSummary(a.out, cards, editing)
	return nil
}

// Show prints one card. While editing, no argument or the edited card's
// number shows the draft.
func (a *App) Show(_ context.Context, args []string) error {
	editing, isEditing := a.state.Editing()

	if len(args) == 0 {
		if !isEditing {
			return usage("show <n>")
		}
		a.showDraft()
		return nil
	}

	i, err := index(args[0])
	if err != nil {
		return err
	}
	if isEditing && i == editing {
		a.showDraft()
		return nil
	}

	card, ok := a.state.Card(i)
	if !ok {
		return fmt.Errorf("%w: %d", session.ErrNoSuchCard, i+1)
	}
	renderCard(a.out, i, card)
	return nil
}

func (a *App) showDraft() {
	i, _ := a.state.Editing()
	card, _ := a.state.Card(i)
	card.Days = a.state.Draft()
	fmt.Fprintf(a.out, "Editing card %d (%d/%d days)\n", i+1, len(card.Days), a.state.MaxDays())
	renderCard(a.out, i, card)
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("edit <n>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}

	next, err := a.state.StartEdit(i)
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	a.showDraft()
	return nil
}

func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("set <day> <time_in|time_out> <value...>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}
	field, ok := fieldAliases[strings.ToLower(args[1])]
	if !ok {
		return fmt.Errorf("%w: %q", daylist.ErrUnknownField, args[1])
	}

	value := strings.Join(args[2:], " ")
	if field == daylist.FieldTimeIn || field == daylist.FieldTimeOut {
		if value, err = models.NormalizeClock(value); err != nil {
			return err
		}
	}

	next, err := a.state.UpdateDay(i, field, value)
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	a.showDraft()
	return nil
}

// Add appends a blank day, or inserts one after the given day number.
func (a *App) Add(ctx context.Context, args []string) error {
	var (
		next session.State
		err  error
	)
	if len(args) == 0 {
		next, err = a.state.AppendDay()
	} else {
		i, perr := index(args[0])
		if perr != nil {
			return perr
		}
		next, err = a.state.InsertDay(i)
	}
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	a.showDraft()
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <day>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}

	next, err := a.state.RemoveDay(i)
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	a.showDraft()
	return nil
}

// Save submits the draft for recalculation. The service result replaces the
// card; on failure the draft stays open.
func (a *App) Save(ctx context.Context, _ []string) error {
	next, err := a.state.BeginSave()
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	i, _ := a.state.Editing()

	res, err := a.service.Recalculate(ctx, a.state.Draft())
	if err != nil {
		msg, raw := client.Display(err)
		next, terr := a.state.SaveFailed(msg, raw)
		if cerr := a.commit(ctx, next, terr); cerr != nil {
			return cerr
		}
		return errors.New(msg)
	}

	next, err = a.state.SaveSucceeded(res)
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}

	card, _ := a.state.Card(i)
	fmt.Fprintf(a.out, "Saved card %d\n", i+1)
	renderCard(a.out, i, card)
	return nil
}

func (a *App) Cancel(ctx context.Context, _ []string) error {
	next, err := a.state.CancelEdit()
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Changes discarded")
	return nil
}

// Export writes the reviewed timecards (not an open draft) to an XLSX file.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("export <file.xlsx>")
	}
	cards := a.state.Timecards()
	if len(cards) == 0 {
		return errNoTimecards
	}

	path := strings.Join(args, " ")
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		path += ".xlsx"
	}
	if err := a.exporter.SaveAs(ctx, path, cards); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d timecard(s) to %s\n", len(cards), path)
	return nil
}

func (a *App) ShowError(_ context.Context, _ []string) error {
	if a.state.Err() == "" {
		fmt.Fprintln(a.out, "No error")
		return nil
	}
	fmt.Fprintln(a.out, a.state.Err())
	if raw := a.state.RawResponse(); raw != "" {
		fmt.Fprintln(a.out, "Raw response:")
		fmt.Fprintln(a.out, raw)
	}
	return nil
}

func (a *App) Status(ctx context.Context, _ []string) error {
	fmt.Fprintf(a.out, "State: %s\n", a.state)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := a.service.Ping(pctx); err != nil {
		fmt.Fprintf(a.out, "Service %s: unreachable (%v)\n", a.baseURL, err)
		return nil
	}
	fmt.Fprintf(a.out, "Service %s: ok\n", a.baseURL)
	return nil
}

// New drops the current image and timecards. Unsaved work is confirmed first.
func (a *App) New(ctx context.Context, _ []string) error {
	if len(a.state.Timecards()) > 0 && !a.confirm(ctx, "Discard current timecards?") {
		return nil
	}
	next, err := a.state.Reset()
	if err := a.commit(ctx, next, err); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Ready for a new image")
	return nil
}
