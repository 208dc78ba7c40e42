package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtimecard/internal/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a recording stub.
type execIface interface {
	phase() session.Phase

	Open(ctx context.Context, args []string) error
	Rotate(ctx context.Context, args []string) error
	Preview(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Cancel(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	ShowError(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
}

// runREPL reads one command per line and dispatches it to a. Errors from a
// command are printed and the loop continues. It returns on "exit"/"quit",
// when lines is closed, or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, lines <-chan string) {
	for {
		printlnFn(fmt.Sprintf("timecard (%s) > ", statusFn()))

		var line string
		select {
		case <-ctx.Done():
			printlnFn("Bye!")
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			printlnFn(help(a.phase()))
		case "open":
			err = a.Open(ctx, args)
		case "rotate", "r":
			err = a.Rotate(ctx, args)
		case "preview":
			err = a.Preview(ctx, args)
		case "upload":
			err = a.Upload(ctx, args)
		case "list", "l":
			err = a.List(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "edit":
			err = a.Edit(ctx, args)
		case "set":
			err = a.Set(ctx, args)
		case "add":
			err = a.Add(ctx, args)
		case "remove", "rm":
			err = a.Remove(ctx, args)
		case "save":
			err = a.Save(ctx, args)
		case "cancel":
			err = a.Cancel(ctx, args)
		case "export":
			err = a.Export(ctx, args)
		case "error":
			err = a.ShowError(ctx, args)
		case "status":
			err = a.Status(ctx, args)
		case "new", "retry":
			err = a.New(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func help(p session.Phase) string {
	switch p {
	case session.PhaseIdle:
		return "Available commands: open <path|s3://bucket/key>, status, help, exit"
	case session.PhaseFileSelected, session.PhasePreviewing:
		return "Available commands: rotate [cw|ccw|0|90|180|270], preview, upload, open, error, new, status, help, exit"
	case session.PhaseReviewing:
		return "Available commands: (l)ist, show <n>, edit <n>, export <file.xlsx>, open, new, status, help, exit"
	case session.PhaseEditing:
		return "Available commands: show, set <day> <time_in|time_out> <value>, add [after], remove <day>, save, cancel, error, help, exit"
	}
	return "Busy, please wait"
}
