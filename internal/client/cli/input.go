package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

var errInputClosed = errors.New("input closed")

// readLines feeds input lines into the returned channel, closing it at EOF
// or once ctx is done. Reading happens on its own goroutine so the REPL can
// stop on cancellation while a read is pending.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- strings.TrimRight(sc.Text(), "\r"):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// GetSimpleText prints a prompt to w and waits for the next input line.
//
// Prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(ctx context.Context, lines <-chan string, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}
