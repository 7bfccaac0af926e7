package permission

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// Ensure Terminal implements the interface.
var _ driven.Prompter = (*Terminal)(nil)

// Terminal asks a y/N question on a terminal. Anything other than an
// explicit yes is a no.
type Terminal struct {
	in  *os.File
	out io.Writer
}

// NewTerminal creates a prompter reading from in and writing to out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Prompt asks question and waits for a line of input.
func (t *Terminal) Prompt(ctx context.Context, question string) (bool, error) {
	if !term.IsTerminal(int(t.in.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal: %w", domain.ErrPermissionDenied)
	}
	fmt.Fprintf(t.out, "%s [y/N] ", question)
	return readAnswer(ctx, t.in)
}

// readAnswer reads one line from r. The read goroutine is left behind if
// ctx ends first; it exits on the next line or EOF.
func readAnswer(ctx context.Context, r io.Reader) (bool, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		done <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res := <-done:
		if res.err != nil && res.err != io.EOF {
			return false, res.err
		}
		return ParseAnswer(res.line), nil
	}
}

// ParseAnswer reports whether s is an affirmative answer.
func ParseAnswer(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
