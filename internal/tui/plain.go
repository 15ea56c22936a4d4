package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/tuicodon/internal/quiz"
)

// RunPlain drives a session over line-oriented streams. It returns nil on
// the exit command or at end of input.
func RunPlain(ctx context.Context, session *quiz.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := writePrompt(out, session.State()); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			_, err := fmt.Fprintln(out)
			return err
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if quiz.IsExit(line) {
			return nil
		}
		outcome, err := session.Submit(ctx, line)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, renderFeedback(outcome)); err != nil {
			return fmt.Errorf("failed to write feedback: %w", err)
		}
	}
}

func writePrompt(w io.Writer, st quiz.State) error {
	for _, line := range renderBanner(st) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	seq := renderStyledRunes(buildStyledBases(st.Display))
	if _, err := fmt.Fprintf(w, "Sequence: %s\n", seq); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, promptText)
	return err
}
