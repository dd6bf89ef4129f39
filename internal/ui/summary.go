package ui

import (
	"fmt"
	"io"
)

// FailureLine describes one failed project in a summary.
type FailureLine struct {
	Name string
	Err  error
}

// Summary prints the closing lines of a walk: counts and every failure.
func Summary(out io.Writer, color bool, succeeded, skipped int, failures []FailureLine) {
	render := func(s func(...string) string, text string) string {
		if !color {
			return text
		}
		return s(text)
	}

	line := fmt.Sprintf("%d succeeded", succeeded)
	if skipped > 0 {
		line += fmt.Sprintf(", %d skipped", skipped)
	}
	if len(failures) == 0 {
		_, _ = fmt.Fprintln(out, render(okStyle.Render, line+"."))
		return
	}
	line += fmt.Sprintf(", %d failed:", len(failures))
	_, _ = fmt.Fprintln(out, render(failStyle.Render, line))
	for _, f := range failures {
		_, _ = fmt.Fprintf(out, "  %s: %v\n", f.Name, f.Err)
	}
}
