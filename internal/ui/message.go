package ui

import (
	"fmt"
	"io"
)

// OK prints a success line.
func (t Theme) OK(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Success.Render(msg))
}

// Fail prints an error line.
func (t Theme) Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Error.Render(msg))
}

// Info prints an unstyled line.
func (t Theme) Info(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}
