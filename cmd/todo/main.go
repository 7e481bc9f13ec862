package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine formats the message printed before a non-zero exit.
func errorLine(err error) string {
	var le *loadError
	if errors.As(err, &le) {
		return "Error reading tasks: " + le.err.Error()
	}
	return "Error: " + err.Error()
}
