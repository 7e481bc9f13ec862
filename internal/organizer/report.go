package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Skip reasons.
const (
	ReasonExists  = "exists"
	ReasonInPlace = "in place"
)

// Move records one relocated (or, in a dry run, planned) file.
type Move struct {
	From string
	To   string
}

// Skip records a file that was left alone.
type Skip struct {
	Path   string
	Reason string
}

// EntryError is a failure tied to one path. Op is "walk", "mkdir" or "rename".
type EntryError struct {
	Path string
	Op   string
	Err  error
}

// Error avoids repeating the path when the wrapped error already names it.
func (e *EntryError) Error() string {
	var pe *fs.PathError
	var le *os.LinkError
	if errors.As(e.Err, &pe) || errors.As(e.Err, &le) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Report is the outcome of one Organize pass.
type Report struct {
	Moved   []Move
	Skipped []Skip
	Errors  []*EntryError
}

// Err joins every entry error, or returns nil when there were none.
func (r *Report) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}
