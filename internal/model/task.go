package model

import "strings"

// Task is the domain model for a todo entry.
// It has no identity beyond its position in the owning list.
type Task struct {
	Description string
	Completed   bool
}

// New returns an incomplete task.
func New(description string) Task {
	return Task{Description: description}
}

// Line encodes t as one record of the task file, newline included.
// Descriptions containing a tab or newline do not survive a round trip.
func (t Task) Line() string {
	flag := "false"
	if t.Completed {
		flag = "true"
	}
	return flag + "\t" + t.Description + "\n"
}

// ParseLine decodes one record (without its trailing newline).
// Only the literal "true" marks a task completed; a missing
// description field yields an empty description.
func ParseLine(line string) Task {
	flag, desc, _ := strings.Cut(line, "\t")
	return Task{Description: desc, Completed: flag == "true"}
}
