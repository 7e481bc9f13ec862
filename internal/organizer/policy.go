package organizer

import (
	"fmt"
	"strings"
)

// ConflictPolicy decides what happens when the destination already exists.
type ConflictPolicy string

const (
	// ConflictSkip leaves the source file where it is.
	ConflictSkip ConflictPolicy = "skip"
	// ConflictSuffix appends -1, -2, ... to the base name until it is free.
	ConflictSuffix ConflictPolicy = "suffix"
	// ConflictOverwrite replaces the destination.
	ConflictOverwrite ConflictPolicy = "overwrite"
)

// ParseConflictPolicy accepts skip, suffix or overwrite. Empty means skip.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ConflictSkip, nil
	case ConflictSkip, ConflictSuffix, ConflictOverwrite:
		return p, nil
	}
	return "", fmt.Errorf("unknown conflict policy %q (want skip, suffix or overwrite)", s)
}
