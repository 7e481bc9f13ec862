package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/tasktools/internal/store/taskfile"
	"github.com/idilsaglam/tasktools/internal/ui"
)

type harness struct {
	path   string
	store  *taskfile.Store
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newHarness(t *testing.T, initial string) *harness {
	t.Helper()
	h := &harness{path: filepath.Join(t.TempDir(), "tasks.txt")}
	if initial != "" {
		if err := os.WriteFile(h.path, []byte(initial), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := taskfile.Open(h.path, nil)
	if err != nil {
		t.Fatal(err)
	}
	h.store = s
	return h
}

func (h *harness) run(t *testing.T, input string) {
	t.Helper()
	theme, err := ui.NewTheme("classic", &h.out)
	if err != nil {
		t.Fatal(err)
	}
	sess := NewSession(h.store, strings.NewReader(input), &h.out, &h.errOut, theme, nil)
	if err := sess.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func (h *harness) file(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(h.path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestScenarioBuyMilk(t *testing.T) {
	h := newHarness(t, "")
	h.run(t, "add buy milk\nlist\ncomplete 0\nlist\nexit\n")

	out := h.out.String()
	first := strings.Index(out, "0 [ ] - buy milk\n")
	second := strings.Index(out, "0 [X] - buy milk\n")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("unexpected list output:\n%s", out)
	}
	for _, want := range []string{"Task added successfully!", "Task completed.", "Exiting program..."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := h.file(t); got != "true\tbuy milk\n" {
		t.Fatalf("file = %q", got)
	}
	if h.errOut.Len() != 0 {
		t.Errorf("unexpected errors: %q", h.errOut.String())
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing description", "add", "Error: Missing task description"},
		{"missing index", "remove", "Error: Missing index"},
		{"invalid index", "complete two", "Error: Invalid index"},
		{"negative index", "remove -1", "Error: Invalid index"},
		{"out of range remove", "remove 5", "Error: No task found at index 5"},
		{"out of range complete", "complete 1", "Error: No task found at index 1"},
		{"unknown command", "frobnicate", "Invalid command"},
		{"empty line", "", "Invalid command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "false\tonly\n")
			h.run(t, tt.input+"\nexit\n")
			if !strings.Contains(h.errOut.String(), tt.want) {
				t.Errorf("stderr = %q, want %q", h.errOut.String(), tt.want)
			}
			if got := h.file(t); got != "false\tonly\n" {
				t.Errorf("file changed: %q", got)
			}
		})
	}
}

func TestRemoveShiftsIndices(t *testing.T) {
	h := newHarness(t, "false\ta\nfalse\tb\nfalse\tc\n")
	h.run(t, "remove 0\ncomplete 1\nexit\n")
	if got := h.file(t); got != "false\tb\ntrue\tc\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	h := newHarness(t, "")
	h.run(t, "ADD Mixed Case\nExit\n")
	if got := h.file(t); got != "false\tMixed Case\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestEOFSaves(t *testing.T) {
	h := newHarness(t, "")
	h.run(t, "add no newline at end")
	if got := h.file(t); got != "false\tno newline at end\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestListEmptyAndStats(t *testing.T) {
	h := newHarness(t, "true\tdone\nfalse\tpending\n")
	h.run(t, "stats\nexit\n")
	if !strings.Contains(h.out.String(), "Total 2") {
		t.Errorf("stats output missing totals:\n%s", h.out.String())
	}
	if !strings.Contains(h.out.String(), "50%") {
		t.Errorf("stats output missing progress:\n%s", h.out.String())
	}

	empty := newHarness(t, "")
	empty.run(t, "list\nexit\n")
	if !strings.Contains(empty.out.String(), "No tasks.") {
		t.Errorf("empty list output:\n%s", empty.out.String())
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	s, err := taskfile.Open(filepath.Join(dir, "missing", "tasks.txt"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	theme, _ := ui.NewTheme("mono", &out)
	sess := NewSession(s, strings.NewReader("add x\nexit\n"), &out, &errOut, theme, nil)
	if err := sess.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(errOut.String(), "Error writing tasks:") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestExecStopsOnlyOnExit(t *testing.T) {
	h := newHarness(t, "")
	theme, _ := ui.NewTheme("mono", &h.out)
	sess := NewSession(h.store, strings.NewReader(""), &h.out, &h.errOut, theme, nil)
	for _, line := range []string{"list", "help", "add x", "bogus"} {
		if sess.Exec(line) {
			t.Errorf("Exec(%q) stopped the loop", line)
		}
	}
	if !sess.Exec("exit") {
		t.Error("Exec(exit) should stop the loop")
	}
}
