package cli

import (
	"fmt"

	"github.com/idilsaglam/tasktools/internal/model"
	"github.com/idilsaglam/tasktools/internal/ui"
)

const (
	markDone    = "[X]"
	markPending = "[ ]"
)

// TaskLines renders one "<index> <marker> - <description>" line per task.
func TaskLines(theme ui.Theme, tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for i, t := range tasks {
		mark := theme.Muted.Render(markPending)
		if t.Completed {
			mark = theme.Success.Render(markDone)
		}
		out = append(out, fmt.Sprintf("%d %s - %s", i, mark, t.Description))
	}
	return out
}

func (s *Session) list() {
	tasks := s.store.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(s.out, s.theme.Muted.Render("No tasks."))
		return
	}
	for _, ln := range TaskLines(s.theme, tasks) {
		fmt.Fprintln(s.out, ln)
	}
}

func (s *Session) stats() {
	d, p := s.store.Stats()
	lines := []string{
		s.theme.Summary(d, p),
		s.theme.Muted.Render(ui.ProgressBar(d, d+p, 28)),
	}
	fmt.Fprintln(s.out, s.theme.Panel(lines))
}
