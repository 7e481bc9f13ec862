package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/idilsaglam/tasktools/internal/logging"
	"github.com/idilsaglam/tasktools/internal/store/taskfile"
	"github.com/idilsaglam/tasktools/internal/ui"
)

const maxInputLine = 1 << 20

// Session is one interactive run of the command loop over a store.
type Session struct {
	store  *taskfile.Store
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	theme  ui.Theme
	log    *log.Logger

	// Prompt prints "> " before every read.
	Prompt bool
}

// NewSession wires a loop to its store and streams.
func NewSession(store *taskfile.Store, in io.Reader, out, errOut io.Writer, theme ui.Theme, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		store:  store,
		in:     in,
		out:    out,
		errOut: errOut,
		theme:  theme,
		log:    logger,
	}
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run reads and executes commands until exit or end of input.
// End of input behaves like exit. Only a failed read is returned.
func (s *Session) Run() error {
	s.PrintHelp()

	sc := bufio.NewScanner(s.in)
	sc.Buffer(make([]byte, 0, 4096), maxInputLine)
	for {
		if s.Prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !sc.Scan() {
			break
		}
		if s.Exec(sc.Text()) {
			return nil
		}
	}

	err := sc.Err()
	s.log.Debug("input closed", "err", err)
	s.exit()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Exec runs one input line and reports whether the loop should stop.
func (s *Session) Exec(line string) bool {
	cmd, arg, hasArg := strings.Cut(strings.TrimSpace(line), " ")
	cmd = strings.ToLower(cmd)

	switch cmd {
	case "add":
		if !hasArg {
			s.theme.Fail(s.errOut, "Error: Missing task description")
			return false
		}
		s.store.Add(arg)
		s.theme.OK(s.out, "Task added successfully!")

	case "remove":
		if idx, ok := s.index(arg, hasArg); ok {
			s.report(s.store.Remove(idx), "Task removed.")
		}

	case "complete":
		if idx, ok := s.index(arg, hasArg); ok {
			s.report(s.store.Complete(idx), "Task completed.")
		}

	case "list":
		s.list()

	case "stats":
		s.stats()

	case "help":
		s.PrintHelp()

	case "exit":
		s.exit()
		return true

	default:
		s.theme.Fail(s.errOut, "Invalid command")
	}
	return false
}

// PrintHelp writes the command menu.
func (s *Session) PrintHelp() {
	fmt.Fprint(s.out, `
Commands:
  - add <description>: Add a new task
  - remove <index>: Remove task at index
  - complete <index>: Mark task at index as complete
  - list: List all tasks
  - stats: Show progress
  - help: Show this menu
  - exit: Save and exit the program
`)
}

func (s *Session) index(arg string, hasArg bool) (uint64, bool) {
	if !hasArg {
		s.theme.Fail(s.errOut, "Error: Missing index")
		return 0, false
	}
	idx, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		s.theme.Fail(s.errOut, "Error: Invalid index")
		return 0, false
	}
	return idx, true
}

func (s *Session) report(err error, success string) {
	var ie *taskfile.IndexError
	switch {
	case err == nil:
		s.theme.OK(s.out, success)
	case errors.As(err, &ie):
		s.theme.Fail(s.errOut, fmt.Sprintf("Error: No task found at index %d", ie.Index))
	default:
		s.theme.Fail(s.errOut, "Error: "+err.Error())
	}
}

func (s *Session) exit() {
	s.theme.Info(s.out, "Exiting program...")
	if err := s.store.Save(); err != nil {
		s.theme.Fail(s.errOut, "Error writing tasks: "+err.Error())
		return
	}
	s.log.Info("tasks saved", "path", s.store.Path(), "count", s.store.Len())
}
