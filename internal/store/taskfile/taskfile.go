package taskfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasktools/internal/logging"
	"github.com/idilsaglam/tasktools/internal/model"
)

// Flat text storage: one "<true|false>\t<description>" record per line.
// No locking; fine for a local single-user CLI. Last writer wins.

// DefaultFileName is used when no task file is configured.
const DefaultFileName = "tasks.txt"

const maxLineSize = 1 << 20

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an index outside the task list.
type IndexError struct {
	Index uint64
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("no task found at index %d (have %d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// Store owns the ordered task list for one backing file.
type Store struct {
	path  string
	tasks []model.Task
	log   *log.Logger
}

// Open loads the tasks stored at path. A missing or unopenable file
// yields an empty store; only a failure while reading lines is an error.
func Open(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		path = DefaultFileName
	}
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store{path: path, tasks: []model.Task{}, log: logger}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("task file unreadable, starting empty", "path", path, "err", err)
		}
		return s, nil
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		s.tasks = append(s.tasks, model.ParseLine(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logger.Debug("loaded tasks", "path", path, "count", len(s.tasks))
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Tasks returns a copy of the list in order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Stats counts completed and pending tasks.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Add appends a new incomplete task. Any description is accepted.
func (s *Store) Add(description string) {
	s.tasks = append(s.tasks, model.New(description))
}

// Remove deletes the task at index, shifting later tasks down by one.
func (s *Store) Remove(index uint64) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return nil
}

// Complete marks the task at index as completed.
func (s *Store) Complete(index uint64) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.tasks[index].Completed = true
	return nil
}

func (s *Store) check(index uint64) error {
	if index >= uint64(len(s.tasks)) {
		return &IndexError{Index: index, Len: len(s.tasks)}
	}
	return nil
}

// Save overwrites the backing file with every task in order.
func (s *Store) Save() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, t := range s.tasks {
		if _, err := w.WriteString(t.Line()); err != nil {
			f.Close()
			return fmt.Errorf("write file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	s.log.Debug("saved tasks", "path", s.path, "count", len(s.tasks))
	return nil
}
