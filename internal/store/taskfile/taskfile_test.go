package taskfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/tasktools/internal/model"
)

func openTemp(t *testing.T, content *string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if content != nil {
		if err := os.WriteFile(path, []byte(*content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenMissingFile(t *testing.T) {
	s := openTemp(t, nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d tasks", s.Len())
	}
}

func TestOpenParsesRecords(t *testing.T) {
	content := "true\tbuy milk\nfalse\twalk dog\nbroken\n"
	s := openTemp(t, &content)
	want := []model.Task{
		{Description: "buy milk", Completed: true},
		{Description: "walk dog"},
		{Description: ""},
	}
	if got := s.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Tasks() = %+v, want %+v", got, want)
	}
}

func TestOpenReadFailure(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		if _, err := Open(t.TempDir(), nil); err == nil {
			t.Fatal("expected error reading a directory")
		}
	})
	t.Run("line too long", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.txt")
		long := "false\t" + strings.Repeat("x", maxLineSize+1) + "\n"
		if err := os.WriteFile(path, []byte(long), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Open(path, nil); err == nil {
			t.Fatal("expected error for oversized line")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{"one", "", "three with spaces", "ünïcode"} {
		s.Add(d)
	}
	if err := s.Complete(2); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	again, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again.Tasks(), s.Tasks()) {
		t.Fatalf("round trip mismatch: %+v vs %+v", again.Tasks(), s.Tasks())
	}
}

func TestSaveTruncates(t *testing.T) {
	content := "false\ta\nfalse\tb\nfalse\tc\n"
	s := openTemp(t, &content)
	if err := s.Remove(0); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "false\tb\nfalse\tc\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestSaveFailure(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "missing-dir", "tasks.txt"), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Add("x")
	if err := s.Save(); err == nil {
		t.Fatal("expected save error for missing parent directory")
	}
}

func TestAddAppends(t *testing.T) {
	s := openTemp(t, nil)
	s.Add("a")
	before := s.Tasks()
	s.Add("")
	got := s.Tasks()
	if len(got) != len(before)+1 {
		t.Fatalf("len = %d, want %d", len(got), len(before)+1)
	}
	if !reflect.DeepEqual(got[:len(before)], before) {
		t.Fatal("existing tasks changed")
	}
	if got[len(got)-1] != (model.Task{}) {
		t.Fatalf("new task = %+v", got[len(got)-1])
	}
}

func TestRemove(t *testing.T) {
	content := "false\ta\ntrue\tb\nfalse\tc\n"

	t.Run("in range", func(t *testing.T) {
		s := openTemp(t, &content)
		if err := s.Remove(1); err != nil {
			t.Fatal(err)
		}
		want := []model.Task{{Description: "a"}, {Description: "c"}}
		if !reflect.DeepEqual(s.Tasks(), want) {
			t.Fatalf("Tasks() = %+v", s.Tasks())
		}
	})

	t.Run("out of range", func(t *testing.T) {
		s := openTemp(t, &content)
		before := s.Tasks()
		err := s.Remove(3)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
		}
		var ie *IndexError
		if !errors.As(err, &ie) || ie.Index != 3 || ie.Len != 3 {
			t.Fatalf("err = %#v", err)
		}
		if !reflect.DeepEqual(s.Tasks(), before) {
			t.Fatal("store changed on out-of-range remove")
		}
	})
}

func TestComplete(t *testing.T) {
	content := "false\ta\nfalse\tb\n"
	s := openTemp(t, &content)

	for i := 0; i < 2; i++ {
		if err := s.Complete(1); err != nil {
			t.Fatal(err)
		}
	}
	want := []model.Task{{Description: "a"}, {Description: "b", Completed: true}}
	if !reflect.DeepEqual(s.Tasks(), want) {
		t.Fatalf("Tasks() = %+v", s.Tasks())
	}
	if done, pending := s.Stats(); done != 1 || pending != 1 {
		t.Fatalf("Stats() = %d, %d", done, pending)
	}

	if err := s.Complete(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(s.Tasks(), want) {
		t.Fatal("store changed on out-of-range complete")
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s := openTemp(t, nil)
	s.Add("a")
	got := s.Tasks()
	got[0].Completed = true
	if s.Tasks()[0].Completed {
		t.Fatal("Tasks() exposed internal slice")
	}
}
