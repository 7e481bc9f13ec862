package organizer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasktools/internal/logging"
)

// Options controls one Organize pass.
type Options struct {
	OnConflict ConflictPolicy
	// DryRun computes the moves without touching the filesystem.
	DryRun bool
	Logger *log.Logger
}

// Extension returns the lowercased text after the last dot of name, or ""
// when name has no dot, ends with a dot, or its only dot is the leading one.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

type organizer struct {
	root    string
	opts    Options
	log     *log.Logger
	report  *Report
	planned map[string]bool
}

// Organize walks root and moves every regular file with an extension into
// root/<ext>. Walk and rename failures are recorded in the report and the
// walk continues. A target directory that cannot be created aborts the walk
// and is returned as the error, together with the partial report.
// Symlinks are never followed or moved, even when they point at a file.
func Organize(root string, opts Options) (*Report, error) {
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	info, err := os.Stat(root)
	if err != nil {
		return &Report{}, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return &Report{}, fmt.Errorf("root %s is not a directory", root)
	}

	o := &organizer{
		root:    root,
		opts:    opts,
		log:     logger,
		report:  &Report{},
		planned: map[string]bool{},
	}
	err = filepath.WalkDir(root, o.visit)
	return o.report, err
}

func (o *organizer) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		o.fail(path, "walk", err)
		return nil
	}
	if !d.Type().IsRegular() {
		return nil
	}
	ext := Extension(d.Name())
	if ext == "" {
		return nil
	}

	if o.planned[path] {
		// Moved earlier in this pass into a directory the walk reaches later.
		return nil
	}
	targetDir := filepath.Join(o.root, ext)
	if filepath.Dir(path) == targetDir {
		o.skip(path, ReasonInPlace)
		return nil
	}
	if !o.opts.DryRun {
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return &EntryError{Path: targetDir, Op: "mkdir", Err: err}
		}
	}

	dest, ok := o.destination(targetDir, d.Name())
	if !ok {
		o.skip(path, ReasonExists)
		return nil
	}
	if !o.opts.DryRun {
		if err := os.Rename(path, dest); err != nil {
			o.fail(path, "rename", err)
			return nil
		}
	}
	o.planned[dest] = true
	o.report.Moved = append(o.report.Moved, Move{From: path, To: dest})
	o.log.Debug("moved", "from", path, "to", dest, "dry_run", o.opts.DryRun)
	return nil
}

// destination picks the path for name inside dir under the conflict policy.
// It reports false when the file should be skipped.
func (o *organizer) destination(dir, name string) (string, bool) {
	dest := filepath.Join(dir, name)
	if !o.taken(dest) {
		return dest, true
	}
	switch o.opts.OnConflict {
	case ConflictOverwrite:
		return dest, true
	case ConflictSuffix:
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		for n := 1; ; n++ {
			cand := filepath.Join(dir, base+"-"+strconv.Itoa(n)+ext)
			if !o.taken(cand) {
				return cand, true
			}
		}
	}
	return "", false
}

func (o *organizer) taken(path string) bool {
	if o.planned[path] {
		return true
	}
	_, err := os.Lstat(path)
	return err == nil
}

func (o *organizer) skip(path, reason string) {
	o.report.Skipped = append(o.report.Skipped, Skip{Path: path, Reason: reason})
	o.log.Debug("skipped", "path", path, "reason", reason)
}

func (o *organizer) fail(path, op string, err error) {
	o.report.Errors = append(o.report.Errors, &EntryError{Path: path, Op: op, Err: err})
	o.log.Debug("entry failed", "path", path, "op", op, "err", err)
}
