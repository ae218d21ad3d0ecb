// Package compact wires the sequence parser, the plan generator, and the
// atomic renamer into the renumbering operation exposed to the CLI.
//
// The directory listing is snapshotted once at the start of plan
// generation. A file added or removed by another writer between that
// snapshot and execution is a race this tool does not detect; directories
// being compacted must not have concurrent writers.
package compact

import (
	"os"
	"path/filepath"

	"github.com/steveoakley/wetatest/internal/config"
	"github.com/steveoakley/wetatest/internal/errors"
	"github.com/steveoakley/wetatest/internal/log"
	"github.com/steveoakley/wetatest/internal/rename"
	"github.com/steveoakley/wetatest/internal/sequence"

	"github.com/gobwas/glob"
)

// Engine performs sequence renumbering runs against directories.
type Engine struct {
	scheme   sequence.Scheme
	filter   sequence.Filter
	preview  bool
	excludes []glob.Glob
	renamer  *rename.Renamer
}

// New creates an engine with the default numbering scheme and extension
// filter.
func New() *Engine {
	return &Engine{
		scheme:  sequence.DefaultScheme(),
		filter:  sequence.Default(),
		renamer: rename.New(),
	}
}

// NewWithConfig creates an engine configured from cfg.
func NewWithConfig(cfg *config.Config) (*Engine, error) {
	e := &Engine{
		scheme:  cfg.Scheme(),
		filter:  cfg.Filter(),
		renamer: rename.New(),
	}
	if err := e.SetExcludes(cfg.Exclude); err != nil {
		return nil, err
	}
	return e, nil
}

// SetScheme replaces the numbering scheme.
func (e *Engine) SetScheme(scheme sequence.Scheme) {
	e.scheme = scheme
}

// SetFilter replaces the extension filter.
func (e *Engine) SetFilter(filter sequence.Filter) {
	e.filter = filter
}

// SetPreview sets whether runs only compute the plan or also execute it.
func (e *Engine) SetPreview(preview bool) {
	e.preview = preview
}

// IsPreview returns whether the engine is in preview mode.
func (e *Engine) IsPreview() bool {
	return e.preview
}

// SetExcludes compiles the glob patterns for filenames that must be left
// untouched even when they parse as sequence members.
func (e *Engine) SetExcludes(patterns []string) error {
	e.excludes = nil
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return errors.NewConfigError("invalid exclude pattern", pattern, errors.Unknown)
		}
		e.excludes = append(e.excludes, g)
	}
	return nil
}

func (e *Engine) excluded(name string) bool {
	for _, g := range e.excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// CompactDirectory renumbers every image sequence in dir.
//
// The returned plan lists the rename operations in the order they apply.
// In preview mode the plan is returned without touching the filesystem.
// Otherwise the plan is handed to the atomic renamer; on a partial
// failure the plan is returned alongside the error so the caller can
// still report which operations were attempted.
func (e *Engine) CompactDirectory(dir string) (sequence.Plan, error) {
	if err := e.scheme.Validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.NewDirectoryError("invalid path", dir, errors.NotADirectory, err)
	}
	log.Info("Compacting image sequences in %s", abs)
	log.Debug("New starting frame = %d, step = %d, padding = %d",
		e.scheme.StartFrame, e.scheme.Step, e.scheme.Padding)

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errors.NewDirectoryError("not a directory", abs, errors.NotADirectory, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.NewDirectoryError("cannot read the directory", abs,
			errors.DirectoryUnreadable, err)
	}

	// Snapshot the listing. Subdirectories are never sequence members, and
	// excluded names are dropped before grouping so they are never renamed.
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if e.excluded(entry.Name()) {
			log.Debug("Excluding %s", entry.Name())
			continue
		}
		names = append(names, entry.Name())
	}

	plan, err := sequence.BuildPlan(names, e.filter, e.scheme)
	if err != nil {
		return nil, err
	}

	if e.preview {
		log.Info("Not reordering sequences - preview only")
		return plan, nil
	}

	if len(plan) == 0 {
		return plan, nil
	}

	if err := e.renamer.Execute(abs, plan); err != nil {
		return plan, err
	}
	return plan, nil
}
