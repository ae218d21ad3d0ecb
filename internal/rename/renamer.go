// Package rename executes a rename plan against a real directory.
//
// New names in a plan may collide with the old names of files still
// present in the same directory, so operations cannot be applied in place
// one at a time. Instead every source file is first moved into a scratch
// subdirectory (isolation), then moved back out under its new name
// (placement). Batch-level safety comes entirely from this protocol; the
// only primitive used is the filesystem rename call.
package rename

import (
	"os"
	"path/filepath"

	"github.com/steveoakley/wetatest/internal/errors"
	"github.com/steveoakley/wetatest/internal/log"
	"github.com/steveoakley/wetatest/internal/sequence"
)

// scratchPrefix names the scratch subdirectory created inside the target
// directory during execution.
const scratchPrefix = ".compactseq-"

// RenameFunc performs a single file move. It matches the signature of
// os.Rename.
type RenameFunc func(oldpath, newpath string) error

// Renamer applies rename plans using the two-phase protocol.
type Renamer struct {
	rename RenameFunc
}

// New creates a Renamer backed by os.Rename.
func New() *Renamer {
	return &Renamer{rename: os.Rename}
}

// NewWith creates a Renamer backed by the supplied rename function.
// Tests use this to inject filesystem failures.
func NewWith(fn RenameFunc) *Renamer {
	return &Renamer{rename: fn}
}

// Execute realizes the plan inside dir.
//
// On success the directory holds every planned file under its new name.
// A FileError means the batch was abandoned before any damage: all files
// are back under their original names. An AbortError means the run was
// left in an intermediate state; its ScratchDir names the directory that
// still holds isolated files awaiting manual recovery.
func (r *Renamer) Execute(dir string, plan sequence.Plan) error {
	scratch, err := os.MkdirTemp(dir, scratchPrefix)
	if err != nil {
		return errors.NewDirectoryError("unable to modify the contents of directory",
			dir, errors.DirectoryUnwritable, err)
	}
	log.Debug("Created scratch directory at %s", scratch)

	defer func() {
		// Remove the scratch directory only when it is empty; a non-empty
		// scratch directory is evidence of a partial failure and must
		// survive for manual recovery.
		entries, err := os.ReadDir(scratch)
		if err == nil && len(entries) == 0 {
			if err := os.Remove(scratch); err == nil {
				log.Debug("Removed scratch directory %s", scratch)
			}
		}
	}()

	if err := r.isolate(plan, dir, scratch); err != nil {
		return err
	}
	return r.place(plan, scratch, dir)
}

// isolate moves every source file named in the plan into the scratch
// directory, keeping its original name. On any failure it attempts to
// move every already-isolated file back; if that succeeds the returned
// FileError leaves the directory logically unchanged, otherwise the
// restore's AbortError is returned.
func (r *Renamer) isolate(plan sequence.Plan, dir, scratch string) error {
	var isolated []string
	for _, op := range plan {
		src := filepath.Join(dir, op.OldName)
		dst := filepath.Join(scratch, op.OldName)
		if err := r.rename(src, dst); err != nil {
			log.Debug("  Failed to isolate file %s", op.OldName)
			if restoreErr := r.restore(isolated, dir, scratch); restoreErr != nil {
				return restoreErr
			}
			log.Debug("Successfully restored isolated files")
			return errors.NewFileError("unable to rename file", op.OldName,
				errors.IsolateFailed, err)
		}
		isolated = append(isolated, op.OldName)
	}
	log.Debug("Isolated all %d files successfully", len(plan))
	return nil
}

// restore moves isolated files back to the target directory under their
// original names. Every file is attempted even after a failure.
func (r *Renamer) restore(isolated []string, dir, scratch string) error {
	failed := false
	for _, name := range isolated {
		if err := r.rename(filepath.Join(scratch, name), filepath.Join(dir, name)); err != nil {
			failed = true
		}
	}
	if failed {
		return errors.NewAbortError("failed to restore all isolated files from scratch directory",
			scratch, errors.RestoreFailed, nil)
	}
	return nil
}

// place moves each isolated file out of the scratch directory into the
// target directory under its new name. Once placement starts the batch is
// committed: a failed move is noted and the remaining moves still run,
// because already-placed new names may overlap not-yet-reversed old names
// and rolling back is not generally safe. Files that could not be placed
// remain in the scratch directory.
func (r *Renamer) place(plan sequence.Plan, scratch, dir string) error {
	log.Debug("Reordering files:")
	failed := false
	for _, op := range plan {
		src := filepath.Join(scratch, op.OldName)
		dst := filepath.Join(dir, op.NewName)
		err := r.rename(src, dst)
		if err != nil {
			failed = true
			log.Debug("  %s ---> %s ... FAIL", op.OldName, op.NewName)
			continue
		}
		log.Debug("  %s ---> %s ... ok", op.OldName, op.NewName)
	}

	if failed {
		return errors.NewAbortError("not all files were renamed and moved from scratch directory",
			scratch, errors.PlaceFailed, nil)
	}

	log.Info("All %d files have been successfully reordered", len(plan))
	return nil
}
