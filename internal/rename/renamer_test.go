package rename_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steveoakley/wetatest/internal/errors"
	"github.com/steveoakley/wetatest/internal/rename"
	"github.com/steveoakley/wetatest/internal/sequence"
	"github.com/steveoakley/wetatest/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCompacts(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"seqA.01.tga": "frame 1",
		"seqA.07.tga": "frame 7",
	})

	plan := sequence.Plan{
		{OldName: "seqA.01.tga", NewName: "seqA.0003.tga"},
		{OldName: "seqA.07.tga", NewName: "seqA.0005.tga"},
	}

	err := rename.New().Execute(dir, plan)
	require.NoError(t, err)

	assert.Equal(t, []string{"seqA.0003.tga", "seqA.0005.tga"}, testutils.ListNames(t, dir))
	assert.Equal(t, "frame 1", testutils.ReadFile(t, dir, "seqA.0003.tga"))
	assert.Equal(t, "frame 7", testutils.ReadFile(t, dir, "seqA.0005.tga"))
}

func TestExecuteOverlappingNames(t *testing.T) {
	// The new name of one file is the old name of another; applying the
	// plan in place would overwrite a not-yet-processed source.
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"seqA.2.tga": "was frame 2",
		"seqA.3.tga": "was frame 3",
		"seqA.9.tga": "was frame 9",
	})

	plan := sequence.Plan{
		{OldName: "seqA.2.tga", NewName: "seqA.1.tga"},
		{OldName: "seqA.3.tga", NewName: "seqA.2.tga"},
		{OldName: "seqA.9.tga", NewName: "seqA.3.tga"},
	}

	err := rename.New().Execute(dir, plan)
	require.NoError(t, err)

	assert.Equal(t, []string{"seqA.1.tga", "seqA.2.tga", "seqA.3.tga"}, testutils.ListNames(t, dir))
	assert.Equal(t, "was frame 2", testutils.ReadFile(t, dir, "seqA.1.tga"))
	assert.Equal(t, "was frame 3", testutils.ReadFile(t, dir, "seqA.2.tga"))
	assert.Equal(t, "was frame 9", testutils.ReadFile(t, dir, "seqA.3.tga"))
}

func TestExecuteSwappedOrder(t *testing.T) {
	// A full swap: neither rename can be applied first without the
	// scratch directory breaking the cycle.
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"s.1.tga": "one",
		"s.2.tga": "two",
	})

	plan := sequence.Plan{
		{OldName: "s.1.tga", NewName: "s.2.tga"},
		{OldName: "s.2.tga", NewName: "s.1.tga"},
	}

	err := rename.New().Execute(dir, plan)
	require.NoError(t, err)

	assert.Equal(t, "two", testutils.ReadFile(t, dir, "s.1.tga"))
	assert.Equal(t, "one", testutils.ReadFile(t, dir, "s.2.tga"))
}

func TestExecuteEmptyPlanLeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	err := rename.New().Execute(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, testutils.ListNames(t, dir), "scratch directory should have been removed")
}

func TestExecuteIsolateFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"seqA.1.tga": "one",
		"seqA.5.tga": "five",
		"seqA.9.tga": "nine",
	})

	plan := sequence.Plan{
		{OldName: "seqA.1.tga", NewName: "seqA.01.tga"},
		{OldName: "seqA.5.tga", NewName: "seqA.02.tga"},
		{OldName: "seqA.9.tga", NewName: "seqA.03.tga"},
	}

	// Refuse to isolate the third file, after two are already in scratch.
	renamer := rename.NewWith(func(oldpath, newpath string) error {
		if filepath.Base(oldpath) == "seqA.9.tga" && strings.Contains(newpath, ".compactseq-") {
			return os.ErrPermission
		}
		return os.Rename(oldpath, newpath)
	})

	err := renamer.Execute(dir, plan)
	require.Error(t, err)
	assert.True(t, errors.IsFileError(err), "a fully rolled back isolation failure is recoverable")
	assert.False(t, errors.IsAbortError(err))

	// The directory's file set equals the original input set.
	assert.Equal(t, []string{"seqA.1.tga", "seqA.5.tga", "seqA.9.tga"}, testutils.ListNames(t, dir))
	assert.Equal(t, "one", testutils.ReadFile(t, dir, "seqA.1.tga"))
}

func TestExecuteIsolateAndRestoreFailure(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"seqA.1.tga": "one",
		"seqA.5.tga": "five",
	})

	plan := sequence.Plan{
		{OldName: "seqA.1.tga", NewName: "seqA.01.tga"},
		{OldName: "seqA.5.tga", NewName: "seqA.02.tga"},
	}

	// The second isolation fails, and so does restoring the first file.
	renamer := rename.NewWith(func(oldpath, newpath string) error {
		if filepath.Base(oldpath) == "seqA.5.tga" {
			return os.ErrPermission
		}
		if strings.Contains(oldpath, ".compactseq-") {
			return os.ErrPermission // restore refused too
		}
		return os.Rename(oldpath, newpath)
	})

	err := renamer.Execute(dir, plan)
	require.Error(t, err)
	require.True(t, errors.IsAbortError(err))

	var abortErr *errors.AbortError
	require.True(t, errors.As(err, &abortErr))

	// The scratch directory is preserved and still holds the stranded file.
	scratch := abortErr.ScratchDir()
	assert.DirExists(t, scratch)
	assert.Equal(t, []string{"seqA.1.tga"}, testutils.ListNames(t, scratch))
}

func TestExecutePlaceFailureIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"seqA.1.tga": "one",
		"seqA.5.tga": "five",
		"seqA.9.tga": "nine",
	})

	plan := sequence.Plan{
		{OldName: "seqA.1.tga", NewName: "seqA.01.tga"},
		{OldName: "seqA.5.tga", NewName: "seqA.02.tga"},
		{OldName: "seqA.9.tga", NewName: "seqA.03.tga"},
	}

	// Isolation succeeds; placing the middle file fails.
	renamer := rename.NewWith(func(oldpath, newpath string) error {
		if filepath.Base(newpath) == "seqA.02.tga" {
			return os.ErrPermission
		}
		return os.Rename(oldpath, newpath)
	})

	err := renamer.Execute(dir, plan)
	require.Error(t, err)
	require.True(t, errors.IsAbortError(err), "placement failures are never rolled back")

	var abortErr *errors.AbortError
	require.True(t, errors.As(err, &abortErr))
	scratch := abortErr.ScratchDir()

	// The remaining moves were still attempted; only the refused file is
	// stranded in the scratch directory.
	assert.Equal(t, []string{"seqA.5.tga"}, testutils.ListNames(t, scratch))

	placed := testutils.ListNames(t, dir)
	assert.Contains(t, placed, "seqA.01.tga")
	assert.Contains(t, placed, "seqA.03.tga")
	assert.NotContains(t, placed, "seqA.02.tga")
}
