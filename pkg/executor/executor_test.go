package executor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/executor"
	"github.com/arthur-debert/lkdots/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
}

func TestExecuteCreatesLink(t *testing.T) {
	tmp := t.TempDir()
	from := filepath.Join(tmp, "src", "vimrc")
	to := filepath.Join(tmp, "home", ".vimrc")
	mkFile(t, from)

	plan, err := planner.CreatePlan(from, to)
	require.NoError(t, err)

	result, err := executor.Execute(plan)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DirsCreated)
	assert.Equal(t, 1, result.LinksCreated)

	// The link resolves back to the source
	resolved, err := filepath.EvalSymlinks(to)
	require.NoError(t, err)
	canonical, err := filepath.EvalSymlinks(from)
	require.NoError(t, err)
	assert.Equal(t, canonical, resolved)
}

func TestExecuteIdempotent(t *testing.T) {
	tmp := t.TempDir()
	from := filepath.Join(tmp, "src", "vimrc")
	to := filepath.Join(tmp, "home", ".vimrc")
	mkFile(t, from)

	plan, err := planner.CreatePlan(from, to)
	require.NoError(t, err)
	_, err = executor.Execute(plan)
	require.NoError(t, err)

	// Plan + execute again: only Existed, zero writes
	again, err := planner.CreatePlan(from, to)
	require.NoError(t, err)
	result, err := executor.Execute(again)
	require.NoError(t, err)
	assert.Equal(t, 0, result.DirsCreated)
	assert.Equal(t, 0, result.LinksCreated)
	assert.Equal(t, 1, result.Existed)
}

func TestExecuteRejectsConflictedPlanWithZeroMutation(t *testing.T) {
	tmp := t.TempDir()
	plan := planner.Plan{
		{Kind: planner.OpMkdirp, Path: filepath.Join(tmp, "should-not-exist")},
		{Kind: planner.OpConflict, Path: filepath.Join(tmp, "occupied")},
	}

	_, err := executor.Execute(plan)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanConflict))
	assert.Contains(t, err.Error(), "occupied")

	// Pre-scan aborts before any op runs
	_, statErr := os.Lstat(filepath.Join(tmp, "should-not-exist"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecuteReportsAllConflicts(t *testing.T) {
	plan := planner.Plan{
		{Kind: planner.OpConflict, Path: "/a"},
		{Kind: planner.OpSymlink, Source: "/s", Target: "/t", Relative: "s"},
		{Kind: planner.OpConflict, Path: "/b"},
	}

	_, err := executor.Execute(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/a")
	assert.Contains(t, err.Error(), "/b")
}

func TestExecuteMkdirpExistingDirIsNoError(t *testing.T) {
	tmp := t.TempDir()
	plan := planner.Plan{{Kind: planner.OpMkdirp, Path: tmp}}
	result, err := executor.Execute(plan)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DirsCreated)
}

func TestExecuteSymlinkFailureStopsPlan(t *testing.T) {
	tmp := t.TempDir()
	occupied := filepath.Join(tmp, "occupied")
	mkFile(t, occupied)

	plan := planner.Plan{
		{Kind: planner.OpSymlink, Source: "/x", Target: occupied, Relative: "x"},
		{Kind: planner.OpMkdirp, Path: filepath.Join(tmp, "never")},
	}

	_, err := executor.Execute(plan)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))

	_, statErr := os.Lstat(filepath.Join(tmp, "never"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecuteAll(t *testing.T) {
	tmp := t.TempDir()
	var plans []planner.Plan
	for _, name := range []string{"a", "b", "c", "d"} {
		from := filepath.Join(tmp, "src", name)
		mkFile(t, from)
		plan, err := planner.CreatePlan(from, filepath.Join(tmp, "home", name))
		require.NoError(t, err)
		plans = append(plans, plan)
	}

	results, err := executor.ExecuteAll(plans, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	total := 0
	for _, r := range results {
		total += r.LinksCreated
	}
	assert.Equal(t, 4, total)
}

func TestExecuteAllSiblingsCompleteOnFailure(t *testing.T) {
	tmp := t.TempDir()

	good := filepath.Join(tmp, "src", "good")
	mkFile(t, good)
	goodPlan, err := planner.CreatePlan(good, filepath.Join(tmp, "home", "good"))
	require.NoError(t, err)

	bad := planner.Plan{{Kind: planner.OpConflict, Path: "/occupied"}}

	_, err = executor.ExecuteAll([]planner.Plan{bad, goodPlan}, 0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanConflict))

	// The sibling plan still ran to completion
	_, statErr := os.Lstat(filepath.Join(tmp, "home", "good"))
	assert.NoError(t, statErr)
}
