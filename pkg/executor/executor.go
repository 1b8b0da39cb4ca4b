// Package executor applies plans produced by the planner. Execution is
// all-or-nothing at plan granularity: a plan containing any conflict is
// rejected before a single op runs. Completed ops are not rolled back on
// mid-plan failure; re-running converges because classification is
// idempotent.
package executor

import (
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/planner"
)

// Result captures what executing one plan did.
type Result struct {
	DirsCreated  int
	LinksCreated int
	Existed      int
}

// Execute validates that the plan is conflict-free, then applies its ops
// strictly in order.
func Execute(plan planner.Plan) (*Result, error) {
	logger := logging.GetLogger("executor")

	if conflicts := plan.Conflicts(); len(conflicts) > 0 {
		return nil, errors.Newf(errors.ErrPlanConflict,
			"target path(s) occupied by unrelated content:\n  %s",
			strings.Join(conflicts, "\n  "))
	}

	result := &Result{}
	for _, op := range plan {
		switch op.Kind {
		case planner.OpMkdirp:
			// MkdirAll is idempotent; an already-existing directory is fine
			if err := os.MkdirAll(op.Path, 0755); err != nil {
				return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", op.Path)
			}
			logger.Info().Str("path", op.Path).Msg("Created directory")
			result.DirsCreated++

		case planner.OpSymlink:
			if err := os.Symlink(op.Relative, op.Target); err != nil {
				return result, errors.Wrapf(err, errors.ErrSymlinkCreate,
					"failed to create symlink %s -> %s", op.Target, op.Relative)
			}
			logger.Info().Str("target", op.Target).Str("source", op.Source).Msg("Created link")
			result.LinksCreated++

		case planner.OpExisted:
			logger.Debug().Str("path", op.Path).Msg("Link already satisfied")
			result.Existed++

		case planner.OpConflict:
			// Unreachable: the pre-scan rejects conflicted plans
			return result, errors.Newf(errors.ErrPlanConflict, "conflict at %s", op.Path)
		}
	}

	return result, nil
}

// ExecuteAll runs independent plans concurrently, bounded by workers
// (GOMAXPROCS when workers <= 0). Entries address disjoint target
// subtrees, so plans do not contend. A failing plan stops its own
// sequential continuation only; siblings run to completion and the first
// error is returned after the batch drains.
func ExecuteAll(plans []planner.Plan, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(plans))
	errs := make([]error, len(plans))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, plan := range plans {
		wg.Add(1)
		go func(idx int, p planner.Plan) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			r, err := Execute(p)
			if r != nil {
				results[idx] = *r
			}
			errs[idx] = err
		}(i, plan)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
