package planner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/paths"
)

// CreatePlan classifies the target path and produces the ordered plan for
// one source→target pair. Both paths must already be absolute and
// tilde-expanded.
//
// Classification of to, queried without following symlinks:
//   - existing symlink: resolve it; pointing at from means Existed,
//     anything else (including a broken link) means Conflict
//   - existing directory with a directory source: merge, planning each
//     child of from against the same child name under to
//   - any other existing content: Conflict
//   - absent: link the whole source with one symlink, creating the
//     missing parent first; ciphertext sources are skipped entirely
func CreatePlan(from, to string) (Plan, error) {
	logger := logging.GetLogger("planner")
	logger.Debug().Str("from", from).Str("to", to).Msg("Planning entry")

	var plan Plan
	if err := plan1(from, to, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func plan1(from, to string, plan *Plan) error {
	toInfo, err := os.Lstat(to)
	switch {
	case err == nil && toInfo.Mode()&os.ModeSymlink != 0:
		return classifyExistingLink(from, to, plan)

	case err == nil && toInfo.IsDir():
		fromInfo, ferr := os.Lstat(from)
		if ferr != nil {
			return errors.Wrapf(ferr, errors.ErrFileAccess, "cannot stat source %s", from)
		}
		if fromInfo.IsDir() {
			return merge(from, to, plan)
		}
		// Directory in the way of a file link
		*plan = append(*plan, Op{Kind: OpConflict, Path: to})
		return nil

	case err == nil:
		// Regular file (or socket, device, ...) occupying the target
		*plan = append(*plan, Op{Kind: OpConflict, Path: to})
		return nil

	case os.IsNotExist(err):
		return linkAbsent(from, to, plan)

	default:
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat target %s", to)
	}
}

// classifyExistingLink decides between Existed and Conflict for a target
// that is already a symlink.
func classifyExistingLink(from, to string, plan *Plan) error {
	resolved, err := filepath.EvalSymlinks(to)
	if err != nil {
		if os.IsNotExist(err) {
			// Broken link; leave it to the user rather than clobber it
			*plan = append(*plan, Op{Kind: OpConflict, Path: to})
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve symlink %s", to)
	}

	canonical, err := filepath.EvalSymlinks(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve source %s", from)
	}

	if resolved == canonical {
		*plan = append(*plan, Op{Kind: OpExisted, Path: to})
	} else {
		*plan = append(*plan, Op{Kind: OpConflict, Path: to})
	}
	return nil
}

// merge plans every child of from against the same name under to. The
// target directory is already materialized, so per-file overrides win
// over whole-directory adoption.
func merge(from, to string, plan *Plan) error {
	children, err := os.ReadDir(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", from)
	}
	for _, child := range children {
		name := child.Name()
		if err := plan1(filepath.Join(from, name), filepath.Join(to, name), plan); err != nil {
			return err
		}
	}
	return nil
}

// linkAbsent emits the ops for a target that does not exist yet: an
// optional Mkdirp for a missing parent, then one Symlink adopting the
// whole source. Directories are adopted atomically, without descent.
func linkAbsent(from, to string, plan *Plan) error {
	fromInfo, err := os.Lstat(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat source %s", from)
	}

	if !fromInfo.IsDir() && strings.HasSuffix(from, ReservedSuffix) {
		// Ciphertext files are never linked directly
		return nil
	}

	parent := filepath.Dir(to)
	if _, err := os.Lstat(parent); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", parent)
		}
		*plan = append(*plan, Op{Kind: OpMkdirp, Path: parent})
	}

	rel, err := paths.Relative(from, parent)
	if err != nil {
		return err
	}

	*plan = append(*plan, Op{Kind: OpSymlink, Source: from, Target: to, Relative: rel})
	return nil
}
