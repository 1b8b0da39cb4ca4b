// Package batch maps the per-file crypto operations over every eligible
// file of the encrypted entries, using a bounded worker pool with a
// pluggable progress observer.
package batch

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/lkdots/pkg/config"
	"github.com/arthur-debert/lkdots/pkg/crypto"
	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/paths"
	"github.com/arthur-debert/lkdots/pkg/planner"
)

// Observer is invoked once per completed file, from worker goroutines.
// completed counts finished files including this one; total is the batch
// size. Headless runs pass nil.
type Observer func(completed, total int, path string)

// FileOp is the per-file operation the pool maps over the batch,
// normally crypto.EncryptFile or crypto.DecryptFile.
type FileOp func(path string, secret *crypto.Secret) error

// CollectFiles walks every encrypt=true entry's source tree without
// following symlinks and returns the files the mode applies to: plain
// files for encrypt, reserved-suffix files for decrypt. Order is entry
// order, then walk order within an entry.
func CollectFiles(entries []config.Entry, baseDir string, mode crypto.Mode) ([]string, error) {
	logger := logging.GetLogger("batch")

	var files []string
	for _, entry := range entries {
		if !entry.Encrypt {
			continue
		}

		root, err := paths.ResolveFrom(baseDir, entry.From)
		if err != nil {
			return nil, err
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot walk %s", path)
			}
			if !d.Type().IsRegular() {
				return nil
			}

			suffixed := strings.HasSuffix(path, planner.ReservedSuffix)
			if mode == crypto.ModeEncrypt && !suffixed {
				files = append(files, path)
			} else if mode == crypto.ModeDecrypt && suffixed {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Debug().Int("files", len(files)).Str("mode", mode.String()).Msg("Collected files")
	return files, nil
}

// Process maps op over files with a pool of workers (GOMAXPROCS when
// workers <= 0). The secret is shared read-only across workers; zeroing
// it remains the caller's responsibility. A failing file does not stop
// in-flight siblings; the first failure in file order is returned after
// the batch drains.
func Process(files []string, secret *crypto.Secret, op FileOp, workers int, observe Observer) error {
	total := len(files)
	if total == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type job struct {
		idx  int
		path string
	}

	jobs := make(chan job, total)
	errs := make([]error, total)
	var completed atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				err := op(j.path, secret)
				errs[j.idx] = err
				done := int(completed.Add(1))
				if observe != nil {
					observe(done, total, j.path)
				}
			}
		}()
	}

	for i, f := range files {
		jobs <- job{idx: i, path: f}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
