// Package gitignore keeps a marker-delimited block of ignore patterns in
// sync with the encrypted entries: everything under an encrypt=true
// source is ignored, ciphertext files are re-admitted. Content outside
// the managed block is preserved verbatim.
package gitignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/lkdots/pkg/config"
	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/paths"
	"github.com/arthur-debert/lkdots/pkg/planner"
)

// Markers delimiting the managed block. Matched after trimming, written
// verbatim.
const (
	StartMarker = "# lkdots start"
	EndMarker   = "# lkdots end"
)

// Sync regenerates the managed block for every encrypted entry. In
// simulate mode the would-be block is printed to simOut and nothing is
// written; otherwise the file is rewritten atomically. When there is
// nothing to write and no pre-existing managed block, the file is left
// completely untouched.
func Sync(cfg *config.Config, simulate bool, simOut io.Writer) error {
	logger := logging.GetLogger("gitignore")

	if cfg.Gitignore == "" {
		logger.Debug().Msg("No gitignore path configured, skipping sync")
		return nil
	}

	ignorePath, err := paths.ResolveFrom(cfg.BaseDir, cfg.Gitignore)
	if err != nil {
		return err
	}
	dir := filepath.Dir(ignorePath)

	preserved, existing, hadSection, err := readOutsideBlock(ignorePath)
	if err != nil {
		return err
	}

	patterns, err := buildPatterns(cfg, dir, existing)
	if err != nil {
		return err
	}

	if len(patterns) == 0 && !hadSection {
		logger.Debug().Msg("Nothing to sync, gitignore untouched")
		return nil
	}

	if simulate {
		if simOut == nil {
			simOut = os.Stdout
		}
		fmt.Fprintln(simOut, StartMarker)
		for _, p := range patterns {
			fmt.Fprintln(simOut, p)
		}
		fmt.Fprintln(simOut, EndMarker)
		return nil
	}

	return writeAtomic(ignorePath, preserved, patterns, hadSection)
}

// readOutsideBlock reads the ignore file, returning the lines outside the
// managed block in original order, a set of those lines, and whether a
// managed block was present. A missing file is an empty result.
func readOutsideBlock(path string) ([]string, map[string]bool, bool, error) {
	existing := make(map[string]bool)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, existing, false, nil
		}
		return nil, nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read ignore file %s", path)
	}
	defer func() { _ = f.Close() }()

	var preserved []string
	inBlock := false
	hadSection := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case StartMarker:
			inBlock = true
			hadSection = true
			continue
		case EndMarker:
			inBlock = false
			continue
		}
		if !inBlock {
			preserved = append(preserved, line)
			existing[line] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read ignore file %s", path)
	}

	return preserved, existing, hadSection, nil
}

// buildPatterns computes the managed-block patterns for every encrypted
// entry, skipping any already present outside the block.
func buildPatterns(cfg *config.Config, dir string, existing map[string]bool) ([]string, error) {
	var patterns []string
	for i := range cfg.Entries {
		entry := &cfg.Entries[i]
		if !entry.Encrypt {
			continue
		}

		from, err := paths.ResolveFrom(cfg.BaseDir, entry.From)
		if err != nil {
			return nil, err
		}
		rel, err := paths.Relative(from, dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrValidation,
				"failed to relate %s to the ignore file", entry.From)
		}

		for _, p := range []string{
			rel + "/*",
			"!" + rel + "/*" + planner.ReservedSuffix,
		} {
			if !existing[p] {
				patterns = append(patterns, p)
			}
		}
	}
	return patterns, nil
}

// writeAtomic rewrites the ignore file through a temp-and-rename so a
// crash mid-write cannot corrupt it.
func writeAtomic(path string, preserved, patterns []string, hadSection bool) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lkdots-gitignore-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create temp file near %s", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := bufio.NewWriter(tmp)
	for _, line := range preserved {
		fmt.Fprintln(w, line)
	}
	if len(patterns) > 0 || hadSection {
		fmt.Fprintln(w, StartMarker)
		for _, p := range patterns {
			fmt.Fprintln(w, p)
		}
		fmt.Fprintln(w, EndMarker)
	}

	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write ignore file %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write ignore file %s", path)
	}

	// Keep the original mode when replacing an existing file
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmp.Name(), info.Mode().Perm())
	} else {
		_ = os.Chmod(tmp.Name(), 0644)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace ignore file %s", path)
	}
	return nil
}
