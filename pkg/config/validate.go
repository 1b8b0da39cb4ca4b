package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/paths"
)

// Validate checks the manifest before any planning begins: sources must
// exist, targets must be non-empty and non-overlapping, and the gitignore
// path must be resolvable when an entry is encrypted.
func (c *Config) Validate() error {
	if len(c.Entries) == 0 {
		return errors.New(errors.ErrConfigValid, "no entries found in config file")
	}

	targets := make([]string, len(c.Entries))

	for i := range c.Entries {
		entry := &c.Entries[i]

		from, err := paths.ResolveFrom(c.BaseDir, entry.From)
		if err != nil {
			return errors.Wrapf(err, errors.ErrValidation, "entry #%d: invalid source path", i+1)
		}
		if _, err := os.Lstat(from); err != nil {
			return errors.Newf(errors.ErrValidation,
				"entry #%d: source path does not exist\npath: %s", i+1, entry.From)
		}

		if entry.To == "" {
			return errors.Newf(errors.ErrValidation, "entry #%d: target path is empty", i+1)
		}
		to, err := paths.ExpandHome(entry.To)
		if err != nil {
			return errors.Wrapf(err, errors.ErrValidation, "entry #%d: invalid target path", i+1)
		}
		if err := paths.CheckEncoding(to); err != nil {
			return errors.Wrapf(err, errors.ErrValidation, "entry #%d: invalid target path", i+1)
		}
		targets[i] = filepath.Clean(to)

		if entry.Encrypt && c.Gitignore != "" {
			gi, err := paths.ResolveFrom(c.BaseDir, c.Gitignore)
			if err != nil {
				return errors.Wrap(err, errors.ErrValidation, "invalid gitignore path")
			}
			if filepath.Dir(gi) == gi {
				return errors.Newf(errors.ErrValidation,
					"invalid gitignore path (no parent directory)\npath: %s", c.Gitignore)
			}
		}
	}

	// Entries are planned and executed in parallel on the assumption that
	// their target subtrees are disjoint. Reject config that breaks it.
	for i := range targets {
		for j := i + 1; j < len(targets); j++ {
			if paths.IsWithin(targets[i], targets[j]) || paths.IsWithin(targets[j], targets[i]) {
				return errors.Newf(errors.ErrValidation,
					"entries #%d and #%d have overlapping target paths:\n  %s\n  %s",
					i+1, j+1, c.Entries[i].To, c.Entries[j].To)
			}
		}
	}

	return nil
}

// ActiveEntries returns the entries that apply to the running platform.
func (c *Config) ActiveEntries() []Entry {
	var active []Entry
	for _, e := range c.Entries {
		if e.MatchPlatform() {
			active = append(active, e)
		}
	}
	return active
}
