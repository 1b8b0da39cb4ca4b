// Package paths provides centralized path handling for lkdots.
// All user-supplied paths pass through here before the planner or the
// crypto pipeline see them: tilde expansion, config-relative resolution,
// relative link computation, and UTF-8 validity checks.
package paths

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/lkdots/pkg/errors"
)

// ExpandHome expands a leading "~" or "~/" to the user's home directory.
// Paths without a leading tilde are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		// ~user expansion is not supported, same as the usual shell tools
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
	}
	if len(path) == 1 {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// ResolveFrom resolves an entry source path. Absolute and tilde paths are
// used as-is (tilde expanded); anything else is relative to the directory
// containing the config file.
func ResolveFrom(baseDir, from string) (string, error) {
	if err := CheckEncoding(from); err != nil {
		return "", err
	}
	if strings.HasPrefix(from, "~") {
		return ExpandHome(from)
	}
	if filepath.IsAbs(from) {
		return from, nil
	}
	return filepath.Join(baseDir, from), nil
}

// Relative returns the path difference from base's directory to target,
// i.e. the string to store in a symlink created inside base's directory
// so it points at target.
func Relative(target, baseDir string) (string, error) {
	rel, err := filepath.Rel(baseDir, target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput,
			"fail to find relative path from %s to %s", target, baseDir)
	}
	return rel, nil
}

// GetDir returns p itself if it is a directory, otherwise its parent.
func GetDir(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", p)
	}
	if info.IsDir() {
		return p, nil
	}
	parent := filepath.Dir(p)
	if parent == p {
		return "", errors.Newf(errors.ErrNotFound, "no parent dir for %s", p)
	}
	return parent, nil
}

// IsWithin reports whether path equals base or lives underneath it.
// Both paths are compared lexically after cleaning.
func IsWithin(base, path string) bool {
	base = filepath.Clean(base)
	path = filepath.Clean(path)
	if base == path {
		return true
	}
	return strings.HasPrefix(path, base+string(filepath.Separator))
}

// CheckEncoding rejects paths that are not valid UTF-8 text.
func CheckEncoding(path string) error {
	if !utf8.ValidString(path) {
		return errors.Newf(errors.ErrPathEncoding, "path contains invalid UTF-8 characters: %q", path)
	}
	return nil
}

// TruncateDisplay shortens a path for single-line display, keeping the
// tail end, which is the interesting part of a file path. Rune-safe.
func TruncateDisplay(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}
