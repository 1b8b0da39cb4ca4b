package commands

import (
	"os"

	"github.com/arthur-debert/lkdots/pkg/config"
	"github.com/arthur-debert/lkdots/pkg/errors"
)

// GenConfigOptions configures sample manifest generation.
type GenConfigOptions struct {
	// Write saves the manifest to Path instead of returning it.
	Write bool
	Path  string
}

// GenConfig returns a commented sample manifest, optionally writing it
// to disk. An existing file at the path is never overwritten.
func GenConfig(opts GenConfigOptions) (string, error) {
	content, err := config.GenerateConfigContent()
	if err != nil {
		return "", err
	}

	if opts.Write {
		path := opts.Path
		if path == "" {
			path = config.DefaultConfigName
		}
		if _, err := os.Stat(path); err == nil {
			return "", errors.Newf(errors.ErrFileCreate, "config file already exists: %s", path)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write config file %s", path)
		}
	}

	return content, nil
}
