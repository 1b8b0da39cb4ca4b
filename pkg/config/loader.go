package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/logging"
)

// DefaultConfigName is the config file looked up in the current directory
// when -c is not given.
const DefaultConfigName = "lkdots.toml"

// Load reads and parses the manifest at path. The format is TOML unless
// the file name ends in .yaml/.yml. A missing file yields a CONFIG_LOAD
// error whose message points at the -c flag.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrConfigLoad,
				"config file not found: %s\n\nHint: use -c to specify the config file path\nDefault: %s in current directory",
				path, DefaultConfigName)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse config file %s", path)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot decode config file %s", path)
	}

	// Entries that omit platforms apply everywhere
	for i := range cfg.Entries {
		if len(cfg.Entries[i].Platforms) == 0 {
			cfg.Entries[i].Platforms = AllPlatforms
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot resolve config path %s", path)
	}
	cfg.BaseDir = filepath.Dir(abs)

	logger.Debug().
		Str("path", path).
		Int("entries", len(cfg.Entries)).
		Str("gitignore", cfg.Gitignore).
		Msg("Config loaded")

	return &cfg, nil
}

// parserFor picks the koanf parser from the file extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
