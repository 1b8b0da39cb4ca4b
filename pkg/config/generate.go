package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# lkdots configuration
#
# Each [[entries]] block maps a source file or directory to the symlink
# lkdots will create. Sources are relative to this file unless absolute
# or tilde-prefixed. Set encrypt = true to protect a source tree with
# passphrase encryption; its paths are then managed in the gitignore
# file named below.
`

// GenerateConfigContent returns a starter config with every value present
// but commented out, ready for the user to uncomment and edit.
func GenerateConfigContent() (string, error) {
	sample := Config{
		Entries: []Entry{
			{
				From:      "./src/app",
				To:        "~/app",
				Platforms: []Platform{PlatformLinux, PlatformDarwin},
				Encrypt:   false,
			},
			{
				From:    "./secrets",
				To:      "~/.secrets",
				Encrypt: true,
			},
		},
		Gitignore: "./.gitignore",
	}

	raw, err := toml.Marshal(sample)
	if err != nil {
		return "", err
	}

	return generatedHeader + "\n" + commentOutConfigValues(string(raw)), nil
}

// commentOutConfigValues comments out every assignment line, keeping
// blank lines, comments, and table headers as-is.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
