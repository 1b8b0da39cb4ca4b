package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerVerbosityLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		level     zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		assert.Equal(t, tt.level, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("planner")
	// The component name is baked into the logger context
	assert.NotPanics(t, func() {
		logger.Debug().Msg("test message")
	})
}

func TestGetLogFilePath(t *testing.T) {
	path := getLogFilePath()
	assert.True(t, strings.HasSuffix(path, LogFileName))
	assert.Contains(t, path, "lkdots")
}

func TestSetupLogFile(t *testing.T) {
	tmp := t.TempDir()
	f, err := setupLogFile(tmp + "/nested/dir/lkdots.log")
	assert.NoError(t, err)
	if f != nil {
		_ = f.Close()
	}
}
