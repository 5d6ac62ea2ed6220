package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(Config{Level: tt.level, Format: "console"})
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fsextra.log")

	logger, err := New(Config{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)

	logger.Info("metadata computed", Path("/tmp/x"), Size(150), Err(errors.New("none")))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"metadata computed"`)
	assert.Contains(t, string(data), `"path":"/tmp/x"`)
	assert.Contains(t, string(data), `"size":150`)
}

func TestNop(t *testing.T) {
	logger := Nop()

	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "stderr", outputPath(""))
	assert.Equal(t, "stdout", outputPath("stdout"))
	assert.Equal(t, "/var/log/x.log", outputPath("/var/log/x.log"))
}
