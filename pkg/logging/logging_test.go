package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
		wantInfo  bool
	}{
		{"quiet", false, false, false},
		{"verbose", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.log")
			logger, err := New(Options{Verbose: tt.verbose, Output: path})
			require.NoError(t, err)

			logger.Named("particles").Debug("debug line")
			logger.Info("info line")
			logger.Warn("warn line")
			_ = logger.Sync()

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			out := string(data)

			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info line"))
			assert.Contains(t, out, "warn line")
			if tt.wantDebug {
				assert.Contains(t, out, `"logger":"particles"`)
			}
		})
	}
}

func TestNewConsoleEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{Console: true, Output: path})
	require.NoError(t, err)

	logger.Error("boom")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR")
	assert.NotContains(t, string(data), `"msg"`)
}

func TestNewBadOutput(t *testing.T) {
	_, err := New(Options{Output: filepath.Join(t.TempDir(), "missing", "dir", "out.log")})
	assert.Error(t, err)
}
