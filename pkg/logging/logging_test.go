package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/archup/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLogger_WritesStateLog(t *testing.T) {
	state := t.TempDir()
	t.Setenv("ARCHUP_STATE_DIR", state)

	SetupLogger(1)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger := GetLogger("test")
	logger.Info().Msg("hello from the test")

	data, err := os.ReadFile(filepath.Join(state, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestLogFilePath(t *testing.T) {
	t.Run("state dir override", func(t *testing.T) {
		t.Setenv(paths.EnvStateDir, "/srv/archup")
		assert.Equal(t, filepath.FromSlash("/srv/archup/archup.log"), logFilePath())
	})

	t.Run("XDG_STATE_HOME", func(t *testing.T) {
		// Registered first so it runs after the environment is restored.
		t.Cleanup(xdg.Reload)
		t.Setenv(paths.EnvStateDir, "")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		xdg.Reload()

		assert.Equal(t, filepath.FromSlash("/custom/state/archup/archup.log"), logFilePath())
	})

	t.Run("shares the state dir with paths", func(t *testing.T) {
		t.Setenv(paths.EnvStateDir, t.TempDir())
		p, err := paths.New(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(p.StateDir(), LogFileName), logFilePath())
	})
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	LogCommand(logger, "pacman", []string{"-Sq", "--needed"}, "/tmp/work")
	assert.Contains(t, buf.String(), `"command":"pacman"`)
	assert.Contains(t, buf.String(), "--needed")
	assert.Contains(t, buf.String(), `"dir":"/tmp/work"`)

	buf.Reset()
	LogCommand(logger, "gh", []string{"auth", "status"}, "")
	assert.NotContains(t, buf.String(), `"dir"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "packages.install")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "duration")
}

func TestOpenLogFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", LogFileName)
	f, err := openLogFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}
