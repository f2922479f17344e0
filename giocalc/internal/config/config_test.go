package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fjl/giocalc/giocalc/internal/calc"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	mode, err := cfg.ResetMode()
	require.NoError(t, err)
	require.Equal(t, calc.ResetDelayed, mode)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
log_level = "debug"
error_reset = "immediate"
error_display = "1500ms"
error_text = "Error"

[window]
width = 320
height = 480
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	mode, err := cfg.ResetMode()
	require.NoError(t, err)
	require.Equal(t, calc.ResetImmediate, mode)
	require.Equal(t, 1500*time.Millisecond, cfg.ErrorDisplay)
	require.Equal(t, "Error", cfg.ErrorText)
	require.Equal(t, WindowConfig{Width: 320, Height: 480}, cfg.Window)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
error_display: 3s
window:
  height: 700
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.ErrorDisplay)
	require.Equal(t, 700, cfg.Window.Height)
	require.Equal(t, 400, cfg.Window.Width)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.toml", `log_level = "debug"`)
	t.Setenv("GIOCALC_LOG_LEVEL", "warn")
	t.Setenv("GIOCALC_WINDOW_WIDTH", "500")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 500, cfg.Window.Width)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GIOCALC_LOG_LEVEL", "warn")
	path := writeFile(t, "config.toml", `error_reset = "immediate"`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.String("error-reset", "delayed", "")
	flags.Duration("error-display", time.Second, "")
	require.NoError(t, flags.Parse([]string{"--log-level=trace", "--error-display=250ms"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	require.Equal(t, "trace", cfg.LogLevel)
	require.Equal(t, 250*time.Millisecond, cfg.ErrorDisplay)
	// unset flag does not override the file
	require.Equal(t, "immediate", cfg.ErrorReset)
}

func TestTranscriptPathExpanded(t *testing.T) {
	t.Setenv("CALCDIR", "/tmp/calc")
	path := writeFile(t, "config.toml", `transcript = "$CALCDIR/t.jsonl"`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "/tmp/calc/t.jsonl", cfg.Transcript)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"level.toml":   `log_level = "loud"`,
		"reset.toml":   `error_reset = "never"`,
		"display.toml": `error_display = "-1s"`,
		"text.yaml":    `error_text: "  "`,
		"window.yaml":  "window:\n  width: 0\n",
		"syntax.toml":  `log_level = `,
		"config.json":  `{}`,
	}
	for name, content := range tests {
		path := writeFile(t, name, content)
		_, err := Load(path, nil)
		require.Error(t, err, name)
	}
}

func TestResetModeRejectsUnknown(t *testing.T) {
	cfg := Default()
	cfg.ErrorReset = "never"
	_, err := cfg.ResetMode()
	require.Error(t, err)
	require.Error(t, cfg.Validate())
}

func TestExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.Error(t, err)
}
