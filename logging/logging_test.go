package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConsole(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(Options{Console: &buf})
	l.Debug().Msg("hidden")
	l.Info().Int("page", 3).Msg("shown")

	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "page=3")
}

func TestSetupVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(Options{Verbose: true, Console: &buf})
	l.Debug().Msg("detail")
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "detail")
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kindleshot.log")
	l := Setup(Options{File: path, Console: &bytes.Buffer{}})
	l.Warn().Int("page", 2).Msg("same image")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "same image", entry["message"])
	assert.Equal(t, float64(2), entry["page"])
}
