package iologger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/internal/iologger"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		info  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"bogus", false, true},
	}

	for _, v := range tests {
		var buf bytes.Buffer
		log := iologger.New(&buf, config.LogConfig{Format: "json", Level: v.level})
		log.Debug("d")
		assert.Equal(t, v.debug, bytes.Contains(buf.Bytes(), []byte(`"msg":"d"`)), v.level)
		log.Info("i")
		assert.Equal(t, v.info, bytes.Contains(buf.Bytes(), []byte(`"msg":"i"`)), v.level)
	}
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	iologger.New(&buf, config.LogConfig{Format: "json", Level: "info"}).
		Info("hello", "persons", 3)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])

	buf.Reset()
	iologger.New(&buf, config.LogConfig{Format: "text", Level: "info"}).
		Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	cfg := config.New().Log
	require.NoError(t, iologger.Init(dir, cfg))
	slog.Info("started")

	data, err := os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}

func TestInitFileError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	missing := filepath.Join(t.TempDir(), "no", "such", "dir")
	err := iologger.Init(missing, config.LogConfig{Destination: "file"})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
