package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mytacism/evaluator-go/pkg/logger"
)

func TestAutoFormatIsJSONOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewConfig().New(&buf)
	require.NoError(t, err)

	log.Warn("unrecognized node", zap.String("kind", "class_declaration"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "unrecognized node", entry["msg"])
	assert.Equal(t, "class_declaration", entry["kind"])
	assert.Equal(t, "warn", entry["level"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.Config{Format: "console", Level: zapcore.WarnLevel}.New(&buf)
	require.NoError(t, err)

	log.Debug("expanding macro")
	assert.Empty(t, buf.String())
	log.Error("boom")
	assert.Contains(t, buf.String(), "boom")
}

func TestUnknownFormat(t *testing.T) {
	_, err := logger.Config{Format: "xml"}.New(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, logger.IsTerminal(&bytes.Buffer{}))
}
