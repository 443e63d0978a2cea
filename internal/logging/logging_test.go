package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmatick/internal/logging"
)

func TestNew_JSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", logging.KeyCorrespondent, "bob")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "bob", rec[logging.KeyCorrespondent])
}

func TestNew_Rejects(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
	_, err = logging.New(logging.Config{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := logging.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)

	l, err = logging.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, logging.OrDiscard(nil))
	l := slog.Default()
	assert.Same(t, l, logging.OrDiscard(l))
}
