package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", "text", false)
	require.NoError(t, err)

	l.Debug("parsed", "kind", "duration")
	assert.Contains(t, buf.String(), "msg=parsed")
	assert.Contains(t, buf.String(), "kind=duration")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "", "JSON", false)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown", "line", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, float64(3), rec["line"])
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", "text", true)
	require.NoError(t, err)

	l.Warn("suppressed")
	assert.Empty(t, buf.String())

	l.Error("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNewErrors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text", false)
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml", false)
	assert.EqualError(t, err, "unsupported log format: xml")
}

func TestContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
