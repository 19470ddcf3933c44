package progress

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestCounterLogsEachStep(t *testing.T) {
	var buf bytes.Buffer
	c := New(2, time.Hour, newLogger(&buf), false)

	for i := 0; i < 5; i++ {
		c.Add(1)
	}

	assert.Equal(t, int64(5), c.Processed())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "processed=2")
	assert.Contains(t, lines[1], "processed=4")
}

func TestCounterHumanizesCounts(t *testing.T) {
	var buf bytes.Buffer
	c := New(1500, time.Hour, newLogger(&buf), false)

	c.Add(1500)

	assert.Contains(t, buf.String(), "processed_human=1,500")
}

func TestCounterQuiet(t *testing.T) {
	var buf bytes.Buffer
	c := New(1, time.Hour, newLogger(&buf), true)

	c.Add(10)
	c.Start()
	c.Stop()

	assert.Equal(t, int64(10), c.Processed())
	assert.Empty(t, buf.String())
}

func TestCounterIgnoresNonPositive(t *testing.T) {
	c := New(0, 0, nil, true)

	c.Add(0)
	c.Add(-3)

	assert.Zero(t, c.Processed())
	assert.Equal(t, int64(10000), c.Step)
	assert.Equal(t, 2*time.Second, c.RenderInterval)
}

func TestCounterStopTwice(t *testing.T) {
	c := New(1, time.Millisecond, slog.Default(), false)
	c.Start()
	c.Stop()
	assert.NotPanics(t, c.Stop)
}
