package progress

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Counter emits structured progress logs while a batch is processed.
type Counter struct {
	Step           int64         // log every Step values
	RenderInterval time.Duration // interval for interval-based logs
	Logger         *slog.Logger
	Quiet          bool

	processed    atomic.Int64
	nextStep     int64
	done         chan struct{}
	stopOnce     sync.Once
	lastInterval int64
	lastTime     time.Time
}

// New creates a counter with sane defaults.
func New(step int64, interval time.Duration, logger *slog.Logger, quiet bool) *Counter {
	if step <= 0 {
		step = 10000
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Counter{
		Step:           step,
		RenderInterval: interval,
		Logger:         logger,
		Quiet:          quiet,
		nextStep:       step,
		done:           make(chan struct{}),
	}
}

// Add records n more processed values and logs each step boundary crossed.
// Add must not be called concurrently with itself.
func (c *Counter) Add(n int64) {
	if n <= 0 {
		return
	}
	total := c.processed.Add(n)
	if c.Quiet {
		return
	}
	for total >= c.nextStep {
		c.Logger.Info("batch_progress",
			"processed", c.nextStep,
			"processed_human", humanize.Comma(c.nextStep),
		)
		c.nextStep += c.Step
	}
}

// Processed returns the number of values recorded so far.
func (c *Counter) Processed() int64 { return c.processed.Load() }

// Start begins interval-based logging in a goroutine
func (c *Counter) Start() {
	if c.Quiet || c.Logger == nil || c.RenderInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(c.RenderInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.logRate()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop ends interval-based logging. It is safe to call more than once.
func (c *Counter) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *Counter) logRate() {
	current := c.processed.Load()
	if current == c.lastInterval {
		return
	}

	now := time.Now()
	var perSec int64
	if !c.lastTime.IsZero() {
		if elapsed := now.Sub(c.lastTime).Seconds(); elapsed > 0 {
			perSec = int64(float64(current-c.lastInterval) / elapsed)
		}
	}
	c.Logger.Info("batch_progress",
		"processed", current,
		"processed_human", humanize.Comma(current),
		"values_per_sec", perSec,
	)
	c.lastTime = now
	c.lastInterval = current
}
