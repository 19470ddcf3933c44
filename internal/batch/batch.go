package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lucrnz/dtparse/internal/evaluate"
	"github.com/lucrnz/dtparse/internal/logging"
	"github.com/lucrnz/dtparse/internal/progress"
)

// maxLineBytes bounds a single input line
const maxLineBytes = 1024 * 1024

// Options configures a batch run
type Options struct {
	Kind     evaluate.Kind
	Eval     evaluate.Options
	Input    io.Reader
	Output   io.Writer
	Progress *progress.Counter // optional
}

// Summary counts the outcome of every processed line
type Summary struct {
	Lines        int
	OK           int
	Unrecognized int
	Invalid      int
}

func (s *Summary) record(st evaluate.Status) {
	s.Lines++
	switch st {
	case evaluate.OK:
		s.OK++
	case evaluate.Unrecognized:
		s.Unrecognized++
	case evaluate.Invalid:
		s.Invalid++
	}
}

// Run parses one value per input line and writes one JSON result per line.
// Blank lines are skipped but still counted for line numbers. Trailing
// carriage returns are stripped.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	logger := logging.FromContext(ctx)

	in := bufio.NewScanner(opts.Input)
	in.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	out := bufio.NewWriter(opts.Output)
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	summary := &Summary{}
	lineNo := 0
	for in.Scan() {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		lineNo++
		value := strings.TrimSuffix(in.Text(), "\r")
		if strings.TrimSpace(value) == "" {
			continue
		}

		r := evaluate.Evaluate(opts.Kind, value, opts.Eval)
		r.Line = lineNo
		summary.record(r.Status)
		if r.Status != evaluate.OK {
			logger.Debug("value_rejected", "line", lineNo, "status", r.Status, "input", value)
		}
		if err := enc.Encode(r); err != nil {
			return summary, fmt.Errorf("failed to write result: %w", err)
		}
		if opts.Progress != nil {
			opts.Progress.Add(1)
		}
	}
	if err := in.Err(); err != nil {
		return summary, fmt.Errorf("failed to read input line %d: %w", lineNo+1, err)
	}
	if err := out.Flush(); err != nil {
		return summary, fmt.Errorf("failed to write result: %w", err)
	}

	logger.Info("batch_complete",
		"kind", opts.Kind,
		"lines", summary.Lines,
		"ok", summary.OK,
		"unrecognized", summary.Unrecognized,
		"invalid", summary.Invalid,
	)
	return summary, nil
}
