package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lucrnz/dtparse/internal/evaluate"
	"github.com/lucrnz/dtparse/internal/logging"
	"github.com/lucrnz/dtparse/internal/util"
)

var (
	maxDurationStr string
	relative       bool
	compareTo      string
)

var durationCmd = &cobra.Command{
	Use:   "duration VALUE...",
	Short: `Parse "D days, HH:MM:SS", ISO 8601 or PostgreSQL interval durations`,
	Example: `  dtparse duration "1 day, 0:00:00" P3DT4H5M6S "3 days 04:05:06"
  dtparse duration --max 30d -- "-15:30"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := util.ParseLimit(maxDurationStr)
		if err != nil {
			return fmt.Errorf("invalid --max value: %w", err)
		}
		return runValues(cmd, evaluate.Duration, args, evaluate.Options{Limit: limit})
	},
}

var dateCmd = &cobra.Command{
	Use:   "date VALUE...",
	Short: "Parse YYYY-MM-DD dates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValues(cmd, evaluate.Date, args, evaluate.Options{})
	},
}

var timeCmd = &cobra.Command{
	Use:   "time VALUE...",
	Short: "Parse HH:MM[:SS[.ffffff]] times",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValues(cmd, evaluate.Time, args, evaluate.Options{})
	},
}

var datetimeCmd = &cobra.Command{
	Use:   "datetime VALUE...",
	Short: "Parse ISO 8601 datetimes with an optional Z or ±HH:MM offset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValues(cmd, evaluate.DateTime, args, evaluate.Options{Relative: relative})
	},
}

var looseVersionCmd = &cobra.Command{
	Use:   "looseversion VALUE...",
	Short: "Split free-form version strings into numeric and text components",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValues(cmd, evaluate.LooseVersion, args, evaluate.Options{CompareTo: compareTo})
	},
}

func init() {
	durationCmd.Flags().StringVar(&maxDurationStr, "max", "", `Reject durations longer than this (e.g. "30d", "1w2d", "12h")`)
	datetimeCmd.Flags().BoolVar(&relative, "relative", false, `Add a relative rendering such as "3 days ago"`)
	looseVersionCmd.Flags().StringVar(&compareTo, "compare", "", "Compare each value against this version (-1, 0 or 1)")

	rootCmd.AddCommand(durationCmd, dateCmd, timeCmd, datetimeCmd, looseVersionCmd)
}

// runValues evaluates every argument, prints the results and turns the worst
// outcome into an exit code: invalid beats unrecognized.
func runValues(cmd *cobra.Command, kind evaluate.Kind, values []string, opts evaluate.Options) error {
	logger := logging.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	code := 0
	for _, v := range values {
		r := evaluate.Evaluate(kind, v, opts)
		logger.Debug("value_parsed", "kind", kind, "input", v, "status", r.Status)
		if err := writeResult(out, r); err != nil {
			return err
		}
		switch r.Status {
		case evaluate.Invalid:
			code = ExitInvalid
		case evaluate.Unrecognized:
			if code == 0 {
				code = ExitUnrecognized
			}
		}
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

func writeResult(w io.Writer, r evaluate.Result) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(r)
	}

	var err error
	switch r.Status {
	case evaluate.OK:
		_, err = fmt.Fprintf(w, "%s\n", r.Input)
		for _, f := range r.Fields {
			if err != nil {
				break
			}
			_, err = fmt.Fprintf(w, "  %-13s %v\n", f.Name+":", f.Value)
		}
	case evaluate.Unrecognized:
		_, err = fmt.Fprintf(w, "%s\n  not a recognized %s\n", r.Input, r.Kind)
	default:
		_, err = fmt.Fprintf(w, "%s\n  error: %s\n", r.Input, r.Error)
	}
	return err
}
