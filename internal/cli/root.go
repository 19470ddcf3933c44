package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucrnz/dtparse/internal/cleanup"
	"github.com/lucrnz/dtparse/internal/logging"
	"github.com/lucrnz/dtparse/internal/version"
)

// Exit codes beyond the generic failure
const (
	ExitInvalid      = 1
	ExitUnrecognized = 2
)

// ExitError carries a process exit code to main. Err is nil when the
// command already reported everything on stdout.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

var (
	outputFormat string
	logLevel     string
	logFormat    string
	quiet        bool

	tracker *cleanup.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "dtparse",
	Short: "Parse database date, time and duration strings",
	Long: `dtparse

Parses the date, time, datetime and duration strings written by web framework
database backends: the "D days, HH:MM:SS.ffffff" form, ISO 8601 and
PostgreSQL day-time intervals. Values that are not in a supported format are
reported as unrecognized; values in a supported format with out-of-range
fields are reported as invalid.
`,
	Version:           version.Print(),
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	// Silence usage output for runtime errors, but show it for flag errors
	// SilenceErrors is true so we can control error output format in main()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})
}

func setup(cmd *cobra.Command, args []string) error {
	switch outputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output format %q: only text and json are supported", outputFormat)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logLevel, logFormat, quiet)
	if err != nil {
		return fmt.Errorf("invalid logging flags: %w", err)
	}
	cleanup.SetLogger(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithContext(ctx, logger))
	return nil
}

// ExecuteContext runs the root command. Partially written output files are
// registered with t so that main can remove them on interrupt.
func ExecuteContext(ctx context.Context, t *cleanup.Tracker) error {
	tracker = t
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Show usage for required flag errors (not caught by SetFlagErrorFunc)
		if strings.Contains(err.Error(), "required flag") {
			_ = rootCmd.Usage()
		}
		return err
	}
	return nil
}

// ExitCode maps an error returned by ExecuteContext to a process exit code.
func ExitCode(err error) int {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}

func outputIsStdout(path string) bool {
	return path == "" || path == "-"
}
