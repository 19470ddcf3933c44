package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucrnz/dtparse/internal/batch"
	"github.com/lucrnz/dtparse/internal/evaluate"
	"github.com/lucrnz/dtparse/internal/input"
	"github.com/lucrnz/dtparse/internal/logging"
	"github.com/lucrnz/dtparse/internal/progress"
	"github.com/lucrnz/dtparse/internal/util"
)

var (
	batchKind     string
	batchInput    string
	batchOutput   string
	batchMax      string
	batchCompare  string
	batchRelative bool
	progressStep  int64
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse one value per line and write JSON Lines results",
	Long: `Parse one value per line and write one JSON object per line.

The input may be plain text or compressed with gzip, bzip2, xz or zstd; the
format is detected from its leading bytes. Output written to a file appears
only once the whole input has been processed.`,
	Example: `  dtparse batch --kind duration --input intervals.txt.zst --output results.jsonl
  zcat dates.gz | dtparse batch --kind date`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchKind, "kind", "k", "", "Value kind: duration, date, time, datetime or looseversion (required)")
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "-", "Input file, - for stdin")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "-", "Output file, - for stdout")
	batchCmd.Flags().StringVar(&batchMax, "max", "", "Reject durations longer than this (duration kind only)")
	batchCmd.Flags().StringVar(&batchCompare, "compare", "", "Compare versions against this one (looseversion kind only)")
	batchCmd.Flags().BoolVar(&batchRelative, "relative", false, "Add relative renderings (datetime kind only)")
	batchCmd.Flags().Int64Var(&progressStep, "progress-step", 100000, "Log progress every N values")

	batchCmd.MarkFlagRequired("kind")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	kind, err := evaluate.ParseKind(batchKind)
	if err != nil {
		return err
	}
	limit, err := util.ParseLimit(batchMax)
	if err != nil {
		return fmt.Errorf("invalid --max value: %w", err)
	}
	if progressStep <= 0 {
		return fmt.Errorf("--progress-step must be positive, got %d", progressStep)
	}

	in, err := input.Open(batchInput)
	if err != nil {
		return err
	}
	defer in.Close()
	logger.Debug("batch_input", "path", batchInput, "compression", in.Type)

	var out io.Writer = cmd.OutOrStdout()
	var tmp *os.File
	if !outputIsStdout(batchOutput) {
		if tracker == nil {
			return fmt.Errorf("no cleanup tracker configured")
		}
		if tmp, err = tracker.CreateTemp(batchOutput); err != nil {
			return err
		}
		out = tmp
	}

	counter := progress.New(progressStep, 0, logger, quiet)
	counter.Start()
	defer counter.Stop()

	summary, err := batch.Run(ctx, batch.Options{
		Kind: kind,
		Eval: evaluate.Options{
			Limit:     limit,
			Relative:  batchRelative,
			CompareTo: batchCompare,
		},
		Input:    in,
		Output:   out,
		Progress: counter,
	})
	if err != nil {
		// The temporary file stays registered and is removed by main.
		if tmp != nil {
			tmp.Close()
		}
		return err
	}
	if tmp != nil {
		if err := tracker.Commit(tmp, batchOutput); err != nil {
			return err
		}
		logger.Info("batch_output_written", "path", batchOutput)
	}

	if summary.Invalid > 0 {
		return &ExitError{Code: ExitInvalid}
	}
	if summary.Unrecognized > 0 {
		return &ExitError{Code: ExitUnrecognized}
	}
	return nil
}
