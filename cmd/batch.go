package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agriprofessor/soiladvisor/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess measurement sets from a CSV file",
	Long: `Read measurement rows from a CSV file and assess them concurrently.
Output order always matches input order, and a bad row never aborts the
batch; it is reported alongside the successful assessments.

The header must name the six measurement columns (any order). A "site"
column is optional and carried through to the output.

Examples:
  # Assess a whole season's readings, results to stdout as JSON
  batch --csv readings.csv

  # Write CSV results to a file, eight rows at a time
  batch --csv readings.csv --output results.csv --format csv --concurrency 8

  # Spot-check the first 10 rows against a sandy-soil profile
  batch --csv readings.csv --limit 10 --profile profiles/sandy.yaml`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("csv", "", "input CSV path (required)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "json", "output format: json or csv")
	f.Int("concurrency", 0, "concurrent assessments (default from config)")
	f.Int("limit", 0, "assess only the first N rows (0 = all)")
	f.String("profile", "", "threshold profile YAML (overrides config)")
	_ = batchCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("batch"); err != nil {
		return err
	}

	csvPath, _ := cmd.Flags().GetString("csv")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	limit, _ := cmd.Flags().GetInt("limit")
	profile, _ := cmd.Flags().GetString("profile")

	if format != "json" && format != "csv" {
		return eris.Errorf("batch: --format must be json or csv (got %q)", format)
	}
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}

	cls, err := newClassifier(profile)
	if err != nil {
		return err
	}

	records, err := batch.ParseCSV(csvPath)
	if err != nil {
		return err
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	zap.L().Info("starting batch assessment",
		zap.String("csv", csvPath),
		zap.Int("rows", len(records)),
		zap.Int("concurrency", concurrency),
	)

	results := batch.Assess(ctx, cls, records, concurrency)

	return outputBatchResults(results, format, outputPath)
}

func outputBatchResults(results []batch.Result, format, outputPath string) error {
	w := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "batch: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return batch.WriteCSV(w, results)
	default:
		return batch.WriteJSON(w, results)
	}
}
