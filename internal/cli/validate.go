package cli

import (
	"github.com/spf13/cobra"

	"github.com/procdata/procgen/internal/logging"
	"github.com/procdata/procgen/internal/quality"
)

var (
	valDataDir    string
	valReportPath string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a generated dataset and report a quality score",
	Long: `Validate the six parquet tables in a data directory against schema,
referential-integrity, business-logic and statistical rules. Every rule
logs its outcome and the run ends with a weighted 0-100 score.

Validation is independent of generation: any directory holding the six
tables can be checked, whether procgen produced it or not.

Example:
  procgen validate --data-dir data
  procgen validate --data-dir data --report report.json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&valDataDir, "data-dir", "",
		"directory holding the parquet tables")
	validateCmd.Flags().StringVar(&valReportPath, "report", "",
		"write the structured result as JSON to this path")
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if valDataDir != "" {
		cfg.Quality.DataDir = valDataDir
	}
	if valReportPath != "" {
		cfg.Quality.ReportPath = valReportPath
	}

	// Validate configuration
	if err := cfg.ValidateQuality(); err != nil {
		return err
	}

	result, err := quality.New(cfg.Quality).Run()
	if err != nil {
		return err
	}

	for _, check := range result.Failed() {
		logging.Warn().
			Str("category", check.Category).
			Str("name", check.Name).
			Str("status", string(check.Status)).
			Str("severity", string(check.Severity)).
			Msg(check.Message)
	}

	if cfg.Quality.ReportPath != "" {
		if err := result.WriteJSON(cfg.Quality.ReportPath); err != nil {
			return err
		}
		logging.Info().
			Str("path", cfg.Quality.ReportPath).
			Msg("Report written")
	}

	cmd.Printf("Validation complete. Score: %d/100\n", result.Score)
	return nil
}
