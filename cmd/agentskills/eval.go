package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/evals"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// EvalConfig holds configuration for the eval command
type EvalConfig struct {
	Suite string
	JSON  bool
}

// NewEvalConfig creates a new EvalConfig with default values
func NewEvalConfig() *EvalConfig {
	return &EvalConfig{
		Suite: "",
		JSON:  false,
	}
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run the trigger evaluation suite",
	Long: `Score every prompt of the trigger evaluation suite against the catalog
and compare the winning skill with the expected one. A case expecting no
match passes when the winning score stays at or below the suite's
none_score_threshold.

The catalog is loaded leniently: skill directories that cannot be parsed
are skipped. The command exits non-zero when accuracy is below the suite's
pass_threshold.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		ec := getEvalConfigFromFlags(cmd, cfg)

		ok, err := runEval(ctx, cfg, ec)
		if err != nil {
			presenter.Error(err, "Trigger evals could not run")
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

var evalSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the eval suite file",
	Run: func(_ *cobra.Command, _ []string) {
		schema, err := evals.Schema()
		if err != nil {
			presenter.Error(err, "Failed to generate schema")
			os.Exit(1)
		}
		fmt.Println(string(schema))
	},
}

func init() {
	defaults := NewEvalConfig()
	evalCmd.Flags().String("suite", defaults.Suite, "Path to the eval suite (default evals.suite from config)")
	evalCmd.Flags().Bool("json", defaults.JSON, "Print the report as JSON")
	evalCmd.AddCommand(evalSchemaCmd)
}

// getEvalConfigFromFlags extracts eval configuration from command flags
func getEvalConfigFromFlags(cmd *cobra.Command, cfg config.Config) *EvalConfig {
	config := NewEvalConfig()
	config.Suite = cfg.Evals.Suite

	if suite, err := cmd.Flags().GetString("suite"); err == nil && suite != "" {
		config.Suite = suite
	}
	if asJSON, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = asJSON
	}
	return config
}

// runEval runs the suite and prints the report. It reports whether the
// accuracy reached the pass threshold.
func runEval(ctx context.Context, cfg config.Config, ec *EvalConfig) (bool, error) {
	loader, err := cfg.Loader(catalog.ModeLenient)
	if err != nil {
		return false, err
	}

	report, err := evals.NewRunner(ec.Suite, loader).Run(ctx)
	if err != nil {
		return false, err
	}

	if ec.JSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return false, errors.Wrap(err, "failed to encode eval report")
		}
		fmt.Println(string(out))
		return report.OK(), nil
	}

	printReport(report)
	return report.OK(), nil
}

func printReport(report *evals.Report) {
	presenter.Info(fmt.Sprintf("Trigger evals: %d/%d passed (%.1f%%)",
		report.Passed, report.Total, report.Accuracy*100))
	presenter.Info(fmt.Sprintf("Pass threshold: %.1f%%", report.PassThreshold*100))

	if failed := report.Failures(); len(failed) > 0 {
		presenter.Section(fmt.Sprintf("Failed cases (%d)", len(failed)))
		for _, res := range failed {
			presenter.Failure(describeFailure(res))
		}
	}

	if !report.OK() {
		presenter.Error(
			errors.Errorf("accuracy %.1f%% is below %.1f%%", report.Accuracy*100, report.PassThreshold*100),
			"Trigger evals failed",
		)
		return
	}
	presenter.Success("Trigger evals passed.")
}

func describeFailure(res evals.CaseResult) string {
	expected := res.Expected
	if expected == "" {
		expected = evals.NoneSentinel
	}
	actual := res.Actual
	if actual == "" {
		actual = evals.NoneSentinel
	}
	return fmt.Sprintf("%s: expected %s, got %s (score %d)", res.ID, expected, actual, res.Score)
}
