package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/Alicoder001/agent-skills/pkg/validator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ValidateConfig holds configuration for the validate command
type ValidateConfig struct {
	JSON bool
}

// NewValidateConfig creates a new ValidateConfig with default values
func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{JSON: false}
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the skill catalog",
	Long: `Check every skill record, its links, its companion metadata and its
references directory, then compare the mandatory skill lists of the bundle,
the install config, the wizard defaults and the discovery table.

Warnings are listed first, then errors. The command exits non-zero when
any error is found. The catalog is loaded strictly: unusable skill
directories are reported, never skipped.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		vc := getValidateConfigFromFlags(cmd)

		result, err := runValidate(ctx, cfg, vc)
		if err != nil {
			presenter.Error(err, "Validation could not run")
			os.Exit(1)
		}
		if !result.OK() {
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewValidateConfig()
	validateCmd.Flags().Bool("json", defaults.JSON, "Print the findings as JSON")
}

// getValidateConfigFromFlags extracts validate configuration from command flags
func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()
	if asJSON, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = asJSON
	}
	return config
}

// runValidate validates the catalog and prints the findings. The error
// return is for a validator that could not run; catalog errors are in the
// result.
func runValidate(ctx context.Context, cfg config.Config, vc *ValidateConfig) (*validator.Result, error) {
	v, err := validator.New(cfg.Validator())
	if err != nil {
		return nil, err
	}

	result := v.Run(ctx)
	logger.G(ctx).WithField("errors", len(result.Errors)).
		WithField("warnings", len(result.Warnings)).
		Debug("validation finished")

	if vc.JSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode validation result")
		}
		fmt.Println(string(out))
		return result, nil
	}

	printValidation(result)
	return result, nil
}

func printValidation(result *validator.Result) {
	if len(result.Warnings) > 0 {
		presenter.Section(fmt.Sprintf("Warnings (%d)", len(result.Warnings)))
		for _, msg := range validator.Messages(result.Warnings) {
			presenter.Bullet(msg)
		}
	}

	if err := result.Err(); err != nil {
		presenter.Error(err, "Validation failed")
		return
	}

	presenter.Success("Validation passed.")
}
