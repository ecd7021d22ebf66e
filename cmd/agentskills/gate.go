package main

import (
	"context"
	"os"

	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Run generate, validate and eval in sequence",
	Long: `Run the full quality gate in one process: regenerate companion
metadata, validate the catalog, then run the trigger evaluation suite.
The gate stops at the first failing step and exits non-zero.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		if err := runGate(ctx, cfg); err != nil {
			presenter.Error(err, "Quality gate failed")
			os.Exit(1)
		}
		presenter.Success("Quality gate passed.")
	},
}

type gateStep struct {
	name string
	run  func(ctx context.Context, cfg config.Config) error
}

var gateSteps = []gateStep{
	{
		name: "generate",
		run: func(ctx context.Context, cfg config.Config) error {
			ok, err := runGenerate(ctx, cfg, NewGenerateConfig())
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("companion metadata was not written")
			}
			return nil
		},
	},
	{
		name: "validate",
		run: func(ctx context.Context, cfg config.Config) error {
			result, err := runValidate(ctx, cfg, NewValidateConfig())
			if err != nil {
				return err
			}
			return result.Err()
		},
	},
	{
		name: "eval",
		run: func(ctx context.Context, cfg config.Config) error {
			ec := NewEvalConfig()
			ec.Suite = cfg.Evals.Suite
			ok, err := runEval(ctx, cfg, ec)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("pass rate below threshold")
			}
			return nil
		},
	},
}

// runGate runs the steps in order and returns the first failure wrapped
// with the step name. A validate failure wraps the validator's multierror.
func runGate(ctx context.Context, cfg config.Config) error {
	for _, step := range gateSteps {
		if err := ctx.Err(); err != nil {
			return err
		}
		presenter.Section(step.name)
		logger.G(ctx).WithField("step", step.name).Debug("running gate step")

		if err := step.run(ctx, cfg); err != nil {
			return errors.Wrapf(err, "%s step failed", step.name)
		}
		presenter.Separator()
	}
	return nil
}
