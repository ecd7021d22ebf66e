package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/companion"
	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// GenerateConfig holds configuration for the generate command
type GenerateConfig struct {
	Check bool
}

// NewGenerateConfig creates a new GenerateConfig with default values
func NewGenerateConfig() *GenerateConfig {
	return &GenerateConfig{Check: false}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate agents/openai.yaml for every skill",
	Long: `Derive the companion metadata of every skill from its name and
description and write it to agents/openai.yaml next to SKILL.md.

With --check nothing is written: stale files are shown as unified diffs
and the command exits non-zero.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		gc := getGenerateConfigFromFlags(cmd)

		ok, err := runGenerate(ctx, cfg, gc)
		if err != nil {
			presenter.Error(err, "Failed to generate companion metadata")
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewGenerateConfig()
	generateCmd.Flags().Bool("check", defaults.Check, "Report stale files without writing them")
}

// getGenerateConfigFromFlags extracts generate configuration from command flags
func getGenerateConfigFromFlags(cmd *cobra.Command) *GenerateConfig {
	config := NewGenerateConfig()
	if check, err := cmd.Flags().GetBool("check"); err == nil {
		config.Check = check
	}
	return config
}

// runGenerate regenerates companion files. In check mode it reports
// whether every file is already up to date.
func runGenerate(ctx context.Context, cfg config.Config, gc *GenerateConfig) (bool, error) {
	loader, err := cfg.Loader(catalog.ModeLenient)
	if err != nil {
		return false, err
	}
	c, _, err := loader.Load(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to load catalog")
	}

	changes, err := companion.NewGenerator(cfg.Root, gc.Check).Generate(ctx, c)
	if err != nil {
		return false, err
	}

	stale := companion.StaleChanges(changes)
	if gc.Check {
		if len(stale) == 0 {
			presenter.Success(fmt.Sprintf("Companion metadata is up to date (%d skills).", len(changes)))
			return true, nil
		}
		for _, ch := range stale {
			presenter.Diff(ch.Diff)
		}
		presenter.Section(fmt.Sprintf("Stale companion files (%d)", len(stale)))
		for _, ch := range stale {
			presenter.Failure(fmt.Sprintf("%s (%s)", utils.RelPath(cfg.Root, ch.Path), ch.Status))
		}
		presenter.Error(errors.New("run agentskills generate"), "Companion metadata is stale")
		return false, nil
	}

	for _, ch := range stale {
		presenter.Info(fmt.Sprintf("%s %s", ch.Status, utils.RelPath(cfg.Root, ch.Path)))
	}
	presenter.Success(fmt.Sprintf("Generated companion metadata for %d skills (%d changed).", len(changes), len(stale)))
	return true, nil
}
