package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/evals"
	"github.com/Alicoder001/agent-skills/pkg/matcher"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// MatchConfig holds configuration for the match command
type MatchConfig struct {
	Top           int
	NoneThreshold float64
	JSON          bool
}

// NewMatchConfig creates a new MatchConfig with default values
func NewMatchConfig() *MatchConfig {
	return &MatchConfig{
		Top:           5,
		NoneThreshold: evals.DefaultNoneScoreThreshold,
		JSON:          false,
	}
}

// Validate validates the MatchConfig and returns an error if invalid
func (c *MatchConfig) Validate() error {
	if c.Top <= 0 {
		return errors.Errorf("top must be positive: %d", c.Top)
	}
	return nil
}

var matchCmd = &cobra.Command{
	Use:   "match <prompt>",
	Short: "Rank skills for a prompt",
	Long: `Score a free-text prompt against every skill with the lexical trigger
matcher and print the best candidates. Name tokens weigh 4, description
tokens weigh 1. When the winning score is at or below the none threshold
the prompt is reported as matching no skill.

The catalog is loaded leniently.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		mc := getMatchConfigFromFlags(cmd)
		if err := mc.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		if err := runMatch(ctx, cfg, mc, strings.Join(args, " ")); err != nil {
			presenter.Error(err, "Failed to match prompt")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewMatchConfig()
	matchCmd.Flags().IntP("top", "n", defaults.Top, "Number of candidates to show")
	matchCmd.Flags().Float64("none-threshold", defaults.NoneThreshold, "Highest winning score that still counts as no match")
	matchCmd.Flags().Bool("json", defaults.JSON, "Print the ranking as JSON")
}

// getMatchConfigFromFlags extracts match configuration from command flags
func getMatchConfigFromFlags(cmd *cobra.Command) *MatchConfig {
	config := NewMatchConfig()
	if top, err := cmd.Flags().GetInt("top"); err == nil {
		config.Top = top
	}
	if threshold, err := cmd.Flags().GetFloat64("none-threshold"); err == nil {
		config.NoneThreshold = threshold
	}
	if asJSON, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = asJSON
	}
	return config
}

func runMatch(ctx context.Context, cfg config.Config, mc *MatchConfig, prompt string) error {
	loader, err := cfg.Loader(catalog.ModeLenient)
	if err != nil {
		return err
	}
	c, _, err := loader.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load catalog")
	}

	idx := matcher.NewIndex(c)
	if idx.Len() == 0 {
		return matcher.ErrEmptyIndex
	}

	ranking := idx.Rank(prompt)
	if len(ranking) > mc.Top {
		ranking = ranking[:mc.Top]
	}

	if mc.JSON {
		out, err := json.MarshalIndent(ranking, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode ranking")
		}
		fmt.Println(string(out))
		return nil
	}

	presenter.Section(fmt.Sprintf("Top %d of %d skills", len(ranking), idx.Len()))
	for _, s := range ranking {
		presenter.Info(fmt.Sprintf("%-32s %-10s %d", s.Name, s.Category, s.Score))
	}

	verdict := matcher.Judge("", ranking[0], mc.NoneThreshold)
	if verdict.Pass {
		presenter.Warning(fmt.Sprintf("No skill matches (best score %d <= %g)", ranking[0].Score, mc.NoneThreshold))
		return nil
	}
	presenter.Success(fmt.Sprintf("Best match: %s", ranking[0].Name))
	return nil
}
