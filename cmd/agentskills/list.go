package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ListConfig holds configuration for the list command
type ListConfig struct {
	Lenient bool
	JSON    bool
}

// NewListConfig creates a new ListConfig with default values
func NewListConfig() *ListConfig {
	return &ListConfig{
		Lenient: false,
		JSON:    false,
	}
}

// listEntry is the JSON shape of one listed skill.
type listEntry struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the skills of the catalog",
	Long: `Load the catalog and list every skill by name with its category.

By default the catalog is loaded strictly and every unusable skill
directory is reported, making the command exit non-zero. With --lenient
those directories are skipped silently.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		lc := getListConfigFromFlags(cmd)

		ok, err := runList(ctx, cfg, lc)
		if err != nil {
			presenter.Error(err, "Failed to list skills")
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().Bool("lenient", defaults.Lenient, "Skip unusable skill directories instead of reporting them")
	listCmd.Flags().Bool("json", defaults.JSON, "Print the skills as JSON")
}

// getListConfigFromFlags extracts list configuration from command flags
func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if lenient, err := cmd.Flags().GetBool("lenient"); err == nil {
		config.Lenient = lenient
	}
	if asJSON, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = asJSON
	}
	return config
}

func runList(ctx context.Context, cfg config.Config, lc *ListConfig) (bool, error) {
	mode := catalog.ModeStrict
	if lc.Lenient {
		mode = catalog.ModeLenient
	}
	loader, err := cfg.Loader(mode)
	if err != nil {
		return false, err
	}
	c, issues, err := loader.Load(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to load catalog")
	}

	if lc.JSON {
		entries := make([]listEntry, 0, c.Len())
		for _, r := range c.Records() {
			entries = append(entries, listEntry{
				Name:        r.Name,
				Category:    string(r.Category),
				Description: r.Description,
				Path:        utils.RelPath(cfg.Root, r.Path),
			})
		}
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return false, errors.Wrap(err, "failed to encode skills")
		}
		fmt.Println(string(out))
	} else {
		for _, r := range c.Records() {
			presenter.Info(fmt.Sprintf("%-32s %s", r.Name, r.Category))
		}
	}

	if len(issues) > 0 {
		presenter.Section(fmt.Sprintf("Unusable skill directories (%d)", len(issues)))
		for _, issue := range issues {
			presenter.Failure(fmt.Sprintf("%s: %v", utils.RelPath(cfg.Root, issue.Path), issue.Err))
		}
		return false, nil
	}
	return true, nil
}
