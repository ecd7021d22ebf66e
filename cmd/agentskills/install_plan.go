package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/manifest"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/spf13/cobra"
)

// InstallPlanConfig holds configuration for the install-plan command
type InstallPlanConfig struct {
	File     string
	Commands bool
}

// NewInstallPlanConfig creates a new InstallPlanConfig with default values
func NewInstallPlanConfig() *InstallPlanConfig {
	return &InstallPlanConfig{
		File:     "",
		Commands: false,
	}
}

var installPlanCmd = &cobra.Command{
	Use:   "install-plan",
	Short: "Print the skills an install would add",
	Long: `Resolve the install config into the list of skills to install: the
mandatory skills first, then the options picked by every selection.
Nothing is installed; with --commands the install command line of every
skill is printed instead of its name.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := loadConfig()
		ic := getInstallPlanConfigFromFlags(cmd, cfg)

		plan, err := resolveInstallPlan(ic)
		if err != nil {
			presenter.Error(err, "Failed to resolve install plan")
			os.Exit(1)
		}

		lines := plan.Skills
		if ic.Commands {
			lines = plan.Commands()
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	},
}

func init() {
	defaults := NewInstallPlanConfig()
	installPlanCmd.Flags().String("file", defaults.File, "Install config file (default sources.install_config from config)")
	installPlanCmd.Flags().Bool("commands", defaults.Commands, "Print install commands instead of skill names")
}

// getInstallPlanConfigFromFlags extracts install-plan configuration from command flags
func getInstallPlanConfigFromFlags(cmd *cobra.Command, cfg config.Config) *InstallPlanConfig {
	config := NewInstallPlanConfig()
	config.File = cfg.Sources.InstallConfig
	if config.File != "" && !filepath.IsAbs(config.File) {
		config.File = filepath.Join(cfg.Root, filepath.FromSlash(config.File))
	}

	if file, err := cmd.Flags().GetString("file"); err == nil && file != "" {
		config.File = file
	}
	if commands, err := cmd.Flags().GetBool("commands"); err == nil {
		config.Commands = commands
	}
	return config
}

func resolveInstallPlan(ic *InstallPlanConfig) (*manifest.InstallPlan, error) {
	installConfig, err := manifest.LoadInstallConfig(ic.File, filepath.Base(ic.File))
	if err != nil {
		return nil, err
	}
	return installConfig.Resolve()
}
