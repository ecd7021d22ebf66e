package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "agentskills",
	Short: "Quality gate for an agent skill catalog",
	Long: `agentskills validates a catalog of agent skills, measures how well the
lexical trigger matcher routes prompts to them and keeps the derived
agents/openai.yaml companion files in sync.

Settings come from flags, AGENTSKILLS_* environment variables and an
optional agentskills.yaml in the working directory or $HOME/.agentskills.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		if err := config.InitViper(configFile); err != nil {
			return err
		}
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return errors.Wrapf(err, "invalid log level %q", viper.GetString("log_level"))
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		if mode := viper.GetString("color"); mode != "" {
			presenter.SetColorMode(presenter.ParseColorMode(mode))
		}
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
}

// loadConfig returns the effective configuration or exits.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		presenter.Error(err, "Failed to load configuration")
		os.Exit(1)
	}
	return cfg
}

// bindFlags binds every flag to the viper key of the same name with
// dashes turned into underscores.
func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default agentskills.yaml)")
	rootCmd.PersistentFlags().String("root", "", "Catalog root directory (default .)")
	rootCmd.PersistentFlags().String("profile", "", "Named configuration profile to apply")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt or json)")
	rootCmd.PersistentFlags().String("color", "", "Color output (auto, always, never)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print failures")

	bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(installPlanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		presenter.Error(err, "")
		stop()
		os.Exit(1)
	}
}
