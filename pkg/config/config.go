// Package config loads agentskills settings from viper: defaults, an
// optional agentskills.yaml, AGENTSKILLS_* environment variables and bound
// command line flags, in increasing order of precedence. A named profile
// can overlay any subset of the settings.
package config

import (
	"path/filepath"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/validator"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by viper.
const EnvPrefix = "AGENTSKILLS"

// Config is the full agentskills configuration.
type Config struct {
	Root       string   `mapstructure:"root"`
	Categories []string `mapstructure:"categories"`
	RecordFile string   `mapstructure:"record_file"`

	Budget  validator.Budget  `mapstructure:"budget"`
	Sources validator.Sources `mapstructure:"sources"`

	ShortDescriptionLimit int      `mapstructure:"short_description_limit"`
	IgnoreDirs            []string `mapstructure:"ignore_dirs"`

	Evals EvalsConfig `mapstructure:"evals"`

	Profile  string                            `mapstructure:"profile"`
	Profiles map[string]map[string]interface{} `mapstructure:"profiles"`
}

// EvalsConfig configures the trigger evaluation suite.
type EvalsConfig struct {
	Suite string `mapstructure:"suite"`
}

// SetDefaults registers the stock settings with viper.
func SetDefaults() {
	viper.SetDefault("root", ".")
	viper.SetDefault("categories", categoryNames(catalog.DefaultCategories))
	viper.SetDefault("record_file", catalog.RecordFileName)

	viper.SetDefault("budget.soft_lines", validator.DefaultBudget.SoftLines)
	viper.SetDefault("budget.hard_lines", validator.DefaultBudget.HardLines)
	viper.SetDefault("budget.soft_words", validator.DefaultBudget.SoftWords)
	viper.SetDefault("budget.hard_words", validator.DefaultBudget.HardWords)

	viper.SetDefault("sources.bundle", validator.DefaultSources.Bundle)
	viper.SetDefault("sources.install_config", validator.DefaultSources.InstallConfig)
	viper.SetDefault("sources.wizard", validator.DefaultSources.Wizard)
	viper.SetDefault("sources.discovery", validator.DefaultSources.Discovery)

	viper.SetDefault("short_description_limit", 160)
	viper.SetDefault("ignore_dirs", []string{".git", "node_modules"})

	viper.SetDefault("evals.suite", "evals/trigger-evals.json")
}

// InitViper wires environment variables and the optional config file. A
// missing config file is not an error.
func InitViper(configFile string) error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	SetDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", configFile)
		}
		return nil
	}

	viper.SetConfigName("agentskills")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.agentskills")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
	}
	return nil
}

// Load decodes the viper state into a Config, applies the active profile
// and resolves relative paths against the catalog root.
func Load() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if name := activeProfile(cfg.Profile); name != "" {
		profile, ok := cfg.Profiles[name]
		if !ok {
			return cfg, errors.Errorf("profile %q is not defined", name)
		}
		if err := applyProfile(&cfg, profile); err != nil {
			return cfg, err
		}
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to resolve root %s", cfg.Root)
	}
	cfg.Root = root
	cfg.Evals.Suite = resolve(root, cfg.Evals.Suite)
	return cfg, nil
}

func activeProfile(name string) string {
	if name == "default" {
		return ""
	}
	return name
}

// applyProfile decodes a profile on top of cfg. Settings the profile does
// not mention keep their current values.
func applyProfile(cfg *Config, profile map[string]interface{}) error {
	// lists are replaced as a whole
	if _, ok := profile["categories"]; ok {
		cfg.Categories = nil
	}
	if _, ok := profile["ignore_dirs"]; ok {
		cfg.IgnoreDirs = nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create profile decoder")
	}
	if err := decoder.Decode(profile); err != nil {
		return errors.Wrap(err, "failed to apply profile configuration")
	}
	return nil
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}

func categoryNames(categories []catalog.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}

// CatalogCategories returns the configured categories as catalog values.
func (c Config) CatalogCategories() []catalog.Category {
	return catalog.Categories(c.Categories...)
}

// Loader builds a catalog loader for the configured root.
func (c Config) Loader(mode catalog.Mode) (*catalog.Loader, error) {
	return catalog.NewLoader(c.Root,
		catalog.WithCategories(c.CatalogCategories()...),
		catalog.WithRecordFile(c.RecordFile),
		catalog.WithMode(mode),
	)
}

// Validator returns the validator configuration. Source paths stay
// relative to the root; the validator resolves them itself.
func (c Config) Validator() validator.Config {
	return validator.Config{
		Root:                  c.Root,
		Categories:            c.CatalogCategories(),
		RecordFile:            c.RecordFile,
		Budget:                c.Budget,
		Sources:               c.Sources,
		ShortDescriptionLimit: c.ShortDescriptionLimit,
		IgnoreDirs:            c.IgnoreDirs,
	}
}
