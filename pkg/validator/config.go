package validator

import (
	"github.com/Alicoder001/agent-skills/pkg/catalog"
)

// Budget holds the size limits of a skill record. Exceeding a soft limit
// is a warning, exceeding a hard limit an error.
type Budget struct {
	SoftLines int `mapstructure:"soft_lines" json:"soft_lines" yaml:"soft_lines"`
	HardLines int `mapstructure:"hard_lines" json:"hard_lines" yaml:"hard_lines"`
	SoftWords int `mapstructure:"soft_words" json:"soft_words" yaml:"soft_words"`
	HardWords int `mapstructure:"hard_words" json:"hard_words" yaml:"hard_words"`
}

// DefaultBudget is the stock size budget.
var DefaultBudget = Budget{
	SoftLines: 300,
	HardLines: 500,
	SoftWords: 900,
	HardWords: 1400,
}

// Sources are the cross-source documents, relative to the catalog root.
// An empty path disables the checks that depend on it.
type Sources struct {
	Bundle        string `mapstructure:"bundle" json:"bundle" yaml:"bundle"`
	InstallConfig string `mapstructure:"install_config" json:"install_config" yaml:"install_config"`
	Wizard        string `mapstructure:"wizard" json:"wizard" yaml:"wizard"`
	Discovery     string `mapstructure:"discovery" json:"discovery" yaml:"discovery"`
}

// DefaultSources are the document locations of the stock catalog layout.
var DefaultSources = Sources{
	Bundle:        "bundles.json",
	InstallConfig: "skills.config.json",
	Wizard:        "scripts/skills-wizard.js",
	Discovery:     "agent/find-skills/SKILL.md",
}

// Config configures a Validator.
type Config struct {
	Root       string
	Categories []catalog.Category
	RecordFile string
	Budget     Budget
	Sources    Sources
	// ShortDescriptionLimit is the longest companion short_description
	// that does not raise a warning.
	ShortDescriptionLimit int
	// IgnoreDirs are glob patterns matched against directory names that
	// the encoding scan does not enter.
	IgnoreDirs []string
}

// DefaultConfig returns the stock configuration for the catalog at root.
func DefaultConfig(root string) Config {
	return Config{
		Root:                  root,
		Categories:            catalog.DefaultCategories,
		RecordFile:            catalog.RecordFileName,
		Budget:                DefaultBudget,
		Sources:               DefaultSources,
		ShortDescriptionLimit: 160,
		IgnoreDirs:            []string{".git", "node_modules"},
	}
}
