package manifest

import (
	"fmt"
	"sort"

	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
)

// DefaultRepo is the skill repository installs pull from when the install
// configuration does not name one.
const DefaultRepo = "Alicoder001/agent-skills"

// ErrInvalidSelection is returned when a selection names an unknown choice
// or option.
var ErrInvalidSelection = errors.New("invalid selection")

// Choice is one optional question of the install configuration.
type Choice struct {
	Label   string              `json:"label,omitempty" yaml:"label,omitempty"`
	Options map[string][]string `json:"options" yaml:"options"`
}

// InstallConfig is the install configuration, normally skills.config.json.
type InstallConfig struct {
	Repo       string            `json:"repo,omitempty" yaml:"repo,omitempty"`
	Required   []string          `json:"mandatory" yaml:"mandatory"`
	Choices    map[string]Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	Selections map[string]string `json:"selections,omitempty" yaml:"selections,omitempty"`

	label string
}

// LoadInstallConfig decodes the install configuration at path.
func LoadInstallConfig(path, label string) (*InstallConfig, error) {
	c := &InstallConfig{}
	if err := utils.DecodeFile(path, c); err != nil {
		return nil, errors.Wrap(err, "failed to load install configuration")
	}
	c.label = label
	return c, nil
}

// Label implements MandatorySource.
func (c *InstallConfig) Label() string {
	return c.label
}

// Mandatory implements MandatorySource.
func (c *InstallConfig) Mandatory() ([]string, error) {
	return Sorted(c.Required), nil
}

// InstallPlan is the resolved list of skills an install would add.
type InstallPlan struct {
	Repo   string
	Skills []string
}

// Resolve expands the configuration into an InstallPlan: the mandatory
// skills in declaration order followed by the options of every selection,
// with selections visited in key order and duplicates dropped.
func (c *InstallConfig) Resolve() (*InstallPlan, error) {
	repo := c.Repo
	if repo == "" {
		repo = DefaultRepo
	}

	plan := &InstallPlan{Repo: repo}
	seen := make(map[string]struct{})
	add := func(skill string) {
		if _, ok := seen[skill]; ok {
			return
		}
		seen[skill] = struct{}{}
		plan.Skills = append(plan.Skills, skill)
	}

	for _, skill := range c.Required {
		add(skill)
	}

	keys := make([]string, 0, len(c.Selections))
	for key := range c.Selections {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		option := c.Selections[key]
		choice, ok := c.Choices[key]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidSelection, "%s -> %s", key, option)
		}
		skills, ok := choice.Options[option]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidSelection, "%s -> %s", key, option)
		}
		for _, skill := range skills {
			add(skill)
		}
	}
	return plan, nil
}

// Commands returns the install command line for every planned skill.
func (p *InstallPlan) Commands() []string {
	cmds := make([]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		cmds = append(cmds, fmt.Sprintf("npx skills add %s --skill %s", p.Repo, skill))
	}
	return cmds
}
