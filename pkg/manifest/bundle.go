package manifest

import (
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
)

// EssentialBundle is the bundle whose skills are mandatory everywhere.
const EssentialBundle = "essential"

// AgentCategory is the category whose skills the discovery table must list.
const AgentCategory = "agent"

// SkillList is a named list of skill references.
type SkillList struct {
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Skills      []string `json:"skills" yaml:"skills"`
}

// Bundle is the bundle definitions file, normally bundles.json.
type Bundle struct {
	Bundles    map[string]SkillList `json:"bundles" yaml:"bundles"`
	Categories map[string]SkillList `json:"categories" yaml:"categories"`

	label string
}

// LoadBundle decodes the bundle definitions at path. label names the file
// in drift messages.
func LoadBundle(path, label string) (*Bundle, error) {
	b := &Bundle{}
	if err := utils.DecodeFile(path, b); err != nil {
		return nil, errors.Wrap(err, "failed to load bundle definitions")
	}
	b.label = label
	return b, nil
}

// Label implements MandatorySource.
func (b *Bundle) Label() string {
	return b.label
}

// Mandatory implements MandatorySource using the essential bundle.
func (b *Bundle) Mandatory() ([]string, error) {
	return b.EssentialSkills(), nil
}

// EssentialSkills returns the essential bundle's skills reduced to their
// last path segment and sorted.
func (b *Bundle) EssentialSkills() []string {
	refs := b.Bundles[EssentialBundle].Skills
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if name := SkillName(ref); name != "" {
			names = append(names, name)
		}
	}
	return Sorted(names)
}

// AgentSkills returns the sorted skill names of the agent category.
func (b *Bundle) AgentSkills() []string {
	refs := b.Categories[AgentCategory].Skills
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if name := SkillName(ref); name != "" {
			names = append(names, name)
		}
	}
	return Sorted(names)
}
