package manifest

import (
	"github.com/Alicoder001/agent-skills/pkg/markdown"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
)

// DiscoverySection is the heading, at level 3, whose tables list the agent
// skills.
const DiscoverySection = "Agent Skills"

// DiscoveryTable is the agent skill listing of the discovery skill.
type DiscoveryTable struct {
	Names []string
}

// LoadDiscoveryTable reads the discovery document at path and collects the
// skill names of its agent section. A document without the section yields
// ErrUnparsable.
func LoadDiscoveryTable(path, label string) (*DiscoveryTable, error) {
	text, err := utils.ReadText(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", label)
	}
	names, ok := markdown.SectionTableColumn([]byte(text), 3, DiscoverySection)
	if !ok {
		return nil, errors.Wrapf(ErrUnparsable, "unable to find %q section in %s", "### "+DiscoverySection, label)
	}
	return &DiscoveryTable{Names: dedupe(names)}, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return Sorted(out)
}
