package manifest

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
)

var legacyMandatory = regexp.MustCompile(`const mandatory = \[([^\]]+)\];`)

// WizardDefaults is the mandatory list the interactive installer offers.
// Structured files (.yaml, .yml, .json) declare it under a "mandatory"
// key. Any other file is treated as the legacy installer script and the
// list is read from its "const mandatory = [...]" declaration.
type WizardDefaults struct {
	path  string
	label string
}

// NewWizardDefaults returns a source reading the wizard file at path.
func NewWizardDefaults(path, label string) *WizardDefaults {
	return &WizardDefaults{path: path, label: label}
}

// Label implements MandatorySource.
func (w *WizardDefaults) Label() string {
	return w.label
}

// Mandatory implements MandatorySource. A file from which no list can be
// extracted yields ErrUnparsable.
func (w *WizardDefaults) Mandatory() ([]string, error) {
	switch strings.ToLower(filepath.Ext(w.path)) {
	case ".yaml", ".yml", ".json":
		var doc struct {
			Mandatory []string `json:"mandatory" yaml:"mandatory"`
		}
		if err := utils.DecodeFile(w.path, &doc); err != nil {
			return nil, errors.Wrapf(ErrUnparsable, "mandatory skills from %s: %v", w.label, err)
		}
		if doc.Mandatory == nil {
			return nil, errors.Wrapf(ErrUnparsable, "mandatory skills from %s: no mandatory key", w.label)
		}
		return Sorted(doc.Mandatory), nil
	}

	text, err := utils.ReadText(w.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", w.label)
	}
	values, ok := ParseLegacyMandatory(text)
	if !ok {
		return nil, errors.Wrapf(ErrUnparsable, "mandatory skills from %s", w.label)
	}
	return Sorted(values), nil
}

// ParseLegacyMandatory extracts the quoted names of a
// "const mandatory = [...];" declaration.
func ParseLegacyMandatory(text string) ([]string, bool) {
	m := legacyMandatory.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	var values []string
	for _, part := range strings.Split(m[1], ",") {
		v := strings.TrimSpace(part)
		v = strings.TrimPrefix(v, "'")
		v = strings.TrimPrefix(v, `"`)
		v = strings.TrimSuffix(v, "'")
		v = strings.TrimSuffix(v, `"`)
		if v != "" {
			values = append(values, v)
		}
	}
	return values, true
}
