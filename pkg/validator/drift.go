package validator

import (
	"context"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/manifest"
	"github.com/pkg/errors"
)

// checkDrift compares the essential bundle with every other declaration of
// the mandatory skills, and the agent category with the discovery table.
func (v *Validator) checkDrift(ctx context.Context, res *Result) {
	src := v.cfg.Sources
	if src.Bundle == "" {
		logger.G(ctx).Debug("no bundle definitions configured, skipping drift checks")
		return
	}

	bundle, err := manifest.LoadBundle(v.abs(src.Bundle), src.Bundle)
	if err != nil {
		res.Errorf(KindCrossSourceDrift, src.Bundle, "Unable to read %s: %v", src.Bundle, errors.Cause(err))
		return
	}
	expected := bundle.EssentialSkills()

	var sources []manifest.MandatorySource
	if src.InstallConfig != "" {
		install, err := manifest.LoadInstallConfig(v.abs(src.InstallConfig), src.InstallConfig)
		if err != nil {
			res.Errorf(KindCrossSourceDrift, src.InstallConfig, "Unable to read %s: %v", src.InstallConfig, errors.Cause(err))
		} else {
			sources = append(sources, install)
		}
	}
	if src.Wizard != "" {
		sources = append(sources, manifest.NewWizardDefaults(v.abs(src.Wizard), src.Wizard))
	}

	for _, s := range sources {
		v.compareMandatory(res, bundle.Label(), expected, s)
	}

	if src.Discovery != "" {
		v.checkDiscovery(res, bundle, src.Discovery)
	}
}

func (v *Validator) compareMandatory(res *Result, expectedLabel string, expected []string, s manifest.MandatorySource) {
	got, err := s.Mandatory()
	if err != nil {
		if errors.Is(err, manifest.ErrUnparsable) {
			res.Errorf(KindCrossSourceDrift, s.Label(), "Unable to parse mandatory skills from %s", s.Label())
			return
		}
		res.Errorf(KindCrossSourceDrift, s.Label(), "Unable to read %s: %v", s.Label(), errors.Cause(err))
		return
	}

	if !manifest.SameSet(expected, got) {
		res.Errorf(KindCrossSourceDrift, s.Label(),
			"Mandatory skills drift between %s and %s: expected [%s], got [%s]",
			expectedLabel, s.Label(),
			strings.Join(manifest.Sorted(expected), ", "),
			strings.Join(manifest.Sorted(got), ", "))
	}
}

func (v *Validator) checkDiscovery(res *Result, bundle *manifest.Bundle, label string) {
	table, err := manifest.LoadDiscoveryTable(v.abs(label), label)
	if err != nil {
		if errors.Is(err, manifest.ErrUnparsable) {
			res.Errorf(KindCrossSourceDrift, label, "Unable to find \"### %s\" section in %s", manifest.DiscoverySection, label)
			return
		}
		res.Errorf(KindCrossSourceDrift, label, "Unable to read %s: %v", label, errors.Cause(err))
		return
	}

	if missing := manifest.Missing(bundle.AgentSkills(), table.Names); len(missing) > 0 {
		res.Errorf(KindCrossSourceDrift, label, "%s is missing agent skill rows: %s", label, strings.Join(missing, ", "))
	}
}
