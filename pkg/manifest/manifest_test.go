package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSkillName(t *testing.T) {
	assert.Equal(t, "git", SkillName("core/git"))
	assert.Equal(t, "git", SkillName("git"))
	assert.Equal(t, "git", SkillName(" core/git/ "))
	assert.Equal(t, "", SkillName(""))
}

func TestSameSetAndMissing(t *testing.T) {
	assert.True(t, SameSet([]string{"b", "a"}, []string{"a", "b"}))
	assert.False(t, SameSet([]string{"a", "b"}, []string{"a"}))
	assert.False(t, SameSet([]string{"a", "a"}, []string{"a"}))
	assert.Equal(t, []string{"c"}, Missing([]string{"a", "c"}, []string{"a", "b"}))
	assert.Empty(t, Missing([]string{"a"}, []string{"a"}))
}

func TestLoadBundle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bundles.json", `{
  "bundles": {
    "essential": {"description": "always", "skills": ["core/typescript", "core/git", "core/errors"]},
    "web": {"skills": ["frontend/react"]}
  },
  "categories": {
    "agent": {"skills": ["subagents", "planning"]}
  }
}`)

	b, err := LoadBundle(path, "bundles.json")
	require.NoError(t, err)
	assert.Equal(t, "bundles.json", b.Label())
	assert.Equal(t, []string{"errors", "git", "typescript"}, b.EssentialSkills())
	assert.Equal(t, []string{"planning", "subagents"}, b.AgentSkills())

	mandatory, err := b.Mandatory()
	require.NoError(t, err)
	assert.Equal(t, b.EssentialSkills(), mandatory)
}

func TestLoadBundleYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bundles.yaml", "bundles:\n  essential:\n    skills: [core/git]\n")
	b, err := LoadBundle(path, "bundles.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"git"}, b.EssentialSkills())
	assert.Empty(t, b.AgentSkills())
}

func TestLoadBundleErrors(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "missing.json"), "missing.json")
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "bundles.json", "{not json")
	_, err = LoadBundle(path, "bundles.json")
	assert.Error(t, err)
}

func TestInstallConfigResolve(t *testing.T) {
	path := writeFile(t, t.TempDir(), "skills.config.json", `{
  "mandatory": ["global-config", "typescript", "git"],
  "choices": {
    "ui": {"options": {"react": ["react", "typescript"], "vue": ["vue"]}},
    "api": {"options": {"rest": ["api-patterns"]}}
  },
  "selections": {"ui": "react", "api": "rest"}
}`)

	c, err := LoadInstallConfig(path, "skills.config.json")
	require.NoError(t, err)

	mandatory, err := c.Mandatory()
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "global-config", "typescript"}, mandatory)

	plan, err := c.Resolve()
	require.NoError(t, err)
	assert.Equal(t, DefaultRepo, plan.Repo)
	assert.Equal(t, []string{"global-config", "typescript", "git", "api-patterns", "react"}, plan.Skills)
	assert.Equal(t, "npx skills add Alicoder001/agent-skills --skill global-config", plan.Commands()[0])
}

func TestInstallConfigResolveInvalidSelection(t *testing.T) {
	tests := []struct {
		name   string
		config InstallConfig
	}{
		{
			name:   "unknown choice",
			config: InstallConfig{Selections: map[string]string{"db": "postgres"}},
		},
		{
			name: "unknown option",
			config: InstallConfig{
				Choices:    map[string]Choice{"db": {Options: map[string][]string{"mysql": {"mysql"}}}},
				Selections: map[string]string{"db": "postgres"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.config.Resolve()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSelection))
			assert.Contains(t, err.Error(), "db -> postgres")
		})
	}
}

func TestWizardDefaults(t *testing.T) {
	t.Run("legacy script", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "scripts/skills-wizard.js",
			"const x = 1;\nconst mandatory = ['global-config', \"typescript\", 'git', 'errors'];\n")
		got, err := NewWizardDefaults(path, "scripts/skills-wizard.js").Mandatory()
		require.NoError(t, err)
		assert.Equal(t, []string{"errors", "git", "global-config", "typescript"}, got)
	})

	t.Run("legacy script without declaration", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "wizard.js", "let mandatory = [];\n")
		_, err := NewWizardDefaults(path, "wizard.js").Mandatory()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnparsable))
	})

	t.Run("structured yaml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "wizard.yaml", "mandatory:\n  - git\n  - errors\n")
		w := NewWizardDefaults(path, "wizard.yaml")
		got, err := w.Mandatory()
		require.NoError(t, err)
		assert.Equal(t, []string{"errors", "git"}, got)
		assert.Equal(t, "wizard.yaml", w.Label())
	})

	t.Run("structured json without key", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "wizard.json", `{"optional": ["x"]}`)
		_, err := NewWizardDefaults(path, "wizard.json").Mandatory()
		assert.True(t, errors.Is(err, ErrUnparsable))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewWizardDefaults(filepath.Join(t.TempDir(), "nope.js"), "nope.js").Mandatory()
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnparsable))
	})
}

func TestMandatorySourcesAreInterchangeable(t *testing.T) {
	dir := t.TempDir()
	bundle, err := LoadBundle(writeFile(t, dir, "bundles.json", `{"bundles":{"essential":{"skills":["core/x","core/y"]}}}`), "bundles.json")
	require.NoError(t, err)
	install, err := LoadInstallConfig(writeFile(t, dir, "skills.config.json", `{"mandatory":["x"]}`), "skills.config.json")
	require.NoError(t, err)

	sources := []MandatorySource{bundle, install}
	lists := make([][]string, 0, len(sources))
	for _, s := range sources {
		names, err := s.Mandatory()
		require.NoError(t, err)
		lists = append(lists, names)
	}
	assert.False(t, SameSet(lists[0], lists[1]))
}

func TestLoadDiscoveryTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "agent/find-skills/SKILL.md", `---
name: find-skills
description: Locate the right skill
---

### Agent Skills

| Skill | Use |
|-------|-----|
| subagents | delegate |
| planning | plan |
| planning | duplicate row |

## Other
`)
	table, err := LoadDiscoveryTable(path, "agent/find-skills/SKILL.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"planning", "subagents"}, table.Names)

	missing := writeFile(t, dir, "other.md", "# Nothing here\n")
	_, err = LoadDiscoveryTable(missing, "other.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparsable))
}
