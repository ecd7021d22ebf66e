package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Alicoder001/agent-skills/pkg/companion"
	"github.com/Alicoder001/agent-skills/pkg/evals"
	"github.com/Alicoder001/agent-skills/pkg/manifest"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCheckThenWrite(t *testing.T) {
	ctx := context.Background()
	cfg := testCatalog(t)
	_, errOut := captureOutput(t)

	ok, err := runGenerate(ctx, cfg, &GenerateConfig{Check: true})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "core/git/agents/openai.yaml (created)")
	assert.False(t, utils.FileExists(companion.Path(filepath.Join(cfg.Root, "core", "git"))))

	ok, err = runGenerate(ctx, cfg, NewGenerateConfig())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, utils.FileExists(companion.Path(filepath.Join(cfg.Root, "core", "git"))))

	ok, err = runGenerate(ctx, cfg, &GenerateConfig{Check: true})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateReportsMissingCompanion(t *testing.T) {
	ctx := context.Background()
	cfg := testCatalog(t)
	out, errOut := captureOutput(t)

	result, err := runValidate(ctx, cfg, NewValidateConfig())
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Contains(t, errOut.String(), "Validation failed: 2 validation error(s):\n"+
		"- Missing agents/openai.yaml: backend/api-patterns\n"+
		"- Missing agents/openai.yaml: core/git\n")
	assert.NotContains(t, out.String(), "Validation passed.")
}

func TestGatePasses(t *testing.T) {
	cfg := testCatalog(t)
	out, _ := captureOutput(t)

	require.NoError(t, runGate(context.Background(), cfg))
	assert.Contains(t, out.String(), "Validation passed.")
	assert.Contains(t, out.String(), "Trigger evals: 3/3 passed (100.0%)")
}

func TestGateStopsAtFirstFailure(t *testing.T) {
	cfg := testCatalog(t)
	cfg.Evals.Suite = filepath.Join(cfg.Root, "missing.json")
	captureOutput(t)

	err := runGate(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, evals.ErrSuiteNotFound))
	assert.Contains(t, err.Error(), "eval")
}

func TestGateReportsValidationErrors(t *testing.T) {
	cfg := testCatalog(t)
	writeFile(t, filepath.Join(cfg.Root, "core", "git", "SKILL.md"),
		"---\nname: git\ndescription: Use this skill when writing git commit messages and branches\n---\n\nSee [guide](guide.md).\n")
	captureOutput(t)

	err := runGate(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, "validate step failed: 1 validation error(s):\n"+
		"- Broken local markdown link in core/git/SKILL.md: guide.md", err.Error())

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 1)
}

func TestRunEval(t *testing.T) {
	ctx := context.Background()
	cfg := testCatalog(t)
	out, errOut := captureOutput(t)

	ok, err := runEval(ctx, cfg, &EvalConfig{Suite: cfg.Evals.Suite})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Trigger evals passed.")
	assert.Empty(t, errOut.String())

	failing := filepath.Join(cfg.Root, "failing.json")
	writeFile(t, failing, `{"pass_threshold": 1, "cases": [{"id": "wrong", "prompt": "git commit", "expected": "api-patterns"}]}`)
	ok, err = runEval(ctx, cfg, &EvalConfig{Suite: failing})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "wrong: expected api-patterns, got git")
}

func TestDescribeFailure(t *testing.T) {
	assert.Equal(t, "c1: expected none, got git (score 6)",
		describeFailure(evals.CaseResult{ID: "c1", Actual: "git", Score: 6}))
	assert.Equal(t, "c2: expected git, got none (score 0)",
		describeFailure(evals.CaseResult{ID: "c2", Expected: "git"}))
}

func TestRunMatch(t *testing.T) {
	cfg := testCatalog(t)
	out, _ := captureOutput(t)

	require.NoError(t, runMatch(context.Background(), cfg, NewMatchConfig(), "git commit"))
	assert.Contains(t, out.String(), "Best match: git")

	out.Reset()
	require.NoError(t, runMatch(context.Background(), cfg, NewMatchConfig(), "chocolate cake"))
	assert.Contains(t, out.String(), "No skill matches")
}

func TestMatchConfigValidate(t *testing.T) {
	assert.NoError(t, NewMatchConfig().Validate())
	assert.Error(t, (&MatchConfig{Top: 0}).Validate())
}

func TestRunList(t *testing.T) {
	cfg := testCatalog(t)
	writeFile(t, filepath.Join(cfg.Root, "core", "broken", "SKILL.md"), "no header")

	t.Run("strict", func(t *testing.T) {
		out, errOut := captureOutput(t)
		ok, err := runList(context.Background(), cfg, NewListConfig())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, out.String(), "api-patterns")
		assert.Contains(t, errOut.String(), "core/broken/SKILL.md")
	})

	t.Run("lenient", func(t *testing.T) {
		_, errOut := captureOutput(t)
		ok, err := runList(context.Background(), cfg, &ListConfig{Lenient: true})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, errOut.String())
	})
}

func TestResolveInstallPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.config.json")
	writeFile(t, path, `{
  "mandatory": ["git", "typescript"],
  "choices": {"frontend": {"options": {"react": ["react", "typescript"], "vue": ["vue"]}}},
  "selections": {"frontend": "react"}
}`)

	plan, err := resolveInstallPlan(&InstallPlanConfig{File: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "typescript", "react"}, plan.Skills)
	assert.Equal(t, "npx skills add "+manifest.DefaultRepo+" --skill git", plan.Commands()[0])

	_, err = resolveInstallPlan(&InstallPlanConfig{File: filepath.Join(t.TempDir(), "absent.json")})
	assert.Error(t, err)
}
