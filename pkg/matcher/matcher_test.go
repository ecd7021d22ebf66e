package matcher

import (
	"testing"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Build a Next.js app", "build a nextjs app"},
		{"RTK Query caching", "rtk-query caching"},
		{"TanStack  Query\tmutations", "tanstack-query mutations"},
		{"rtk_query", "rtk-query"},
		{"rtk  query", "rtk-query"},
		{"tanstack/query", "tanstack-query"},
		{"rtk-query", "rtk-query"},
		{"  Hello,   World!  ", "hello world"},
		{"C++ / C#", "c c"},
		{"api-patterns", "api-patterns"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Build a Next.js app with RTK Query",
		"tanstack...query and rtk--query",
		"next . js",
		"Ünïcödé — dashes – and “quotes”",
		"rtk query",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"design", "rest", "api", "endpoints"},
		Tokenize("How should I design the REST API endpoints?"))
	assert.Equal(t, []string{"api", "api"}, Tokenize("api API"))
	assert.Empty(t, Tokenize("a an to of skill patterns rules"))
	assert.Nil(t, Tokenize(""))
}

func TestScore(t *testing.T) {
	e := NewEntry("api-patterns", "REST API design and API versioning")
	assert.Equal(t, []string{"api"}, e.NameTokens)
	assert.Equal(t, []string{"rest", "api", "design", "api", "versioning"}, e.DescTokens)

	// api in name (4) + rest (1) + api twice in description (2) + design (1)
	assert.Equal(t, 8, Score(NewPromptSet("design a REST api"), e))
	assert.Equal(t, 0, Score(NewPromptSet("unrelated words here"), e))
}

func TestScoreIsMonotonic(t *testing.T) {
	e := NewEntry("react-query", "Data fetching with tanstack query and caching")
	base := Score(NewPromptSet("react caching"), e)
	more := Score(NewPromptSet("react caching fetching"), e)
	assert.GreaterOrEqual(t, more, base)
}

func TestScoreTokenWeights(t *testing.T) {
	prompt := NewPromptSet("api design endpoints versioning caching")

	base := Score(prompt, NewEntry("api", "design endpoints"))
	require.Equal(t, 6, base)

	// one more matching name token
	assert.Equal(t, base+NameWeight, Score(prompt, NewEntry("api-versioning", "design endpoints")))
	// one more matching description token
	assert.Equal(t, base+DescriptionWeight, Score(prompt, NewEntry("api", "design endpoints caching")))
	// tokens absent from the prompt add nothing
	assert.Equal(t, base, Score(prompt, NewEntry("api-gateway", "design endpoints throttling")))
}

func TestRestAPIPromptSelectsAPIPatterns(t *testing.T) {
	idx := NewIndexFromEntries([]Entry{
		NewEntry("git", "Commit conventions and branch naming"),
		NewEntry("api-patterns", "Use this skill when designing REST APIs and error handling"),
		NewEntry("react", "Component structure and hooks"),
	})

	// only "rest" and "apis" overlap: "api" and "designing" are different tokens
	best, err := idx.Best("help me design REST APIs")
	require.NoError(t, err)
	assert.Equal(t, Scored{Name: "api-patterns", Score: 2}, best)
	assert.True(t, Judge("api-patterns", best, 4).Pass)
}

func TestRankTieBreaksByName(t *testing.T) {
	idx := NewIndexFromEntries([]Entry{
		NewEntry("b-tool", "widget"),
		NewEntry("a-tool", "widget"),
		NewEntry("other", "nothing relevant"),
	})

	ranking := idx.Rank("tool widget")
	require.Len(t, ranking, 3)
	assert.Equal(t, Scored{Name: "a-tool", Score: 5}, ranking[0])
	assert.Equal(t, Scored{Name: "b-tool", Score: 5}, ranking[1])
	assert.Equal(t, Scored{Name: "other", Score: 0}, ranking[2])

	best, err := idx.Best("tool widget")
	require.NoError(t, err)
	assert.Equal(t, "a-tool", best.Name)
}

func TestBestOnEmptyIndex(t *testing.T) {
	_, err := NewIndexFromEntries(nil).Best("anything")
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestJudge(t *testing.T) {
	tests := []struct {
		name      string
		expected  string
		best      Scored
		threshold float64
		want      Verdict
	}{
		{
			name:     "expected skill wins",
			expected: "git",
			best:     Scored{Name: "git", Score: 8},
			want:     Verdict{Expected: "git", Actual: "git", Score: 8, Pass: true},
		},
		{
			name:     "expected skill loses",
			expected: "git",
			best:     Scored{Name: "github", Score: 8},
			want:     Verdict{Expected: "git", Actual: "github", Score: 8, Pass: false},
		},
		{
			name:      "no match at threshold passes",
			best:      Scored{Name: "git", Score: 4},
			threshold: 4,
			want:      Verdict{Score: 4, Pass: true},
		},
		{
			name:      "no match above threshold fails",
			best:      Scored{Name: "git", Score: 5},
			threshold: 4,
			want:      Verdict{Actual: "git", Score: 5, Pass: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Judge(tt.expected, tt.best, tt.threshold))
		})
	}
}

func TestIndexFromCatalog(t *testing.T) {
	c, err := catalog.New([]*catalog.Record{
		{Name: "git", Category: "core", Description: "Commit messages and branching"},
		{Name: "api-patterns", Category: "backend", Description: "Use this skill when designing REST APIs and endpoints"},
		{Name: "react", Category: "frontend", Description: "React components and hooks"},
	})
	require.NoError(t, err)

	idx := NewIndex(c)
	assert.Equal(t, 3, idx.Len())

	best, err := idx.Best("How should I design REST API endpoints?")
	require.NoError(t, err)
	assert.Equal(t, "api-patterns", best.Name)
	assert.Equal(t, catalog.Category("backend"), best.Category)
	assert.Equal(t, 4+1+1, best.Score)
}
