package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "inline links and images",
			input:    "See [guide](references/guide.md) and ![diagram](img/arch.png).\n",
			expected: []string{"references/guide.md", "img/arch.png"},
		},
		{
			name:     "angle bracket destination with title",
			input:    "[spaced](<docs/my file.md> \"Title\")\n",
			expected: []string{"docs/my file.md"},
		},
		{
			name:     "fenced code is ignored",
			input:    "```md\n[inside](missing.md)\n```\n\n[outside](present.md)\n",
			expected: []string{"present.md"},
		},
		{
			name:     "inline code is ignored",
			input:    "Write `[x](y.md)` to link.\n",
			expected: nil,
		},
		{
			name:     "reference style link",
			input:    "Read [the docs][docs].\n\n[docs]: ./docs/index.md\n",
			expected: []string{"./docs/index.md"},
		},
		{
			name:     "front matter is not markdown",
			input:    "---\nname: x\ndescription: y\n---\n\n[body](body.md)\n",
			expected: []string{"body.md"},
		},
		{
			name:     "external and fragment links are still reported",
			input:    "[a](https://example.com) [b](#top)\n",
			expected: []string{"https://example.com", "#top"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Links([]byte(tt.input)))
		})
	}
}

func TestFrontMatter(t *testing.T) {
	fm, err := FrontMatter([]byte("---\ntitle: Guide\norder: 2\n---\n# Guide\n"))
	require.NoError(t, err)
	assert.Equal(t, "Guide", fm["title"])
	assert.Equal(t, 2, fm["order"])

	fm, err = FrontMatter([]byte("# No front matter\n"))
	require.NoError(t, err)
	assert.Nil(t, fm)
}

const discovery = `# Find skills

## Catalog

### Core Skills

| Skill | Purpose |
|-------|---------|
| git | commits |

### Agent Skills

| Skill | When |
|-------|------|
| planning | break work down |
| ` + "`subagents`" + ` | delegate |
| Not A Name! | ignored |

Some prose between tables.

| skill | note |
|-------|------|
| reviewer | second table |

### Agent Notes

| Skill | Note |
|-------|------|
| memory | nested heading stays in section |

## Next section

| Skill | Note |
|-------|------|
| outside | not collected |
`

func TestSectionTableColumn(t *testing.T) {
	names, ok := SectionTableColumn([]byte(discovery), 3, "Agent Skills")
	require.True(t, ok)
	assert.Equal(t, []string{"planning", "subagents", "reviewer", "memory"}, names)
}

func TestSectionTableColumnMissingHeading(t *testing.T) {
	names, ok := SectionTableColumn([]byte("# Title\n\n| Skill |\n|---|\n| a |\n"), 3, "Agent Skills")
	assert.False(t, ok)
	assert.Empty(t, names)
}

func TestSectionTableColumnToEndOfDocument(t *testing.T) {
	src := "### Agent Skills\n\n| Skill | x |\n|---|---|\n| last | y |\n"
	names, ok := SectionTableColumn([]byte(src), 3, "Agent Skills")
	require.True(t, ok)
	assert.Equal(t, []string{"last"}, names)
}

func TestSectionTableColumnHeadingPrefix(t *testing.T) {
	src := "### Core Skills\n\n| Skill |\n|---|\n| git |\n\n" +
		"### Agent Skills (core)\n\n| Skill |\n|---|\n| planning |\n"
	names, ok := SectionTableColumn([]byte(src), 3, "Agent Skills")
	require.True(t, ok)
	assert.Equal(t, []string{"planning"}, names)

	_, ok = SectionTableColumn([]byte(src), 3, "Skills")
	assert.False(t, ok)
}

func TestSectionTableColumnNestedTables(t *testing.T) {
	src := "### Agent Skills\n\n" +
		"> | Skill | When |\n> |---|---|\n> | quoted | in a block quote |\n\n" +
		"- item\n\n  | Skill |\n  |---|\n  | listed |\n\n" +
		"```\n| Skill |\n|---|\n| fenced |\n```\n"
	names, ok := SectionTableColumn([]byte(src), 3, "Agent Skills")
	require.True(t, ok)
	assert.Equal(t, []string{"quoted", "listed"}, names)
}
