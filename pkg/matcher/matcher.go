// Package matcher ranks catalog skills against a free-text prompt by
// lexical overlap. Tokens of a skill's name weigh more than tokens of its
// description; ties are broken by name so every ranking is deterministic.
package matcher

import (
	"sort"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/pkg/errors"
)

const (
	// NameWeight is added for every name token found in the prompt.
	NameWeight = 4
	// DescriptionWeight is added for every description token found in the prompt.
	DescriptionWeight = 1
)

// ErrEmptyIndex is returned when ranking against an index with no entries.
var ErrEmptyIndex = errors.New("no skills to match against")

// Entry is the scoring view of one skill.
type Entry struct {
	Name       string
	Category   catalog.Category
	NameTokens []string
	DescTokens []string
}

// NewEntry tokenizes a skill name and description.
func NewEntry(name, description string) Entry {
	return Entry{
		Name:       name,
		NameTokens: Tokenize(strings.ReplaceAll(name, "-", " ")),
		DescTokens: Tokenize(description),
	}
}

// Index is the name-ordered set of entries a prompt is ranked against.
type Index struct {
	entries []Entry
}

// NewIndex builds an Index from catalog records.
func NewIndex(c *catalog.Catalog) *Index {
	records := c.Records()
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		e := NewEntry(r.Name, r.Description)
		e.Category = r.Category
		entries = append(entries, e)
	}
	return NewIndexFromEntries(entries)
}

// NewIndexFromEntries builds an Index from prepared entries.
func NewIndexFromEntries(entries []Entry) *Index {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return &Index{entries: sorted}
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// PromptSet is the distinct token set of a prompt.
type PromptSet map[string]struct{}

// NewPromptSet tokenizes prompt into a set.
func NewPromptSet(prompt string) PromptSet {
	set := make(PromptSet)
	for _, tok := range Tokenize(prompt) {
		set[tok] = struct{}{}
	}
	return set
}

// Score sums the weights of e's tokens that occur in the prompt. Repeated
// tokens in a name or description count once per occurrence.
func Score(prompt PromptSet, e Entry) int {
	score := 0
	for _, tok := range e.NameTokens {
		if _, ok := prompt[tok]; ok {
			score += NameWeight
		}
	}
	for _, tok := range e.DescTokens {
		if _, ok := prompt[tok]; ok {
			score += DescriptionWeight
		}
	}
	return score
}

// Scored is an entry name with its score for one prompt.
type Scored struct {
	Name     string           `json:"name"`
	Category catalog.Category `json:"category,omitempty"`
	Score    int              `json:"score"`
}

// Rank scores every entry against prompt, highest score first and ties
// broken by ascending name.
func (idx *Index) Rank(prompt string) []Scored {
	set := NewPromptSet(prompt)
	ranking := make([]Scored, 0, len(idx.entries))
	for _, e := range idx.entries {
		ranking = append(ranking, Scored{Name: e.Name, Category: e.Category, Score: Score(set, e)})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Name < ranking[j].Name
	})
	return ranking
}

// Best returns the top-ranked entry for prompt.
func (idx *Index) Best(prompt string) (Scored, error) {
	if len(idx.entries) == 0 {
		return Scored{}, ErrEmptyIndex
	}
	return idx.Rank(prompt)[0], nil
}
