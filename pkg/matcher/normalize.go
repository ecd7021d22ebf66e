package matcher

import (
	"regexp"
	"strings"
)

// minTokenLength is the shortest token that takes part in scoring.
const minTokenLength = 3

var (
	nextJS        = regexp.MustCompile(`next\.js`)
	rtkQuery      = regexp.MustCompile(`rtk[^a-z0-9-]+query`)
	tanstackQuery = regexp.MustCompile(`tanstack[^a-z0-9-]+query`)
	nonToken      = regexp.MustCompile(`[^a-z0-9-]+`)
	whitespace    = regexp.MustCompile(`\s+`)
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the and for with from that this when need use using
		into about your have has are was were how what which
		will would could should can but not only also very
		best more less mode rules patterns skill`) {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether token is ignored during scoring.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// Normalize lower-cases s, folds a few multi-word technology names into
// single tokens and reduces everything outside [a-z0-9-] to single spaces.
// Any run of separators between "rtk" or "tanstack" and "query" folds,
// so "rtk_query" and "rtk  query" both become "rtk-query".
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nextJS.ReplaceAllString(s, "nextjs")
	s = rtkQuery.ReplaceAllString(s, "rtk-query")
	s = tanstackQuery.ReplaceAllString(s, "tanstack-query")
	s = nonToken.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize normalizes s and returns its tokens in order, dropping stop
// words and tokens shorter than three characters. Duplicates are kept.
func Tokenize(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}
	var tokens []string
	for _, tok := range strings.Split(normalized, " ") {
		if len(tok) < minTokenLength || IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
