package matcher

// Verdict is the outcome of judging one prompt. An empty Expected or
// Actual stands for "no skill".
type Verdict struct {
	Expected string
	Actual   string
	Score    int
	Pass     bool
}

// Judge decides whether best satisfies expected. When expected is empty
// the prompt should match nothing: it passes iff the best score does not
// exceed noneThreshold, and Actual is then reported empty as well.
// Otherwise it passes iff the best entry is the expected one.
func Judge(expected string, best Scored, noneThreshold float64) Verdict {
	v := Verdict{Expected: expected, Actual: best.Name, Score: best.Score}
	if expected == "" {
		v.Pass = float64(best.Score) <= noneThreshold
		if v.Pass {
			v.Actual = ""
		}
		return v
	}
	v.Pass = best.Name == expected
	return v
}
