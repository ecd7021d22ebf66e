package evals

import (
	"context"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/matcher"
	"github.com/pkg/errors"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Score    int    `json:"score"`
	Pass     bool   `json:"pass"`
}

// Report summarizes a suite run.
type Report struct {
	Results            []CaseResult `json:"results"`
	Passed             int          `json:"passed"`
	Total              int          `json:"total"`
	Accuracy           float64      `json:"accuracy"`
	PassThreshold      float64      `json:"pass_threshold"`
	NoneScoreThreshold float64      `json:"none_score_threshold"`
}

// OK reports whether the accuracy reached the pass threshold.
func (r *Report) OK() bool {
	return r.Accuracy >= r.PassThreshold
}

// Failures returns the failed cases in suite order.
func (r *Report) Failures() []CaseResult {
	var failed []CaseResult
	for _, res := range r.Results {
		if !res.Pass {
			failed = append(failed, res)
		}
	}
	return failed
}

// Evaluate scores every case of s against idx. A suite without cases has
// accuracy 0.
func Evaluate(ctx context.Context, s *Suite, idx *matcher.Index) (*Report, error) {
	if idx.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	log := logger.G(ctx)

	report := &Report{
		Total:              len(s.Cases),
		PassThreshold:      s.Threshold(),
		NoneScoreThreshold: s.NoneThreshold(),
		Results:            make([]CaseResult, 0, len(s.Cases)),
	}
	for _, c := range s.Cases {
		best, err := idx.Best(c.Prompt)
		if err != nil {
			return nil, err
		}
		v := matcher.Judge(c.ExpectedName(), best, report.NoneScoreThreshold)
		log.WithField("case", c.ID).WithField("best", best.Name).WithField("score", best.Score).Debug("evaluated case")

		report.Results = append(report.Results, CaseResult{
			ID:       c.ID,
			Prompt:   c.Prompt,
			Expected: v.Expected,
			Actual:   v.Actual,
			Score:    v.Score,
			Pass:     v.Pass,
		})
		if v.Pass {
			report.Passed++
		}
	}
	if report.Total > 0 {
		report.Accuracy = float64(report.Passed) / float64(report.Total)
	}
	return report, nil
}

// Runner loads a suite and a catalog and evaluates one against the other.
type Runner struct {
	suitePath string
	loader    *catalog.Loader
}

// NewRunner returns a Runner. The loader should be lenient so that a
// partially broken catalog can still be evaluated.
func NewRunner(suitePath string, loader *catalog.Loader) *Runner {
	return &Runner{suitePath: suitePath, loader: loader}
}

// Run loads the suite and the catalog and evaluates every case.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	suite, err := LoadSuite(r.suitePath)
	if err != nil {
		return nil, err
	}

	c, issues, err := r.loader.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}
	if len(issues) > 0 {
		logger.G(ctx).WithField("issues", len(issues)).Warn("catalog has unusable skill records")
	}
	if c.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	return Evaluate(ctx, suite, matcher.NewIndex(c))
}
