// Package evals runs trigger evaluation suites: prompts paired with the
// skill that should answer them, scored against the catalog with the
// lexical matcher.
package evals

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

const (
	// DefaultPassThreshold is the accuracy a suite must reach when it does
	// not set its own.
	DefaultPassThreshold = 0.85
	// DefaultNoneScoreThreshold is the highest winning score a no-match
	// case tolerates when the suite does not set its own.
	DefaultNoneScoreThreshold = 4.0

	// NoneSentinel is the textual spelling of "no skill should match".
	NoneSentinel = "none"
)

var (
	ErrSuiteNotFound   = errors.New("eval suite not found")
	ErrSuiteUnparsable = errors.New("eval suite is not valid")
	ErrEmptyCatalog    = errors.New("no skills loaded")
)

// Case is one prompt with its expected skill.
type Case struct {
	ID     string `json:"id" yaml:"id" jsonschema:"description=Unique case identifier"`
	Prompt string `json:"prompt" yaml:"prompt" jsonschema:"description=Free-text user request"`
	// Expected is nil, empty or "none" when no skill should match.
	Expected *string `json:"expected" yaml:"expected" jsonschema:"oneof_type=string;null,description=Name of the skill that should win or null for no match"`
}

// ExpectsNone reports whether the case expects no skill to match.
func (c Case) ExpectsNone() bool {
	if c.Expected == nil {
		return true
	}
	v := strings.TrimSpace(*c.Expected)
	return v == "" || strings.EqualFold(v, NoneSentinel)
}

// ExpectedName returns the expected skill name, or "" for a no-match case.
func (c Case) ExpectedName() string {
	if c.ExpectsNone() {
		return ""
	}
	return strings.TrimSpace(*c.Expected)
}

// Suite is an evaluation suite file.
type Suite struct {
	PassThreshold      *float64 `json:"pass_threshold,omitempty" yaml:"pass_threshold,omitempty" jsonschema:"minimum=0,maximum=1,description=Accuracy required to pass (default 0.85)"`
	NoneScoreThreshold *float64 `json:"none_score_threshold,omitempty" yaml:"none_score_threshold,omitempty" jsonschema:"minimum=0,description=Highest score a no-match case tolerates (default 4)"`
	Cases              []Case   `json:"cases" yaml:"cases" jsonschema:"description=Evaluation cases"`
}

// Threshold returns the pass threshold, defaulted.
func (s *Suite) Threshold() float64 {
	if s.PassThreshold == nil {
		return DefaultPassThreshold
	}
	return *s.PassThreshold
}

// NoneThreshold returns the no-match score threshold, defaulted.
func (s *Suite) NoneThreshold() float64 {
	if s.NoneScoreThreshold == nil {
		return DefaultNoneScoreThreshold
	}
	return *s.NoneScoreThreshold
}

// LoadSuite reads a suite from a JSON or YAML file.
func LoadSuite(path string) (*Suite, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrSuiteNotFound, "eval file not found: %s", path)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	s := &Suite{}
	if err := utils.DecodeFile(path, s); err != nil {
		return nil, errors.Wrapf(ErrSuiteUnparsable, "%v", err)
	}
	return s, nil
}

// Schema returns the JSON Schema of the suite file format.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(Suite{})
	schema.Title = "Trigger evaluation suite"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode schema")
	}
	return data, nil
}
