package validator

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Kind classifies an issue.
type Kind string

const (
	KindMalformedHeader          Kind = "malformed-header"
	KindMissingRequiredField     Kind = "missing-required-field"
	KindUnsupportedField         Kind = "unsupported-field"
	KindNameMismatch             Kind = "name-mismatch"
	KindDuplicateName            Kind = "duplicate-name"
	KindBrokenLocalLink          Kind = "broken-local-link"
	KindMissingCompanionMetadata Kind = "missing-companion-metadata"
	KindCompanionMismatch        Kind = "companion-mismatch"
	KindCrossSourceDrift         Kind = "cross-source-drift"
	KindEncodingViolation        Kind = "encoding-violation"
	KindMissingRecord            Kind = "missing-record"
	KindMissingCategory          Kind = "missing-category"
	KindBudget                   Kind = "budget"
	KindReferences               Kind = "references"
)

// Severity tells errors from warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding of a validation run.
type Issue struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) Error() string {
	return i.Message
}

// Result accumulates the findings of a validation run. Checks append to
// it and never stop the run.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Errorf records an error.
func (r *Result) Errorf(kind Kind, path, format string, args ...interface{}) {
	r.Errors = append(r.Errors, Issue{
		Kind:     kind,
		Severity: SeverityError,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning.
func (r *Result) Warnf(kind Kind, path, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Issue{
		Kind:     kind,
		Severity: SeverityWarning,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// OK reports whether the run found no errors. Warnings do not count.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns the errors as a single multierror, or nil when there are none.
// The message lists every error on its own line.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, issue := range r.Errors {
		merr = multierror.Append(merr, issue)
	}
	if merr != nil {
		merr.ErrorFormat = formatIssues
	}
	return merr.ErrorOrNil()
}

func formatIssues(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, "- "+err.Error())
	}
	return fmt.Sprintf("%d validation error(s):\n%s", len(errs), strings.Join(lines, "\n"))
}

// Count returns the number of issues of the given kind, errors and
// warnings together.
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, list := range [][]Issue{r.Errors, r.Warnings} {
		for _, issue := range list {
			if issue.Kind == kind {
				n++
			}
		}
	}
	return n
}

// Messages returns the messages of issues in order.
func Messages(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}
