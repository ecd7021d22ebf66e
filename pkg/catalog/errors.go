package catalog

import "github.com/pkg/errors"

// Sentinel errors returned (wrapped) by the parser and the loader. Use
// errors.Is to classify a failure.
var (
	ErrMalformedHeader      = errors.New("malformed header")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnsupportedField     = errors.New("unsupported field")
	ErrMissingRecord        = errors.New("missing record file")
	ErrMissingCategory      = errors.New("missing category directory")
	ErrDuplicateName        = errors.New("duplicate skill name")
)

// LoadIssue describes a skill directory the loader could not turn into a
// Record.
type LoadIssue struct {
	Category Category
	Dir      string
	Path     string
	Err      error
}

func (i *LoadIssue) Error() string {
	return i.Err.Error()
}

func (i *LoadIssue) Unwrap() error {
	return i.Err
}
