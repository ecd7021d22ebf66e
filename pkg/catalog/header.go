package catalog

import (
	"regexp"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
)

const headerDelimiter = "---"

// RequiredFields are the header keys every record must declare. They are
// also the only keys a header may carry.
var RequiredFields = []string{"name", "description"}

var headerLine = regexp.MustCompile(`^([A-Za-z0-9_-]+):\s*(.*)$`)

// Header is the parsed key/value preamble of a record. Keys keep the order
// of their first appearance.
type Header struct {
	keys   []string
	values map[string]string
}

// Keys returns the header keys in declaration order.
func (h *Header) Keys() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Get returns the trimmed value for key.
func (h *Header) Get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Check reports missing required fields and unsupported extra fields. Both
// problems are returned when both are present; an empty value counts as
// missing.
func (h *Header) Check() []error {
	var errs []error

	var missing []string
	for _, key := range RequiredFields {
		if v, ok := h.values[key]; !ok || v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, errors.Wrapf(ErrMissingRequiredField, "header must include name and description (missing %s)", strings.Join(missing, ", ")))
	}

	if extra := h.Unsupported(); len(extra) > 0 {
		errs = append(errs, errors.Wrapf(ErrUnsupportedField, "unsupported header keys %s", strings.Join(extra, ", ")))
	}

	return errs
}

// Unsupported returns keys other than the required ones, in declaration order.
func (h *Header) Unsupported() []string {
	var extra []string
	for _, key := range h.keys {
		if !isRequired(key) {
			extra = append(extra, key)
		}
	}
	return extra
}

func isRequired(key string) bool {
	for _, k := range RequiredFields {
		if k == key {
			return true
		}
	}
	return false
}

// SplitLines splits text on LF or CRLF line endings. A trailing newline
// yields a final empty line.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// ParseHeader recognizes the header block at the very start of text and
// returns it together with the remaining body. The first line must be
// exactly "---" and a later line must consist solely of "---".
func ParseHeader(text string) (*Header, string, error) {
	lines := SplitLines(utils.StripBOM(text))
	if len(lines) < 2 || lines[0] != headerDelimiter {
		return nil, "", errors.Wrap(ErrMalformedHeader, "missing opening separator")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == headerDelimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, "", errors.Wrap(ErrMalformedHeader, "missing closing separator")
	}

	h := &Header{values: make(map[string]string)}
	for _, line := range lines[1:end] {
		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key, value := m[1], strings.TrimSpace(m[2])
		if _, seen := h.values[key]; !seen {
			h.keys = append(h.keys, key)
		}
		h.values[key] = value
	}

	body := strings.Join(lines[end+1:], "\n")
	return h, body, nil
}

// ParseRecord parses text into a Record without location information. It
// fails with ErrMalformedHeader, then ErrMissingRequiredField, then
// ErrUnsupportedField, in that order of precedence.
func ParseRecord(text string) (*Record, error) {
	header, body, err := ParseHeader(text)
	if err != nil {
		return nil, err
	}
	if errs := header.Check(); len(errs) > 0 {
		return nil, errs[0]
	}

	name, _ := header.Get("name")
	description, _ := header.Get("description")
	return &Record{
		Name:        name,
		Description: description,
		Body:        body,
		Header:      header,
		Raw:         utils.StripBOM(text),
	}, nil
}
