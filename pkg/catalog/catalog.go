// Package catalog discovers skill records on disk and parses them into an
// in-memory Catalog. A skill record is a SKILL.md file with a header block
// delimited by "---" lines that carries exactly two fields, name and
// description, followed by a free-form markdown body.
package catalog

import (
	"sort"

	"github.com/pkg/errors"
)

// RecordFileName is the file every skill directory must contain.
const RecordFileName = "SKILL.md"

// Category is one of the fixed catalog sections a skill lives under.
type Category string

// DefaultCategories lists the catalog sections in the order they are scanned.
var DefaultCategories = []Category{"agent", "arch", "backend", "core", "frontend", "infra", "perf"}

// Categories converts plain strings into Category values.
func Categories(names ...string) []Category {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		out = append(out, Category(n))
	}
	return out
}

// Record is one parsed skill. Records are built once per load and never
// mutated afterwards.
type Record struct {
	Name        string
	Category    Category
	Description string
	Body        string
	Header      *Header
	Raw         string // full text with the byte order mark removed
	Dir         string // skill directory
	Path        string // path of the SKILL.md file
}

// Catalog is the name-ordered set of records for a single run.
type Catalog struct {
	records []*Record
	byName  map[string]*Record
}

// New builds a Catalog from records. Names must be unique regardless of
// category.
func New(records []*Record) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Record, len(records))}
	for _, r := range records {
		if prev, exists := c.byName[r.Name]; exists {
			return nil, errors.Wrapf(ErrDuplicateName, "%q declared in %s and %s", r.Name, prev.Path, r.Path)
		}
		c.byName[r.Name] = r
		c.records = append(c.records, r)
	}
	sort.Slice(c.records, func(i, j int) bool {
		return c.records[i].Name < c.records[j].Name
	})
	return c, nil
}

// Records returns the records ordered by name.
func (c *Catalog) Records() []*Record {
	out := make([]*Record, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns the record with the given name.
func (c *Catalog) Get(name string) (*Record, bool) {
	r, ok := c.byName[name]
	return r, ok
}

// Names returns all record names in ascending order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.records))
	for _, r := range c.records {
		names = append(names, r.Name)
	}
	return names
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}
