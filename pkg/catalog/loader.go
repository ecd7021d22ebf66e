package catalog

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/pkg/errors"
)

// Mode controls how the loader treats records it cannot use.
type Mode int

const (
	// ModeStrict reports every unusable directory as a LoadIssue. The
	// validator loads in this mode so that nothing is silently dropped.
	ModeStrict Mode = iota
	// ModeLenient skips unusable directories and keeps going, so that
	// evaluation can run against a partially broken catalog.
	ModeLenient
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	default:
		return "unknown"
	}
}

// ParseMode converts "strict" or "lenient" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "strict", "":
		return ModeStrict, nil
	case "lenient":
		return ModeLenient, nil
	default:
		return ModeStrict, errors.Errorf("unknown loader mode %q, must be strict or lenient", s)
	}
}

// Loader discovers skill records under a root directory.
type Loader struct {
	root       string
	categories []Category
	mode       Mode
	recordFile string
}

// Option configures a Loader.
type Option func(*Loader) error

// WithCategories sets the category directories to scan.
func WithCategories(categories ...Category) Option {
	return func(l *Loader) error {
		if len(categories) == 0 {
			return errors.New("at least one category is required")
		}
		l.categories = categories
		return nil
	}
}

// WithMode selects strict or lenient loading.
func WithMode(mode Mode) Option {
	return func(l *Loader) error {
		l.mode = mode
		return nil
	}
}

// WithRecordFile overrides the record file name looked up in each skill directory.
func WithRecordFile(name string) Option {
	return func(l *Loader) error {
		if name == "" {
			return errors.New("record file name must not be empty")
		}
		l.recordFile = name
		return nil
	}
}

// NewLoader creates a Loader rooted at root. Without options it scans
// DefaultCategories in strict mode.
func NewLoader(root string, opts ...Option) (*Loader, error) {
	if root == "" {
		return nil, errors.New("catalog root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve catalog root %s", root)
	}

	l := &Loader{
		root:       abs,
		categories: DefaultCategories,
		mode:       ModeStrict,
		recordFile: RecordFileName,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Root returns the absolute catalog root.
func (l *Loader) Root() string {
	return l.root
}

// RecordFile returns the record file name looked up in each skill directory.
func (l *Loader) RecordFile() string {
	return l.recordFile
}

// Mode returns the configured loading mode.
func (l *Loader) Mode() Mode {
	return l.mode
}

// SkillDir is a candidate skill directory found under a category.
type SkillDir struct {
	Category Category
	Dir      string
}

// Load discovers and parses every skill record. In strict mode each
// unusable directory is returned as a LoadIssue; in lenient mode it is
// skipped. The returned error is reserved for failures that prevent the
// walk itself, such as an unreadable root.
func (l *Loader) Load(ctx context.Context) (*Catalog, []*LoadIssue, error) {
	log := logger.G(ctx).WithField("root", l.root).WithField("mode", l.mode.String())

	if !utils.IsDir(l.root) {
		return nil, nil, errors.Errorf("catalog root %s is not a directory", l.root)
	}

	var issues []*LoadIssue
	report := func(issue *LoadIssue) {
		if l.mode == ModeStrict {
			issues = append(issues, issue)
			return
		}
		log.WithError(issue.Err).WithField("path", issue.Path).Debug("skipping unusable skill directory")
	}

	dirs, err := l.discover(report)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("dirs", len(dirs)).Debug("discovered skill directories")

	seen := make(map[string]*Record)
	var records []*Record
	for _, d := range dirs {
		path := filepath.Join(d.Dir, l.recordFile)
		text, err := utils.ReadText(path)
		if err != nil {
			if os.IsNotExist(err) {
				err = errors.Wrapf(ErrMissingRecord, "no %s in %s", l.recordFile, d.Dir)
			} else {
				err = errors.Wrapf(err, "failed to read %s", path)
			}
			report(&LoadIssue{Category: d.Category, Dir: d.Dir, Path: path, Err: err})
			continue
		}

		record, err := ParseRecord(text)
		if err != nil {
			report(&LoadIssue{Category: d.Category, Dir: d.Dir, Path: path, Err: err})
			continue
		}
		record.Category = d.Category
		record.Dir = d.Dir
		record.Path = path

		if prev, dup := seen[record.Name]; dup {
			err := errors.Wrapf(ErrDuplicateName, "%q already declared in %s", record.Name, prev.Path)
			report(&LoadIssue{Category: d.Category, Dir: d.Dir, Path: path, Err: err})
			continue
		}
		seen[record.Name] = record
		records = append(records, record)
		log.WithField("skill", record.Name).Debug("loaded skill record")
	}

	c, err := New(records)
	if err != nil {
		return nil, issues, err
	}
	return c, issues, nil
}

// Discover lists candidate skill directories without parsing them. Missing
// category directories are returned as issues regardless of mode.
func (l *Loader) Discover() ([]SkillDir, []*LoadIssue, error) {
	var issues []*LoadIssue
	dirs, err := l.discover(func(issue *LoadIssue) {
		issues = append(issues, issue)
	})
	return dirs, issues, err
}

// discover enumerates the immediate child directories of every category
// using an explicit work queue. Symlinked skill directories are followed.
func (l *Loader) discover(report func(*LoadIssue)) ([]SkillDir, error) {
	queue := make([]SkillDir, 0, len(l.categories))
	for _, category := range l.categories {
		queue = append(queue, SkillDir{Category: category, Dir: filepath.Join(l.root, string(category))})
	}

	var found []SkillDir
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(current.Dir)
		if err != nil {
			if os.IsNotExist(err) {
				report(&LoadIssue{
					Category: current.Category,
					Dir:      current.Dir,
					Path:     current.Dir,
					Err:      errors.Wrapf(ErrMissingCategory, "category %s", current.Category),
				})
				continue
			}
			return nil, errors.Wrapf(err, "failed to read category %s", current.Category)
		}

		for _, entry := range entries {
			entryPath := filepath.Join(current.Dir, entry.Name())
			info, err := os.Stat(entryPath)
			if err != nil || !info.IsDir() {
				continue
			}
			found = append(found, SkillDir{Category: current.Category, Dir: entryPath})
		}
	}
	return found, nil
}
