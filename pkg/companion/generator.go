package companion

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/aymanbagabas/go-udiff"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Status describes what generation did, or would do, to one file.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
)

// Change is the generation result for one skill.
type Change struct {
	Skill  string
	Path   string
	Status Status
	// Diff is a unified diff from the current to the derived content. It
	// is empty for unchanged files.
	Diff string
}

// Stale reports whether the file on disk differs from the derived content.
func (c Change) Stale() bool {
	return c.Status != StatusUnchanged
}

// Generator writes companion files for every record of a catalog.
type Generator struct {
	root  string
	check bool
}

// NewGenerator returns a Generator. root is used to label diffs with
// catalog-relative paths. In check mode nothing is written.
func NewGenerator(root string, check bool) *Generator {
	return &Generator{root: root, check: check}
}

// Generate derives the companion file of every record and writes the ones
// that differ, or only reports them in check mode.
func (g *Generator) Generate(ctx context.Context, c *catalog.Catalog) ([]Change, error) {
	log := logger.G(ctx)

	changes := make([]Change, 0, c.Len())
	for _, r := range c.Records() {
		if err := ctx.Err(); err != nil {
			return changes, err
		}

		path := Path(r.Dir)
		rel := utils.RelPath(g.root, path)
		want := Render(Derive(r))

		change := Change{Skill: r.Name, Path: path, Status: StatusUnchanged}
		current, err := utils.ReadText(path)
		switch {
		case os.IsNotExist(err):
			change.Status = StatusCreated
		case err != nil:
			return changes, errors.Wrapf(err, "failed to read %s", rel)
		case current != want:
			change.Status = StatusUpdated
		}

		if change.Stale() {
			change.Diff = udiff.Unified("a/"+rel, "b/"+rel, current, want)
			if !g.check {
				if err := write(path, want); err != nil {
					return changes, err
				}
			}
		}

		log.WithField("skill", r.Name).WithField("status", change.Status).Debug("companion metadata")
		changes = append(changes, change)
	}
	return changes, nil
}

func write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	// concurrent generate runs serialize on the file lock
	if err := lockedfile.Write(path, strings.NewReader(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// StaleChanges filters changes down to the ones that differ from disk.
func StaleChanges(changes []Change) []Change {
	var stale []Change
	for _, c := range changes {
		if c.Stale() {
			stale = append(stale, c)
		}
	}
	return stale
}
