// Package validator checks a skill catalog for structural problems, size
// budget overruns, broken local links, missing companion metadata, drift
// between the documents that list mandatory skills, and binary content.
// Every check appends to a shared Result so that a single run reports all
// problems at once.
package validator

import (
	"context"
	"path/filepath"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Validator runs every catalog check.
type Validator struct {
	cfg    Config
	loader *catalog.Loader
	ignore []glob.Glob
}

// New prepares a Validator for cfg.
func New(cfg Config) (*Validator, error) {
	if cfg.RecordFile == "" {
		cfg.RecordFile = catalog.RecordFileName
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = catalog.DefaultCategories
	}

	loader, err := catalog.NewLoader(cfg.Root,
		catalog.WithCategories(cfg.Categories...),
		catalog.WithRecordFile(cfg.RecordFile),
		catalog.WithMode(catalog.ModeStrict),
	)
	if err != nil {
		return nil, err
	}
	cfg.Root = loader.Root()

	ignore := make([]glob.Glob, 0, len(cfg.IgnoreDirs))
	for _, pattern := range cfg.IgnoreDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ignore pattern %q", pattern)
		}
		ignore = append(ignore, g)
	}

	return &Validator{cfg: cfg, loader: loader, ignore: ignore}, nil
}

// Run validates the catalog. Failures that prevent a check from running at
// all, such as a missing root, are reported as issues as well.
func (v *Validator) Run(ctx context.Context) *Result {
	log := logger.G(ctx).WithField("root", v.cfg.Root)
	res := &Result{}

	if !utils.IsDir(v.cfg.Root) {
		res.Errorf(KindMissingCategory, v.cfg.Root, "Catalog root is not a directory: %s", v.cfg.Root)
		return res
	}

	log.Debug("checking skill records")
	v.checkSkills(ctx, res)
	if ctx.Err() != nil {
		return res
	}

	log.Debug("checking cross-source drift")
	v.checkDrift(ctx, res)

	log.Debug("checking encoding")
	v.checkEncoding(ctx, res)

	log.WithField("errors", len(res.Errors)).WithField("warnings", len(res.Warnings)).Info("validation finished")
	return res
}

func (v *Validator) rel(path string) string {
	return utils.RelPath(v.cfg.Root, path)
}

func (v *Validator) abs(rel string) string {
	return filepath.Join(v.cfg.Root, filepath.FromSlash(rel))
}

// ignored reports whether the encoding scan skips a directory name.
func (v *Validator) ignored(name string) bool {
	for _, g := range v.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}
