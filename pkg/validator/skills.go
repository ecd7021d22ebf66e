package validator

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"github.com/Alicoder001/agent-skills/pkg/companion"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/markdown"
	"github.com/Alicoder001/agent-skills/pkg/utils"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

const referencesDir = "references"

var referencesMention = regexp.MustCompile(`(?i)references/`)

func (v *Validator) checkSkills(ctx context.Context, res *Result) {
	dirs, issues, err := v.loader.Discover()
	if err != nil {
		res.Errorf(KindMissingCategory, v.cfg.Root, "Unable to scan catalog: %v", err)
		return
	}
	for _, issue := range issues {
		res.Errorf(KindMissingCategory, v.rel(issue.Dir), "Missing skill category directory: %s", issue.Category)
	}

	declared := make(map[string]string)
	for _, d := range dirs {
		if ctx.Err() != nil {
			return
		}
		v.checkSkill(ctx, res, d, declared)
	}
}

func (v *Validator) checkSkill(ctx context.Context, res *Result, d catalog.SkillDir, declared map[string]string) {
	recordPath := filepath.Join(d.Dir, v.cfg.RecordFile)
	rel := v.rel(recordPath)
	logger.G(ctx).WithField("skill", v.rel(d.Dir)).Debug("checking skill")

	if !utils.FileExists(recordPath) {
		res.Errorf(KindMissingRecord, v.rel(d.Dir), "Missing %s: %s", v.cfg.RecordFile, v.rel(d.Dir))
		return
	}
	text, err := utils.ReadText(recordPath)
	if err != nil {
		res.Errorf(KindMissingRecord, rel, "Unable to read %s: %v", rel, err)
		return
	}

	lines := len(catalog.SplitLines(text))
	words := len(strings.Fields(text))
	v.checkBudget(res, rel, lines, words)

	header, _, err := catalog.ParseHeader(text)
	if err != nil {
		res.Errorf(KindMalformedHeader, rel, "Malformed frontmatter in %s: %v", rel, err)
		return
	}
	for _, e := range header.Check() {
		kind := KindUnsupportedField
		if errors.Is(e, catalog.ErrMissingRequiredField) {
			kind = KindMissingRequiredField
		}
		res.Errorf(kind, rel, "Invalid frontmatter in %s: %v", rel, e)
	}
	// the line-based header is accepted, but tools that read it as YAML
	// (values with ": ", leading quotes, tabs) would not
	if _, err := markdown.FrontMatter([]byte(text)); err != nil {
		res.Warnf(KindMalformedHeader, rel, "Frontmatter in %s is not valid YAML: %v", rel, err)
	}

	name, ok := header.Get("name")
	if !ok {
		return
	}
	dirName := filepath.Base(d.Dir)
	if name != dirName {
		res.Errorf(KindNameMismatch, rel, "Skill name mismatch in %s: expected %q, got %q", rel, dirName, name)
	}
	if prev, dup := declared[name]; dup {
		res.Errorf(KindDuplicateName, rel, "Duplicate skill name %q in %s, already declared in %s", name, rel, prev)
	} else {
		declared[name] = rel
	}

	v.checkLinks(res, recordPath, text)
	v.checkCompanion(res, d.Dir, name)
	v.checkReferences(res, d.Dir, rel, text, lines, words)
}

// checkBudget compares the record size with the budget. A hard limit
// overrun is reported instead of, not in addition to, the soft one.
func (v *Validator) checkBudget(res *Result, rel string, lines, words int) {
	b := v.cfg.Budget
	file := v.cfg.RecordFile

	if lines > b.HardLines {
		res.Errorf(KindBudget, rel, "%s exceeds hard line limit (%d): %s (%d)", file, b.HardLines, rel, lines)
	} else if lines > b.SoftLines {
		res.Warnf(KindBudget, rel, "%s exceeds soft line budget (%d): %s (%d)", file, b.SoftLines, rel, lines)
	}

	if words > b.HardWords {
		res.Errorf(KindBudget, rel, "%s exceeds hard word limit (%d): %s (%d)", file, b.HardWords, rel, words)
	} else if words > b.SoftWords {
		res.Warnf(KindBudget, rel, "%s exceeds soft word budget (%d): %s (%d)", file, b.SoftWords, rel, words)
	}
}

// checkLinks reports local link targets of a markdown file that do not
// exist, resolved against the file's directory.
func (v *Validator) checkLinks(res *Result, path, text string) {
	rel := v.rel(path)
	for _, target := range markdown.LocalTargets([]byte(text)) {
		resolved := filepath.Join(filepath.Dir(path), filepath.FromSlash(target.Path))
		if !utils.FileExists(resolved) {
			res.Errorf(KindBrokenLocalLink, rel, "Broken local markdown link in %s: %s", rel, target.Raw)
		}
	}
}

func (v *Validator) checkCompanion(res *Result, skillDir, name string) {
	path := companion.Path(skillDir)
	if !utils.FileExists(path) {
		res.Errorf(KindMissingCompanionMetadata, v.rel(skillDir), "Missing %s/%s: %s", companion.Dir, companion.FileName, v.rel(skillDir))
		return
	}

	rel := v.rel(path)
	text, err := utils.ReadText(path)
	if err != nil {
		res.Errorf(KindMissingCompanionMetadata, rel, "Unable to read %s: %v", rel, err)
		return
	}

	fields := companion.Parse(text)
	for _, key := range companion.RequiredKeys {
		if !fields.Has(key) {
			res.Errorf(KindMissingCompanionMetadata, rel, "Missing key %q in %s", key, rel)
		}
	}

	expected := companion.DisplayName(name)
	if display := fields["display_name"]; display != "" && display != expected {
		res.Warnf(KindCompanionMismatch, rel, "display_name mismatch in %s: expected %q, got %q", rel, expected, display)
	}
	if short := fields["short_description"]; short != "" && utf8.RuneCountInString(short) > v.cfg.ShortDescriptionLimit {
		res.Warnf(KindCompanionMismatch, rel, "short_description too long (>%d) in %s", v.cfg.ShortDescriptionLimit, rel)
	}
}

func (v *Validator) checkReferences(res *Result, skillDir, rel, text string, lines, words int) {
	refDir := filepath.Join(skillDir, referencesDir)
	if !utils.IsDir(refDir) {
		if lines > v.cfg.Budget.SoftLines || words > v.cfg.Budget.SoftWords {
			res.Warnf(KindReferences, rel, "Large skill without references directory: %s", rel)
		}
		return
	}

	if !referencesMention.MatchString(text) {
		res.Warnf(KindReferences, rel, "Skill has references directory but no references mention in %s: %s", v.cfg.RecordFile, rel)
	}

	files, err := doublestar.Glob(os.DirFS(refDir), "**/*.[mM][dD]", doublestar.WithFilesOnly())
	if err != nil {
		res.Errorf(KindReferences, v.rel(refDir), "Unable to list %s: %v", v.rel(refDir), err)
		return
	}
	if len(files) == 0 {
		res.Warnf(KindReferences, v.rel(refDir), "Empty references directory: %s", v.rel(refDir))
		return
	}

	for _, f := range files {
		path := filepath.Join(refDir, filepath.FromSlash(f))
		content, err := utils.ReadText(path)
		if err != nil {
			res.Errorf(KindBrokenLocalLink, v.rel(path), "Unable to read %s: %v", v.rel(path), err)
			continue
		}
		v.checkLinks(res, path, content)
	}
}
