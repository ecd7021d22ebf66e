// Package markdown extracts the pieces of skill documents the validator
// cares about: link destinations and the first column of tables below a
// given heading. Documents are parsed with goldmark so code blocks and
// inline code never contribute links.
package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(
	goldmark.WithExtensions(meta.Meta, extension.Table),
)

// Parse parses src into a goldmark document. A leading front matter block
// is consumed and does not appear in the tree.
func Parse(src []byte) ast.Node {
	pctx := parser.NewContext()
	return md.Parser().Parse(text.NewReader(src), parser.WithContext(pctx))
}

// FrontMatter returns the YAML front matter of src, or nil when there is
// none. Values that are not valid YAML yield an error.
func FrontMatter(src []byte) (map[string]interface{}, error) {
	pctx := parser.NewContext()
	md.Parser().Parse(text.NewReader(src), parser.WithContext(pctx))
	return meta.TryGet(pctx)
}

// Links returns the destinations of every inline link and image in src,
// in document order. Reference-style links are reported with their
// resolved destination.
func Links(src []byte) []string {
	doc := Parse(src)

	var links []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			links = append(links, string(node.Destination))
		case *ast.Image:
			links = append(links, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})
	return links
}

var tableToken = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// SectionTableColumn finds the first heading with the given level whose
// text starts with title, so "Agent Skills" also selects "Agent Skills
// (core)". It returns the first-column values of every table in the
// section, including tables nested in block quotes or lists, up to the
// next heading of a higher level (a smaller level number). Header rows
// and the literal "skill" column title are excluded; only cells that look
// like a skill name are kept. The second return value is false when the
// heading does not exist.
func SectionTableColumn(src []byte, level int, title string) ([]string, bool) {
	doc := Parse(src)

	var names []string
	inSection := false
	found := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if inSection && h.Level < level {
				break
			}
			if !found && h.Level == level && strings.HasPrefix(strings.TrimSpace(plainText(h, src)), title) {
				inSection = true
				found = true
			}
			continue
		}
		if !inSection {
			continue
		}

		_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			table, ok := c.(*east.Table)
			if !ok {
				return ast.WalkContinue, nil
			}
			names = append(names, firstColumn(table, src)...)
			return ast.WalkSkipChildren, nil
		})
	}
	return names, found
}

func firstColumn(table *east.Table, src []byte) []string {
	var names []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		if _, header := row.(*east.TableHeader); header {
			continue
		}
		cell := row.FirstChild()
		if cell == nil {
			continue
		}
		value := strings.TrimSpace(plainText(cell, src))
		if value == "" || strings.EqualFold(value, "skill") || !tableToken.MatchString(value) {
			continue
		}
		names = append(names, value)
	}
	return names
}

// plainText concatenates the text content below n.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
