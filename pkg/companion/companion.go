// Package companion derives, renders and parses the agent metadata file
// that accompanies every skill (agents/openai.yaml).
package companion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Alicoder001/agent-skills/pkg/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the directory, relative to a skill, holding companion files.
	Dir = "agents"
	// FileName is the companion metadata file name.
	FileName = "openai.yaml"

	// SchemaVersion is the only metadata version written.
	SchemaVersion = 1

	shortDescriptionMax = 140
	shortDescriptionCut = 137
)

// RequiredKeys lists the keys every companion file must declare.
var RequiredKeys = []string{"version", "display_name", "short_description", "default_prompt"}

// Path returns the companion file path of the skill in dir.
func Path(skillDir string) string {
	return filepath.Join(skillDir, Dir, FileName)
}

var nameSeparators = regexp.MustCompile(`[-_ ]+`)

// DisplayName turns a skill name such as "api-patterns" into "Api Patterns".
// Only the first character of each part is changed.
func DisplayName(name string) string {
	var parts []string
	for _, part := range nameSeparators.Split(name, -1) {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		parts = append(parts, string(unicode.ToUpper(r))+part[size:])
	}
	return strings.Join(parts, " ")
}

// Metadata is the content of a companion file.
type Metadata struct {
	Version          int    `yaml:"version"`
	DisplayName      string `yaml:"display_name"`
	ShortDescription string `yaml:"short_description"`
	DefaultPrompt    string `yaml:"default_prompt"`
}

// Derive computes the metadata a record's companion file should hold.
func Derive(r *catalog.Record) Metadata {
	display := DisplayName(r.Name)
	description := strings.Join(strings.Fields(r.Description), " ")

	short := description
	if utf8.RuneCountInString(short) > shortDescriptionMax {
		short = string([]rune(short)[:shortDescriptionCut]) + "..."
	}

	prompt := fmt.Sprintf("Use this skill when working on %s.", display)
	if description != "" {
		prompt = "Use this skill when: " + description
	}

	return Metadata{
		Version:          SchemaVersion,
		DisplayName:      display,
		ShortDescription: short,
		DefaultPrompt:    prompt,
	}
}

// Render writes m in the canonical layout: one key per line, string
// values double-quoted.
func Render(m Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "version: %d\n", m.Version)
	fmt.Fprintf(&b, "display_name: %s\n", quote(m.DisplayName))
	fmt.Fprintf(&b, "short_description: %s\n", quote(m.ShortDescription))
	fmt.Fprintf(&b, "default_prompt: %s\n", quote(m.DefaultPrompt))
	return b.String()
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Fields is the flat key/value view of a companion file. A key that is
// present with an empty value maps to "".
type Fields map[string]string

// Has reports whether key is declared.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

var fieldLine = regexp.MustCompile(`^([A-Za-z0-9_-]+):\s*(.*)$`)

// Parse reads the top-level scalar keys of a companion file. Documents
// that are not valid YAML fall back to a line scan that accepts
// "key: value" lines and strips one level of matching quotes.
func Parse(text string) Fields {
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(text), &doc); err == nil {
		fields := make(Fields, len(doc))
		for k, v := range doc {
			if v == nil {
				fields[k] = ""
				continue
			}
			fields[k] = fmt.Sprint(v)
		}
		return fields
	}

	fields := make(Fields)
	for _, line := range catalog.SplitLines(text) {
		m := fieldLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[2])
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		fields[m[1]] = value
	}
	return fields
}
