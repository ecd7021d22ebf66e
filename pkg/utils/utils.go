// Package utils provides file helpers shared by the catalog loader, the
// validator and the manifest readers: BOM-aware text reads, NUL byte
// detection, an explicit-stack tree walk and extension-aware decoding of
// JSON or YAML documents.
package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const byteOrderMark = "\uFEFF"

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, byteOrderMark)
}

// ReadText reads a file as UTF-8 text with any leading byte order mark removed.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return StripBOM(string(data)), nil
}

// HasNulByte reports whether the file contains a NUL byte anywhere in its raw content.
func HasNulByte(filePath string) (bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", filePath)
	}
	return bytes.IndexByte(data, 0) >= 0, nil
}

// FileExists reports whether path exists, regardless of its type.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WalkError is a directory below the walk root that could not be read.
type WalkError struct {
	Dir string
	Err error
}

func (e *WalkError) Error() string {
	return "failed to read directory " + e.Dir + ": " + e.Err.Error()
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// WalkFiles returns every file below root, sorted. Symlinks are listed
// unless they point at a directory; symlinked directories are never
// entered. Directories for which skipDir returns true are not descended
// into. A subdirectory that cannot be read is returned as a WalkError and
// the walk goes on; only an unreadable root is a hard error. The walk uses
// an explicit stack so the depth of the tree is irrelevant.
func WalkFiles(root string, skipDir func(name string) bool) ([]string, []*WalkError, error) {
	var (
		files    []string
		walkErrs []*WalkError
	)
	stack := []string{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(current)
		if err != nil {
			if current == root {
				return nil, nil, errors.Wrapf(err, "failed to read directory %s", current)
			}
			walkErrs = append(walkErrs, &WalkError{Dir: current, Err: err})
			continue
		}

		for _, entry := range entries {
			fullPath := filepath.Join(current, entry.Name())
			switch {
			case entry.IsDir():
				if skipDir != nil && skipDir(entry.Name()) {
					continue
				}
				stack = append(stack, fullPath)
			case entry.Type()&os.ModeSymlink != 0:
				if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
					continue
				}
				files = append(files, fullPath)
			case entry.Type().IsRegular():
				files = append(files, fullPath)
			}
		}
	}

	sort.Strings(files)
	sort.Slice(walkErrs, func(i, j int) bool {
		return walkErrs[i].Dir < walkErrs[j].Dir
	})
	return files, walkErrs, nil
}

// DecodeFile decodes a JSON or YAML document into v. Files ending in .json
// are decoded as JSON; everything else is decoded as YAML.
func DecodeFile(path string, v interface{}) error {
	text, err := ReadText(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal([]byte(text), v); err != nil {
			return errors.Wrapf(err, "failed to decode %s", path)
		}
		return nil
	}

	if err := yaml.Unmarshal([]byte(text), v); err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	return nil
}

// RelPath returns path relative to base using forward slashes, or path
// unchanged when it cannot be made relative.
func RelPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
