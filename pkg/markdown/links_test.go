package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"references/guide.md", "references/guide.md"},
		{"<references/guide.md>", "references/guide.md"},
		{"guide.md \"Title\"", "guide.md"},
		{"guide.md#section", "guide.md"},
		{"guide.md?raw=1#x", "guide.md"},
		{"#only-fragment", ""},
		{"  spaced.md  ", "spaced.md"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTarget(tt.raw))
		})
	}
}

func TestIsExternal(t *testing.T) {
	for _, link := range []string{"http://a", "HTTPS://b", "mailto:x@y", "tel:123", "#top"} {
		assert.True(t, IsExternal(link), link)
	}
	for _, link := range []string{"docs/a.md", "./a.md", "../b.md", "ftp-notes.md"} {
		assert.False(t, IsExternal(link), link)
	}
}

func TestLocalTargets(t *testing.T) {
	src := "[a](https://x.io) [b](#top) [c](docs/c.md#part) ![d](img/d.png)\n"
	assert.Equal(t, []Target{
		{Raw: "docs/c.md#part", Path: "docs/c.md"},
		{Raw: "img/d.png", Path: "img/d.png"},
	}, LocalTargets([]byte(src)))
}
