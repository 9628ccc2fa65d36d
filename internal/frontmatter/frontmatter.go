// Package frontmatter splits a content file into its structured header block
// and free-text body. The header is returned as an untyped key-value map; the
// schema validator owns all shape checks, so nothing here assumes a variant
// before the type tag is read.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

var (
	// ErrNoFrontMatter means the text does not start with a front-matter block.
	ErrNoFrontMatter = errors.New("no front-matter block")
	// ErrUnterminated means the opening delimiter has no closing delimiter.
	ErrUnterminated = errors.New("unterminated front-matter block")
)

// Parse splits text into front-matter and body. The header must start on the
// first line with the delimiter and end with a line holding only the
// delimiter. The returned map is nil only on error.
func Parse(text string) (map[string]any, string, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	if !strings.HasPrefix(normalized, delimiter+"\n") {
		return nil, "", ErrNoFrontMatter
	}

	rest := normalized[len(delimiter)+1:]
	end := findClosingDelimiter(rest)
	if end < 0 {
		return nil, "", ErrUnterminated
	}

	header := rest[:end]
	body := rest[end:]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	raw := make(map[string]any)
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, "", fmt.Errorf("malformed front-matter: %w", err)
	}

	return raw, body, nil
}

// findClosingDelimiter returns the offset of the line consisting solely of
// the delimiter, or -1.
func findClosingDelimiter(s string) int {
	if strings.HasPrefix(s, delimiter) &&
		(len(s) == len(delimiter) || s[len(delimiter)] == '\n') {
		return 0
	}
	offset := 0
	for {
		i := strings.Index(s[offset:], "\n"+delimiter)
		if i < 0 {
			return -1
		}
		start := offset + i + 1
		lineEnd := start + len(delimiter)
		if lineEnd == len(s) || s[lineEnd] == '\n' {
			return start
		}
		offset = start
	}
}
