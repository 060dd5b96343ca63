// Package frontmatter separates YAML metadata (`---` delimited) from page
// Markdown. Page metadata feeds the HTML shell (title) and is exposed to
// authors the way documentation generators conventionally do.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

var delimiter = []byte("---\n")

// Split separates YAML frontmatter from the Markdown body and parses it.
//
// If the document does not start with a frontmatter delimiter, meta is
// empty and body is the full input.
func Split(content []byte) (meta map[string]any, body []byte, err error) {
	if !bytes.HasPrefix(content, delimiter) {
		return map[string]any{}, content, nil
	}

	rest := content[len(delimiter):]

	// An immediately-closed block is empty frontmatter.
	if bytes.HasPrefix(rest, delimiter) {
		return map[string]any{}, rest[len(delimiter):], nil
	}

	closeSeq := []byte("\n---\n")
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, ErrMissingClosingDelimiter
	}

	raw := rest[:idx+1]
	body = rest[idx+len(closeSeq):]

	var fields map[string]any
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, body, nil
}

// Title returns the metadata title as a string, or "" when absent.
func Title(meta map[string]any) string {
	v, ok := meta["title"]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
