// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize strips page furniture from text extracted out of a
// benchmark PDF.
package normalize

import (
	"regexp"
	"strings"
)

// pagePattern matches page-number markers such as "Page 42" or "page 7".
var pagePattern = regexp.MustCompile(`(?i)\bPage\s+\d+\b`)

// CleanLine removes every "Page <n>" marker from line. All other text,
// including surrounding whitespace, is left as it was.
func CleanLine(line string) string {
	return pagePattern.ReplaceAllString(line, "")
}

// Lines splits text into lines and cleans each one. Lines are returned
// untrimmed so callers decide how to treat indentation.
func Lines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = CleanLine(l)
	}
	return out
}
