// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"strings"

	"github.com/pdiddy/cisconv/internal/normalize"
)

// DefaultTitle is used when the first page yields no title text.
const DefaultTitle = "CIS Benchmark"

// TitleVersion reads the benchmark title and version from the text of the
// document's first page. Lines up to the version line form the title; the
// version line is the first one starting with "v" (any case) that contains
// a hyphen, e.g. "v3.0.0 - 06-28-2024".
func TitleVersion(firstPage string) (title, version string) {
	var parts []string
	for _, line := range normalize.Lines(firstPage) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "v") && strings.Contains(line, "-") {
			version = line
			break
		}
		if line != "" {
			parts = append(parts, line)
		}
	}

	title = strings.Join(parts, " ")
	if title == "" {
		title = DefaultTitle
	}
	return title, version
}
