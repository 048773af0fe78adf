// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cisconv/pkg/types"
)

// lookahead is how many lines after a heading may hold the
// "Profile Applicability:" header for the heading to count.
const lookahead = 10

var (
	// headingPattern matches a dotted number of two or more segments, an
	// optional parenthesized tag, and the rest of the line as title text.
	headingPattern = regexp.MustCompile(`^(\d+\.\d+(?:\.\d+)*)\s*(\((?:L\d+|Automated|Manual)\))?\s*(.*)`)

	// numberPattern extracts the leading dotted number from assembled heading text.
	numberPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)`)
)

// heading is a line that looks like a recommendation heading.
type heading struct {
	number string
	tag    string
	title  string
}

// matchHeading reports whether line (already trimmed) is heading syntax.
func matchHeading(line string) (heading, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return heading{}, false
	}
	return heading{number: m[1], tag: m[2], title: m[3]}, true
}

// matchSection returns the first section whose label prefixes line.
func matchSection(line string) (types.Section, bool) {
	for _, s := range types.Sections {
		if strings.HasPrefix(line, s.Label()) {
			return s, true
		}
	}
	return "", false
}

// isBoundary reports whether line ends a title continuation or a section body.
func isBoundary(line string) bool {
	if _, ok := matchSection(line); ok {
		return true
	}
	return headingPattern.MatchString(line)
}

// hasProfileApplicability reports whether any of the lookahead lines after
// idx contain the Profile Applicability header.
func hasProfileApplicability(lines []string, idx int) bool {
	label := types.SectionProfileApplicability.Label()
	end := min(idx+lookahead, len(lines)-1)
	for i := idx + 1; i <= end; i++ {
		if strings.Contains(lines[i], label) {
			return true
		}
	}
	return false
}

// classify decides whether assembled heading text names a genuine
// recommendation: it must carry an automation tag and start with a number
// of at least two dotted segments.
func classify(text string) (types.Assessment, bool) {
	var assessment types.Assessment
	for _, a := range types.Assessments {
		if strings.Contains(text, a.Tag()) {
			assessment = a
			break
		}
	}
	if assessment == "" {
		return "", false
	}

	m := numberPattern.FindString(strings.TrimSpace(text))
	if m == "" || len(strings.Split(m, ".")) < 2 {
		return "", false
	}
	return assessment, true
}

// isAssessmentTag reports whether tag is "(Automated)" or "(Manual)".
func isAssessmentTag(tag string) bool {
	for _, a := range types.Assessments {
		if tag == a.Tag() {
			return true
		}
	}
	return false
}
