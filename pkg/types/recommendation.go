// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cisconv pipeline:
// parsed recommendations, category groupings, documents, and stage
// configuration.
package types

import "strings"

// Section names one of the fixed free-text fields attached to a
// recommendation.
type Section string

const (
	SectionProfileApplicability  Section = "Profile Applicability"
	SectionDescription           Section = "Description"
	SectionRationale             Section = "Rationale"
	SectionImpact                Section = "Impact"
	SectionAudit                 Section = "Audit"
	SectionRemediation           Section = "Remediation"
	SectionDefaultValue          Section = "Default Value"
	SectionReferences            Section = "References"
	SectionAdditionalInformation Section = "Additional Information"
)

// Sections lists every section in document order. The order matters: label
// matching takes the first section whose label prefixes a line.
var Sections = []Section{
	SectionProfileApplicability,
	SectionDescription,
	SectionRationale,
	SectionImpact,
	SectionAudit,
	SectionRemediation,
	SectionDefaultValue,
	SectionReferences,
	SectionAdditionalInformation,
}

// Label returns the header text that introduces the section in a
// benchmark document (the section name followed by a colon).
func (s Section) Label() string {
	return string(s) + ":"
}

// Assessment is the automation classification carried by a genuine
// recommendation heading.
type Assessment string

const (
	AssessmentAutomated Assessment = "Automated"
	AssessmentManual    Assessment = "Manual"
)

// Tag returns the parenthesized marker as it appears in heading text.
func (a Assessment) Tag() string {
	return "(" + string(a) + ")"
}

// Assessments lists the recognized automation classifications.
var Assessments = []Assessment{AssessmentAutomated, AssessmentManual}

// Recommendation is one numbered control parsed from a benchmark document.
type Recommendation struct {
	// Number is the dotted identifier (e.g. "1.2.2").
	Number string `json:"number" yaml:"number"`

	// Level is the optional parenthesized tag adjacent to the number
	// (e.g. "(L1)"). Empty when the heading carries none.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Title is the heading text, joined across continuation lines.
	Title string `json:"title" yaml:"title"`

	// Assessment records which automation tag the heading carried.
	Assessment Assessment `json:"assessment" yaml:"assessment"`

	// Sections maps each section found to its joined text content.
	Sections map[Section]string `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Section returns the content of s, or "" if the recommendation has none.
func (r Recommendation) Section(s Section) string {
	return r.Sections[s]
}

// Prefix returns the first dotted segment of the recommendation number.
func (r Recommendation) Prefix() string {
	first, _, _ := strings.Cut(r.Number, ".")
	return first
}
