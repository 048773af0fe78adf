// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status is the review state an auditor assigns to a recommendation row.
type Status string

const (
	StatusCompliant    Status = "Compliant"
	StatusNonCompliant Status = "Non-Compliant"
	StatusToReview     Status = "To Review"
)

// Statuses lists the accepted status values in column order for the score sheet.
var Statuses = []Status{StatusCompliant, StatusNonCompliant, StatusToReview}

// DefaultStatus is the status written for every freshly generated row.
const DefaultStatus = StatusToReview

// AdditionalCategory is the catch-all category for recommendation numbers
// whose leading segment has no configured name.
const AdditionalCategory = "ADDITIONAL"

// CategoryMap maps a leading numeric segment (e.g. "1") to a display name.
type CategoryMap map[string]string

// CategoryConfig is the two-level category configuration: selector (an OS
// type such as "debian" or "windows_server") to CategoryMap.
type CategoryConfig map[string]CategoryMap

// DefaultSelector is the selector used when no OS type is detected.
const DefaultSelector = "default"

// Group is one category's slice of recommendations, with its 1-based
// position in the workbook.
type Group struct {
	Ordinal         int              `json:"ordinal" yaml:"ordinal"`
	Category        string           `json:"category" yaml:"category"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// Document describes the benchmark a set of recommendations came from.
type Document struct {
	// ID is the source file's base name without extension.
	ID string `json:"id" yaml:"id"`

	// Title is the benchmark title read from the first page.
	Title string `json:"title" yaml:"title"`

	// Version is the benchmark version line (e.g. "v2.0.0 - 03-28-2024").
	Version string `json:"version" yaml:"version"`

	// SourcePath is the path of the PDF the document was read from.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// Selector is the category selector used for this document.
	Selector string `json:"selector" yaml:"selector"`
}
