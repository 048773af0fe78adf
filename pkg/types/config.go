// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionBackend identifies the page-text extraction tool.
type ExtractionBackend string

const (
	BackendNative  ExtractionBackend = "native"
	BackendPoppler ExtractionBackend = "poppler"
)

// ExtractionConfig holds settings for reading page text from a PDF.
type ExtractionConfig struct {
	// Backend selects the extractor: native or poppler.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// StartPage is the first 1-based page parsed for recommendations (default 10).
	StartPage int `json:"start_page" yaml:"start_page"`

	// PopplerImage is the container image providing pdftotext and pdfinfo.
	PopplerImage string `json:"poppler_image" yaml:"poppler_image"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format"`
}

// ConvertConfig groups everything the convert command needs.
type ConvertConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`

	// InputPath is the benchmark PDF.
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the workbook to write (default: input base name + ".xlsx").
	OutputPath string `json:"output" yaml:"output"`

	// CategoriesPath is the category mapping file (JSON or YAML).
	CategoriesPath string `json:"categories" yaml:"categories"`

	// OSType overrides selector auto-detection when non-empty.
	OSType string `json:"os_type,omitempty" yaml:"os_type,omitempty"`

	// DBPath enables persistence to the audit store when non-empty.
	DBPath string `json:"db,omitempty" yaml:"db,omitempty"`
}
