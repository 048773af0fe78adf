// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package category maps recommendation numbers to display categories.
// Category names come from a two-level configuration file keyed first by an
// OS selector (debian, ubuntu, windows_server, windows, default) and then by
// the leading numeric segment of a recommendation number.
package category

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cisconv/pkg/types"
)

// ErrConfigNotFound is returned when the category configuration file does
// not exist. A missing configuration is a setup error and aborts the run.
var ErrConfigNotFound = errors.New("category configuration not found")

// osSelectors lists filename substrings in detection priority order.
var osSelectors = []struct {
	selector string
	needles  []string
}{
	{"debian", []string{"debian"}},
	{"ubuntu", []string{"ubuntu"}},
	{"windows_server", []string{"windows_server", "windows server"}},
	{"windows", []string{"windows"}},
}

// Load reads the category configuration at path. The file may be JSON or
// YAML. It must contain a "default" selector.
func Load(path string) (types.CategoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading category configuration %s: %w", path, err)
	}

	var cfg types.CategoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing category configuration %s: %w", path, err)
	}
	if _, ok := cfg[types.DefaultSelector]; !ok {
		return nil, fmt.Errorf("category configuration %s has no %q selector", path, types.DefaultSelector)
	}
	return cfg, nil
}

// DetectSelector picks an OS selector from a document identifier such as a
// PDF filename or its base name. Only the final path element is inspected,
// case insensitively; dots are ordinary characters (version strings such as
// "v1.0.1" or "22.04" often precede the OS name).
func DetectSelector(docID string) string {
	name := strings.ToLower(filepath.Base(docID))
	for _, s := range osSelectors {
		for _, n := range s.needles {
			if strings.Contains(name, n) {
				return s.selector
			}
		}
	}
	return types.DefaultSelector
}

// Resolve returns the category map for a document. A non-empty override is
// used directly as the selector; otherwise the selector is detected from
// docID. A selector absent from cfg falls back to "default". The selector
// actually applied is returned alongside the map.
func Resolve(cfg types.CategoryConfig, docID, override string) (types.CategoryMap, string) {
	selector := override
	if selector == "" {
		selector = DetectSelector(docID)
	}
	if m, ok := cfg[selector]; ok {
		return m, selector
	}
	return cfg[types.DefaultSelector], types.DefaultSelector
}

// Lookup returns the category name for a recommendation number. Only the
// first dotted segment is consulted; unmapped prefixes yield
// types.AdditionalCategory.
func Lookup(number string, categories types.CategoryMap) string {
	first, _, _ := strings.Cut(number, ".")
	if name, ok := categories[first]; ok {
		return name
	}
	return types.AdditionalCategory
}
