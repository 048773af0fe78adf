// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every recommendation matching opts to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, w io.Writer) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes every recommendation matching opts to w as an indented
// JSON array.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, w io.Writer) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) exportResults(ctx context.Context, opts QueryOptions) ([]Result, error) {
	if opts.Document != "" {
		if _, err := s.Document(ctx, opts.Document); err != nil {
			return nil, err
		}
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = -1
	}
	results, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}
