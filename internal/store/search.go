// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/cisconv/pkg/types"
)

// QueryOptions filters Search. Empty fields do not filter.
type QueryOptions struct {
	// Query is matched case-insensitively as a substring of the number,
	// title, or any section text.
	Query string

	// Category matches the category name exactly.
	Category string

	// Document restricts results to one document id.
	Document string

	// Assessment restricts results to Automated or Manual recommendations.
	Assessment types.Assessment

	// MaxResults limits result count. Zero uses the default; negative means no limit.
	MaxResults int
}

// Result is a stored recommendation with its placement in a document.
type Result struct {
	types.Recommendation `yaml:",inline"`

	Document      string `json:"document" yaml:"document"`
	DocumentTitle string `json:"document_title" yaml:"document_title"`
	Category      string `json:"category" yaml:"category"`
	Ordinal       int    `json:"ordinal" yaml:"ordinal"`
}

// likeEscaper escapes LIKE wildcards in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns recommendations matching opts in document order.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT r.document_id, IFNULL(d.title, ''), r.number, r.title, IFNULL(r.level, ''),
			IFNULL(r.assessment, ''), r.category, r.ordinal, IFNULL(r.sections, '')
		FROM recommendations r
		LEFT JOIN documents d ON d.id = r.document_id
		WHERE 1=1`)

	if opts.Query != "" {
		pattern := "%" + likeEscaper.Replace(opts.Query) + "%"
		qb.WriteString(` AND (r.number LIKE ? ESCAPE '\' OR r.title LIKE ? ESCAPE '\' OR r.content LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if opts.Category != "" {
		qb.WriteString(` AND r.category = ?`)
		args = append(args, opts.Category)
	}
	if opts.Document != "" {
		qb.WriteString(` AND r.document_id = ?`)
		args = append(args, opts.Document)
	}
	if opts.Assessment != "" {
		qb.WriteString(` AND r.assessment = ?`)
		args = append(args, string(opts.Assessment))
	}

	qb.WriteString(` ORDER BY r.document_id, r.position`)

	limit := opts.MaxResults
	if limit == 0 {
		limit = defaultMaxResults
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying recommendations: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r          Result
			assessment string
			sections   string
		)
		if err := rows.Scan(
			&r.Document, &r.DocumentTitle, &r.Number, &r.Title, &r.Level,
			&assessment, &r.Category, &r.Ordinal, &sections,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Assessment = types.Assessment(assessment)
		if sections != "" {
			if err := json.Unmarshal([]byte(sections), &r.Sections); err != nil {
				return nil, fmt.Errorf("decoding sections of %s: %w", r.Number, err)
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
