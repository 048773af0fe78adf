// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the benchmark-to-workbook pipeline: page text
// extraction, recommendation parsing, category grouping, workbook output,
// and optional persistence to the audit store.
package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cisconv/internal/category"
	"github.com/pdiddy/cisconv/internal/logger"
	"github.com/pdiddy/cisconv/internal/parser"
	"github.com/pdiddy/cisconv/internal/pdftext"
	"github.com/pdiddy/cisconv/internal/store"
	"github.com/pdiddy/cisconv/internal/workbook"
	"github.com/pdiddy/cisconv/pkg/types"
)

// DefaultStartPage skips the cover, license, and table of contents of a
// typical benchmark.
const DefaultStartPage = 10

// Result summarizes a conversion.
type Result struct {
	Document        types.Document
	Groups          []types.Group
	Recommendations int
	OutputPath      string

	// Stored reports whether the recommendations reached the audit store.
	Stored bool
}

// DocumentID derives a document id from a PDF path: its base name without
// extension.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultOutputPath returns "<document id>.xlsx" in the working directory.
func DefaultOutputPath(input string) string {
	return DocumentID(input) + ".xlsx"
}

// Run converts cfg.InputPath into a workbook at cfg.OutputPath. Setup
// problems (missing category configuration, unreadable PDF, start page past
// the end) abort before any output is written. Per-category counts are
// printed to w. The audit store is written after the workbook; a store
// failure is logged and leaves the workbook in place.
func Run(ctx context.Context, cfg types.ConvertConfig, ex pdftext.Extractor, log *logger.Logger, w io.Writer) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.InputPath == "" {
		return Result{}, fmt.Errorf("input PDF required")
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath(cfg.InputPath)
	}
	if cfg.Extraction.StartPage == 0 {
		cfg.Extraction.StartPage = DefaultStartPage
	}

	docID := DocumentID(cfg.InputPath)
	log = log.WithDocument(docID)

	catCfg, err := category.Load(cfg.CategoriesPath)
	if err != nil {
		return Result{}, err
	}
	categories, selector := category.Resolve(catCfg, docID, cfg.OSType)
	if cfg.OSType != "" && selector != cfg.OSType {
		log.Warn().Str("os_type", cfg.OSType).Msg("selector not in category configuration, using default")
	}
	log.Info().Str("selector", selector).Int("categories", len(categories)).Msg("category mapping loaded")

	pdf, err := ex.Open(cfg.InputPath)
	if err != nil {
		return Result{}, err
	}
	defer pdf.Close()

	first, err := pdftext.FirstPage(pdf)
	if err != nil {
		return Result{}, fmt.Errorf("reading title page of %s: %w", cfg.InputPath, err)
	}
	title, version := parser.TitleVersion(first)

	text, err := pdftext.ReadText(pdf, cfg.Extraction.StartPage, log.WithComponent("pdftext"))
	if err != nil {
		return Result{}, err
	}

	recs := parser.New(log).Parse(text)
	groups := workbook.Group(recs, categories)

	for _, g := range groups {
		fmt.Fprintf(w, "%3d. %-50s %4d\n", g.Ordinal, g.Category, len(g.Recommendations))
	}

	if err := workbook.Write(cfg.OutputPath, groups, title, version); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(w, "\nwrote %s (%d recommendations, %d categories)\n", cfg.OutputPath, len(recs), len(groups))

	doc := types.Document{
		ID:         docID,
		Title:      title,
		Version:    version,
		SourcePath: cfg.InputPath,
		Selector:   selector,
	}

	res := Result{
		Document:        doc,
		Groups:          groups,
		Recommendations: len(recs),
		OutputPath:      cfg.OutputPath,
	}

	if cfg.DBPath != "" {
		if err := persist(ctx, cfg.DBPath, doc, groups, log); err != nil {
			log.Warn().Err(err).Str("db", cfg.DBPath).Msg("audit store not updated, workbook kept")
			fmt.Fprintf(w, "audit store %s not updated: %v\n", cfg.DBPath, err)
			return res, nil
		}
		res.Stored = true
	}

	return res, nil
}

func persist(ctx context.Context, dbPath string, doc types.Document, groups []types.Group, log *logger.Logger) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Save(ctx, doc, groups)
	if err != nil {
		return fmt.Errorf("saving %s to %s: %w", doc.ID, dbPath, err)
	}
	log.Info().Str("db", dbPath).Int("recommendations", n).Msg("audit store updated")
	return nil
}
