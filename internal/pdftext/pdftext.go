// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads per-page plain text out of benchmark PDFs. Two
// backends are available: a native reader built on github.com/ledongthuc/pdf
// and a poppler backend that runs pdftotext inside a container.
package pdftext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/cisconv/internal/container"
	"github.com/pdiddy/cisconv/internal/logger"
	"github.com/pdiddy/cisconv/pkg/types"
)

// ErrStartPageOutOfRange is returned when the requested start page lies
// outside the document.
var ErrStartPageOutOfRange = errors.New("start page out of range")

// Document is an open PDF.
type Document interface {
	// NumPages returns the page count.
	NumPages() int

	// PageText returns the plain text of page n (1-based).
	PageText(n int) (string, error)

	Close() error
}

// Extractor opens PDFs for text extraction.
type Extractor interface {
	Open(path string) (Document, error)
}

// New returns the extractor selected by cfg.Backend. An empty backend means
// native.
func New(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return NativeExtractor{}, nil
	case types.BackendPoppler:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPopplerExtractor(rt, cfg.PopplerImage)
	default:
		return nil, fmt.Errorf("unknown extraction backend %q (want %s or %s)", cfg.Backend, types.BackendNative, types.BackendPoppler)
	}
}

// FirstPage returns the text of page 1. Unlike ReadText, a failure here is
// returned to the caller.
func FirstPage(doc Document) (string, error) {
	if doc.NumPages() < 1 {
		return "", fmt.Errorf("document has no pages")
	}
	text, err := doc.PageText(1)
	if err != nil {
		return "", fmt.Errorf("reading first page: %w", err)
	}
	return text, nil
}

// ReadText concatenates the text of pages startPage through the last page,
// separated by newlines. A page that fails to extract contributes an empty
// string and is logged; it does not stop the read.
func ReadText(doc Document, startPage int, log *logger.Logger) (string, error) {
	if log == nil {
		log = logger.Nop()
	}
	n := doc.NumPages()
	if startPage < 1 || startPage > n {
		return "", fmt.Errorf("%w: start page %d, document has %d pages", ErrStartPageOutOfRange, startPage, n)
	}

	log.Info().Int("start_page", startPage).Int("pages", n).Msg("reading pages")

	texts := make([]string, 0, n-startPage+1)
	failed := 0
	for p := startPage; p <= n; p++ {
		text, err := doc.PageText(p)
		if err != nil {
			log.Warn().Int("page", p).Err(err).Msg("page extraction failed")
			failed++
			text = ""
		}
		texts = append(texts, text)
	}

	log.Info().Int("read", len(texts)-failed).Int("failed", failed).Msg("pages extracted")
	return strings.Join(texts, "\n"), nil
}
