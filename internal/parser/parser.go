// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser recovers recommendation records from the plain text of a
// CIS benchmark. The text has no markup; records are found by numbering
// patterns, a nearby "Profile Applicability:" header, an automation tag in
// the heading, and the fixed set of section labels.
package parser

import (
	"strings"

	"github.com/pdiddy/cisconv/internal/logger"
	"github.com/pdiddy/cisconv/internal/normalize"
	"github.com/pdiddy/cisconv/pkg/types"
)

// Parser extracts recommendations from benchmark text.
type Parser struct {
	log *logger.Logger
}

// New returns a Parser that reports rejected headings at debug level on log.
func New(log *logger.Logger) *Parser {
	if log == nil {
		log = logger.Nop()
	}
	return &Parser{log: log.WithComponent("parser")}
}

// Parse is shorthand for New(nil).Parse(text).
func Parse(text string) []types.Recommendation {
	return New(nil).Parse(text)
}

// Parse normalizes text, scans it for recommendations, and returns them in
// document order with duplicates (same number and title) removed. The first
// occurrence of a duplicate wins.
func (p *Parser) Parse(text string) []types.Recommendation {
	lines := normalize.Lines(text)
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}

	s := &scan{lines: lines, log: p.log}
	s.run()

	recs := Dedupe(s.out)
	p.log.Info().
		Int("lines", len(lines)).
		Int("headings", s.headings).
		Int("rejected", s.rejected).
		Int("recommendations", len(recs)).
		Msg("parsed recommendations")
	return recs
}

type state int

const (
	scanning state = iota
	inRecord
)

// scan is the state for one pass over the lines. Only current is mutated
// while a record is in progress; records in out are never touched again.
type scan struct {
	lines   []string
	pos     int
	state   state
	current *types.Recommendation
	out     []types.Recommendation
	log     *logger.Logger

	headings int
	rejected int
}

func (s *scan) run() {
	for s.pos < len(s.lines) {
		if h, ok := matchHeading(s.lines[s.pos]); ok {
			s.finalize()
			s.begin(h)
		}

		if s.state == inRecord {
			if sec, ok := matchSection(s.lines[s.pos]); ok {
				content, boundary := s.collect()
				s.current.Sections[sec] = content
				// The boundary line is examined on the next iteration.
				s.pos = boundary - 1
			}
		}

		s.pos++
	}
	s.finalize()
}

// finalize emits the record in progress, if any.
func (s *scan) finalize() {
	if s.state == inRecord {
		s.out = append(s.out, *s.current)
	}
	s.current = nil
	s.state = scanning
}

// begin handles a heading line at s.pos. On acceptance the record becomes
// current; s.pos is left on the last line consumed by the title.
func (s *scan) begin(h heading) {
	s.headings++

	if !hasProfileApplicability(s.lines, s.pos) {
		s.reject(h, "no profile applicability")
		return
	}

	title := h.title
	for s.pos+1 < len(s.lines) && !isBoundary(s.lines[s.pos+1]) {
		s.pos++
		if next := s.lines[s.pos]; next != "" {
			title = joinWords(title, next)
		}
	}
	h.title = title

	assessment, ok := classify(h.number + " " + h.tag + " " + h.title)
	if !ok {
		s.reject(h, "no automation tag")
		return
	}

	level := h.tag
	if isAssessmentTag(level) {
		level = ""
	}
	s.current = &types.Recommendation{
		Number:     h.number,
		Level:      level,
		Title:      h.title,
		Assessment: assessment,
		Sections:   make(map[types.Section]string),
	}
	s.state = inRecord
}

func (s *scan) reject(h heading, reason string) {
	s.rejected++
	s.log.Debug().
		Str("number", h.number).
		Int("line", s.pos+1).
		Str("reason", reason).
		Msg("skipped heading")
}

// collect gathers the body of the section whose label sits at s.pos. It
// returns the joined content and the index of the first line not consumed.
func (s *scan) collect() (string, int) {
	var parts []string
	i := s.pos + 1
	for ; i < len(s.lines); i++ {
		line := s.lines[i]
		if isBoundary(line) {
			break
		}
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " "), i
}

func joinWords(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

// Dedupe drops recommendations whose number and title repeat an earlier
// one. Order is preserved.
func Dedupe(recs []types.Recommendation) []types.Recommendation {
	type key struct{ number, title string }
	seen := make(map[key]bool, len(recs))
	out := make([]types.Recommendation, 0, len(recs))
	for _, r := range recs {
		k := key{r.Number, r.Title}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
