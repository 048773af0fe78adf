// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workbook lays out parsed recommendations as an audit workbook:
// one sheet per category with a status column auditors fill in, and a score
// sheet whose formulas count statuses across the category sheets.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cisconv/pkg/types"
)

const (
	headerRow    = 4
	firstDataRow = 5
	statusCol    = "C"
	rowHeight    = 30

	headerFill = "366092"
)

// Columns is the header row of every category sheet.
var Columns = []string{
	"Number", "Title", "Status", "Comments", "Audit script", "Remediation script",
	"Profile Applicability", "Description", "Rationale", "Impact", "Audit",
	"Remediation", "Default Value", "References", "Additional Information",
}

// sectionColumn is the 1-based column of the first section; sections follow
// in types.Sections order.
const sectionColumn = 7

// statusFills colors a row's status cell by its value.
var statusFills = map[types.Status]string{
	types.StatusCompliant:    "C6EFCE",
	types.StatusNonCompliant: "FFC7CE",
	types.StatusToReview:     "D9D9D9",
}

// ScoreColumns is the header row of the score sheet.
var ScoreColumns = []string{
	"Section", "Compliant", "Non-Compliant", "To Review", "Total",
	"% Compliant", "% Non-Compliant", "% To Review",
}

type styles struct {
	title, version, header, scoreHeader, wrap, percent int
	status                                             map[types.Status]int
}

func newStyles(f *excelize.File) (*styles, error) {
	var (
		s   = &styles{status: make(map[types.Status]int)}
		err error
	)
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	headerFont := &excelize.Font{Bold: true, Color: "FFFFFF"}
	fill := excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1}

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}, Alignment: center}); err != nil {
		return nil, err
	}
	if s.version, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Size: 12}, Alignment: center}); err != nil {
		return nil, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      headerFont,
		Fill:      fill,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return nil, err
	}
	if s.scoreHeader, err = f.NewStyle(&excelize.Style{Font: headerFont, Fill: fill, Alignment: center}); err != nil {
		return nil, err
	}
	if s.wrap, err = f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Vertical: "top", WrapText: true}}); err != nil {
		return nil, err
	}
	// Built-in number format 10 is "0.00%".
	if s.percent, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil {
		return nil, err
	}
	for _, st := range types.Statuses {
		id, err := f.NewConditionalStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{statusFills[st]}, Pattern: 1},
		})
		if err != nil {
			return nil, err
		}
		s.status[st] = id
	}
	return s, nil
}

// Build creates the workbook in memory. The caller owns the returned file
// and must Close it.
func Build(groups []types.Group, title, version string) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating styles: %w", err)
	}

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = SheetName(g.Ordinal, g.Category)
		if err := writeCategorySheet(f, st, names[i], g, title, version); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing sheet %q: %w", names[i], err)
		}
	}

	score := fmt.Sprintf("%d. SCORE", len(groups)+1)
	if err := writeScoreSheet(f, st, score, groups, names); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing score sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(f.GetSheetList()[0]); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// Write builds the workbook and saves it to path. Nothing is written if any
// sheet fails to build.
func Write(path string, groups []types.Group, title, version string) error {
	f, err := Build(groups, title, version)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeCategorySheet(f *excelize.File, st *styles, sheet string, g types.Group, title, version string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.MergeCell(sheet, "B1", "H1"); err != nil {
		return err
	}
	if err := setCell(f, sheet, 2, 1, title+" - "+g.Category, st.title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "B2", "H2"); err != nil {
		return err
	}
	if err := setCell(f, sheet, 2, 2, version, st.version); err != nil {
		return err
	}

	for i, h := range Columns {
		if err := setCell(f, sheet, i+1, headerRow, h, st.header); err != nil {
			return err
		}
	}

	lastRow := firstDataRow + len(g.Recommendations) - 1
	for i, r := range g.Recommendations {
		if err := writeRecommendationRow(f, st, sheet, firstDataRow+i, r); err != nil {
			return err
		}
	}

	if len(g.Recommendations) > 0 {
		if err := addStatusRules(f, st, sheet, lastRow); err != nil {
			return err
		}
	}

	if err := setColumnWidths(f, sheet); err != nil {
		return err
	}
	for row := 1; row <= max(lastRow, headerRow); row++ {
		if err := f.SetRowHeight(sheet, row, rowHeight); err != nil {
			return err
		}
	}
	return nil
}

func writeRecommendationRow(f *excelize.File, st *styles, sheet string, row int, r types.Recommendation) error {
	first, err := excelize.CoordinatesToCellName(4, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(Columns), row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, st.wrap); err != nil {
		return err
	}

	values := []any{r.Number, r.Title, string(types.DefaultStatus)}
	for i, v := range values {
		if err := setCell(f, sheet, i+1, row, v, 0); err != nil {
			return err
		}
	}
	for i, s := range types.Sections {
		if err := setCell(f, sheet, sectionColumn+i, row, r.Section(s), 0); err != nil {
			return err
		}
	}
	return nil
}

// addStatusRules attaches the status drop-down and the per-status fills to
// the status cells of rows firstDataRow..lastRow.
func addStatusRules(f *excelize.File, st *styles, sheet string, lastRow int) error {
	ref := fmt.Sprintf("%s%d:%s%d", statusCol, firstDataRow, statusCol, lastRow)

	dv := excelize.NewDataValidation(true)
	dv.Sqref = ref
	list := make([]string, len(types.Statuses))
	for i, s := range types.Statuses {
		list[i] = string(s)
	}
	if err := dv.SetDropList(list); err != nil {
		return err
	}
	if err := f.AddDataValidation(sheet, dv); err != nil {
		return err
	}

	rules := make([]excelize.ConditionalFormatOptions, 0, len(types.Statuses))
	for _, s := range types.Statuses {
		rules = append(rules, excelize.ConditionalFormatOptions{
			Type:     "formula",
			Criteria: fmt.Sprintf(`$%s%d="%s"`, statusCol, firstDataRow, s),
			Format:   st.status[s],
		})
	}
	return f.SetConditionalFormat(sheet, ref, rules)
}

func setColumnWidths(f *excelize.File, sheet string) error {
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 15},
		{"B", "B", 60},
		{"C", "C", 15},
		{"D", "D", 20},
		{"E", "F", 15},
		{"G", "O", 30},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}
	return nil
}

func writeScoreSheet(f *excelize.File, st *styles, sheet string, groups []types.Group, names []string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, h := range ScoreColumns {
		if err := setCell(f, sheet, i+1, 1, h, st.scoreHeader); err != nil {
			return err
		}
	}

	for i, g := range groups {
		row := i + 2
		ref := sheetRef(names[i])
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%d. %s", g.Ordinal, g.Category)); err != nil {
			return err
		}

		formulas := make([]string, 0, 7)
		for _, s := range types.Statuses {
			formulas = append(formulas, fmt.Sprintf(`COUNTIF(%s!%s:%s,"%s")`, ref, statusCol, statusCol, s))
		}
		formulas = append(formulas,
			fmt.Sprintf("B%d+C%d+D%d", row, row, row),
			fmt.Sprintf("IF(E%d=0,0,B%d/E%d)", row, row, row),
			fmt.Sprintf("IF(E%d=0,0,C%d/E%d)", row, row, row),
			fmt.Sprintf("IF(E%d=0,0,D%d/E%d)", row, row, row),
		)
		for j, formula := range formulas {
			cell, err := excelize.CoordinatesToCellName(j+2, row)
			if err != nil {
				return err
			}
			if err := f.SetCellFormula(sheet, cell, formula); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("H%d", row), st.percent); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 35); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "H", 15)
}

func setCell(f *excelize.File, sheet string, col, row int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}
