// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/cisconv/internal/category"
	"github.com/pdiddy/cisconv/pkg/types"
)

// maxSheetName is Excel's sheet name length limit.
const maxSheetName = 31

// unsortable orders categories without a numeric key after all others.
const unsortable = math.MaxInt32

// Group partitions recs by category and orders the categories by the
// leading number of each category's first record. ADDITIONAL and
// categories whose first number does not parse come last. Record order
// inside a category is preserved. Ordinals start at 1.
func Group(recs []types.Recommendation, categories types.CategoryMap) []types.Group {
	var order []string
	byCat := make(map[string][]types.Recommendation)
	for _, r := range recs {
		cat := category.Lookup(r.Number, categories)
		if _, ok := byCat[cat]; !ok {
			order = append(order, cat)
		}
		byCat[cat] = append(byCat[cat], r)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sortKey(order[i], byCat[order[i]]) < sortKey(order[j], byCat[order[j]])
	})

	groups := make([]types.Group, 0, len(order))
	for _, cat := range order {
		if len(byCat[cat]) == 0 {
			continue
		}
		groups = append(groups, types.Group{
			Ordinal:         len(groups) + 1,
			Category:        cat,
			Recommendations: byCat[cat],
		})
	}
	return groups
}

func sortKey(cat string, recs []types.Recommendation) int {
	if cat == types.AdditionalCategory || len(recs) == 0 {
		return unsortable
	}
	n, err := strconv.Atoi(recs[0].Prefix())
	if err != nil {
		return unsortable
	}
	return n
}

// sheetNameReplacer swaps characters Excel rejects in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// SheetName returns the sheet name for a category: "<ordinal>. <category>",
// with the category cut so the whole name fits in 31 characters.
func SheetName(ordinal int, cat string) string {
	prefix := fmt.Sprintf("%d. ", ordinal)
	name := sheetNameReplacer.Replace(cat)

	room := maxSheetName - utf8.RuneCountInString(prefix)
	if utf8.RuneCountInString(name) > room {
		name = string([]rune(name)[:room])
	}
	// Excel rejects a name ending in an apostrophe; the cut may expose one.
	return prefix + strings.TrimRight(strings.TrimLeft(name, "'"), "' ")
}

// sheetRef quotes a sheet name for use in a formula.
func sheetRef(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
