package roster

import "strings"

// minHeaderMatches is how many distinct fields a row must name to be
// taken as the header.
const minHeaderMatches = 2

// HeaderMatcher finds the header row of a grid.
type HeaderMatcher struct {
	index    synonymIndex
	scanRows int
}

// NewHeaderMatcher builds a matcher over syn that looks at no more than
// scanRows leading rows. scanRows <= 0 means DefaultHeaderScanRows.
func NewHeaderMatcher(syn Synonyms, scanRows int) *HeaderMatcher {
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}
	return &HeaderMatcher{index: newSynonymIndex(syn), scanRows: scanRows}
}

// Locate returns the index and mapping of the first row that names at
// least two distinct fields. found is false when no row qualifies, in which
// case row 0 and PositionalMapping are returned.
func (m *HeaderMatcher) Locate(grid Grid) (row int, mapping HeaderMapping, found bool) {
	limit := min(len(grid), m.scanRows)
	for i := 0; i < limit; i++ {
		if len(grid[i]) < minHeaderMatches {
			continue
		}
		candidate := m.MapRow(grid[i])
		if candidate.Matched() >= minHeaderMatches {
			return i, candidate, true
		}
	}
	return 0, PositionalMapping(), false
}

// MapRow assigns columns of a single candidate row to fields.
//
// Cells are read left to right. Each cell tries CODE, NAME, DEPARTMENT and
// ROLE in that order and is claimed by the first still-open field whose
// list matches it; a filled field is never overwritten.
func (m *HeaderMatcher) MapRow(cells []string) HeaderMapping {
	mapping := UnsetMapping()
	for col, cell := range cells {
		key := Normalize(cell)
		if key == "" {
			continue
		}
		for _, f := range fieldPriority {
			if mapping.Get(f) != Unset {
				continue
			}
			// An "@" in the label points at an e-mail column.
			if f == FieldName && strings.Contains(key, "@") {
				continue
			}
			if m.index.matches(f, key) {
				mapping.set(f, col)
				break
			}
		}
	}
	return mapping
}

// LocateHeader runs a HeaderMatcher with the default synonyms and scan
// window.
func LocateHeader(grid Grid) (row int, mapping HeaderMapping, found bool) {
	return NewHeaderMatcher(DefaultSynonyms(), DefaultHeaderScanRows).Locate(grid)
}
