package roster

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractRows turns every row after headerRow into an Employee, in source
// order. Rows with no cells or without a usable name are dropped.
//
// A record without a code gets its 0-based grid row index, which is the
// file line for delimited text and the sheet row minus one for workbooks.
func ExtractRows(grid Grid, headerRow int, mapping HeaderMapping) []Employee {
	if headerRow < 0 || headerRow >= len(grid) {
		return nil
	}
	labels := headerLabels(grid[headerRow])

	var out []Employee
	for i := headerRow + 1; i < len(grid); i++ {
		row := grid[i]
		if !isValidRow(row, mapping) {
			continue
		}
		out = append(out, Employee{
			Code:       orDefault(cellAt(row, mapping.Code), strconv.Itoa(i)),
			Name:       cellAt(row, mapping.Name),
			Department: orDefault(cellAt(row, mapping.Department), DepartmentUnknown),
			Role:       orDefault(cellAt(row, mapping.Role), RoleGeneral),
			RawInfo:    rawInfo(labels, row),
		})
	}
	return out
}

// isValidRow reports whether row can yield a record: it has cells and a
// non-empty name that is not an e-mail address.
func isValidRow(row []string, mapping HeaderMapping) bool {
	if len(row) == 0 {
		return false
	}
	name := cellAt(row, mapping.Name)
	return name != "" && !strings.Contains(name, "@")
}

// headerLabels returns display labels for each header column, naming
// blank ones after their index.
func headerLabels(header []string) []string {
	labels := make([]string, len(header))
	for col, h := range header {
		label := cleanCell(h)
		if label == "" {
			label = fmt.Sprintf("field%d", col)
		}
		labels[col] = label
	}
	return labels
}

// rawInfo joins "label: value" for every header column whose value in row
// is non-empty.
func rawInfo(labels []string, row []string) string {
	parts := make([]string, 0, len(labels))
	for col, label := range labels {
		if v := cellAt(row, col); v != "" {
			parts = append(parts, label+": "+v)
		}
	}
	return strings.Join(parts, ", ")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
