package roster

import "fmt"

// Unset marks a HeaderMapping field with no confident column match.
const Unset = -1

// Sentinel values substituted when a record has no department or role.
const (
	DepartmentUnknown = "department unknown"
	RoleGeneral       = "general"
)

// DefaultHeaderScanRows is how many leading rows are searched for a header.
const DefaultHeaderScanRows = 50

// Grid is a decoded table: ordered rows of ordered cell values.
type Grid [][]string

// Width returns the widest row length.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Field identifies one of the canonical employee columns.
type Field int

const (
	FieldCode Field = iota
	FieldName
	FieldDepartment
	FieldRole
)

// fieldPriority is the order in which a header cell is tested.
var fieldPriority = []Field{FieldCode, FieldName, FieldDepartment, FieldRole}

func (f Field) String() string {
	switch f {
	case FieldCode:
		return "code"
	case FieldName:
		return "name"
	case FieldDepartment:
		return "department"
	case FieldRole:
		return "role"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// HeaderMapping holds the column index of each canonical field, or Unset.
type HeaderMapping struct {
	Code       int `json:"code"`
	Name       int `json:"name"`
	Department int `json:"department"`
	Role       int `json:"role"`
}

// UnsetMapping returns a mapping with every field Unset.
func UnsetMapping() HeaderMapping {
	return HeaderMapping{Code: Unset, Name: Unset, Department: Unset, Role: Unset}
}

// PositionalMapping is the guess used when no header row is recognized.
func PositionalMapping() HeaderMapping {
	return HeaderMapping{Code: 0, Name: 1, Department: 2, Role: 3}
}

// Get returns the column index for f.
func (m HeaderMapping) Get(f Field) int {
	switch f {
	case FieldCode:
		return m.Code
	case FieldName:
		return m.Name
	case FieldDepartment:
		return m.Department
	case FieldRole:
		return m.Role
	}
	return Unset
}

func (m *HeaderMapping) set(f Field, col int) {
	switch f {
	case FieldCode:
		m.Code = col
	case FieldName:
		m.Name = col
	case FieldDepartment:
		m.Department = col
	case FieldRole:
		m.Role = col
	}
}

// Matched counts the fields that point at a column.
func (m HeaderMapping) Matched() int {
	n := 0
	for _, f := range fieldPriority {
		if m.Get(f) != Unset {
			n++
		}
	}
	return n
}

// Employee is one normalized roster record.
type Employee struct {
	Code       string `json:"code" msgpack:"code"`
	Name       string `json:"name" msgpack:"name"`
	Department string `json:"department" msgpack:"department"`
	Role       string `json:"role" msgpack:"role"`
	// RawInfo restates every non-empty cell of the source row as
	// "label: value" pairs. Downstream prompts read this, not the
	// projected fields above.
	RawInfo string `json:"rawInfo" msgpack:"rawInfo"`
}

// Result is the outcome of one extraction run.
type Result struct {
	Employees []Employee `json:"employees"`

	// Encoding is the decode candidate that produced the records:
	// "shift_jis", "utf-8" or "xlsx".
	Encoding string `json:"encoding"`

	HeaderRow      int           `json:"headerRow"`
	HeaderDetected bool          `json:"headerDetected"`
	Mapping        HeaderMapping `json:"mapping"`
	Headers        []string      `json:"headers"`

	// Resplit is "tab" or "comma" when joined-cell recovery was applied.
	Resplit string `json:"resplit,omitempty"`
}
