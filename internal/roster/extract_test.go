package roster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRows_SkipsBlankNames(t *testing.T) {
	grid := Grid{
		{"ID", "氏名", "部署"},
		{"1", "田中太郎", "営業"},
		{"2", "", "開発"},
	}
	row, mapping, _ := LocateHeader(grid)

	got := ExtractRows(grid, row, mapping)

	require.Len(t, got, 1)
	assert.Equal(t, Employee{
		Code:       "1",
		Name:       "田中太郎",
		Department: "営業",
		Role:       RoleGeneral,
		RawInfo:    "ID: 1, 氏名: 田中太郎, 部署: 営業",
	}, got[0])
}

func TestExtractRows_RawInfo(t *testing.T) {
	grid := Grid{
		{"ID", "氏名"},
		{"7", "佐藤"},
	}
	row, mapping, _ := LocateHeader(grid)

	got := ExtractRows(grid, row, mapping)

	require.Len(t, got, 1)
	assert.Equal(t, "ID: 7, 氏名: 佐藤", got[0].RawInfo)
}

func TestExtractRows_Defaults(t *testing.T) {
	grid := Grid{
		{"氏名", "部署"},
		{"田中", ""},
		{"佐藤", "経理"},
	}
	mapping := HeaderMapping{Code: Unset, Name: 0, Department: 1, Role: Unset}

	got := ExtractRows(grid, 0, mapping)

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Code, "code falls back to the row index")
	assert.Equal(t, DepartmentUnknown, got[0].Department)
	assert.Equal(t, RoleGeneral, got[0].Role)
	assert.Equal(t, "氏名: 田中", got[0].RawInfo)
	assert.Equal(t, "2", got[1].Code)
	assert.Equal(t, "経理", got[1].Department)
}

func TestExtractRows_FiltersInvalidRows(t *testing.T) {
	grid := Grid{
		{"社員番号", "氏名"},
		{},
		{"10", "taro@example.com"},
		{"11", "   "},
		{"12"},
		{"13", "鈴木"},
	}
	mapping := HeaderMapping{Code: 0, Name: 1, Department: Unset, Role: Unset}

	got := ExtractRows(grid, 0, mapping)

	require.Len(t, got, 1)
	assert.Equal(t, "13", got[0].Code)
	assert.Equal(t, "鈴木", got[0].Name)
}

func TestExtractRows_PreservesOrder(t *testing.T) {
	grid := Grid{
		{"社員番号", "氏名"},
		{"3", "C"},
		{"1", "A"},
		{"2", "B"},
	}
	mapping := HeaderMapping{Code: 0, Name: 1, Department: Unset, Role: Unset}

	got := ExtractRows(grid, 0, mapping)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestExtractRows_RawInfoLabels(t *testing.T) {
	grid := Grid{
		{"社員番号", "氏名", ""},
		{`="00123"`, "田中", "備考あり", "header-less extra"},
	}
	mapping := HeaderMapping{Code: 0, Name: 1, Department: Unset, Role: Unset}

	got := ExtractRows(grid, 0, mapping)

	require.Len(t, got, 1)
	assert.Equal(t, "00123", got[0].Code)
	assert.Equal(t, "社員番号: 00123, 氏名: 田中, field2: 備考あり", got[0].RawInfo)
}

func TestExtractRows_HeaderOutOfRange(t *testing.T) {
	assert.Nil(t, ExtractRows(Grid{}, 0, PositionalMapping()))
	assert.Nil(t, ExtractRows(Grid{{"a"}}, 3, PositionalMapping()))
}

func TestIsValidRow(t *testing.T) {
	mapping := HeaderMapping{Code: Unset, Name: 0, Department: Unset, Role: Unset}

	assert.True(t, isValidRow([]string{"田中"}, mapping))
	assert.False(t, isValidRow(nil, mapping))
	assert.False(t, isValidRow([]string{""}, mapping))
	assert.False(t, isValidRow([]string{"a@b.jp"}, mapping))
	assert.False(t, isValidRow([]string{"田中"}, UnsetMapping()))
}

func TestExtractRows_FullTable(t *testing.T) {
	grid := Grid{
		{"名簿 2024年度"},
		{"社員番号", "氏名", "所属", "役職"},
		{"101", "田中 太郎", "営業部", "課長"},
		{"", "山田 花子", "", ""},
		{"103", "", "総務部", "主任"},
		{"104", "佐藤 次郎", "開発部", ""},
	}
	row, mapping, found := LocateHeader(grid)
	require.True(t, found)

	want := []Employee{
		{Code: "101", Name: "田中 太郎", Department: "営業部", Role: "課長", RawInfo: "社員番号: 101, 氏名: 田中 太郎, 所属: 営業部, 役職: 課長"},
		{Code: "3", Name: "山田 花子", Department: DepartmentUnknown, Role: RoleGeneral, RawInfo: "氏名: 山田 花子"},
		{Code: "104", Name: "佐藤 次郎", Department: "開発部", Role: RoleGeneral, RawInfo: "社員番号: 104, 氏名: 佐藤 次郎, 所属: 開発部"},
	}
	if diff := cmp.Diff(want, ExtractRows(grid, row, mapping)); diff != "" {
		t.Errorf("ExtractRows mismatch (-want +got):\n%s", diff)
	}
}
