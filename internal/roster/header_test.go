package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateHeader_SimpleGrid(t *testing.T) {
	grid := Grid{
		{"ID", "氏名", "部署"},
		{"1", "田中太郎", "営業"},
		{"2", "", "開発"},
	}

	row, mapping, found := LocateHeader(grid)

	assert.True(t, found)
	assert.Equal(t, 0, row)
	assert.Equal(t, HeaderMapping{Code: 0, Name: 1, Department: 2, Role: Unset}, mapping)
}

func TestLocateHeader_ReturnsLowestQualifyingRow(t *testing.T) {
	grid := Grid{
		{"社員名簿"},
		{"2024年度", ""},
		{"社員番号", "氏名", "所属", "役職"},
		{"担当者コード", "担当者名", "部署", "役割"},
		{"001", "山田", "総務", "課長"},
	}

	row, mapping, found := LocateHeader(grid)

	require.True(t, found)
	assert.Equal(t, 2, row)
	assert.Equal(t, HeaderMapping{Code: 0, Name: 1, Department: 2, Role: 3}, mapping)
}

func TestLocateHeader_SkipsSingleCellRows(t *testing.T) {
	grid := Grid{
		{"氏名"},
		{"社員番号", "氏名"},
	}

	row, _, found := LocateHeader(grid)

	assert.True(t, found)
	assert.Equal(t, 1, row)
}

func TestLocateHeader_Fallback(t *testing.T) {
	grid := Grid{
		{"1", "田中"},
		{"2", "佐藤"},
	}

	row, mapping, found := LocateHeader(grid)

	assert.False(t, found)
	assert.Equal(t, 0, row)
	assert.Equal(t, PositionalMapping(), mapping)
}

func TestHeaderMatcher_ScanWindow(t *testing.T) {
	grid := make(Grid, 0, 60)
	for i := 0; i < 55; i++ {
		grid = append(grid, []string{"", "メモ"})
	}
	grid = append(grid, []string{"社員番号", "氏名"})

	_, _, found := NewHeaderMatcher(DefaultSynonyms(), DefaultHeaderScanRows).Locate(grid)
	assert.False(t, found, "header past row 50 must not be found")

	row, _, found := NewHeaderMatcher(DefaultSynonyms(), 100).Locate(grid)
	assert.True(t, found)
	assert.Equal(t, 55, row)
}

func TestHeaderMatcher_MapRow(t *testing.T) {
	m := NewHeaderMatcher(DefaultSynonyms(), 0)

	tests := []struct {
		name  string
		cells []string
		want  HeaderMapping
	}{
		{
			name:  "english labels",
			cells: []string{"Employee ID", "Name", "Email", "Department", "Title"},
			want:  HeaderMapping{Code: 0, Name: 1, Department: 3, Role: 4},
		},
		{
			name:  "department name is not a person name",
			cells: []string{"No", "Department Name", "Name", "Email"},
			want:  HeaderMapping{Code: 0, Name: 2, Department: 1, Role: Unset},
		},
		{
			name:  "company name ignored",
			cells: []string{"Company Name", "Name", "Dept"},
			want:  HeaderMapping{Code: Unset, Name: 1, Department: 2, Role: Unset},
		},
		{
			name:  "decorated label matches by substring",
			cells: []string{"担当者コード（必須）", "担当者名"},
			want:  HeaderMapping{Code: 0, Name: 1, Department: Unset, Role: Unset},
		},
		{
			name:  "first match per field wins",
			cells: []string{"氏名", "名前", "部署"},
			want:  HeaderMapping{Code: Unset, Name: 0, Department: 2, Role: Unset},
		},
		{
			name:  "name label without at-sign accepted",
			cells: []string{"社員番号", "氏名(email)"},
			want:  HeaderMapping{Code: 0, Name: 1, Department: Unset, Role: Unset},
		},
		{
			name:  "name label with at-sign rejected",
			cells: []string{"社員番号", "氏名@mail"},
			want:  HeaderMapping{Code: 0, Name: Unset, Department: Unset, Role: Unset},
		},
		{
			name:  "blank cells ignored",
			cells: []string{"", " ", "部署", "役職"},
			want:  HeaderMapping{Code: Unset, Name: Unset, Department: 2, Role: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MapRow(tt.cells))
		})
	}
}

func TestHeaderMatcher_CustomSynonyms(t *testing.T) {
	syn := DefaultSynonyms()
	syn.Role = append(syn.Role, "グレード")
	m := NewHeaderMatcher(syn, 0)

	got := m.MapRow([]string{"氏名", "グレード"})
	assert.Equal(t, 1, got.Role)
}
