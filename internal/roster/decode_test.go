package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
)

func shiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	out, err := japanese.ShiftJIS.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(out)
}

func TestDecodeText_ShiftJIS(t *testing.T) {
	data := shiftJIS(t, "社員番号,氏名,部署\r\n1,田中,営業\r\n")

	grid, err := DecodeText(data, EncodingShiftJIS)

	require.NoError(t, err)
	assert.Equal(t, Grid{{"社員番号", "氏名", "部署"}, {"1", "田中", "営業"}}, grid)
}

func TestDecodeText_ShiftJISRejectsUTF8(t *testing.T) {
	_, err := DecodeText([]byte("社員番号,氏名\n1,田中\n"), EncodingShiftJIS)
	assert.True(t, errors.Is(err, errDecodeFailed))

	_, err = DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, "id,name\n"...), EncodingShiftJIS)
	assert.True(t, errors.Is(err, errDecodeFailed), "a UTF-8 BOM rules out Shift-JIS")
}

func TestDecodeText_ShiftJISHalfWidthKatakana(t *testing.T) {
	// ﾃｽ is C3 BD in Shift-JIS, which is also valid UTF-8 for "ý".
	data := shiftJIS(t, "ID,Name\n1,ﾃｽ\n")
	require.Equal(t, []byte{0xC3, 0xBD}, data[10:12])

	grid, err := DecodeText(data, EncodingShiftJIS)

	require.NoError(t, err)
	assert.Equal(t, Grid{{"ID", "Name"}, {"1", "ﾃｽ"}}, grid)
}

func TestIsJapaneseUTF8(t *testing.T) {
	assert.True(t, isJapaneseUTF8([]byte("氏名,田中")))
	assert.True(t, isJapaneseUTF8([]byte("ｶﾅ")))
	assert.True(t, isJapaneseUTF8([]byte("Ｔａｒｏ")))
	assert.False(t, isJapaneseUTF8([]byte("name,José")))
	assert.False(t, isJapaneseUTF8([]byte("ascii only")))
	assert.False(t, isJapaneseUTF8([]byte{0x82, 0xA0}), "invalid UTF-8")
}

func TestDecodeText_ShiftJISAcceptsASCII(t *testing.T) {
	grid, err := DecodeText([]byte("id,name\n1,Taro\n"), EncodingShiftJIS)

	require.NoError(t, err)
	assert.Equal(t, Grid{{"id", "name"}, {"1", "Taro"}}, grid)
}

func TestDecodeText_UTF8(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, "社員番号,氏名\n1,田中\n"...)

	grid, err := DecodeText(data, EncodingUTF8)

	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, "社員番号", grid[0][0], "BOM must be stripped")
}

func TestDecodeText_UTF8SanitizesInvalidBytes(t *testing.T) {
	grid, err := DecodeText([]byte("a,b\xff\n"), EncodingUTF8)

	require.NoError(t, err)
	assert.Equal(t, Grid{{"a", "b\uFFFD"}}, grid)
}

func TestDecodeText_RaggedRows(t *testing.T) {
	grid, err := DecodeText([]byte("a,b,c\n1\n2,3\n"), EncodingUTF8)

	require.NoError(t, err)
	assert.Equal(t, Grid{{"a", "b", "c"}, {"1"}, {"2", "3"}}, grid)
}

func TestDecodeText_KeepsBlankLines(t *testing.T) {
	grid, err := DecodeText([]byte("氏名,部署\n\n\n田中,営業\n\"a\nb\",c\n\nd\n"), EncodingUTF8)

	require.NoError(t, err)
	assert.Equal(t, Grid{
		{"氏名", "部署"},
		nil,
		nil,
		{"田中", "営業"},
		{"a\nb", "c"},
		nil,
		nil,
		{"d"},
	}, grid)
}

func TestRecoverJoinedCells(t *testing.T) {
	tests := []struct {
		name        string
		in          Grid
		want        Grid
		wantResplit string
	}{
		{
			name:        "comma joined",
			in:          Grid{{"a,b,c"}, {"d,e,f"}},
			want:        Grid{{"a", "b", "c"}, {"d", "e", "f"}},
			wantResplit: "comma",
		},
		{
			name:        "tab joined wins over comma",
			in:          Grid{{"a\tb,c"}, {"d\te"}},
			want:        Grid{{"a", "b,c"}, {"d", "e"}},
			wantResplit: "tab",
		},
		{
			name:        "quoted cells unwrapped",
			in:          Grid{{"\"社員番号\"\t\"氏名\""}},
			want:        Grid{{"社員番号", "氏名"}},
			wantResplit: "tab",
		},
		{
			name:        "empty rows kept empty",
			in:          Grid{{"a,b"}, {}, {"c,d"}},
			want:        Grid{{"a", "b"}, nil, {"c", "d"}},
			wantResplit: "comma",
		},
		{
			name: "multi-cell grid untouched",
			in:   Grid{{"a,b"}, {"c", "d"}},
			want: Grid{{"a,b"}, {"c", "d"}},
		},
		{
			name: "no delimiter in first cell",
			in:   Grid{{"abc"}, {"d,e"}},
			want: Grid{{"abc"}, {"d,e"}},
		},
		{
			name: "empty grid",
			in:   Grid{},
			want: Grid{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, resplit := RecoverJoinedCells(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantResplit, resplit)
		})
	}
}

func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeSpreadsheet(t *testing.T) {
	data := workbook(t,
		[]interface{}{"社員番号", "氏名", "部署"},
		[]interface{}{42, "田中", "営業"},
	)

	grid, err := DecodeSpreadsheet(data, "roster.xlsx")

	require.NoError(t, err)
	assert.Equal(t, Grid{{"社員番号", "氏名", "部署"}, {"42", "田中", "営業"}}, grid)
}

func TestDecodeSpreadsheet_Errors(t *testing.T) {
	_, err := DecodeSpreadsheet([]byte("whatever"), "old.xls")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DecodeSpreadsheet([]byte("not a zip"), "roster.xlsx")
	assert.ErrorIs(t, err, ErrInvalidWorkbook)

	data := workbook(t, []interface{}{"氏名"})
	_, err = DecodeSpreadsheet(data[:len(data)/2], "roster.xlsx")
	assert.ErrorIs(t, err, ErrInvalidWorkbook, "truncated workbook")
}

func TestIsSpreadsheet(t *testing.T) {
	assert.True(t, IsSpreadsheet("roster.XLSX"))
	assert.True(t, IsSpreadsheet("macro.xlsm"))
	assert.True(t, IsSpreadsheet("legacy.xls"))
	assert.False(t, IsSpreadsheet("roster.csv"))
	assert.False(t, IsSpreadsheet("roster.tsv"))
	assert.False(t, IsSpreadsheet("roster"))
}
