package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
)

// Encoding names the decode candidate that produced a grid.
type Encoding string

const (
	EncodingShiftJIS Encoding = "shift_jis"
	EncodingUTF8     Encoding = "utf-8"
	EncodingXLSX     Encoding = "xlsx"
)

// textCandidates is the order delimited text is decoded in. Japanese
// spreadsheet software exports CSV as codepage 932 by default.
var textCandidates = []Encoding{EncodingShiftJIS, EncodingUTF8}

// errDecodeFailed marks a candidate encoding that cannot be the right one.
// It is never returned to callers; the next candidate is tried instead.
var errDecodeFailed = errors.New("decode failed")

// ErrUnsupportedFormat is returned for workbook formats excelize cannot read.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrInvalidWorkbook is returned when a workbook is damaged, truncated or
// encrypted.
var ErrInvalidWorkbook = errors.New("invalid workbook")

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// IsSpreadsheet reports whether fileName names a native workbook.
func IsSpreadsheet(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", ".xls":
		return true
	}
	return false
}

// DecodeSpreadsheet reads the first worksheet of an OOXML workbook.
func DecodeSpreadsheet(data []byte, fileName string) (Grid, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".xls") {
		return nil, fmt.Errorf("%w: legacy .xls, save as .xlsx or .csv", ErrUnsupportedFormat)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheets", ErrInvalidWorkbook)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrInvalidWorkbook, sheets[0], err)
	}
	return Grid(rows), nil
}

// DecodeText decodes delimited text under enc and parses it as CSV.
// A Shift-JIS attempt fails when the bytes are evidently something else.
func DecodeText(data []byte, enc Encoding) (Grid, error) {
	hasBOM := bytes.HasPrefix(data, bomUTF8)
	data = bytes.TrimPrefix(data, bomUTF8)

	var text []byte
	switch enc {
	case EncodingShiftJIS:
		if hasBOM || isJapaneseUTF8(data) {
			return nil, errDecodeFailed
		}
		out, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			return nil, errDecodeFailed
		}
		text = out
	case EncodingUTF8:
		text = sanitizeUTF8(data)
	default:
		return nil, fmt.Errorf("unknown encoding %q", enc)
	}

	return parseCSV(text)
}

// isJapaneseUTF8 reports whether data is valid UTF-8 whose non-ASCII text
// includes Japanese script. UTF-8 Japanese read as Shift-JIS turns into
// mojibake without any decode error, but valid UTF-8 alone is not enough:
// Shift-JIS half-width katakana pairs such as ﾃｽ also form valid UTF-8
// (as Latin-1 letters).
func isJapaneseUTF8(data []byte) bool {
	if isAllASCII(data) || !utf8.Valid(data) {
		return false
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if isJapaneseRune(r) {
			return true
		}
	}
	return false
}

func isJapaneseRune(r rune) bool {
	switch {
	case r >= 0x3000 && r <= 0x303F: // CJK symbols and punctuation
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // full-width and half-width forms
		return true
	}
	return unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han)
}

func isAllASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with U+FFFD.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
}

// parseCSV reads every record, tolerating ragged rows and stray quotes.
// Records the reader rejects outright are skipped. Blank lines are kept as
// empty rows so a record's grid index is the 0-based line it starts on, as
// with workbook rows.
func parseCSV(text []byte) (Grid, error) {
	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var grid Grid
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		line, _ := r.FieldPos(0)
		for len(grid) < line-1 {
			grid = append(grid, nil)
		}
		grid = append(grid, rec)
	}
	return grid, nil
}

// RecoverJoinedCells re-splits a grid whose rows each hold at most one
// cell, the usual symptom of a mis-detected delimiter. The first cell
// decides the delimiter: tab if it has one, otherwise comma. The returned
// string names the delimiter used, or is empty when the grid is unchanged.
func RecoverJoinedCells(grid Grid) (Grid, string) {
	first := ""
	seen := false
	for _, row := range grid {
		if len(row) > 1 {
			return grid, ""
		}
		if !seen && len(row) == 1 {
			first, seen = row[0], true
		}
	}
	if !seen {
		return grid, ""
	}

	var sep, name string
	switch {
	case strings.Contains(first, "\t"):
		sep, name = "\t", "tab"
	case strings.Contains(first, ","):
		sep, name = ",", "comma"
	default:
		return grid, ""
	}

	out := make(Grid, len(grid))
	for i, row := range grid {
		if len(row) == 0 {
			continue
		}
		cells := strings.Split(row[0], sep)
		for j, c := range cells {
			cells[j] = strings.Trim(c, `"`)
		}
		out[i] = cells
	}
	return out, name
}
