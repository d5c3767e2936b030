package roster

import (
	"errors"
	"fmt"
)

// ErrEmptyFile is returned when there are no bytes to decode.
var ErrEmptyFile = errors.New("empty file")

// ErrExtractionEmpty is returned when every decode attempt produced zero
// records.
var ErrExtractionEmpty = errors.New(
	"no employee records found: the file may have no recognizable header row " +
		"(such as 氏名/担当者名 and 部署/社員番号), or its columns may use a " +
		"delimiter other than comma or tab")

// Extractor runs the decode, reshape, header and row stages over a file.
// It is safe for concurrent use.
type Extractor struct {
	matcher *HeaderMatcher
}

// NewExtractor returns an Extractor over syn. scanRows bounds the header
// search; <= 0 means DefaultHeaderScanRows.
func NewExtractor(syn Synonyms, scanRows int) *Extractor {
	return &Extractor{matcher: NewHeaderMatcher(syn, scanRows)}
}

// Extract decodes data and returns the employee records it holds.
//
// fileName is used only for its extension. Workbooks are read directly;
// delimited text is decoded as Shift-JIS and then as UTF-8, keeping the
// first attempt that yields records. Attempts run one after another.
func (e *Extractor) Extract(data []byte, fileName string) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	if IsSpreadsheet(fileName) {
		grid, err := DecodeSpreadsheet(data, fileName)
		if err != nil {
			return nil, err
		}
		if res := e.ExtractGrid(grid, EncodingXLSX); len(res.Employees) > 0 {
			return res, nil
		}
		return nil, fmt.Errorf("%s: %w", fileName, ErrExtractionEmpty)
	}

	var parseErr error
	for _, enc := range textCandidates {
		grid, err := DecodeText(data, enc)
		if errors.Is(err, errDecodeFailed) {
			continue
		}
		if err != nil {
			parseErr = err
			continue
		}
		if res := e.ExtractGrid(grid, enc); len(res.Employees) > 0 {
			return res, nil
		}
	}
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w (last parse error: %v)", fileName, ErrExtractionEmpty, parseErr)
	}
	return nil, fmt.Errorf("%s: %w", fileName, ErrExtractionEmpty)
}

// ExtractGrid runs the reshape, header and row stages over an already
// decoded grid. The result may hold zero employees.
func (e *Extractor) ExtractGrid(grid Grid, enc Encoding) *Result {
	grid, resplit := RecoverJoinedCells(grid)
	headerRow, mapping, found := e.matcher.Locate(grid)

	res := &Result{
		Encoding:       string(enc),
		HeaderRow:      headerRow,
		HeaderDetected: found,
		Mapping:        mapping,
		Resplit:        resplit,
	}
	if headerRow < len(grid) {
		res.Headers = headerLabels(grid[headerRow])
	}
	res.Employees = ExtractRows(grid, headerRow, mapping)
	return res
}

// Extract runs an Extractor with the built-in synonyms.
func Extract(data []byte, fileName string) (*Result, error) {
	return NewExtractor(DefaultSynonyms(), DefaultHeaderScanRows).Extract(data, fileName)
}
