// Package roster extracts employee records from messy spreadsheet and CSV
// exports.
//
// The input is a file's full bytes plus its name. Column layout, header row
// position, delimiter and encoding are all unknown up front, so extraction
// runs as a four-stage pipeline:
//
//  1. Decode: bytes become a [Grid]. Delimited text is tried as Shift-JIS
//     (codepage 932) first and UTF-8 second; native workbooks are read
//     directly.
//  2. Reshape: a grid whose rows all collapsed into a single cell is split
//     again on tab or comma.
//  3. Locate header: the first row within the scan window that matches at
//     least two of the CODE/NAME/DEPARTMENT/ROLE synonym lists becomes the
//     header. Without one, row 0 and a positional mapping are assumed.
//  4. Extract rows: every later row with a usable name becomes an
//     [Employee], including a "label: value" restatement of the whole row.
//
// Rows that cannot produce a record are skipped silently. Only a run that
// yields zero records across every decode attempt fails, with
// [ErrExtractionEmpty].
package roster
