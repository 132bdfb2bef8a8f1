// Package xlsx reads and writes property spreadsheets in the Office Open
// XML workbook format using excelize.
//
// Only the first sheet of an uploaded workbook is read. Row 1 holds the
// headers and every following row is one record. Written workbooks use
// the fixed column order and widths of domain.Columns.
package xlsx
