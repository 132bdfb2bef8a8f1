package xlsx

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
	"github.com/custodia-labs/propdesk/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.SpreadsheetReader = (*Reader)(nil)

const (
	mimeZip       = "application/zip"
	mimeLegacyXLS = "application/vnd.ms-excel"
)

// Reader parses xlsx workbooks into raw rows.
type Reader struct{}

// NewReader creates a new workbook reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the first sheet of a workbook. Cell values are returned
// unformatted, so numbers arrive as their raw text. Numeric cells with a
// date number format are returned as domain.DateLayout dates. Blank rows
// are skipped; every row keeps its sheet row number.
func (r *Reader) Read(ctx context.Context, data []byte) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.NewParseError("file is empty", nil)
	}
	if err := checkContentType(data); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewParseError("not a valid xlsx workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewParseError("workbook has no sheets", nil)
	}
	logger.Debug("Reading sheet %q of %d", sheets[0], len(sheets))

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewParseError("could not read rows", err)
	}
	if len(rows) < 2 {
		return nil, domain.NewParseError("no data rows found in spreadsheet", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := &sheetCells{f: f, name: sheets[0], date1904: uses1904(f)}

	out := make([]domain.RawRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		sheetRow := i + domain.HeaderRowOffset
		sheet.convertDates(sheetRow, cells)
		row := toRawRow(headers, cells)
		row.Row = sheetRow
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, domain.NewParseError("no data rows found in spreadsheet", nil)
	}
	return out, nil
}

// toRawRow pairs cells with headers. Cells beyond a short row are empty
// and columns without a header are skipped.
func toRawRow(headers, cells []string) domain.RawRow {
	row := domain.RawRow{Cells: make([]domain.Cell, 0, len(headers))}
	for i, h := range headers {
		if h == "" {
			continue
		}
		var v string
		if i < len(cells) {
			v = cells[i]
		}
		row.Cells = append(row.Cells, domain.Cell{Header: h, Value: v})
	}
	return row
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// sheetCells resolves cell types and number formats on one sheet.
type sheetCells struct {
	f        *excelize.File
	name     string
	date1904 bool
}

// convertDates rewrites date-formatted numeric cells of a row in place.
// String cells are never converted, whatever they contain.
func (s *sheetCells) convertDates(sheetRow int, cells []string) {
	for col, v := range cells {
		serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || serial <= 0 {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(col+1, sheetRow)
		if err != nil {
			continue
		}
		if !s.isDateCell(axis) {
			continue
		}
		t, err := excelize.ExcelDateToTime(serial, s.date1904)
		if err != nil {
			continue
		}
		cells[col] = t.Format(domain.DateLayout)
	}
}

func (s *sheetCells) isDateCell(axis string) bool {
	typ, err := s.f.GetCellType(s.name, axis)
	if err != nil {
		return false
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	default:
		return false
	}

	idx, err := s.f.GetCellStyle(s.name, axis)
	if err != nil || idx == 0 {
		return false
	}
	style, err := s.f.GetStyle(idx)
	if err != nil {
		return false
	}
	return isDateFormat(style)
}

// isDateFormat reports whether a style's number format renders a date.
// Time-only formats are not dates.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return hasDateTokens(*style.CustomNumFmt)
	}
	id := style.NumFmt
	return (id >= 14 && id <= 17) || id == 22 ||
		(id >= 27 && id <= 31) || (id >= 34 && id <= 36) ||
		(id >= 50 && id <= 58)
}

// hasDateTokens looks for day or year codes outside quoted text, escapes
// and bracketed sections of a format code.
func hasDateTokens(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\':
			i++
		case c == 'd', c == 'D', c == 'y', c == 'Y':
			return true
		}
	}
	return false
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

// checkContentType accepts zip-based workbooks only.
func checkContentType(data []byte) error {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if m.Is(mimeZip) {
			return nil
		}
	}
	if mt.Is(mimeLegacyXLS) {
		return domain.NewParseError("legacy .xls workbooks are not supported, save the file as .xlsx", nil)
	}
	return domain.NewParseError("unsupported file type "+mt.String(), nil)
}
