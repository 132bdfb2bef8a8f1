package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.SpreadsheetWriter = (*Writer)(nil)

const defaultSheet = "Sheet1"

// Writer renders records into single-sheet xlsx workbooks.
type Writer struct{}

// NewWriter creates a new workbook writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders records in domain.Columns order. Every value is written as
// a string cell; empty fields leave the cell blank.
func (w *Writer) Write(sheet string, records []domain.Property) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close is called on each path below.

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if sheet != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}
	f.SetActiveSheet(index)

	if err := writeHeader(f, sheet); err != nil {
		f.Close()
		return nil, err
	}

	for i := range records {
		if err := writeRecord(f, sheet, i+2, &records[i]); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, col := range domain.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellStr(sheet, cell, col.Header); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return fmt.Errorf("set width %s: %w", name, err)
		}
	}
	return nil
}

func writeRecord(f *excelize.File, sheet string, row int, p *domain.Property) error {
	fields := p.Fields()
	for i, col := range domain.Columns {
		value := fields.Get(col.Key)
		if value == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		if err := f.SetCellStr(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
