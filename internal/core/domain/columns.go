package domain

import "strings"

// Column maps a human-readable spreadsheet header to a field key.
type Column struct {
	// Header is the display name used in row 1 of the spreadsheet.
	Header string

	// Key is the internal field key.
	Key FieldKey

	// Width is the export column width in characters.
	Width float64
}

// Columns is the fixed, ordered column mapping used for both import and export.
var Columns = []Column{
	{Header: "Property Type", Key: FieldPropertyType, Width: 15},
	{Header: "Kothi Number", Key: FieldKothiNumber, Width: 12},
	{Header: "Plot Number", Key: FieldPlotNumber, Width: 12},
	{Header: "Project", Key: FieldProject, Width: 20},
	{Header: "Floor", Key: FieldFloor, Width: 8},
	{Header: "BHK", Key: FieldBHK, Width: 8},
	{Header: "Commercial Type", Key: FieldCommercialType, Width: 15},
	{Header: "Area", Key: FieldArea, Width: 10},
	{Header: "Sector/Phase", Key: FieldSectorPhase, Width: 15},
	{Header: "Plot Size", Key: FieldPlotSize, Width: 12},
	{Header: "Marla", Key: FieldMarla, Width: 8},
	{Header: "PLC", Key: FieldPLC, Width: 10},
	{Header: "Road", Key: FieldRoad, Width: 15},
	{Header: "CP Name", Key: FieldCPName, Width: 20},
	{Header: "Contact Number", Key: FieldContactNumber, Width: 15},
	{Header: "CP Firm Name", Key: FieldCPFirmName, Width: 20},
	{Header: "Demand", Key: FieldDemand, Width: 15},
	{Header: "Expectations", Key: FieldExpectations, Width: 30},
	{Header: "Date", Key: FieldDate, Width: 12},
	{Header: "Facing", Key: FieldFacing, Width: 12},
}

// Headers returns the display headers in column order.
func Headers() []string {
	headers := make([]string, len(Columns))
	for i, col := range Columns {
		headers[i] = col.Header
	}
	return headers
}

// ColumnByHeader finds a column by display header, ignoring case and
// surrounding whitespace.
func ColumnByHeader(header string) (Column, bool) {
	want := NormaliseHeader(header)
	for _, col := range Columns {
		if NormaliseHeader(col.Header) == want {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnByKey finds a column by field key.
func ColumnByKey(key FieldKey) (Column, bool) {
	for _, col := range Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// NormaliseHeader lower-cases and trims a header for fallback matching.
func NormaliseHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
