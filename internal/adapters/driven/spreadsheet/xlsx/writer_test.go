package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/services"
)

func sampleRecords() []domain.Property {
	return []domain.Property{
		{
			Base: domain.Base{
				SectorPhase: "Sector 1", PlotSize: "200 sq yards", Marla: "5", PLC: "10%",
				Road: "30 feet", CPName: "John Doe", ContactNumber: "9876543210",
				CPFirmName: "ABC Realty", Demand: "50 Lakh", Expectations: "Ready to move",
				Date: "2024-05-01", Facing: "North",
			},
			Details: domain.KothiDetails{KothiNumber: "123"},
		},
		{
			Base:    domain.Base{SectorPhase: "Sector 2", ContactNumber: "0098", Date: "2024-05-02"},
			Details: domain.FlatDetails{Project: "Green Valley", Floor: "3", BHK: "3BHK"},
		},
		{
			Base:    domain.Base{Date: "2024-05-03", Demand: "1.2 crore"},
			Details: domain.CommercialDetails{CommercialType: "Shop", Area: "400 sq ft", Floor: "G"},
		},
		{
			Base:    domain.Base{Date: "2024-05-04"},
			Details: domain.PlotDetails{PlotNumber: "P-9"},
		},
	}
}

func TestWriter_Write_Layout(t *testing.T) {
	data, err := NewWriter().Write("Properties", sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Properties"}, f.GetSheetList())

	rows, err := f.GetRows("Properties")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, domain.Headers(), rows[0])

	for i, col := range domain.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		width, err := f.GetColWidth("Properties", name)
		require.NoError(t, err)
		assert.InDelta(t, col.Width, width, 0.01, col.Header)
	}

	panes, err := f.GetPanes("Properties")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestWriter_Write_StringCells(t *testing.T) {
	data, err := NewWriter().Write("Properties", sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Contact Number is column O.
	v, err := f.GetCellValue("Properties", "O3")
	require.NoError(t, err)
	assert.Equal(t, "0098", v)

	typ, err := f.GetCellType("Properties", "O2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, typ)
}

func TestWriter_Write_EmptyFieldsLeaveBlankCells(t *testing.T) {
	data, err := NewWriter().Write("Properties", sampleRecords()[3:])
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Kothi Number column B is blank for a Plot.
	v, err := f.GetCellValue("Properties", "B2")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = f.GetCellValue("Properties", "C2")
	require.NoError(t, err)
	assert.Equal(t, "P-9", v)
}

func TestWriter_Write_NoRecords(t *testing.T) {
	data, err := NewWriter().Write("Properties", nil)
	require.NoError(t, err)

	_, err = NewReader().Read(context.Background(), data)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestRoundTrip_ExportThenImport(t *testing.T) {
	records := sampleRecords()
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	data, err := NewWriter().Write("Properties", records)
	require.NoError(t, err)

	rows, err := NewReader().Read(context.Background(), data)
	require.NoError(t, err)

	cands := services.Normalise(rows, today)
	require.Len(t, cands, len(records))

	for i, c := range cands {
		assert.Equal(t, i+domain.HeaderRowOffset, c.Row)
		assert.Equal(t, records[i].Fields(), c.Fields, "record %d", i)

		back, err := c.Property()
		require.NoError(t, err)
		assert.Equal(t, records[i].Base, back.Base)
		assert.Equal(t, records[i].Details, back.Details)
	}
}

func TestTemplate_ReadsBackAsTwoValidRows(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	data, err := NewWriter().Write(services.TemplateSheet, services.TemplateSamples(now))
	require.NoError(t, err)

	rows, err := NewReader().Read(context.Background(), data)
	require.NoError(t, err)

	cands := services.Normalise(rows, now)
	eligible, rejected := services.Eligible(cands)
	assert.Len(t, eligible, 2)
	assert.Empty(t, rejected)
	assert.Equal(t, "2024-06-01", cands[0].Fields.Get(domain.FieldDate))
}
