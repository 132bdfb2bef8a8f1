package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
	"github.com/custodia-labs/propdesk/internal/core/ports/driving"
	"github.com/custodia-labs/propdesk/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// Sheet names.
const (
	ExportSheet   = "Properties"
	TemplateSheet = "Properties Template"
)

// ExportService renders stored records as spreadsheets.
type ExportService struct {
	store  driven.PropertyStore
	writer driven.SpreadsheetWriter
}

// NewExportService creates a new export service.
func NewExportService(store driven.PropertyStore, writer driven.SpreadsheetWriter) *ExportService {
	return &ExportService{
		store:  store,
		writer: writer,
	}
}

// Export writes the records that pass filter, newest first.
func (s *ExportService) Export(ctx context.Context, filter domain.ExportFilter, now time.Time) (*domain.ExportFile, error) {
	if s.store == nil || s.writer == nil {
		return nil, domain.ErrNotImplemented
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	var selected []domain.Property
	for i := range all {
		if filter.Matches(&all[i], now) {
			selected = append(selected, all[i])
		}
	}
	logger.Debug("Export selected %d of %d properties", len(selected), len(all))

	if len(selected) == 0 {
		return nil, domain.ErrNothingToExport
	}

	data, err := s.writer.Write(ExportSheet, selected)
	if err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}

	return &domain.ExportFile{
		Name:  domain.ExportFileName(now),
		Data:  data,
		Count: len(selected),
	}, nil
}

// Template returns the import template with one Kothi and one Flat sample.
func (s *ExportService) Template(now time.Time) (*domain.ExportFile, error) {
	if s.writer == nil {
		return nil, domain.ErrNotImplemented
	}

	samples := TemplateSamples(now)
	data, err := s.writer.Write(TemplateSheet, samples)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return &domain.ExportFile{
		Name:  domain.TemplateFileName,
		Data:  data,
		Count: len(samples),
	}, nil
}

// TemplateSamples returns the sample rows written to the import template.
func TemplateSamples(now time.Time) []domain.Property {
	today := now.Format(domain.DateLayout)
	return []domain.Property{
		{
			Base: domain.Base{
				SectorPhase:   "Sector 1",
				PlotSize:      "200 sq yards",
				Marla:         "5",
				PLC:           "10%",
				Road:          "30 feet",
				CPName:        "John Doe",
				ContactNumber: "9876543210",
				CPFirmName:    "ABC Realty",
				Demand:        "50 Lakh",
				Expectations:  "Ready to move",
				Date:          today,
				Facing:        "North",
			},
			Details: domain.KothiDetails{KothiNumber: "123"},
		},
		{
			Base: domain.Base{
				SectorPhase:   "Sector 2",
				PlotSize:      "1200 sq ft",
				Marla:         "3",
				PLC:           "5%",
				Road:          "24 feet",
				CPName:        "Jane Smith",
				ContactNumber: "9876543211",
				CPFirmName:    "XYZ Properties",
				Demand:        "35 Lakh",
				Expectations:  "Immediate possession",
				Date:          today,
				Facing:        "East",
			},
			Details: domain.FlatDetails{
				Project: "Green Valley Apartments",
				Floor:   "3",
				BHK:     "3BHK",
			},
		},
	}
}
