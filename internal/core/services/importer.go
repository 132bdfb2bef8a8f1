package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
	"github.com/custodia-labs/propdesk/internal/core/ports/driving"
	"github.com/custodia-labs/propdesk/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService runs the spreadsheet import pipeline:
// read, normalise, validate, filter, then batch write.
type ImportService struct {
	reader driven.SpreadsheetReader
	writer *BatchWriter
	now    func() time.Time

	running atomic.Bool
}

// NewImportService creates a new import service.
func NewImportService(reader driven.SpreadsheetReader, writer *BatchWriter) *ImportService {
	return &ImportService{
		reader: reader,
		writer: writer,
		now:    time.Now,
	}
}

// Preview parses and validates a workbook without writing anything.
func (s *ImportService) Preview(ctx context.Context, data []byte) (*domain.ImportPreview, error) {
	if s.reader == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Import Preview")

	rows, err := s.reader.Read(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}
	logger.Debug("Read %d data rows", len(rows))

	candidates := Normalise(rows, s.now())
	report := ValidateAll(candidates)
	eligible, rejected := Eligible(candidates)

	for _, w := range report.Warnings {
		logger.Warn("%s", w)
	}
	logger.Debug("%d eligible, %d rejected, %d violations", len(eligible), len(rejected), len(report.Violations))

	preview := &domain.ImportPreview{
		TotalRows:  len(rows),
		Candidates: candidates,
		Eligible:   eligible,
		Violations: report.Violations,
		Warnings:   report.Warnings,
		Columns:    columnsFound(rows),
	}

	if len(eligible) == 0 {
		return preview, &domain.EmptyResultError{Rows: len(rows), Columns: preview.Columns}
	}
	return preview, nil
}

// Import writes the eligible rows of a workbook. Only one import may run
// at a time on a service.
func (s *ImportService) Import(
	ctx context.Context,
	data []byte,
	opts domain.ImportOptions,
	progress driving.ProgressFunc,
) (*domain.ImportResult, error) {
	if s.writer == nil {
		return nil, domain.ErrNotImplemented
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrImportInProgress
	}
	defer s.running.Store(false)

	preview, err := s.Preview(ctx, data)
	if err != nil {
		return nil, err
	}

	if preview.HasViolations() && !opts.Force {
		return nil, fmt.Errorf("%w: %d blocking issue(s)", domain.ErrValidationFailed, len(preview.Violations))
	}

	records := make([]domain.Property, 0, len(preview.Eligible))
	for _, c := range preview.Eligible {
		p, err := c.Property()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", c.Row, err)
		}
		records = append(records, p)
	}

	logger.Section("Import Write")
	result := &domain.ImportResult{
		Skipped: preview.TotalRows - len(records),
		Chunks:  s.writer.Chunks(len(records)),
	}

	written, err := s.writer.Write(ctx, records, progress)
	result.Written = written
	if err != nil {
		return result, fmt.Errorf("write properties: %w", err)
	}

	logger.Info("Imported %d properties in %d chunks", result.Written, result.Chunks)
	return result, nil
}

// columnsFound lists the field keys the first row maps onto, in column order.
func columnsFound(rows []domain.RawRow) []domain.FieldKey {
	if len(rows) == 0 {
		return nil
	}
	var found []domain.FieldKey
	for _, col := range domain.Columns {
		if _, ok := rows[0].Lookup(col.Header); ok {
			found = append(found, col.Key)
		}
	}
	return found
}
