package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
	"github.com/custodia-labs/propdesk/internal/core/ports/driving"
)

// Ensure PropertyService implements the interface.
var _ driving.PropertyService = (*PropertyService)(nil)

// PropertyService manages individual property records.
type PropertyService struct {
	store driven.PropertyStore
}

// NewPropertyService creates a new property service.
func NewPropertyService(store driven.PropertyStore) *PropertyService {
	return &PropertyService{store: store}
}

// Create validates and stores a new record.
func (s *PropertyService) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := checkRecord(property.Fields()); err != nil {
		return nil, err
	}

	id, err := s.store.Add(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("add property: %w", err)
	}
	return s.store.Get(ctx, id)
}

// Get retrieves a record by ID.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// List returns all records, newest first.
func (s *PropertyService) List(ctx context.Context) ([]domain.Property, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Search returns the records matching every set filter, newest first.
func (s *PropertyService) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Property, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	demand, err := parseDemandRange(filters.MinDemand, filters.MaxDemand)
	if err != nil {
		return nil, err
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	if filters.IsEmpty() {
		return all, nil
	}

	var matched []domain.Property
	for i := range all {
		p := &all[i]
		if filters.MatchesFields(p) && demand.contains(p.Base.Demand) {
			matched = append(matched, *p)
		}
	}
	return matched, nil
}

// Update applies a partial update after validating the result.
func (s *PropertyService) Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	next, err := patch.Apply(*current)
	if err != nil {
		return nil, err
	}
	if err := checkRecord(next.Fields()); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return s.store.Get(ctx, id)
}

// Delete removes a record.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}

// Stats summarises the stored records. Recent counts records dated within
// the last seven days of now.
func (s *PropertyService) Stats(ctx context.Context, now time.Time) (*domain.Stats, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	stats := &domain.Stats{
		Total:  len(all),
		ByType: make(map[domain.PropertyType]int, len(domain.PropertyTypes)),
	}
	for _, pt := range domain.PropertyTypes {
		stats.ByType[pt] = 0
	}
	for i := range all {
		stats.ByType[all[i].Type()]++
		if domain.DateRangeWeek.Contains(all[i].Base.Date, now) {
			stats.Recent++
		}
	}
	return stats, nil
}

// checkRecord rejects a field bag with blocking validation findings.
func checkRecord(f domain.Fields) error {
	report := Validate(domain.Candidate{Fields: f})
	if report.OK() {
		return nil
	}
	msgs := make([]string, len(report.Violations))
	for i, v := range report.Violations {
		msgs[i] = v.Message
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}
