package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// mockPropertyService is a mock implementation of driving.PropertyService.
type mockPropertyService struct {
	properties []domain.Property
	property   *domain.Property
	stats      *domain.Stats
	err        error

	lastFilters domain.SearchFilters
}

func (m *mockPropertyService) Create(_ context.Context, p domain.Property) (*domain.Property, error) {
	return &p, m.err
}

func (m *mockPropertyService) Get(_ context.Context, _ string) (*domain.Property, error) {
	return m.property, m.err
}

func (m *mockPropertyService) List(_ context.Context) ([]domain.Property, error) {
	return m.properties, m.err
}

func (m *mockPropertyService) Search(_ context.Context, filters domain.SearchFilters) ([]domain.Property, error) {
	m.lastFilters = filters
	return m.properties, m.err
}

func (m *mockPropertyService) Update(_ context.Context, _ string, _ domain.PropertyPatch) (*domain.Property, error) {
	return m.property, m.err
}

func (m *mockPropertyService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockPropertyService) Stats(_ context.Context, _ time.Time) (*domain.Stats, error) {
	return m.stats, m.err
}

var testTime = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func sampleFlat() domain.Property {
	return domain.Property{
		ID:        "prop-1",
		Base:      domain.Base{SectorPhase: "Sector 2", Demand: "80 Lakh", CPName: "Jane"},
		Details:   domain.FlatDetails{Project: "Skyline", BHK: "3BHK"},
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}
