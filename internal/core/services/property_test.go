package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/propdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/propdesk/internal/core/domain"
)

func TestNewPropertyService(t *testing.T) {
	store := memory.NewPropertyStore()
	service := NewPropertyService(store)

	require.NotNil(t, service)
	assert.NotNil(t, service.store)
}

func TestPropertyService_Create(t *testing.T) {
	service := NewPropertyService(memory.NewPropertyStore())
	ctx := context.Background()

	created, err := service.Create(ctx, domain.Property{
		Base:    domain.Base{SectorPhase: "Sector 5"},
		Details: domain.FlatDetails{Project: "Skyline", BHK: "2BHK"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Skyline", created.Project())
	assert.False(t, created.CreatedAt.IsZero())
}

func TestPropertyService_Create_Invalid(t *testing.T) {
	service := NewPropertyService(memory.NewPropertyStore())
	ctx := context.Background()

	_, err := service.Create(ctx, domain.Property{Details: domain.FlatDetails{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Project is required for Flat properties")

	_, err = service.Create(ctx, domain.Property{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Property Type is required")
}

func TestPropertyService_GetAndDelete(t *testing.T) {
	service := NewPropertyService(memory.NewPropertyStore())
	ctx := context.Background()

	created, err := service.Create(ctx, domain.Property{Details: domain.PlotDetails{PlotNumber: "7"}})
	require.NoError(t, err)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Delete(ctx, ""), domain.ErrInvalidInput)
}

func TestPropertyService_Update(t *testing.T) {
	service := NewPropertyService(memory.NewPropertyStore())
	ctx := context.Background()

	created, err := service.Create(ctx, domain.Property{Details: domain.KothiDetails{KothiNumber: "1"}})
	require.NoError(t, err)

	t.Run("applies patch", func(t *testing.T) {
		updated, err := service.Update(ctx, created.ID, domain.PropertyPatch{Fields: map[domain.FieldKey]string{
			domain.FieldDemand: "60 Lakh",
		}})
		require.NoError(t, err)
		assert.Equal(t, "60 Lakh", updated.Base.Demand)
		assert.Equal(t, domain.KothiDetails{KothiNumber: "1"}, updated.Details)
	})

	t.Run("rejects flat without project", func(t *testing.T) {
		_, err := service.Update(ctx, created.ID, domain.PropertyPatch{Fields: map[domain.FieldKey]string{
			domain.FieldPropertyType: "Flat",
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		got, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyTypeKothi, got.Type())
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		got, err := service.Update(ctx, created.ID, domain.PropertyPatch{})
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := service.Update(ctx, "missing", domain.PropertyPatch{Fields: map[domain.FieldKey]string{
			domain.FieldDemand: "1",
		}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPropertyService_Search(t *testing.T) {
	store := memory.NewPropertyStore()
	seedStore(t, store,
		domain.Property{
			Base:    domain.Base{SectorPhase: "Sector 1", CPName: "John Doe", CPFirmName: "ABC Realty", Demand: "50 Lakh"},
			Details: domain.KothiDetails{KothiNumber: "123"},
		},
		domain.Property{
			Base:    domain.Base{SectorPhase: "Sector 2", CPName: "Jane Smith", ContactNumber: "9876543211", Demand: "35 Lakh"},
			Details: domain.FlatDetails{Project: "Green Valley Apartments"},
		},
		domain.Property{
			Base:    domain.Base{SectorPhase: "Sector 2", CPName: "Ravi", Demand: "1.2 crore"},
			Details: domain.CommercialDetails{CommercialType: "Shop"},
		},
		domain.Property{
			Base:    domain.Base{SectorPhase: "Sector 9", Demand: "on request"},
			Details: domain.PlotDetails{PlotNumber: "P1"},
		},
	)
	service := NewPropertyService(store)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters domain.SearchFilters
		want    int
	}{
		{"no filters", domain.SearchFilters{}, 4},
		{"term matches firm", domain.SearchFilters{Term: "abc"}, 1},
		{"term matches project", domain.SearchFilters{Term: "green"}, 1},
		{"term matches sector", domain.SearchFilters{Term: "sector 2"}, 2},
		{"type", domain.SearchFilters{PropertyType: domain.PropertyTypePlot}, 1},
		{"sector equality", domain.SearchFilters{SectorPhase: "Sector 2"}, 2},
		{"project equality", domain.SearchFilters{Project: "Green Valley Apartments"}, 1},
		{"min demand", domain.SearchFilters{MinDemand: "40 lakh"}, 2},
		{"max demand", domain.SearchFilters{MaxDemand: "40 lakh"}, 1},
		{"demand window", domain.SearchFilters{MinDemand: "30 lakh", MaxDemand: "60 lakh"}, 2},
		{"combined", domain.SearchFilters{SectorPhase: "Sector 2", MinDemand: "1 cr"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := service.Search(ctx, tt.filters)
			require.NoError(t, err)
			assert.Len(t, results, tt.want)
		})
	}

	_, err := service.Search(ctx, domain.SearchFilters{MinDemand: "cheap"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPropertyService_Stats(t *testing.T) {
	store := memory.NewPropertyStore()
	seedStore(t, store,
		domain.Property{Base: domain.Base{Date: "2024-05-14"}, Details: domain.KothiDetails{}},
		domain.Property{Base: domain.Base{Date: "2024-05-09"}, Details: domain.KothiDetails{}},
		domain.Property{Base: domain.Base{Date: "2024-03-01"}, Details: domain.FlatDetails{Project: "P"}},
	)
	service := NewPropertyService(store)

	stats, err := service.Stats(context.Background(), fixedNow())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByType[domain.PropertyTypeKothi])
	assert.Equal(t, 1, stats.ByType[domain.PropertyTypeFlat])
	assert.Equal(t, 0, stats.ByType[domain.PropertyTypePlot])
	assert.Contains(t, stats.ByType, domain.PropertyTypeCommercial)
	assert.Equal(t, 2, stats.Recent)
}

func TestPropertyService_NotConfigured(t *testing.T) {
	service := NewPropertyService(nil)
	ctx := context.Background()

	_, err := service.Create(ctx, domain.Property{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.Search(ctx, domain.SearchFilters{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.Stats(ctx, fixedNow())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
