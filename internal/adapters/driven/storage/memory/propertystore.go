package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
)

// Ensure PropertyStore implements the interface.
var _ driven.PropertyStore = (*PropertyStore)(nil)

type entry struct {
	property domain.Property
	seq      uint64
}

// PropertyStore is an in-memory implementation of driven.PropertyStore.
// Records live for the lifetime of the process.
type PropertyStore struct {
	mu      sync.RWMutex
	records map[string]entry
	seq     uint64
	now     func() time.Time
}

// NewPropertyStore creates a new in-memory property store.
func NewPropertyStore() *PropertyStore {
	return &PropertyStore{
		records: make(map[string]entry),
		now:     time.Now,
	}
}

// Add stores a new record and returns its ID.
func (s *PropertyStore) Add(_ context.Context, property domain.Property) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	property.ID = uuid.New().String()
	property.CreatedAt = now
	property.UpdatedAt = now

	s.seq++
	s.records[property.ID] = entry{property: property, seq: s.seq}
	return property.ID, nil
}

// Get retrieves a record by ID.
func (s *PropertyStore) Get(_ context.Context, id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := e.property
	return &p, nil
}

// List returns all records, newest first. Records added within the same
// clock tick keep reverse insertion order.
func (s *PropertyStore) List(_ context.Context) ([]domain.Property, error) {
	s.mu.RLock()
	entries := make([]entry, 0, len(s.records))
	for _, e := range s.records {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.property.CreatedAt.Equal(b.property.CreatedAt) {
			return a.property.CreatedAt.After(b.property.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]domain.Property, len(entries))
	for i, e := range entries {
		result[i] = e.property
	}
	return result, nil
}

// Update applies a partial update.
func (s *PropertyStore) Update(_ context.Context, id string, patch domain.PropertyPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}

	next, err := patch.Apply(e.property)
	if err != nil {
		return err
	}
	next.UpdatedAt = s.now()
	e.property = next
	s.records[id] = e
	return nil
}

// Delete removes a record.
func (s *PropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// Count returns the number of stored records.
func (s *PropertyStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
