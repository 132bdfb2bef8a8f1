package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/propdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// failingStore wraps a memory store and rejects the Nth Add (1-based).
type failingStore struct {
	*memory.PropertyStore
	failAt int
	err    error

	mu    sync.Mutex
	calls int
}

func newFailingStore(failAt int, err error) *failingStore {
	return &failingStore{PropertyStore: memory.NewPropertyStore(), failAt: failAt, err: err}
}

func (s *failingStore) Add(ctx context.Context, p domain.Property) (string, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	if n == s.failAt {
		return "", s.err
	}
	return s.PropertyStore.Add(ctx, p)
}

// listErrorStore fails every List call.
type listErrorStore struct {
	*memory.PropertyStore
}

func (listErrorStore) List(context.Context) ([]domain.Property, error) {
	return nil, errors.New("connection reset")
}

// stubReader returns fixed rows, or an error.
type stubReader struct {
	rows  []domain.RawRow
	err   error
	block chan struct{}
}

func (r *stubReader) Read(ctx context.Context, _ []byte) ([]domain.RawRow, error) {
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.rows, r.err
}

// recordingWriter captures what it was asked to render.
type recordingWriter struct {
	sheet   string
	records []domain.Property
	err     error
}

func (w *recordingWriter) Write(sheet string, records []domain.Property) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.sheet = sheet
	w.records = records
	return []byte("xlsx"), nil
}

// row builds a raw row from header/value pairs.
func row(pairs ...string) domain.RawRow {
	var r domain.RawRow
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Cells = append(r.Cells, domain.Cell{Header: pairs[i], Value: pairs[i+1]})
	}
	return r
}

// noSleep records pauses without waiting.
type noSleep struct {
	mu     sync.Mutex
	pauses []time.Duration
}

func (n *noSleep) sleep(_ context.Context, d time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pauses = append(n.pauses, d)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
}
