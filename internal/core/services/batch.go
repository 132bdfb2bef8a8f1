package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
	"github.com/custodia-labs/propdesk/internal/logger"
)

// BatchWriter persists records in fixed-size chunks with a pause between
// chunks. Chunks run strictly in order and records inside a chunk are
// written one at a time. The first store failure aborts the run.
type BatchWriter struct {
	store     driven.PropertyStore
	chunkSize int
	pause     time.Duration
	limiter   *rate.Limiter

	// sleep waits between chunks. Replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// BatchOption configures a BatchWriter.
type BatchOption func(*BatchWriter)

// WithChunkSize sets the number of records per chunk. Values below 1 are ignored.
func WithChunkSize(n int) BatchOption {
	return func(w *BatchWriter) {
		if n > 0 {
			w.chunkSize = n
		}
	}
}

// WithChunkPause sets the pause between chunks. Negative values are ignored.
func WithChunkPause(d time.Duration) BatchOption {
	return func(w *BatchWriter) {
		if d >= 0 {
			w.pause = d
		}
	}
}

// WithWriteRate caps store writes per second. Zero disables the cap.
func WithWriteRate(perSecond float64) BatchOption {
	return func(w *BatchWriter) {
		if perSecond > 0 {
			w.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			w.limiter = nil
		}
	}
}

// NewBatchWriter creates a batch writer with the default chunk size and pause.
func NewBatchWriter(store driven.PropertyStore, opts ...BatchOption) *BatchWriter {
	w := &BatchWriter{
		store:     store,
		chunkSize: domain.DefaultChunkSize,
		pause:     domain.DefaultChunkPause,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Chunks returns the number of chunks needed for n records.
func (w *BatchWriter) Chunks(n int) int {
	return (n + w.chunkSize - 1) / w.chunkSize
}

// Write persists records and returns how many were written. progress, if
// non-nil, is called after each chunk with k/K*100. On the first failing
// record it returns a *domain.StoreWriteError carrying that record's
// 1-based position; records before it stay persisted.
func (w *BatchWriter) Write(ctx context.Context, records []domain.Property, progress func(float64)) (int, error) {
	if w.store == nil {
		return 0, domain.ErrNotImplemented
	}

	total := w.Chunks(len(records))
	written := 0

	for k := 0; k < total; k++ {
		start := k * w.chunkSize
		end := min(start+w.chunkSize, len(records))

		logger.Debug("Writing chunk %d/%d (records %d-%d)", k+1, total, start+1, end)

		for i := start; i < end; i++ {
			if err := w.wait(ctx); err != nil {
				return written, err
			}
			if _, err := w.store.Add(ctx, records[i]); err != nil {
				return written, &domain.StoreWriteError{Position: i + 1, Err: err}
			}
			written++
		}

		if progress != nil {
			progress(float64(k+1) / float64(total) * 100)
		}

		if k < total-1 && w.pause > 0 {
			if err := w.sleep(ctx, w.pause); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}

func (w *BatchWriter) wait(ctx context.Context) error {
	if w.limiter == nil {
		return ctx.Err()
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
