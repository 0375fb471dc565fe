package worker

import (
	"context"

	"nanhostd/internal/config"
)

// Pool bounds how many client callback invocations run concurrently, so one
// slow IPC client can't stall delivery of an event to the others.
type Pool interface {
	Acquire(ctx context.Context) error
	Release()
}

// pool is a semaphore-backed Pool.
type pool struct {
	sem chan struct{}
}

// NewWorkerPool creates a new worker pool sized to the configured maximum
// concurrent callback invocations.
func NewWorkerPool(cfg *config.Config) Pool {
	return &pool{
		sem: make(chan struct{}, cfg.Concurrency.CallbackWorkers),
	}
}

// Acquire blocks until a slot is free or ctx is done.
func (w *pool) Acquire(ctx context.Context) error {
	select {
	case w.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees the slot acquired by a matching Acquire.
func (w *pool) Release() {
	<-w.sem
}
