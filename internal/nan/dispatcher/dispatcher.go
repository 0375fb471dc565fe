// Package dispatcher implements the single-consumer event FIFO described
// in §4.1 and §5: every command, response, notification and timeout
// arrives as an event.Event, is drained in arrival order on one goroutine,
// and handed to a Handler. Deferred events (§9) are replayed ahead of any
// newly-arrived event on every iteration.
package dispatcher

import (
	"context"

	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/event"
)

// Handler processes one event. It is always invoked from the same
// goroutine that runs Dispatcher.Run, so it may freely mutate core state
// without locking.
type Handler func(e event.Event)

// DeferSource drains whatever events were deferred while processing the
// previous batch. The command gate is the only implementation: deferring
// happens when it refuses a Command, Response or command-response Timeout
// because it is in the wrong state (§4.2).
type DeferSource interface {
	DrainDeferred() []event.Event
}

// Dispatcher is the event queue every client API call, HAL response,
// notification and timer feeds into.
type Dispatcher struct {
	queue chan event.Event
	log   logger.Logger
}

// New returns a Dispatcher with the given queue depth.
func New(queueDepth int, log logger.Logger) *Dispatcher {
	return &Dispatcher{queue: make(chan event.Event, queueDepth), log: log}
}

// Enqueue posts e onto the dispatcher queue. Safe to call concurrently —
// this is the one synchronization point between timer goroutines, HAL
// callback goroutines and the single dispatcher goroutine.
func (d *Dispatcher) Enqueue(e event.Event) {
	d.queue <- e
}

// Run drains the queue until ctx is done, replaying deferSource's buffer
// ahead of each newly-arrived event.
func (d *Dispatcher) Run(ctx context.Context, deferSource DeferSource, handle Handler) {
	for {
		for _, deferred := range deferSource.DrainDeferred() {
			if d.log != nil {
				d.log.Debug().Str("kind", deferred.Kind().String()).Msg("replaying deferred event")
			}

			handle(deferred)
		}

		select {
		case <-ctx.Done():
			return
		case e := <-d.queue:
			handle(e)
		}
	}
}
