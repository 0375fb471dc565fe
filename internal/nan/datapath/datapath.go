// Package datapath owns the per-network_specifier data-path confirmation
// wake-timers (§4.5). Timer goroutines never touch registry state
// directly — on expiry they only post a Timeout event through the
// EventSender capability, and the dispatcher goroutine is the one that
// later removes the registration while processing that event. This keeps
// the registry itself lock-free, matching the single-threaded cooperative
// core (§5).
package datapath

import (
	"time"

	"nanhostd/internal/nan/event"
)

// EventSender is the non-owning handle back into the dispatcher queue
// (§9 "Cyclic reference"). datapath holds this, never an owning reference
// to the state manager.
type EventSender interface {
	Enqueue(e event.Event)
}

// Registry tracks at most one pending confirm timer per network_specifier.
type Registry struct {
	sender  EventSender
	timeout time.Duration
	timers  map[string]*time.Timer
}

// New returns a Registry that posts TimeoutDataPathConfirm events through
// sender after timeout elapses.
func New(sender EventSender, timeout time.Duration) *Registry {
	return &Registry{sender: sender, timeout: timeout, timers: make(map[string]*time.Timer)}
}

// Register arms (or re-arms, replacing any existing registration) a
// confirm timer for networkSpecifier.
func (r *Registry) Register(networkSpecifier string) {
	if existing, ok := r.timers[networkSpecifier]; ok {
		existing.Stop()
	}

	r.timers[networkSpecifier] = time.AfterFunc(r.timeout, func() {
		timeoutEvent := event.NewTimeout(event.TimeoutDataPathConfirm)
		timeoutEvent.NetworkSpecifier = networkSpecifier

		r.sender.Enqueue(timeoutEvent)
	})
}

// Cancel stops and removes the timer for networkSpecifier, idempotent if
// none is registered (matches a confirmation notification arriving).
func (r *Registry) Cancel(networkSpecifier string) {
	if timer, ok := r.timers[networkSpecifier]; ok {
		timer.Stop()
		delete(r.timers, networkSpecifier)
	}
}

// Forget removes the registration without stopping the timer — used when
// processing the Timeout event the timer itself produced, since the timer
// has already fired.
func (r *Registry) Forget(networkSpecifier string) {
	delete(r.timers, networkSpecifier)
}

// Pending reports whether a timer is currently registered for
// networkSpecifier.
func (r *Registry) Pending(networkSpecifier string) bool {
	_, ok := r.timers[networkSpecifier]
	return ok
}

// Clear cancels every pending timer, the NAN-DOWN reset.
func (r *Registry) Clear() {
	for _, timer := range r.timers {
		timer.Stop()
	}

	r.timers = make(map[string]*time.Timer)
}
