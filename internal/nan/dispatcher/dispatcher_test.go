package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nanhostd/internal/nan/event"
)

type fakeDeferSource struct {
	batches [][]event.Event
}

func (f *fakeDeferSource) DrainDeferred() []event.Event {
	if len(f.batches) == 0 {
		return nil
	}

	next := f.batches[0]
	f.batches = f.batches[1:]

	return next
}

func Test_Run_ProcessesEnqueuedEvents(t *testing.T) {
	d := New(4, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan event.Event, 4)

	go d.Run(ctx, &fakeDeferSource{}, func(e event.Event) {
		received <- e
	})

	d.Enqueue(event.NewCommand(event.DisableUsageCommand{}))

	select {
	case e := <-received:
		assert.Equal(t, event.KindCommand, e.Kind())
	case <-time.After(time.Second):
		t.Fatal("expected event to be handled")
	}
}

func Test_Run_ReplaysDeferredBeforeNewEvents(t *testing.T) {
	d := New(4, nil)

	deferredEvent := event.NewCommand(event.EnableUsageCommand{})
	source := &fakeDeferSource{batches: [][]event.Event{{deferredEvent}}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	order := make(chan string, 2)

	go d.Run(ctx, source, func(e event.Event) {
		cmd := e.(event.Command)
		switch cmd.Payload.(type) {
		case event.EnableUsageCommand:
			order <- "deferred"
		case event.DisableUsageCommand:
			order <- "new"
		}
	})

	d.Enqueue(event.NewCommand(event.DisableUsageCommand{}))

	first := <-order
	second := <-order

	assert.Equal(t, "deferred", first)
	assert.Equal(t, "new", second)
}

func Test_Run_StopsOnContextCancel(t *testing.T) {
	d := New(1, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		d.Run(ctx, &fakeDeferSource{}, func(e event.Event) {})
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return after context cancel")
	}
}
