package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nanhostd/internal/config"
	"nanhostd/internal/config/logger"
)

// MessageType identifies the kind of state-change event carried by a Message.
type MessageType string

// Event types broadcast by the state manager as NAN usage and phase change.
const (
	EventUsageStateChanged MessageType = "usage_state_changed"
	EventPhaseChanged      MessageType = "phase_changed"
	EventClientRegistered  MessageType = "client_registered"
	EventClientRemoved     MessageType = "client_removed"
	EventDataPathConfirmed MessageType = "data_path_confirmed"
	EventDataPathTimedOut  MessageType = "data_path_timed_out"
)

// Phase represents the coarse NAN usage lifecycle.
type Phase string

const (
	PhaseNanDown Phase = "nan_down"
	PhaseNanUp   Phase = "nan_up"
)

// Message represents a single bus event.
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// UsageStateChanged indicates the usage_enabled flag flipped.
type UsageStateChanged struct {
	Enabled bool
}

// PhaseChanged indicates a NAN_UP / NAN_DOWN transition.
type PhaseChanged struct {
	Phase Phase
}

// ClientEvent identifies the client a client-lifecycle message concerns.
type ClientEvent struct {
	ClientID uint32
}

// DataPathEvent identifies the network specifier a data-path message concerns.
type DataPathEvent struct {
	NetworkSpecifier string
}

// Bus handles pub/sub messaging of state-change events.
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

type bus struct {
	cfg         *config.Config
	subscribers []chan Message
	mu          sync.RWMutex
	closed      bool
	log         logger.Logger
}

// New creates a new Bus.
func New(cfg *config.Config, log logger.Logger) Bus {
	return &bus{
		cfg:         cfg,
		subscribers: make([]chan Message, 0),
		log:         log,
	}
}

// Subscribe creates a new subscription channel, torn down when ctx is done.
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, b.cfg.Broadcast.Buffer)
	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish sends a message to all subscribers, dropping it for slow
// non-critical subscribers rather than blocking the dispatcher.
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Str("type", string(msg.Type)).Str("data", formatData(msg.Data)).Msg("bus event")
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			if msg.Critical {
				go func(c chan Message, m Message) {
					defer func() { recover() }()

					c <- m
				}(ch, msg)
			}
		}
	}
}

// Close closes all subscriber channels.
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
}

func (b *bus) unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case UsageStateChanged:
		return fmt.Sprintf("{enabled: %t}", d.Enabled)
	case PhaseChanged:
		return fmt.Sprintf("{phase: %s}", d.Phase)
	case ClientEvent:
		return fmt.Sprintf("{client_id: %d}", d.ClientID)
	case DataPathEvent:
		return fmt.Sprintf("{network_specifier: %s}", d.NetworkSpecifier)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a no-op bus, useful where broadcast is disabled.
func NoOp() Bus {
	return &noOpBus{}
}

type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(msg Message) {}
func (n *noOpBus) Close()              {}
