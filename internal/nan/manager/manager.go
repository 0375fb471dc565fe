// Package manager implements the state manager (§4.1–§4.7): it owns the
// client/session registry, the send-message queue, the data-path confirm
// timers, the command-in-flight gate, and the HAL adapter handle, and
// wires them together into the Control API and HAL event handlers
// described in §6. Every method that mutates core state runs on the
// single dispatcher goroutine (§5); Control API methods only enqueue a
// Command and return immediately.
package manager

import (
	"context"
	"sync/atomic"
	"time"

	"nanhostd/internal/app/bus"
	"nanhostd/internal/app/worker"
	"nanhostd/internal/config"
	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/callback"
	"nanhostd/internal/nan/clientreg"
	"nanhostd/internal/nan/command"
	"nanhostd/internal/nan/configmerge"
	"nanhostd/internal/nan/datapath"
	"nanhostd/internal/nan/dispatcher"
	"nanhostd/internal/nan/event"
	"nanhostd/internal/nan/hal"
	"nanhostd/internal/nan/sendqueue"
	"nanhostd/internal/nan/txid"
)

// RangingSubsystem is the external collaborator that actually drives RTT
// ranging (§1 Out of scope); the core only forwards start requests.
type RangingSubsystem interface {
	StartRanging(clientID uint32, peerMAC [6]byte)
}

// NoOpRanging discards every start request; useful when no ranging
// implementation is wired in yet.
type NoOpRanging struct{}

func (NoOpRanging) StartRanging(uint32, [6]byte) {}

// Manager is the NAN host control plane's single state manager.
type Manager struct {
	cfg     *config.Config
	log     logger.Logger
	bus     bus.Bus
	pool    worker.Pool
	adapter hal.Adapter
	dpMgr   callback.DataPathManager
	ranging RangingSubsystem

	dispatch  *dispatcher.Dispatcher
	gate      *command.Gate
	txids     *txid.Allocator
	clients   *clientreg.Registry
	sendq     *sendqueue.Queue
	datapaths *datapath.Registry

	usageEnabled atomic.Bool

	// phase, currentConfig, capabilities and discoveryMAC are mutated only
	// on the dispatcher goroutine, same discipline as clients/sendq.
	phase         bus.Phase
	currentConfig event.ConfigRequest
	capabilities  *event.Capabilities
	discoveryMAC  [6]byte

	// Context carried from a round-trip command's submission through to
	// its response, since the gate only retains the original Command, not
	// any locally-computed intermediate values. At most one of these is
	// meaningful at a time — the gate guarantees only one round trip is
	// ever in flight.
	pendingMergedConfig event.ConfigRequest
	pendingSessionID    uint32
	pendingSendMessage  *sendqueue.Message

	sendTimer *time.Timer
}

// New constructs a Manager. Call Attach once a Dispatcher exists to wire
// the two together; New alone is not yet usable.
func New(cfg *config.Config, adapter hal.Adapter, dpMgr callback.DataPathManager, ranging RangingSubsystem, b bus.Bus, pool worker.Pool, log logger.Logger) *Manager {
	if dpMgr == nil {
		dpMgr = callback.NoOpDataPathManager{}
	}

	if ranging == nil {
		ranging = NoOpRanging{}
	}

	return &Manager{
		cfg:           cfg,
		log:           log,
		bus:           b,
		pool:          pool,
		adapter:       adapter,
		dpMgr:         dpMgr,
		ranging:       ranging,
		gate:          command.NewGate(),
		txids:         txid.NewAllocator(),
		clients:       clientreg.New(),
		sendq:         sendqueue.New(),
		phase:         bus.PhaseNanDown,
		currentConfig: configmerge.Default(),
	}
}

// Attach wires the manager to its dispatcher: the manager enqueues
// follow-up commands and timer events onto it, and the manager's
// data-path registry holds it as its non-owning EventSender handle (§9
// "Cyclic reference"). The dispatcher receives the manager's Handle only
// when Run is called, so neither constructor needs the other.
func (m *Manager) Attach(d *dispatcher.Dispatcher) {
	m.dispatch = d
	m.datapaths = datapath.New(d, m.cfg.Timeouts.DataPathConfirm)
}

// Gate exposes the command gate as a dispatcher.DeferSource.
func (m *Manager) Gate() *command.Gate {
	return m.gate
}

// Handle processes one event. Always invoked from the dispatcher
// goroutine.
func (m *Manager) Handle(e event.Event) {
	switch evt := e.(type) {
	case event.Command:
		m.handleCommand(evt)
	case event.Response:
		m.handleResponse(evt)
	case event.Notification:
		m.handleNotification(evt)
	case event.Timeout:
		m.handleTimeout(evt)
	default:
		m.log.Warn().Msg("unrecognized event kind")
	}
}

// invoke runs fn on a pool-bounded goroutine so a slow client callback
// never stalls the dispatcher goroutine that queued it.
func (m *Manager) invoke(fn func()) {
	go func() {
		ctx := context.Background()
		if err := m.pool.Acquire(ctx); err != nil {
			return
		}
		defer m.pool.Release()

		fn()
	}()
}

// roundTrip commits cmd as the in-flight command, arms its response
// timer, and issues the HAL call that will eventually complete it.
// Callers must have already checked m.gate.Ready().
func (m *Manager) roundTrip(cmd event.Command, issue func(tx uint16)) {
	tx := m.txids.Next()
	m.gate.BeginRoundTrip(cmd, tx)
	m.armCommandTimer(tx)
	issue(tx)
}

func (m *Manager) armCommandTimer(tx uint16) {
	d := m.dispatch

	time.AfterFunc(m.cfg.Timeouts.CommandResponse, func() {
		timeoutEvent := event.NewTimeout(event.TimeoutCommandResponse)
		timeoutEvent.TransactionID = tx

		d.Enqueue(timeoutEvent)
	})
}

func (m *Manager) sessionCallback(clientID, sessionID uint32) event.SessionCallback {
	session := m.clients.Session(clientID, sessionID)
	if session == nil {
		return nil
	}

	return session.Callback
}

func (m *Manager) rearmSendTimer() {
	if m.sendTimer != nil {
		m.sendTimer.Stop()
		m.sendTimer = nil
	}

	deadline, ok := m.sendq.NextTimeoutDeadline(m.cfg.Timeouts.SendMessage)
	if !ok {
		return
	}

	delay := time.Until(deadline)
	if delay < 0 {
		delay = 0
	}

	d := m.dispatch

	m.sendTimer = time.AfterFunc(delay, func() {
		d.Enqueue(event.NewTimeout(event.TimeoutSendMessage))
	})
}
