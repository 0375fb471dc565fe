package manager

import (
	"time"

	"nanhostd/internal/app/bus"
	"nanhostd/internal/nan/event"
)

func (m *Manager) handleTimeout(t event.Timeout) {
	switch t.TimeoutKind {
	case event.TimeoutCommandResponse:
		m.handleCommandTimeout(t)
	case event.TimeoutSendMessage:
		m.handleSendMessageTimeout()
	case event.TimeoutDataPathConfirm:
		m.handleDataPathTimeout(t)
	}
}

func (m *Manager) handleCommandTimeout(t event.Timeout) {
	inFlight, shouldDefer := m.gate.FireTimeout(t.TransactionID, t)
	if shouldDefer {
		return
	}

	if inFlight == nil {
		// Stale timer: the command it belonged to already completed via a
		// real response before this timer fired.
		return
	}

	m.failInFlightCommand(inFlight.Command)
}

// failInFlightCommand synthesizes the failure every registered caller is
// owed when its HAL round-trip times out (§4.2, §7), using the dedicated
// TIMEOUT reason rather than ERROR (§9 Open Question, resolved).
func (m *Manager) failInFlightCommand(cmd event.Command) {
	switch payload := cmd.Payload.(type) {
	case event.ConnectCommand:
		if payload.Callback != nil {
			m.invoke(func() { payload.Callback.OnConnectFail(payload.ClientID, event.ReasonTimeout) })
		}
	case event.DisconnectCommand:
		m.log.Warn().Int("client_id", int(payload.ClientID)).Msg("disconnect reconfiguration timed out")
	case event.PublishCommand:
		if payload.Callback != nil {
			m.invoke(func() { payload.Callback.OnSessionConfigFail(m.pendingSessionID, event.ReasonTimeout) })
		}
	case event.SubscribeCommand:
		if payload.Callback != nil {
			m.invoke(func() { payload.Callback.OnSessionConfigFail(m.pendingSessionID, event.ReasonTimeout) })
		}
	case event.UpdatePublishCommand:
		if cb := m.sessionCallback(payload.ClientID, payload.SessionID); cb != nil {
			m.invoke(func() { cb.OnSessionConfigFail(payload.SessionID, event.ReasonTimeout) })
		}
	case event.UpdateSubscribeCommand:
		if cb := m.sessionCallback(payload.ClientID, payload.SessionID); cb != nil {
			m.invoke(func() { cb.OnSessionConfigFail(payload.SessionID, event.ReasonTimeout) })
		}
	case event.SendMessageCommand:
		m.failPendingSendMessage()
	case event.GetCapabilitiesCommand:
		// No failure variant exists for get_capabilities in the façade
		// (§6 lists only on_capabilities_updated); the caller's own
		// timeout governs a request that never completes.
	case event.InitiateDataPathCommand, event.RespondToDataPathCommand, event.EndDataPathCommand,
		event.CreateDataPathInterfaceCommand, event.DeleteDataPathInterfaceCommand:
		m.log.Warn().Msg("data path command timed out")
	}
}

func (m *Manager) failPendingSendMessage() {
	msg := m.pendingSendMessage
	m.pendingSendMessage = nil

	if msg == nil {
		return
	}

	if cb := m.sessionCallback(msg.ClientID, msg.SessionID); cb != nil {
		messageID := msg.MessageID
		m.invoke(func() { cb.OnMessageSendFail(messageID, event.ReasonTimeout) })
	}

	m.sendq.SetBlocked(false)
	m.dispatch.Enqueue(event.NewCommand(event.SendMessageCommand{}))
}

// handleSendMessageTimeout fails, with ERROR, the first firmware-queue
// entry and every following entry whose transmission window
// (cfg.Timeouts.SendMessage) has elapsed (§4.4: "For each expired
// entry invoke on_message_send_fail(ERROR)") — a distinct failure class
// from the dedicated command-response TIMEOUT reason used elsewhere in
// this file (§9 Open Question).
func (m *Manager) handleSendMessageTimeout() {
	expired := m.sendq.ExpireDue(time.Now(), m.cfg.Timeouts.SendMessage)

	for _, msg := range expired {
		if cb := m.sessionCallback(msg.ClientID, msg.SessionID); cb != nil {
			messageID := msg.MessageID
			m.invoke(func() { cb.OnMessageSendFail(messageID, event.ReasonError) })
		}
	}

	m.rearmSendTimer()
	m.sendq.SetBlocked(false)
	m.dispatch.Enqueue(event.NewCommand(event.SendMessageCommand{}))
}

func (m *Manager) handleDataPathTimeout(t event.Timeout) {
	m.datapaths.Forget(t.NetworkSpecifier)
	m.dpMgr.HandleDataPathTimeout(t.NetworkSpecifier)

	m.bus.Publish(bus.Message{
		Type: bus.EventDataPathTimedOut,
		Data: bus.DataPathEvent{NetworkSpecifier: t.NetworkSpecifier},
	})
}
