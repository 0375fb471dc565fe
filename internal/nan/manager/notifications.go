package manager

import (
	"nanhostd/internal/app/bus"
	"nanhostd/internal/nan/event"
)

// handleNotification processes a firmware-initiated event. Notifications
// bypass the command gate entirely (§4.2) and are handled unconditionally
// regardless of the gate's current state.
func (m *Manager) handleNotification(n event.Notification) {
	switch payload := n.Payload.(type) {
	case event.InterfaceAddressChangeNotification:
		m.onInterfaceAddressChange(payload)
	case event.ClusterChangeNotification:
		m.onClusterChange(payload)
	case event.MatchNotification:
		m.onMatch(payload)
	case event.SessionTerminatedNotification:
		m.onSessionTerminated(payload)
	case event.MessageReceivedNotification:
		m.onMessageReceived(payload)
	case event.NanDownNotification:
		m.onNanDown(payload)
	case event.MessageSendSuccessNotification:
		m.onMessageSendSuccess(payload)
	case event.MessageSendFailNotification:
		m.onMessageSendFail(payload)
	case event.DataPathRequestNotification:
		m.dpMgr.HandleDataPathRequest(payload.PubSubID, payload.PeerMAC, payload.NdpID, payload.Payload)
	case event.DataPathConfirmNotification:
		m.onDataPathConfirm(payload)
	case event.DataPathEndNotification:
		m.dpMgr.HandleDataPathEnd(payload.NdpID)
	default:
		m.log.Warn().Msg("unrecognized notification payload")
	}
}

func (m *Manager) onInterfaceAddressChange(n event.InterfaceAddressChangeNotification) {
	m.discoveryMAC = n.MAC

	for _, c := range m.clients.All() {
		if !c.NotifyIdentityChange || c.Callback == nil {
			continue
		}

		cb := c.Callback
		m.invoke(func() { cb.OnInterfaceAddressChange(n.MAC) })
	}
}

func (m *Manager) onClusterChange(n event.ClusterChangeNotification) {
	for _, c := range m.clients.All() {
		if c.Callback == nil {
			continue
		}

		cb := c.Callback
		m.invoke(func() { cb.OnClusterChange(n.Joined, n.ClusterID) })
	}
}

func (m *Manager) onMatch(n event.MatchNotification) {
	_, session, ok := m.clients.LookupByPubSubID(n.PubSubID)
	if !ok {
		m.log.Debug().Int("pub_sub_id", int(n.PubSubID)).Msg("match notification for unknown session")
		return
	}

	session.Peers[n.RequestorInstanceID] = n.PeerMAC

	if session.Callback != nil {
		sessionID := session.SessionID
		cb := session.Callback
		m.invoke(func() { cb.OnMatch(sessionID, n.RequestorInstanceID, n.PeerMAC, n.SSI, n.Filter) })
	}
}

func (m *Manager) onSessionTerminated(n event.SessionTerminatedNotification) {
	client, session, ok := m.clients.LookupByPubSubID(n.PubSubID)
	if !ok {
		return
	}

	m.clients.RemoveSession(client.ClientID, session.SessionID)

	if session.Callback != nil {
		sessionID := session.SessionID
		cb := session.Callback
		m.invoke(func() { cb.OnSessionTerminated(sessionID, n.Reason) })
	}
}

func (m *Manager) onMessageReceived(n event.MessageReceivedNotification) {
	_, session, ok := m.clients.LookupByPubSubID(n.PubSubID)
	if !ok {
		m.log.Debug().Int("pub_sub_id", int(n.PubSubID)).Msg("message received for unknown session")
		return
	}

	if session.Callback != nil {
		sessionID := session.SessionID
		cb := session.Callback
		m.invoke(func() { cb.OnMessageReceived(sessionID, n.RequestorInstanceID, n.PeerMAC, n.Payload) })
	}
}

func (m *Manager) onMessageSendSuccess(n event.MessageSendSuccessNotification) {
	msg, ok := m.sendq.RemoveFromFirmware(n.TransactionID)
	if !ok {
		return
	}

	if cb := m.sessionCallback(msg.ClientID, msg.SessionID); cb != nil {
		messageID := msg.MessageID
		m.invoke(func() { cb.OnMessageSendSuccess(messageID) })
	}

	m.rearmSendTimer()
	m.sendq.SetBlocked(false)
	m.dispatch.Enqueue(event.NewCommand(event.SendMessageCommand{}))
}

func (m *Manager) onMessageSendFail(n event.MessageSendFailNotification) {
	msg, ok := m.sendq.RemoveFromFirmware(n.TransactionID)
	if !ok {
		return
	}

	m.rearmSendTimer()

	retryable := n.FailReason == event.SendFailNoOtaAck || n.FailReason == event.SendFailTxFail

	if msg.RetryCount > 0 && retryable {
		msg.RetryCount--
		m.sendq.Requeue(msg)
	} else if cb := m.sessionCallback(msg.ClientID, msg.SessionID); cb != nil {
		messageID := msg.MessageID
		m.invoke(func() { cb.OnMessageSendFail(messageID, event.ReasonError) })
	}

	m.sendq.SetBlocked(false)
	m.dispatch.Enqueue(event.NewCommand(event.SendMessageCommand{}))
}

func (m *Manager) onDataPathConfirm(n event.DataPathConfirmNotification) {
	key := n.NetworkSpecifier
	if key == "" {
		key = ndpKey(n.NdpID)
	}

	m.datapaths.Cancel(key)
	m.dpMgr.HandleDataPathConfirm(n.NdpID, n.NetworkSpecifier, n.PeerMAC, n.Accept, n.Payload)

	m.bus.Publish(bus.Message{
		Type: bus.EventDataPathConfirmed,
		Data: bus.DataPathEvent{NetworkSpecifier: n.NetworkSpecifier},
	})
}

// onNanDown implements the full NAN-DOWN reset (§7, testable property 6):
// clients, current configuration, both send queues and the discovery MAC
// all return to empty/default, and the data-path layer is notified.
func (m *Manager) onNanDown(n event.NanDownNotification) {
	for _, c := range m.clients.All() {
		if c.Callback != nil {
			clientID := c.ClientID
			cb := c.Callback
			m.invoke(func() { cb.OnDisconnect(clientID) })
		}
	}

	m.clients.Purge()
	m.sendq.Clear()
	m.datapaths.Clear()
	m.dpMgr.HandleNanDown()

	m.phase = bus.PhaseNanDown
	m.currentConfig = event.ConfigRequest{}
	m.discoveryMAC = [6]byte{}
	m.capabilities = nil

	if m.sendTimer != nil {
		m.sendTimer.Stop()
		m.sendTimer = nil
	}

	m.bus.Publish(bus.Message{Type: bus.EventPhaseChanged, Data: bus.PhaseChanged{Phase: m.phase}, Critical: true})
}
