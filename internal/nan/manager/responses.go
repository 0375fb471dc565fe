package manager

import (
	"fmt"
	"time"

	"nanhostd/internal/app/bus"
	"nanhostd/internal/nan/clientreg"
	"nanhostd/internal/nan/event"
)

// ndpKey derives a data-path confirm-timer key for an ndp_id when no
// network_specifier exists to key it by. The wire protocol only ever
// hands the host a network_specifier for data paths it initiated itself
// (§4.5); a peer-accepted request only carries ndp_id, so its wake-timer
// is keyed on this synthetic string instead.
func ndpKey(ndpID uint32) string {
	return fmt.Sprintf("ndp:%d", ndpID)
}

func (m *Manager) handleResponse(resp event.Response) {
	answered, matched, shouldDefer := m.gate.MatchResponse(resp)
	if shouldDefer {
		return
	}

	if !matched {
		m.log.Debug().Int("tx", int(resp.TransactionID)).Msg("discarding late or unmatched response")
		return
	}

	switch payload := answered.Payload.(type) {
	case event.ConnectCommand:
		m.onConnectResponse(payload, resp.Payload)
	case event.DisconnectCommand:
		m.onDisconnectResponse(resp.Payload)
	case event.PublishCommand:
		m.onSessionConfigResponse(payload.ClientID, payload.Callback, clientreg.SessionPublish, resp.Payload)
	case event.SubscribeCommand:
		m.onSessionConfigResponse(payload.ClientID, payload.Callback, clientreg.SessionSubscribe, resp.Payload)
	case event.UpdatePublishCommand:
		m.onUpdateSessionResponse(payload.ClientID, payload.SessionID, resp.Payload)
	case event.UpdateSubscribeCommand:
		m.onUpdateSessionResponse(payload.ClientID, payload.SessionID, resp.Payload)
	case event.SendMessageCommand:
		m.onSendMessageResponse(resp.TransactionID, resp.Payload)
	case event.GetCapabilitiesCommand:
		m.onGetCapabilitiesResponse(payload, resp.Payload)
	case event.CreateDataPathInterfaceCommand:
		m.log.Debug().Str("interface", payload.Name).Msg("create interface response")
	case event.DeleteDataPathInterfaceCommand:
		m.log.Debug().Str("interface", payload.Name).Msg("delete interface response")
	case event.InitiateDataPathCommand:
		m.onInitiateDataPathResponse(resp.Payload)
	case event.RespondToDataPathCommand:
		m.onRespondToDataPathResponse(payload, resp.Payload)
	case event.EndDataPathCommand:
		m.log.Debug().Int("tx", int(resp.TransactionID)).Msg("data path response acknowledged")
	}
}

func (m *Manager) onConnectResponse(payload event.ConnectCommand, respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.ConfigResponse)
	if !ok {
		return
	}

	if resp.OK {
		m.phase = bus.PhaseNanUp
		m.currentConfig = m.pendingMergedConfig
		m.bus.Publish(bus.Message{Type: bus.EventPhaseChanged, Data: bus.PhaseChanged{Phase: m.phase}})
		m.attachClient(payload)

		return
	}

	if payload.Callback != nil {
		m.invoke(func() { payload.Callback.OnConnectFail(payload.ClientID, resp.Reason) })
	}
}

func (m *Manager) onDisconnectResponse(respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.ConfigResponse)
	if !ok {
		return
	}

	if !resp.OK {
		m.log.Error().Msg("disconnect reconfiguration failed at the HAL")
		return
	}

	if m.clients.ClientCount() == 0 {
		m.phase = bus.PhaseNanDown
		m.currentConfig = event.ConfigRequest{}
	} else {
		m.phase = bus.PhaseNanUp
		m.currentConfig = m.pendingMergedConfig
	}

	m.bus.Publish(bus.Message{Type: bus.EventPhaseChanged, Data: bus.PhaseChanged{Phase: m.phase}})
}

func (m *Manager) onSessionConfigResponse(clientID uint32, cb event.SessionCallback, kind clientreg.SessionKind, respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.SessionConfigResponse)
	if !ok {
		return
	}

	if !resp.OK {
		if cb != nil {
			m.invoke(func() { cb.OnSessionConfigFail(m.pendingSessionID, resp.Reason) })
		}

		return
	}

	session := &clientreg.Session{
		SessionID: m.pendingSessionID,
		PubSubID:  resp.PubSubID,
		Kind:      kind,
		Callback:  cb,
		Peers:     make(map[uint32][6]byte),
	}
	m.clients.AddSession(clientID, session)

	if cb != nil {
		m.invoke(func() { cb.OnSessionStarted(session.SessionID) })
	}
}

func (m *Manager) onUpdateSessionResponse(clientID, sessionID uint32, respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.SessionConfigResponse)
	if !ok {
		return
	}

	cb := m.sessionCallback(clientID, sessionID)
	if cb == nil {
		return
	}

	if resp.OK {
		m.invoke(func() { cb.OnSessionConfigSuccess(sessionID) })
	} else {
		m.invoke(func() { cb.OnSessionConfigFail(sessionID, resp.Reason) })
	}
}

func (m *Manager) onSendMessageResponse(txID uint16, respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.MessageQueuedResponse)
	if !ok {
		return
	}

	msg := m.pendingSendMessage
	m.pendingSendMessage = nil

	if msg == nil {
		return
	}

	if !resp.OK {
		m.sendq.Requeue(msg)
		m.sendq.SetBlocked(true)

		return
	}

	m.sendq.AcceptIntoFirmware(msg, txID, time.Now())
	m.rearmSendTimer()
	m.dispatch.Enqueue(event.NewCommand(event.SendMessageCommand{}))
}

func (m *Manager) onInitiateDataPathResponse(respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.InitiateDataPathResponse)
	if !ok {
		return
	}

	if resp.OK {
		m.datapaths.Register(resp.NetworkSpecifier)
		return
	}

	m.log.Warn().Msg("initiate_data_path failed at the HAL")
}

// onRespondToDataPathResponse registers the same 5s confirm wake-timer for
// an accepted peer-initiated request that onInitiateDataPathResponse
// registers for a host-initiated one (§4.5: "or a request is accepted
// (from a peer)"), keyed by ndp_id since no network_specifier exists yet
// for this side of the negotiation.
func (m *Manager) onRespondToDataPathResponse(payload event.RespondToDataPathCommand, respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.RespondToDataPathResponse)
	if !ok {
		return
	}

	if !resp.OK {
		m.log.Warn().Msg("respond_to_data_path failed at the HAL")
		return
	}

	if payload.Accept {
		m.datapaths.Register(ndpKey(payload.NdpID))
	}
}

func (m *Manager) onGetCapabilitiesResponse(payload event.GetCapabilitiesCommand, respPayload event.ResponsePayload) {
	resp, ok := respPayload.(event.CapabilitiesResponse)
	if !ok {
		return
	}

	caps := resp.Capabilities
	m.capabilities = &caps

	if payload.Callback != nil {
		m.invoke(func() { payload.Callback(caps) })
	}
}
