package manager

import (
	"nanhostd/internal/app/bus"
	"nanhostd/internal/nan/clientreg"
	"nanhostd/internal/nan/configmerge"
	"nanhostd/internal/nan/event"
	"nanhostd/internal/nan/sendqueue"
)

func (m *Manager) handleCommand(cmd event.Command) {
	if !m.gate.Ready() {
		m.gate.Defer(cmd)
		return
	}

	switch payload := cmd.Payload.(type) {
	case event.ConnectCommand:
		m.processConnect(cmd, payload)
	case event.DisconnectCommand:
		m.processDisconnect(cmd, payload)
	case event.PublishCommand:
		m.processPublishOrSubscribe(cmd, payload.ClientID, payload.Config, true)
	case event.SubscribeCommand:
		m.processPublishOrSubscribe(cmd, payload.ClientID, payload.Config, false)
	case event.UpdatePublishCommand:
		m.processUpdateSession(cmd, payload.ClientID, payload.SessionID, payload.Config, true)
	case event.UpdateSubscribeCommand:
		m.processUpdateSession(cmd, payload.ClientID, payload.SessionID, payload.Config, false)
	case event.TerminateSessionCommand:
		m.processTerminateSession(payload)
	case event.SubmitSendMessageCommand:
		m.processSubmitSendMessage(payload)
	case event.SendMessageCommand:
		m.processTransmitNext(cmd)
	case event.EnableUsageCommand:
		m.processEnableUsage()
	case event.DisableUsageCommand:
		m.processDisableUsage()
	case event.StartRangingCommand:
		m.processStartRanging(payload)
	case event.GetCapabilitiesCommand:
		m.processGetCapabilities(cmd, payload)
	case event.SnapshotCommand:
		m.processSnapshot(payload)
	case event.CreateAllDataPathInterfacesCommand:
		m.gate.BeginImmediate()
		m.log.Debug().Msg("create_all_data_path_interfaces: no configured interface set, local no-op")
	case event.DeleteAllDataPathInterfacesCommand:
		m.gate.BeginImmediate()
		m.log.Debug().Msg("delete_all_data_path_interfaces: no configured interface set, local no-op")
	case event.CreateDataPathInterfaceCommand:
		m.roundTrip(cmd, func(tx uint16) { m.adapter.CreateInterface(tx, payload.Name) })
	case event.DeleteDataPathInterfaceCommand:
		m.roundTrip(cmd, func(tx uint16) { m.adapter.DeleteInterface(tx, payload.Name) })
	case event.InitiateDataPathCommand:
		m.roundTrip(cmd, func(tx uint16) {
			m.adapter.InitiateDataPath(tx, payload.NetworkSpecifier, payload.PeerMAC, payload.Interface)
		})
	case event.RespondToDataPathCommand:
		m.roundTrip(cmd, func(tx uint16) {
			m.adapter.RespondToDataPath(tx, payload.Accept, payload.NdpID, payload.Interface, payload.Token)
		})
	case event.EndDataPathCommand:
		m.roundTrip(cmd, func(tx uint16) { m.adapter.EndDataPath(tx, payload.NdpID) })
	default:
		m.gate.BeginImmediate()
		m.log.Warn().Msg("unrecognized command payload")
	}
}

// hasClusterConstraint reports whether cfg expresses a real cluster range
// rather than the "no constraint" default configmerge.Merge treats
// specially.
func hasClusterConstraint(cfg event.ConfigRequest) bool {
	def := configmerge.Default()
	return cfg.ClusterLow != def.ClusterLow || cfg.ClusterHigh != def.ClusterHigh
}

// incompatible reports whether requested's cluster constraint cannot
// coexist with current's, checked directly against the live
// configuration rather than against the freshly computed merge (§9 Open
// Question: reproduced verbatim, not "fixed").
func incompatible(requested, current event.ConfigRequest) bool {
	if !hasClusterConstraint(requested) {
		return false
	}

	return requested.ClusterHigh < current.ClusterLow || requested.ClusterLow > current.ClusterHigh
}

func (m *Manager) processConnect(cmd event.Command, payload event.ConnectCommand) {
	if !m.usageEnabled.Load() {
		m.gate.BeginImmediate()
		m.log.Warn().Int("client_id", int(payload.ClientID)).Msg("connect refused, usage disabled")

		return
	}

	if existing := m.clients.Client(payload.ClientID); existing != nil {
		m.log.Warn().Int("client_id", int(payload.ClientID)).Msg("duplicate client_id, will overwrite on attach")
	}

	haveCurrent := m.phase == bus.PhaseNanUp
	merged, _ := configmerge.Merge(&payload.Config, m.clients.Configs())

	if haveCurrent && payload.Config != m.currentConfig && merged != m.currentConfig && incompatible(payload.Config, m.currentConfig) {
		m.gate.BeginImmediate()

		if payload.Callback != nil {
			m.invoke(func() { payload.Callback.OnConnectFail(payload.ClientID, event.ReasonError) })
		}

		return
	}

	if haveCurrent && merged == m.currentConfig {
		m.gate.BeginImmediate()
		m.attachClient(payload)

		return
	}

	m.pendingMergedConfig = merged

	m.roundTrip(cmd, func(tx uint16) {
		m.adapter.EnableAndConfigure(tx, merged, !haveCurrent)
	})
}

func (m *Manager) attachClient(payload event.ConnectCommand) {
	client := &clientreg.Client{
		ClientID:             payload.ClientID,
		UID:                  payload.UID,
		PID:                  payload.PID,
		CallingPackage:       payload.CallingPackage,
		Config:               payload.Config,
		NotifyIdentityChange: payload.NotifyIdentityChange,
		Callback:             payload.Callback,
	}
	m.clients.AddClient(client)

	if payload.Callback != nil {
		m.invoke(func() { payload.Callback.OnConnectSuccess(payload.ClientID) })
	}

	m.bus.Publish(bus.Message{Type: bus.EventClientRegistered, Data: bus.ClientEvent{ClientID: payload.ClientID}})
}

func (m *Manager) processDisconnect(cmd event.Command, payload event.DisconnectCommand) {
	client := m.clients.RemoveClient(payload.ClientID)
	if client == nil {
		m.gate.BeginImmediate()
		m.log.Warn().Int("client_id", int(payload.ClientID)).Msg("disconnect for unknown client")

		return
	}

	if client.Callback != nil {
		m.invoke(func() { client.Callback.OnDisconnect(payload.ClientID) })
	}

	m.bus.Publish(bus.Message{Type: bus.EventClientRemoved, Data: bus.ClientEvent{ClientID: payload.ClientID}})

	if m.clients.ClientCount() == 0 {
		m.pendingMergedConfig = event.ConfigRequest{}
		m.roundTrip(cmd, func(tx uint16) { m.adapter.Disable(tx) })

		return
	}

	merged, _ := configmerge.Merge(nil, m.clients.Configs())
	if merged == m.currentConfig {
		m.gate.BeginImmediate()
		return
	}

	m.pendingMergedConfig = merged

	m.roundTrip(cmd, func(tx uint16) { m.adapter.EnableAndConfigure(tx, merged, false) })
}

func (m *Manager) processPublishOrSubscribe(cmd event.Command, clientID uint32, cfg event.SessionConfig, isPublish bool) {
	client := m.clients.Client(clientID)
	if client == nil {
		m.gate.BeginImmediate()
		m.log.Warn().Int("client_id", int(clientID)).Msg("publish/subscribe for unknown client")

		return
	}

	m.pendingSessionID = m.clients.NextSessionID()

	m.roundTrip(cmd, func(tx uint16) {
		if isPublish {
			m.adapter.Publish(tx, 0, cfg)
		} else {
			m.adapter.Subscribe(tx, 0, cfg)
		}
	})
}

func (m *Manager) processUpdateSession(cmd event.Command, clientID, sessionID uint32, cfg event.SessionConfig, isPublish bool) {
	session := m.clients.Session(clientID, sessionID)
	if session == nil {
		m.gate.BeginImmediate()
		m.log.Warn().Int("session_id", int(sessionID)).Msg("update for unknown session")

		return
	}

	m.roundTrip(cmd, func(tx uint16) {
		if isPublish {
			m.adapter.Publish(tx, session.PubSubID, cfg)
		} else {
			m.adapter.Subscribe(tx, session.PubSubID, cfg)
		}
	})
}

func (m *Manager) processTerminateSession(payload event.TerminateSessionCommand) {
	m.gate.BeginImmediate()
	m.clients.RemoveSession(payload.ClientID, payload.SessionID)
}

func (m *Manager) processSubmitSendMessage(payload event.SubmitSendMessageCommand) {
	m.gate.BeginImmediate()

	msg := &sendqueue.Message{
		ClientID:   payload.ClientID,
		SessionID:  payload.SessionID,
		PeerID:     payload.PeerID,
		Payload:    payload.Payload,
		MessageID:  payload.MessageID,
		RetryCount: payload.RetryCount,
	}
	m.sendq.Enqueue(msg)

	if !m.sendq.Blocked() {
		m.dispatch.Enqueue(event.NewCommand(event.SendMessageCommand{}))
	}
}

func (m *Manager) processTransmitNext(cmd event.Command) {
	if m.sendq.Blocked() || m.sendq.HostLen() == 0 {
		m.gate.BeginImmediate()
		return
	}

	msg, _ := m.sendq.PopHost()
	m.pendingSendMessage = msg

	m.roundTrip(cmd, func(tx uint16) {
		m.adapter.SendFollowOnMessage(tx, msg.SessionID, msg.PeerID, msg.Payload, msg.MessageID)
	})
}

func (m *Manager) processEnableUsage() {
	m.gate.BeginImmediate()
	m.usageEnabled.Store(true)
	m.bus.Publish(bus.Message{Type: bus.EventUsageStateChanged, Data: bus.UsageStateChanged{Enabled: true}, Critical: true})
}

func (m *Manager) processDisableUsage() {
	m.gate.BeginImmediate()
	m.usageEnabled.Store(false)
	m.bus.Publish(bus.Message{Type: bus.EventUsageStateChanged, Data: bus.UsageStateChanged{Enabled: false}, Critical: true})
}

func (m *Manager) processStartRanging(payload event.StartRangingCommand) {
	m.gate.BeginImmediate()
	m.ranging.StartRanging(payload.ClientID, payload.PeerMAC)
}

func (m *Manager) processGetCapabilities(cmd event.Command, payload event.GetCapabilitiesCommand) {
	if m.capabilities != nil {
		m.gate.BeginImmediate()

		if payload.Callback != nil {
			caps := *m.capabilities
			m.invoke(func() { payload.Callback(caps) })
		}

		return
	}

	m.roundTrip(cmd, func(tx uint16) { m.adapter.GetCapabilities(tx) })
}
