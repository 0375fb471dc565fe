package manager

import "nanhostd/internal/nan/event"

// Connect enqueues a CONNECT command (§6 Control API).
func (m *Manager) Connect(clientID, uid, pid uint32, callingPackage string, cfg event.ConfigRequest, notifyIdentityChange bool, cb event.ClientCallback) {
	m.dispatch.Enqueue(event.NewCommand(event.ConnectCommand{
		ClientID:             clientID,
		UID:                  uid,
		PID:                  pid,
		CallingPackage:       callingPackage,
		Config:               cfg,
		NotifyIdentityChange: notifyIdentityChange,
		Callback:             cb,
	}))
}

// Disconnect enqueues a DISCONNECT command.
func (m *Manager) Disconnect(clientID uint32) {
	m.dispatch.Enqueue(event.NewCommand(event.DisconnectCommand{ClientID: clientID}))
}

// TerminateSession enqueues a TERMINATE_SESSION command.
func (m *Manager) TerminateSession(clientID, sessionID uint32) {
	m.dispatch.Enqueue(event.NewCommand(event.TerminateSessionCommand{ClientID: clientID, SessionID: sessionID}))
}

// Publish enqueues a PUBLISH command.
func (m *Manager) Publish(clientID uint32, cfg event.SessionConfig, cb event.SessionCallback) {
	m.dispatch.Enqueue(event.NewCommand(event.PublishCommand{ClientID: clientID, Config: cfg, Callback: cb}))
}

// UpdatePublish enqueues an UPDATE_PUBLISH command.
func (m *Manager) UpdatePublish(clientID, sessionID uint32, cfg event.SessionConfig) {
	m.dispatch.Enqueue(event.NewCommand(event.UpdatePublishCommand{ClientID: clientID, SessionID: sessionID, Config: cfg}))
}

// Subscribe enqueues a SUBSCRIBE command.
func (m *Manager) Subscribe(clientID uint32, cfg event.SessionConfig, cb event.SessionCallback) {
	m.dispatch.Enqueue(event.NewCommand(event.SubscribeCommand{ClientID: clientID, Config: cfg, Callback: cb}))
}

// UpdateSubscribe enqueues an UPDATE_SUBSCRIBE command.
func (m *Manager) UpdateSubscribe(clientID, sessionID uint32, cfg event.SessionConfig) {
	m.dispatch.Enqueue(event.NewCommand(event.UpdateSubscribeCommand{ClientID: clientID, SessionID: sessionID, Config: cfg}))
}

// SendMessage enqueues a follow-on message onto the host queue (§4.4).
func (m *Manager) SendMessage(clientID, sessionID, peerID uint32, payload []byte, messageID uint32, retryCount int) {
	m.dispatch.Enqueue(event.NewCommand(event.SubmitSendMessageCommand{
		ClientID:   clientID,
		SessionID:  sessionID,
		PeerID:     peerID,
		Payload:    payload,
		MessageID:  messageID,
		RetryCount: retryCount,
	}))
}

// StartRanging enqueues a START_RANGING command.
func (m *Manager) StartRanging(clientID uint32, peerMAC [6]byte) {
	m.dispatch.Enqueue(event.NewCommand(event.StartRangingCommand{ClientID: clientID, PeerMAC: peerMAC}))
}

// EnableUsage enqueues an ENABLE_USAGE command.
func (m *Manager) EnableUsage() {
	m.dispatch.Enqueue(event.NewCommand(event.EnableUsageCommand{}))
}

// DisableUsage enqueues a DISABLE_USAGE command.
func (m *Manager) DisableUsage() {
	m.dispatch.Enqueue(event.NewCommand(event.DisableUsageCommand{}))
}

// IsUsageEnabled reads the one cross-thread-readable atom (§5) directly,
// without going through the dispatcher.
func (m *Manager) IsUsageEnabled() bool {
	return m.usageEnabled.Load()
}

// GetCapabilities enqueues a GET_CAPABILITIES command; done reports the
// result once it is available, served from cache when possible.
func (m *Manager) GetCapabilities(done func(event.Capabilities)) {
	m.dispatch.Enqueue(event.NewCommand(event.GetCapabilitiesCommand{Callback: done}))
}

// CreateAllDataPathInterfaces enqueues a CREATE_ALL_DATA_PATH_INTERFACES command.
func (m *Manager) CreateAllDataPathInterfaces() {
	m.dispatch.Enqueue(event.NewCommand(event.CreateAllDataPathInterfacesCommand{}))
}

// DeleteAllDataPathInterfaces enqueues a DELETE_ALL_DATA_PATH_INTERFACES command.
func (m *Manager) DeleteAllDataPathInterfaces() {
	m.dispatch.Enqueue(event.NewCommand(event.DeleteAllDataPathInterfacesCommand{}))
}

// CreateDataPathInterface enqueues a CREATE_DATA_PATH_INTERFACE command.
func (m *Manager) CreateDataPathInterface(name string) {
	m.dispatch.Enqueue(event.NewCommand(event.CreateDataPathInterfaceCommand{Name: name}))
}

// DeleteDataPathInterface enqueues a DELETE_DATA_PATH_INTERFACE command.
func (m *Manager) DeleteDataPathInterface(name string) {
	m.dispatch.Enqueue(event.NewCommand(event.DeleteDataPathInterfaceCommand{Name: name}))
}

// InitiateDataPathSetup enqueues an INITIATE_DATA_PATH_SETUP command.
func (m *Manager) InitiateDataPathSetup(networkSpecifier string, peerMAC [6]byte, iface string) {
	m.dispatch.Enqueue(event.NewCommand(event.InitiateDataPathCommand{
		NetworkSpecifier: networkSpecifier,
		PeerMAC:          peerMAC,
		Interface:        iface,
	}))
}

// RespondToDataPathRequest enqueues a RESPOND_TO_DATA_PATH_REQUEST command.
func (m *Manager) RespondToDataPathRequest(accept bool, ndpID uint32, iface string, token []byte) {
	m.dispatch.Enqueue(event.NewCommand(event.RespondToDataPathCommand{
		Accept:    accept,
		NdpID:     ndpID,
		Interface: iface,
		Token:     token,
	}))
}

// EndDataPath enqueues an END_DATA_PATH command.
func (m *Manager) EndDataPath(ndpID uint32) {
	m.dispatch.Enqueue(event.NewCommand(event.EndDataPathCommand{NdpID: ndpID}))
}

// --- Inbound HAL events (§6) ---

// OnResponse feeds a HAL response into the dispatcher.
func (m *Manager) OnResponse(txID uint16, payload event.ResponsePayload) {
	m.dispatch.Enqueue(event.NewResponse(txID, payload))
}

// OnNotification feeds a HAL notification into the dispatcher.
func (m *Manager) OnNotification(payload event.NotificationPayload) {
	m.dispatch.Enqueue(event.NewNotification(payload))
}
