package event

// ClientCallback is the capability a connected client is invoked through.
// The core never owns the IPC transport — it holds this capability and
// calls it; how the call reaches the client process is someone else's
// concern (§1 Out of scope).
type ClientCallback interface {
	OnConnectSuccess(clientID uint32)
	OnConnectFail(clientID uint32, reason Reason)
	OnDisconnect(clientID uint32)
	OnInterfaceAddressChange(mac [6]byte)
	OnClusterChange(joined bool, clusterID [6]byte)
	OnRangingFailure(clientID uint32, reason Reason)
}

// SessionCallback is the capability a publish/subscribe session is
// invoked through.
type SessionCallback interface {
	OnSessionStarted(sessionID uint32)
	OnSessionConfigSuccess(sessionID uint32)
	OnSessionConfigFail(sessionID uint32, reason Reason)
	OnSessionTerminated(sessionID uint32, reason Reason)
	OnMatch(sessionID uint32, requestorInstanceID uint32, peerMAC [6]byte, ssi, filter []byte)
	OnMessageReceived(sessionID uint32, requestorInstanceID uint32, peerMAC [6]byte, payload []byte)
	OnMessageSendSuccess(messageID uint32)
	OnMessageSendFail(messageID uint32, reason Reason)
}
