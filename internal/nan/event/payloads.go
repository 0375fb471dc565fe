package event

import "nanhostd/internal/app/bus"

// ConfigRequest is one client's desired NAN configuration, the input to
// the config merger and the unit CurrentNanConfiguration is expressed in.
type ConfigRequest struct {
	Support5gBand         bool
	MasterPreference      int
	ClusterLow            int
	ClusterHigh           int
	NotifyIdentityChange  bool
}

// SendFailReason classifies why a follow-on message transmission failed.
type SendFailReason int

const (
	SendFailUnspecified SendFailReason = iota
	SendFailNoOtaAck
	SendFailTxFail
)

// Reason classifies why a command or session operation failed.
type Reason int

const (
	ReasonError Reason = iota
	ReasonTimeout
)

// --- Command payloads (Control API, §6, plus the internal
// transmit_next_message follow-on) ---

// ConnectCommand attaches a new client.
type ConnectCommand struct {
	ClientID              uint32
	UID, PID              uint32
	CallingPackage         string
	Config                ConfigRequest
	NotifyIdentityChange  bool
	Callback              ClientCallback
}

func (ConnectCommand) commandPayload() {}
func (c ConnectCommand) RequiresRoundTrip() bool {
	// The round-trip decision depends on whether the merged config differs
	// from the current one; the manager decides this dynamically and, when
	// a round trip is needed, issues the HAL call itself rather than
	// relying on a static answer here. Neither the manager nor the command
	// gate reads this value.
	return false
}

// DisconnectCommand detaches a client and tears down its sessions.
type DisconnectCommand struct {
	ClientID uint32
}

func (DisconnectCommand) commandPayload()          {}
func (DisconnectCommand) RequiresRoundTrip() bool { return false }

// PublishCommand requests a new publish session.
type PublishCommand struct {
	ClientID uint32
	Config   SessionConfig
	Callback SessionCallback
}

func (PublishCommand) commandPayload()          {}
func (PublishCommand) RequiresRoundTrip() bool { return true }

// SubscribeCommand requests a new subscribe session.
type SubscribeCommand struct {
	ClientID uint32
	Config   SessionConfig
	Callback SessionCallback
}

func (SubscribeCommand) commandPayload()          {}
func (SubscribeCommand) RequiresRoundTrip() bool { return true }

// SessionConfig is the discovery configuration for a publish/subscribe
// session.
type SessionConfig struct {
	ServiceName string
	SSI         []byte
	Filter      []byte
}

// UpdatePublishCommand reconfigures an existing publish session.
type UpdatePublishCommand struct {
	ClientID, SessionID uint32
	Config              SessionConfig
}

func (UpdatePublishCommand) commandPayload()          {}
func (UpdatePublishCommand) RequiresRoundTrip() bool { return true }

// UpdateSubscribeCommand reconfigures an existing subscribe session.
type UpdateSubscribeCommand struct {
	ClientID, SessionID uint32
	Config              SessionConfig
}

func (UpdateSubscribeCommand) commandPayload()          {}
func (UpdateSubscribeCommand) RequiresRoundTrip() bool { return true }

// TerminateSessionCommand tears a session down without waiting on a HAL
// response.
type TerminateSessionCommand struct {
	ClientID, SessionID uint32
}

func (TerminateSessionCommand) commandPayload()          {}
func (TerminateSessionCommand) RequiresRoundTrip() bool { return false }

// SubmitSendMessageCommand is send_message()'s Control API entry point: it
// assigns an arrival_seq, inserts into the host queue, and triggers at
// most one SendMessageCommand — it never itself waits on a HAL response.
type SubmitSendMessageCommand struct {
	ClientID, SessionID, PeerID uint32
	Payload                     []byte
	MessageID                   uint32
	RetryCount                  int
}

func (SubmitSendMessageCommand) commandPayload()          {}
func (SubmitSendMessageCommand) RequiresRoundTrip() bool { return false }

// SendMessageCommand is the internal transmit_next_message trigger, never
// issued directly by a client — SubmitSendMessageCommand enqueues onto
// the host queue and this command is what actually drives one entry to
// firmware.
type SendMessageCommand struct{}

func (SendMessageCommand) commandPayload()          {}
func (SendMessageCommand) RequiresRoundTrip() bool { return true }

// EnableUsageCommand flips usage_enabled on.
type EnableUsageCommand struct{}

func (EnableUsageCommand) commandPayload()          {}
func (EnableUsageCommand) RequiresRoundTrip() bool { return false }

// DisableUsageCommand flips usage_enabled off.
type DisableUsageCommand struct{}

func (DisableUsageCommand) commandPayload()          {}
func (DisableUsageCommand) RequiresRoundTrip() bool { return false }

// StartRangingCommand kicks off an RTT session; the ranging subsystem is
// an external collaborator, this just forwards the request.
type StartRangingCommand struct {
	ClientID uint32
	PeerMAC  [6]byte
}

func (StartRangingCommand) commandPayload()          {}
func (StartRangingCommand) RequiresRoundTrip() bool { return false }

// GetCapabilitiesCommand requests the adapter's capability set, served
// from cache when available (§4.2). Whether that requires a HAL
// round-trip depends on the live cache, which only the manager can see,
// so RequiresRoundTrip always reports false here — the manager decides
// and, when a round trip is needed, drives it explicitly.
type GetCapabilitiesCommand struct {
	Callback func(Capabilities)
}

func (GetCapabilitiesCommand) commandPayload()          {}
func (GetCapabilitiesCommand) RequiresRoundTrip() bool { return false }

// CreateAllDataPathInterfacesCommand is handled locally: the manager logs
// it and creates no interface, and no HAL call is made.
type CreateAllDataPathInterfacesCommand struct{}

func (CreateAllDataPathInterfacesCommand) commandPayload()          {}
func (CreateAllDataPathInterfacesCommand) RequiresRoundTrip() bool { return false }

// DeleteAllDataPathInterfacesCommand is handled locally: the manager logs
// it and deletes no interface, and no HAL call is made.
type DeleteAllDataPathInterfacesCommand struct{}

func (DeleteAllDataPathInterfacesCommand) commandPayload()          {}
func (DeleteAllDataPathInterfacesCommand) RequiresRoundTrip() bool { return false }

// SnapshotCommand requests a point-in-time diagnostic view of core state
// (status CLI, never control flow). It never needs a HAL round trip.
type SnapshotCommand struct {
	Callback func(Snapshot)
}

func (SnapshotCommand) commandPayload()          {}
func (SnapshotCommand) RequiresRoundTrip() bool { return false }

// Snapshot is a point-in-time diagnostic view of core state.
type Snapshot struct {
	UsageEnabled     bool
	Phase            bus.Phase
	CurrentConfig    ConfigRequest
	ClientCount      int
	HostQueueLen     int
	FirmwareQueueLen int
	Blocked          bool
	GateState        string
	DiscoveryMAC     [6]byte
}

// CreateDataPathInterfaceCommand creates one named NDP interface.
type CreateDataPathInterfaceCommand struct {
	Name string
}

func (CreateDataPathInterfaceCommand) commandPayload()          {}
func (CreateDataPathInterfaceCommand) RequiresRoundTrip() bool { return true }

// DeleteDataPathInterfaceCommand deletes one named NDP interface.
type DeleteDataPathInterfaceCommand struct {
	Name string
}

func (DeleteDataPathInterfaceCommand) commandPayload()          {}
func (DeleteDataPathInterfaceCommand) RequiresRoundTrip() bool { return true }

// InitiateDataPathCommand starts a data-path setup toward a peer.
type InitiateDataPathCommand struct {
	NetworkSpecifier string
	PeerMAC          [6]byte
	Interface        string
}

func (InitiateDataPathCommand) commandPayload()          {}
func (InitiateDataPathCommand) RequiresRoundTrip() bool { return true }

// RespondToDataPathCommand answers an inbound data-path request.
type RespondToDataPathCommand struct {
	Accept    bool
	NdpID     uint32
	Interface string
	Token     []byte
}

func (RespondToDataPathCommand) commandPayload()          {}
func (RespondToDataPathCommand) RequiresRoundTrip() bool { return true }

// EndDataPathCommand tears an established data-path down.
type EndDataPathCommand struct {
	NdpID uint32
}

func (EndDataPathCommand) commandPayload()          {}
func (EndDataPathCommand) RequiresRoundTrip() bool { return true }

// --- Response payloads (§6 Inbound HAL events — responses) ---

type ConfigResponse struct {
	OK     bool
	Reason Reason
}

func (ConfigResponse) responsePayload() {}

type SessionConfigResponse struct {
	OK        bool
	IsPublish bool
	PubSubID  uint32
	Reason    Reason
}

func (SessionConfigResponse) responsePayload() {}

type MessageQueuedResponse struct {
	OK     bool
	Reason Reason
}

func (MessageQueuedResponse) responsePayload() {}

type CapabilitiesResponse struct {
	Capabilities Capabilities
}

func (CapabilitiesResponse) responsePayload() {}

// Capabilities mirrors the adapter's reported feature set.
type Capabilities struct {
	MaxConcurrentSessions  int
	SupportedDataPathCount int
	SupportsNDPE           bool
}

type CreateInterfaceResponse struct {
	OK     bool
	Reason Reason
}

func (CreateInterfaceResponse) responsePayload() {}

type DeleteInterfaceResponse struct {
	OK     bool
	Reason Reason
}

func (DeleteInterfaceResponse) responsePayload() {}

type InitiateDataPathResponse struct {
	OK               bool
	NdpID            uint32
	NetworkSpecifier string
	Reason           Reason
}

func (InitiateDataPathResponse) responsePayload() {}

type RespondToDataPathResponse struct {
	OK     bool
	Reason Reason
}

func (RespondToDataPathResponse) responsePayload() {}

type EndDataPathResponse struct {
	OK     bool
	Reason Reason
}

func (EndDataPathResponse) responsePayload() {}

// --- Notification payloads (§6 Inbound HAL events — notifications) ---

type InterfaceAddressChangeNotification struct {
	MAC [6]byte
}

func (InterfaceAddressChangeNotification) notificationPayload() {}

type ClusterChangeNotification struct {
	Joined    bool
	ClusterID [6]byte
}

func (ClusterChangeNotification) notificationPayload() {}

type MatchNotification struct {
	PubSubID           uint32
	RequestorInstanceID uint32
	PeerMAC            [6]byte
	SSI                []byte
	Filter             []byte
}

func (MatchNotification) notificationPayload() {}

type SessionTerminatedNotification struct {
	PubSubID  uint32
	IsPublish bool
	Reason    Reason
}

func (SessionTerminatedNotification) notificationPayload() {}

type MessageReceivedNotification struct {
	PubSubID           uint32
	RequestorInstanceID uint32
	PeerMAC            [6]byte
	Payload            []byte
}

func (MessageReceivedNotification) notificationPayload() {}

type NanDownNotification struct {
	Reason Reason
}

func (NanDownNotification) notificationPayload() {}

type MessageSendSuccessNotification struct {
	TransactionID uint16
}

func (MessageSendSuccessNotification) notificationPayload() {}

type MessageSendFailNotification struct {
	TransactionID uint16
	FailReason    SendFailReason
}

func (MessageSendFailNotification) notificationPayload() {}

type DataPathRequestNotification struct {
	PubSubID uint32
	PeerMAC  [6]byte
	NdpID    uint32
	Payload  []byte
}

func (DataPathRequestNotification) notificationPayload() {}

type DataPathConfirmNotification struct {
	NdpID            uint32
	NetworkSpecifier string
	PeerMAC          [6]byte
	Accept           bool
	Reason           Reason
	Payload          []byte
}

func (DataPathConfirmNotification) notificationPayload() {}

type DataPathEndNotification struct {
	NdpID uint32
}

func (DataPathEndNotification) notificationPayload() {}
