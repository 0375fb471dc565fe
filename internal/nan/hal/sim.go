package hal

import (
	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/event"
)

// Sim is a loopback Adapter used by cmd/nand when no real firmware driver
// is wired in: every call immediately posts a successful response back
// through sender, useful for exercising the control plane end-to-end in
// development.
type Sim struct {
	sender EventSender
	log    logger.Logger
}

// EventSender is the non-owning handle the sim posts its synthesized
// responses through.
type EventSender interface {
	Enqueue(e event.Event)
}

// NewSim returns a Sim adapter that always reports success.
func NewSim(sender EventSender, log logger.Logger) *Sim {
	return &Sim{sender: sender, log: log}
}

func (s *Sim) EnableAndConfigure(tx uint16, cfg event.ConfigRequest, initial bool) {
	s.respond(tx, event.ConfigResponse{OK: true})
}

func (s *Sim) Disable(tx uint16) {
	s.respond(tx, event.ConfigResponse{OK: true})
}

func (s *Sim) Publish(tx uint16, pubSubID uint32, cfg event.SessionConfig) {
	s.respond(tx, event.SessionConfigResponse{OK: true, IsPublish: true, PubSubID: uint32(tx)})
}

func (s *Sim) Subscribe(tx uint16, pubSubID uint32, cfg event.SessionConfig) {
	s.respond(tx, event.SessionConfigResponse{OK: true, IsPublish: false, PubSubID: uint32(tx)})
}

func (s *Sim) SendFollowOnMessage(tx uint16, sessionPubSubID, peerID uint32, payload []byte, msgID uint32) {
	s.respond(tx, event.MessageQueuedResponse{OK: true})
}

func (s *Sim) GetCapabilities(tx uint16) {
	s.respond(tx, event.CapabilitiesResponse{Capabilities: event.Capabilities{
		MaxConcurrentSessions:  8,
		SupportedDataPathCount: 4,
		SupportsNDPE:           true,
	}})
}

func (s *Sim) CreateInterface(tx uint16, name string) {
	s.respond(tx, event.CreateInterfaceResponse{OK: true})
}

func (s *Sim) DeleteInterface(tx uint16, name string) {
	s.respond(tx, event.DeleteInterfaceResponse{OK: true})
}

func (s *Sim) InitiateDataPath(tx uint16, networkSpecifier string, peerMAC [6]byte, iface string) {
	s.respond(tx, event.InitiateDataPathResponse{OK: true, NetworkSpecifier: networkSpecifier})
}

func (s *Sim) RespondToDataPath(tx uint16, accept bool, ndpID uint32, iface string, token []byte) {
	s.respond(tx, event.RespondToDataPathResponse{OK: true})
}

func (s *Sim) EndDataPath(tx uint16, ndpID uint32) {
	s.respond(tx, event.EndDataPathResponse{OK: true})
}

func (s *Sim) Deinit() {}

func (s *Sim) respond(tx uint16, payload event.ResponsePayload) {
	if s.log != nil {
		s.log.Debug().Int("tx", int(tx)).Msg("sim adapter responding")
	}

	s.sender.Enqueue(event.NewResponse(tx, payload))
}
