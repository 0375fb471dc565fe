package manager

import "nanhostd/internal/nan/event"

// Snapshot requests a point-in-time diagnostic view of core state,
// consumed by the status CLI and never by control flow.
func (m *Manager) Snapshot(done func(event.Snapshot)) {
	m.dispatch.Enqueue(event.NewCommand(event.SnapshotCommand{Callback: done}))
}

func (m *Manager) processSnapshot(payload event.SnapshotCommand) {
	m.gate.BeginImmediate()

	if payload.Callback == nil {
		return
	}

	payload.Callback(event.Snapshot{
		UsageEnabled:     m.usageEnabled.Load(),
		Phase:            m.phase,
		CurrentConfig:    m.currentConfig,
		ClientCount:      m.clients.ClientCount(),
		HostQueueLen:     m.sendq.HostLen(),
		FirmwareQueueLen: m.sendq.FirmwareLen(),
		Blocked:          m.sendq.Blocked(),
		GateState:        m.gate.State(),
		DiscoveryMAC:     m.discoveryMAC,
	})
}
