// Package hal defines the thin contract between the core and the firmware
// driver (§4.7). The core calls, the adapter performs, and every HAL
// response or notification arrives back asynchronously as an event on the
// dispatcher — Adapter itself never calls back synchronously.
package hal

import "nanhostd/internal/nan/event"

// Adapter is the façade the manager issues every HAL-bound command
// through. Every method is a non-blocking submission; completion is
// reported later as an event.Response or event.Notification.
type Adapter interface {
	EnableAndConfigure(tx uint16, cfg event.ConfigRequest, initial bool)
	Disable(tx uint16)
	Publish(tx uint16, pubSubID uint32, cfg event.SessionConfig)
	Subscribe(tx uint16, pubSubID uint32, cfg event.SessionConfig)
	SendFollowOnMessage(tx uint16, sessionPubSubID, peerID uint32, payload []byte, msgID uint32)
	GetCapabilities(tx uint16)
	CreateInterface(tx uint16, name string)
	DeleteInterface(tx uint16, name string)
	InitiateDataPath(tx uint16, networkSpecifier string, peerMAC [6]byte, iface string)
	RespondToDataPath(tx uint16, accept bool, ndpID uint32, iface string, token []byte)
	EndDataPath(tx uint16, ndpID uint32)
	Deinit()
}
