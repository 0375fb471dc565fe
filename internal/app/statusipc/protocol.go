// Package statusipc carries the single-shot diagnostic request `nand
// status` sends to a running `nand serve` instance, over the same kind of
// Unix socket the teacher uses for log streaming (internal/app/logs in
// the teacher repo), simplified to one request/response pair instead of
// a subscription stream.
package statusipc

import "nanhostd/internal/nan/event"

// MessageType distinguishes the one request this protocol carries from
// its reply, mirroring the teacher's MessageSubscribe/MessageLog pair.
type MessageType string

const (
	MessageSnapshotRequest  MessageType = "snapshot_request"
	MessageSnapshotResponse MessageType = "snapshot_response"
)

// Request is the only message a client ever sends.
type Request struct {
	Type MessageType `json:"type"`
}

// Response carries the manager's Snapshot, or an error if one could not
// be produced.
type Response struct {
	Type     MessageType    `json:"type"`
	Snapshot event.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}
