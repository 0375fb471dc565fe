// Package event defines the tagged envelope that every input to the
// dispatcher is wrapped in: a command, a HAL response, a HAL notification,
// or a timer firing. There is deliberately no string-keyed bundle here —
// each concrete type carries exactly its own typed payload, and Kind()
// makes the set exhaustive at the switch sites that matter (command FSM,
// dispatcher defer logic).
package event

import "github.com/google/uuid"

// Kind classifies an Event for dispatch and FSM routing.
type Kind int

const (
	KindCommand Kind = iota
	KindResponse
	KindNotification
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindResponse:
		return "response"
	case KindNotification:
		return "notification"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Event is the sealed interface every dispatcher input implements.
// The unexported method confines implementations to this package's
// concrete Command/Response/Notification/Timeout wrappers.
type Event interface {
	Kind() Kind
	CorrelationID() string
	sealed()
}

type envelope struct {
	correlationID string
}

func (e envelope) CorrelationID() string { return e.correlationID }
func (e envelope) sealed()               {}

func newEnvelope() envelope {
	return envelope{correlationID: uuid.NewString()}
}

// Command wraps an application- or internally-initiated action bound for
// the command-in-flight FSM.
type Command struct {
	envelope
	Payload CommandPayload
}

func (Command) Kind() Kind { return KindCommand }

// NewCommand stamps a fresh correlation id for log tracing.
func NewCommand(payload CommandPayload) Command {
	return Command{envelope: newEnvelope(), Payload: payload}
}

// Response wraps a firmware reply echoing the transaction id of the
// command it answers.
type Response struct {
	envelope
	TransactionID uint16
	Payload       ResponsePayload
}

func (Response) Kind() Kind { return KindResponse }

func NewResponse(txID uint16, payload ResponsePayload) Response {
	return Response{envelope: newEnvelope(), TransactionID: txID, Payload: payload}
}

// Notification wraps a firmware-initiated event that bypasses the command
// gate entirely.
type Notification struct {
	envelope
	Payload NotificationPayload
}

func (Notification) Kind() Kind { return KindNotification }

func NewNotification(payload NotificationPayload) Notification {
	return Notification{envelope: newEnvelope(), Payload: payload}
}

// TimeoutKind distinguishes which wake-timer fired.
type TimeoutKind int

const (
	TimeoutCommandResponse TimeoutKind = iota
	TimeoutSendMessage
	TimeoutDataPathConfirm
)

// Timeout wraps a wake-timer firing, delivered through the same
// dispatcher as every other event so timer callbacks never mutate core
// state off the single dispatcher goroutine.
type Timeout struct {
	envelope
	TimeoutKind TimeoutKind
	// TransactionID is set for TimeoutCommandResponse.
	TransactionID uint16
	// NetworkSpecifier is set for TimeoutDataPathConfirm.
	NetworkSpecifier string
}

func (Timeout) Kind() Kind { return KindTimeout }

func NewTimeout(kind TimeoutKind) Timeout {
	return Timeout{envelope: newEnvelope(), TimeoutKind: kind}
}

// CommandPayload is implemented by every concrete command sub-type
// (see payloads.go).
type CommandPayload interface {
	// RequiresRoundTrip reports whether processing this command requires
	// allocating a transaction id and waiting on a HAL response.
	RequiresRoundTrip() bool
	commandPayload()
}

// ResponsePayload is implemented by every concrete HAL response sub-type.
type ResponsePayload interface {
	responsePayload()
}

// NotificationPayload is implemented by every concrete HAL notification
// sub-type.
type NotificationPayload interface {
	notificationPayload()
}
