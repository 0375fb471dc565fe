// Package command implements the command-in-flight gate (§4.2): at most
// one HAL command outstanding at a time, modeled as a looplab/fsm state
// machine with exactly two states. Callers check Ready() before deciding
// how to process a command, then commit that decision with BeginImmediate
// or BeginRoundTrip. An invalid-event error from fsm.Event would indicate
// a caller bug (committing while not Ready) rather than a normal code
// path, since Ready() is meant to be checked first.
package command

import (
	"context"

	"github.com/looplab/fsm"

	"nanhostd/internal/nan/event"
)

const (
	StateWait            = "wait"
	StateWaitForResponse = "wait_for_response"
)

const (
	eventNoRoundTrip = "command_no_round_trip"
	eventRoundTrip   = "command_round_trip"
	eventResponse    = "response_match"
	eventTimeout     = "response_timeout"
)

// InFlight describes the currently outstanding HAL command, so a timeout
// can synthesize a failure response for whatever command it belongs to.
type InFlight struct {
	TransactionID uint16
	Command       event.Command
}

// Gate serializes HAL commands through the Wait / WaitForResponse states.
type Gate struct {
	fsm      *fsm.FSM
	inFlight *InFlight
	deferred []event.Event
}

// NewGate returns a Gate starting in Wait with nothing in flight.
func NewGate() *Gate {
	g := &Gate{}

	g.fsm = fsm.NewFSM(
		StateWait,
		fsm.Events{
			{Name: eventNoRoundTrip, Src: []string{StateWait}, Dst: StateWait},
			{Name: eventRoundTrip, Src: []string{StateWait}, Dst: StateWaitForResponse},
			{Name: eventResponse, Src: []string{StateWaitForResponse}, Dst: StateWait},
			{Name: eventTimeout, Src: []string{StateWaitForResponse}, Dst: StateWait},
		},
		fsm.Callbacks{
			"leave_" + StateWaitForResponse: func(ctx context.Context, e *fsm.Event) {
				g.inFlight = nil
			},
		},
	)

	return g
}

// State returns the gate's current state, StateWait or StateWaitForResponse.
func (g *Gate) State() string {
	return g.fsm.Current()
}

// Ready reports whether the gate will accept a new command right now.
func (g *Gate) Ready() bool {
	return g.fsm.Current() == StateWait
}

// InFlight returns the currently outstanding command, or nil if none.
func (g *Gate) InFlight() *InFlight {
	return g.inFlight
}

// Defer pushes e onto the side-buffer replayed ahead of the next new
// dispatcher event (§9 "Deferred messages").
func (g *Gate) Defer(e event.Event) {
	g.deferred = append(g.deferred, e)
}

// BeginImmediate commits a command that does not require a HAL
// round-trip. Callers must have checked Ready() first.
func (g *Gate) BeginImmediate() {
	_ = g.fsm.Event(context.Background(), eventNoRoundTrip)
}

// BeginRoundTrip commits a command that requires a HAL round-trip,
// recording it as the in-flight command under txID and transitioning to
// WaitForResponse. Callers must have checked Ready() first.
func (g *Gate) BeginRoundTrip(cmd event.Command, txID uint16) {
	_ = g.fsm.Event(context.Background(), eventRoundTrip)

	g.inFlight = &InFlight{TransactionID: txID, Command: cmd}
}

// MatchResponse reports whether resp answers the in-flight command and,
// if so, clears it, returns the gate to Wait, and returns the command it
// answered (captured before the clearing callback runs). A non-matching
// transaction id while WaitForResponse is a late response: log and
// discard per §4.2, reported here as (_, false, false). A response
// arriving while Wait is an out-of-sync artifact and must be deferred:
// (_, false, true).
func (g *Gate) MatchResponse(resp event.Response) (answered event.Command, matched bool, shouldDefer bool) {
	if g.fsm.Current() != StateWaitForResponse {
		g.Defer(resp)
		return event.Command{}, false, true
	}

	if g.inFlight == nil || g.inFlight.TransactionID != resp.TransactionID {
		return event.Command{}, false, false
	}

	answered = g.inFlight.Command

	_ = g.fsm.Event(context.Background(), eventResponse)

	return answered, true, false
}

// FireTimeout reports whether the response timeout belongs to the
// in-flight command and, if so, clears it and returns the in-flight
// command for synthesizing a failure response. A timeout while Wait is
// deferred, matching §4.2's "Wait + Response-Timeout → defer".
func (g *Gate) FireTimeout(txID uint16, original event.Timeout) (inFlight *InFlight, shouldDefer bool) {
	if g.fsm.Current() != StateWaitForResponse {
		g.Defer(original)
		return nil, true
	}

	if g.inFlight == nil || g.inFlight.TransactionID != txID {
		return nil, false
	}

	cleared := g.inFlight

	_ = g.fsm.Event(context.Background(), eventTimeout)

	return cleared, false
}

// DrainDeferred returns every deferred event and empties the buffer. The
// dispatcher replays these to the head of its queue before any new event.
func (g *Gate) DrainDeferred() []event.Event {
	drained := g.deferred
	g.deferred = nil

	return drained
}
