package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nanhostd/internal/nan/event"
)

func Test_NewGate_StartsInWaitAndReady(t *testing.T) {
	g := NewGate()

	assert.Equal(t, StateWait, g.State())
	assert.True(t, g.Ready())
	assert.Nil(t, g.InFlight())
}

func Test_BeginImmediate_StaysInWait(t *testing.T) {
	g := NewGate()

	g.BeginImmediate()

	assert.Equal(t, StateWait, g.State())
	assert.True(t, g.Ready())
	assert.Nil(t, g.InFlight())
}

func Test_BeginRoundTrip_EntersWaitForResponse(t *testing.T) {
	g := NewGate()

	g.BeginRoundTrip(event.NewCommand(event.PublishCommand{}), 1)

	assert.Equal(t, StateWaitForResponse, g.State())
	assert.False(t, g.Ready())
	assert.NotNil(t, g.InFlight())
	assert.Equal(t, uint16(1), g.InFlight().TransactionID)
}

func Test_Ready_FalseWhileWaitForResponse(t *testing.T) {
	g := NewGate()
	g.BeginRoundTrip(event.NewCommand(event.PublishCommand{}), 1)

	assert.False(t, g.Ready())
}

func Test_MatchResponse_MatchingClearsInFlightAndReturnsAnsweredCommand(t *testing.T) {
	g := NewGate()
	cmd := event.NewCommand(event.PublishCommand{ClientID: 7})
	g.BeginRoundTrip(cmd, 5)

	answered, matched, shouldDefer := g.MatchResponse(event.NewResponse(5, event.SessionConfigResponse{OK: true}))

	assert.True(t, matched)
	assert.False(t, shouldDefer)
	assert.Equal(t, cmd.CorrelationID(), answered.CorrelationID())
	assert.Equal(t, StateWait, g.State())
	assert.True(t, g.Ready())
	assert.Nil(t, g.InFlight())
}

func Test_MatchResponse_NonMatchingIsDiscarded(t *testing.T) {
	g := NewGate()
	g.BeginRoundTrip(event.NewCommand(event.PublishCommand{}), 5)

	_, matched, shouldDefer := g.MatchResponse(event.NewResponse(999, event.SessionConfigResponse{OK: true}))

	assert.False(t, matched)
	assert.False(t, shouldDefer)
	assert.Equal(t, StateWaitForResponse, g.State(), "late response must not disturb the in-flight command")
}

func Test_MatchResponse_WhileWait_Defers(t *testing.T) {
	g := NewGate()

	_, matched, shouldDefer := g.MatchResponse(event.NewResponse(1, event.SessionConfigResponse{}))

	assert.False(t, matched)
	assert.True(t, shouldDefer)
	assert.Len(t, g.DrainDeferred(), 1)
}

func Test_FireTimeout_MatchingClearsInFlight(t *testing.T) {
	g := NewGate()
	g.BeginRoundTrip(event.NewCommand(event.PublishCommand{}), 7)

	inFlight, shouldDefer := g.FireTimeout(7, event.NewTimeout(event.TimeoutCommandResponse))

	assert.False(t, shouldDefer)
	assert.NotNil(t, inFlight)
	assert.Equal(t, uint16(7), inFlight.TransactionID)
	assert.Equal(t, StateWait, g.State())
	assert.Nil(t, g.InFlight())
}

func Test_FireTimeout_WhileWait_Defers(t *testing.T) {
	g := NewGate()

	inFlight, shouldDefer := g.FireTimeout(1, event.NewTimeout(event.TimeoutCommandResponse))

	assert.Nil(t, inFlight)
	assert.True(t, shouldDefer)
}

func Test_FireTimeout_StaleTimeoutIgnored(t *testing.T) {
	g := NewGate()
	g.BeginRoundTrip(event.NewCommand(event.PublishCommand{}), 7)

	// A second command's timer somehow fires for an id that is not the
	// current in-flight one; this must not disturb state.
	inFlight, shouldDefer := g.FireTimeout(999, event.NewTimeout(event.TimeoutCommandResponse))

	assert.Nil(t, inFlight)
	assert.False(t, shouldDefer)
	assert.Equal(t, StateWaitForResponse, g.State())
}

func Test_DrainDeferred_EmptiesBuffer(t *testing.T) {
	g := NewGate()
	g.Defer(event.NewCommand(event.PublishCommand{}))
	g.Defer(event.NewCommand(event.DisableUsageCommand{}))

	first := g.DrainDeferred()
	assert.Len(t, first, 2)

	second := g.DrainDeferred()
	assert.Len(t, second, 0)
}
