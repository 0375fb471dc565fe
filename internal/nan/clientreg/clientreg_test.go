package clientreg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nanhostd/internal/nan/event"
)

func Test_AddAndLookupClient(t *testing.T) {
	r := New()
	r.AddClient(&Client{ClientID: 7})

	c := r.Client(7)

	assert.NotNil(t, c)
	assert.Equal(t, uint32(7), c.ClientID)
}

func Test_AddClient_DuplicateOverwrites(t *testing.T) {
	r := New()
	r.AddClient(&Client{ClientID: 7, UID: 1})
	r.AddClient(&Client{ClientID: 7, UID: 2})

	assert.Equal(t, uint32(2), r.Client(7).UID)
	assert.Equal(t, 1, r.ClientCount())
}

func Test_RemoveClient_RemovesPubSubIndex(t *testing.T) {
	r := New()
	r.AddClient(&Client{ClientID: 7})
	r.AddSession(7, &Session{SessionID: 1, PubSubID: 42})

	r.RemoveClient(7)

	_, _, ok := r.LookupByPubSubID(42)
	assert.False(t, ok)
	assert.Nil(t, r.Client(7))
}

func Test_LookupByPubSubID_PartialFunction(t *testing.T) {
	r := New()
	r.AddClient(&Client{ClientID: 7})
	r.AddSession(7, &Session{SessionID: 1, PubSubID: 42})

	c, s, ok := r.LookupByPubSubID(42)
	assert.True(t, ok)
	assert.Equal(t, uint32(7), c.ClientID)
	assert.Equal(t, uint32(1), s.SessionID)

	_, _, ok = r.LookupByPubSubID(999)
	assert.False(t, ok)
}

func Test_NextSessionID_Monotonic(t *testing.T) {
	r := New()

	first := r.NextSessionID()
	second := r.NextSessionID()

	assert.Equal(t, uint32(1), first)
	assert.Equal(t, uint32(2), second)
}

func Test_RemoveSession(t *testing.T) {
	r := New()
	r.AddClient(&Client{ClientID: 7})
	r.AddSession(7, &Session{SessionID: 1, PubSubID: 42})

	removed := r.RemoveSession(7, 1)

	assert.NotNil(t, removed)
	assert.Nil(t, r.Session(7, 1))

	_, _, ok := r.LookupByPubSubID(42)
	assert.False(t, ok)
}

func Test_Purge_ClearsEverything(t *testing.T) {
	r := New()
	r.AddClient(&Client{ClientID: 1})
	r.AddClient(&Client{ClientID: 2})
	r.AddSession(1, &Session{SessionID: 1, PubSubID: 10})

	r.Purge()

	assert.Equal(t, 0, r.ClientCount())

	_, _, ok := r.LookupByPubSubID(10)
	assert.False(t, ok)
}

func Test_Configs_ReflectsAllClients(t *testing.T) {
	r := New()
	r.AddClient(&Client{ClientID: 1, Config: event.ConfigRequest{MasterPreference: 3}})
	r.AddClient(&Client{ClientID: 2, Config: event.ConfigRequest{MasterPreference: 7}})

	configs := r.Configs()

	assert.Len(t, configs, 2)
}
