// Package clientreg owns the registry of connected clients and their
// discovery sessions. It is mutated exclusively from the single dispatcher
// goroutine (§5), so unlike most of the teacher's registries it carries no
// mutex — the only cross-thread read is the usage_enabled flag, which
// lives in manager, not here.
package clientreg

import (
	"nanhostd/internal/nan/event"
)

// SessionKind distinguishes a publish session from a subscribe session.
type SessionKind int

const (
	SessionPublish SessionKind = iota
	SessionSubscribe
)

// Session is one publish or subscribe session owned by a client.
type Session struct {
	SessionID uint32
	PubSubID  uint32
	Kind      SessionKind
	Callback  event.SessionCallback
	// Peers maps a firmware requestor instance id to the peer's MAC,
	// populated as on_match notifications arrive.
	Peers map[uint32][6]byte
}

// Client is one connected application.
type Client struct {
	ClientID             uint32
	UID, PID             uint32
	CallingPackage       string
	Config               event.ConfigRequest
	NotifyIdentityChange bool
	Callback             event.ClientCallback
	Sessions             map[uint32]*Session
}

// Registry owns every live client and session, and the pub_sub_id index
// used to demultiplex firmware notifications back to a (client, session)
// pair in O(1).
type Registry struct {
	clients        map[uint32]*Client
	nextSessionID  uint32
	pubSubIndex    map[uint32]pubSubEntry
}

type pubSubEntry struct {
	clientID  uint32
	sessionID uint32
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		clients:     make(map[uint32]*Client),
		pubSubIndex: make(map[uint32]pubSubEntry),
	}
}

// AddClient registers a client. A duplicate client_id overwrites the prior
// entry (§3: "duplicates log and overwrite" — logging is the caller's job,
// here we just implement the overwrite).
func (r *Registry) AddClient(c *Client) {
	if c.Sessions == nil {
		c.Sessions = make(map[uint32]*Session)
	}

	r.clients[c.ClientID] = c
}

// Client returns the client for clientID, or nil if none exists.
func (r *Registry) Client(clientID uint32) *Client {
	return r.clients[clientID]
}

// RemoveClient removes a client and every pub_sub_id index entry for its
// sessions. Returns the removed client, or nil if it did not exist.
func (r *Registry) RemoveClient(clientID uint32) *Client {
	c, ok := r.clients[clientID]
	if !ok {
		return nil
	}

	for _, session := range c.Sessions {
		delete(r.pubSubIndex, session.PubSubID)
	}

	delete(r.clients, clientID)

	return c
}

// Configs returns every live client's config, the shape configmerge.Merge
// consumes.
func (r *Registry) Configs() []event.ConfigRequest {
	configs := make([]event.ConfigRequest, 0, len(r.clients))
	for _, c := range r.clients {
		configs = append(configs, c.Config)
	}

	return configs
}

// ClientCount reports how many clients are currently registered.
func (r *Registry) ClientCount() int {
	return len(r.clients)
}

// All returns every live client, in no particular order.
func (r *Registry) All() []*Client {
	all := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		all = append(all, c)
	}

	return all
}

// NextSessionID allocates the next monotonic session id.
func (r *Registry) NextSessionID() uint32 {
	r.nextSessionID++
	return r.nextSessionID
}

// AddSession attaches a session to its owning client and indexes it by
// pub_sub_id. Returns false if the client does not exist.
func (r *Registry) AddSession(clientID uint32, session *Session) bool {
	c, ok := r.clients[clientID]
	if !ok {
		return false
	}

	c.Sessions[session.SessionID] = session
	r.pubSubIndex[session.PubSubID] = pubSubEntry{clientID: clientID, sessionID: session.SessionID}

	return true
}

// Session returns the session owned by clientID with the given sessionID.
func (r *Registry) Session(clientID, sessionID uint32) *Session {
	c, ok := r.clients[clientID]
	if !ok {
		return nil
	}

	return c.Sessions[sessionID]
}

// RemoveSession removes a session from its owning client and the
// pub_sub_id index.
func (r *Registry) RemoveSession(clientID, sessionID uint32) *Session {
	c, ok := r.clients[clientID]
	if !ok {
		return nil
	}

	session, ok := c.Sessions[sessionID]
	if !ok {
		return nil
	}

	delete(c.Sessions, sessionID)
	delete(r.pubSubIndex, session.PubSubID)

	return session
}

// LookupByPubSubID resolves a firmware pub_sub_id to its owning client and
// session in O(1); pub_sub_id → (client, session) is a partial function, so
// ok is false when no live session holds that id.
func (r *Registry) LookupByPubSubID(pubSubID uint32) (client *Client, session *Session, ok bool) {
	entry, found := r.pubSubIndex[pubSubID]
	if !found {
		return nil, nil, false
	}

	c, ok := r.clients[entry.clientID]
	if !ok {
		return nil, nil, false
	}

	s, ok := c.Sessions[entry.sessionID]
	if !ok {
		return nil, nil, false
	}

	return c, s, true
}

// Purge removes every client and session, the NAN-DOWN reset (§7, §8.6).
func (r *Registry) Purge() {
	r.clients = make(map[uint32]*Client)
	r.pubSubIndex = make(map[uint32]pubSubEntry)
}
