// Package callback defines the data-path manager contract (§1, §9): the
// core only triggers and routes data-path lifecycle events, it never
// implements data-path setup itself. The manager holds this as a
// non-owning capability, never an owning reference.
package callback

// DataPathManager receives every data-path lifecycle event the core
// routes to it. Implementations live outside the core.
type DataPathManager interface {
	HandleDataPathTimeout(networkSpecifier string)
	HandleDataPathRequest(pubSubID uint32, peerMAC [6]byte, ndpID uint32, payload []byte)
	HandleDataPathConfirm(ndpID uint32, networkSpecifier string, peerMAC [6]byte, accept bool, payload []byte)
	HandleDataPathEnd(ndpID uint32)
	// HandleNanDown notifies the data-path layer of a NAN-DOWN reset, so it
	// can discard its own view of any data path it was tracking (§7, §8.6).
	HandleNanDown()
}

// NoOpDataPathManager discards every event; useful where no real
// data-path lifecycle implementation is wired in yet.
type NoOpDataPathManager struct{}

func (NoOpDataPathManager) HandleDataPathTimeout(networkSpecifier string)              {}
func (NoOpDataPathManager) HandleDataPathRequest(uint32, [6]byte, uint32, []byte)       {}
func (NoOpDataPathManager) HandleDataPathConfirm(uint32, string, [6]byte, bool, []byte) {}
func (NoOpDataPathManager) HandleDataPathEnd(uint32)                                    {}
func (NoOpDataPathManager) HandleNanDown()                                             {}
