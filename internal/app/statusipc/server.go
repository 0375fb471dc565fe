package statusipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"nanhostd/internal/app/errors"
	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/event"
)

// SnapshotSource is the one capability the server needs from the
// manager: a way to request a point-in-time Snapshot. Kept as a narrow
// interface rather than importing the manager package directly, the same
// non-owning-handle discipline the core uses for its own collaborators.
type SnapshotSource interface {
	Snapshot(done func(event.Snapshot))
}

// Server accepts status queries over a Unix socket and answers each with
// one Snapshot.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
	SocketPath() string
}

type server struct {
	socketPath string
	source     SnapshotSource
	listener   net.Listener
	running    atomic.Bool
	wg         sync.WaitGroup
	log        logger.Logger
}

// NewServer returns a Server that will listen on socketPath once Start is
// called.
func NewServer(socketPath string, source SnapshotSource, log logger.Logger) Server {
	return &server{
		socketPath: socketPath,
		source:     source,
		log:        log.WithComponent("STATUSIPC"),
	}
}

func (s *server) SocketPath() string { return s.socketPath }

// Start listens on the Unix socket and serves requests until Stop is
// called. Cancelling ctx does not stop the accept loop; a request handled
// after ctx is done is answered with ctx's error instead of a Snapshot.
func (s *server) Start(ctx context.Context) error {
	if err := s.cleanupStaleSocket(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToCleanupSocket, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToListenSocket, s.socketPath, err)
	}

	s.listener = listener
	s.running.Store(true)

	s.log.Info().Str("socket", s.socketPath).Msg("status socket listening")

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.acceptConnections(ctx)
	}()

	return nil
}

// Stop closes the listener, waits for in-flight connections to drain,
// and removes the socket file.
func (s *server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.listener != nil {
		s.listener.Close()
	}

	s.wg.Wait()

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Msg("failed to remove status socket")
	}

	return nil
}

func (s *server) cleanupStaleSocket() error {
	if _, err := os.Stat(s.socketPath); os.IsNotExist(err) {
		return nil
	}

	conn, err := net.DialTimeout("unix", s.socketPath, dialProbeTimeout)
	if err == nil {
		conn.Close()

		return fmt.Errorf("%w: %s", errors.ErrSocketAlreadyInUse, s.socketPath)
	}

	s.log.Info().Str("socket", s.socketPath).Msg("removing stale status socket")

	return os.Remove(s.socketPath)
}

func (s *server) acceptConnections(ctx context.Context) {
	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running.Load() {
				s.log.Error().Err(err).Msg("failed to accept status connection")
			}

			return
		}

		s.wg.Add(1)

		go func(c net.Conn) {
			defer s.wg.Done()

			s.handleConnection(ctx, c)
		}(conn)
	}
}

func (s *server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	line, err := reader.ReadBytes('\n')
	if err != nil {
		s.log.Debug().Err(err).Msg("failed to read status request")
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Debug().Err(err).Msg("failed to parse status request")
		return
	}

	if req.Type != MessageSnapshotRequest {
		s.log.Debug().Str("type", string(req.Type)).Msg("unexpected status request type")
		return
	}

	resultCh := make(chan event.Snapshot, 1)
	s.source.Snapshot(func(snap event.Snapshot) {
		resultCh <- snap
	})

	var resp Response

	select {
	case <-ctx.Done():
		resp = Response{Type: MessageSnapshotResponse, Error: ctx.Err().Error()}
	case snap := <-resultCh:
		resp = Response{Type: MessageSnapshotResponse, Snapshot: snap}
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal status response")
		return
	}

	data = append(data, '\n')

	if _, err := conn.Write(data); err != nil {
		s.log.Debug().Err(err).Msg("failed to write status response")
	}
}

const dialProbeTimeout = 100 * time.Millisecond
