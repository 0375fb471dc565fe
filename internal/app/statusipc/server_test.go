package statusipc

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanhostd/internal/config"
	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/event"
)

type fakeSnapshotSource struct {
	snap event.Snapshot
}

func (f *fakeSnapshotSource) Snapshot(done func(event.Snapshot)) {
	done(f.snap)
}

func testServerLogger() logger.Logger {
	return logger.NewLoggerWithOutput(config.DefaultConfig(), io.Discard)
}

func Test_NewServer_SocketPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.sock")
	s := NewServer(path, &fakeSnapshotSource{}, testServerLogger())

	assert.Equal(t, path, s.SocketPath())
}

func Test_Server_StartAndStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.sock")
	s := NewServer(path, &fakeSnapshotSource{}, testServerLogger())

	require.NoError(t, s.Start(context.Background()))
	assert.FileExists(t, path)

	require.NoError(t, s.Stop())
	assert.NoFileExists(t, path)
}

func Test_Server_cleanupStaleSocket_RemovesDanglingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.sock")

	f, err := os.Create(path)
	require.NoError(t, err)
	f.Close()

	s := NewServer(path, &fakeSnapshotSource{}, testServerLogger())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.FileExists(t, path)
}

func Test_Server_cleanupStaleSocket_ActiveSocketRefusesToStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.sock")

	listener, err := net.Listen("unix", path)
	require.NoError(t, err)
	defer listener.Close()
	defer os.Remove(path)

	s := NewServer(path, &fakeSnapshotSource{}, testServerLogger())

	err = s.Start(context.Background())
	assert.Error(t, err)
}

func Test_Server_handleConnection_ReturnsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.sock")

	want := event.Snapshot{ClientCount: 3, Phase: "nan_up", GateState: "wait"}
	s := NewServer(path, &fakeSnapshotSource{snap: want}, testServerLogger())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer conn.Close()

	req, _ := json.Marshal(Request{Type: MessageSnapshotRequest})
	req = append(req, '\n')
	_, err = conn.Write(req)
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(line, &resp))

	assert.Equal(t, MessageSnapshotResponse, resp.Type)
	assert.Equal(t, want, resp.Snapshot)
	assert.Empty(t, resp.Error)
}

func Test_Server_handleConnection_UnexpectedTypeClosesWithoutReply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.sock")

	s := NewServer(path, &fakeSnapshotSource{}, testServerLogger())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer conn.Close()

	req, _ := json.Marshal(Request{Type: MessageSnapshotResponse})
	req = append(req, '\n')
	_, err = conn.Write(req)
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))

	_, err = bufio.NewReader(conn).ReadBytes('\n')
	assert.Error(t, err)
}
