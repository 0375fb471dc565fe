package statusipc

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanhostd/internal/app/errors"
	"nanhostd/internal/config"
	"nanhostd/internal/nan/event"
)

func Test_SocketPath(t *testing.T) {
	expected := filepath.Join(config.SocketDir, config.SocketPrefix+"default"+config.SocketSuffix)
	assert.Equal(t, expected, SocketPath())
}

func Test_FetchSnapshot_NoInstanceRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.sock")

	_, err := FetchSnapshot(path)
	assert.ErrorIs(t, err, errors.ErrNoInstanceRunning)
}

// rawServer stands in for the real statusipc server so the client can be
// tested against a hand-controlled wire response, the same shape the
// teacher's client_test.go dials a bare net.Listen("unix", ...) instead of
// a full server.
func rawServer(t *testing.T, respond func(req Request) Response) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "status.sock")

	listener, err := net.Listen("unix", path)
	require.NoError(t, err)

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		line, err := bufio.NewReader(conn).ReadBytes('\n')
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			return
		}

		resp := respond(req)

		data, _ := json.Marshal(resp)
		data = append(data, '\n')
		conn.Write(data)
	}()

	t.Cleanup(func() { listener.Close() })

	return path
}

func Test_FetchSnapshot_Success(t *testing.T) {
	want := event.Snapshot{ClientCount: 2, Phase: "nan_up"}

	path := rawServer(t, func(req Request) Response {
		assert.Equal(t, MessageSnapshotRequest, req.Type)
		return Response{Type: MessageSnapshotResponse, Snapshot: want}
	})

	resp, err := FetchSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, want, resp.Snapshot)
}

func Test_FetchSnapshot_ErrorResponse(t *testing.T) {
	path := rawServer(t, func(req Request) Response {
		return Response{Type: MessageSnapshotResponse, Error: "snapshot failed"}
	})

	_, err := FetchSnapshot(path)
	assert.EqualError(t, err, "snapshot failed")
}
