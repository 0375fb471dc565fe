package statusipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"nanhostd/internal/app/errors"
	"nanhostd/internal/config"
)

// SocketPath returns the well-known path `nand serve` listens on.
func SocketPath() string {
	return filepath.Join(config.SocketDir, config.SocketPrefix+"default"+config.SocketSuffix)
}

// FetchSnapshot dials the running instance's status socket, issues a
// single snapshot request, and returns the decoded response.
func FetchSnapshot(socketPath string) (Response, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return Response{}, errors.ErrNoInstanceRunning
	}

	conn, err := net.DialTimeout("unix", socketPath, config.SocketDialTimeout)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", errors.ErrFailedToConnectSocket, err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(2 * time.Second))

	req := Request{Type: MessageSnapshotRequest}

	data, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", errors.ErrFailedToMarshalMessage, err)
	}

	data = append(data, '\n')

	if _, err := conn.Write(data); err != nil {
		return Response{}, fmt.Errorf("%w: %w", errors.ErrFailedToWriteSocket, err)
	}

	reader := bufio.NewReader(conn)

	line, err := reader.ReadBytes('\n')
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", errors.ErrFailedToReadSocket, err)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return Response{}, fmt.Errorf("%w: %w", errors.ErrFailedToMarshalMessage, err)
	}

	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}

	return resp, nil
}
