package statusipc

import (
	"context"

	"go.uber.org/fx"

	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/manager"
)

// Module starts the status socket server alongside the dispatcher,
// listening on the well-known path `nand status` dials.
var Module = fx.Module("statusipc",
	fx.Provide(
		newSnapshotSource,
		newServer,
	),
	fx.Invoke(registerLifecycle),
)

// newSnapshotSource exposes the Manager as the narrow capability the
// status server needs, the same non-owning-handle discipline the core
// uses for its own external collaborators.
func newSnapshotSource(m *manager.Manager) SnapshotSource {
	return m
}

func newServer(source SnapshotSource, log logger.Logger) Server {
	return NewServer(SocketPath(), source, log)
}

func registerLifecycle(lc fx.Lifecycle, s Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop()
		},
	})
}
