package manager

import (
	"context"

	"go.uber.org/fx"

	"nanhostd/internal/app/bus"
	"nanhostd/internal/app/worker"
	"nanhostd/internal/config"
	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/callback"
	"nanhostd/internal/nan/dispatcher"
	"nanhostd/internal/nan/hal"
)

// Module wires the dispatcher, the Sim HAL adapter, and the Manager
// together and registers the dispatcher's run loop as an fx lifecycle
// hook, the same OnStart/OnStop shape the teacher's app.Register uses for
// its own run loop. A real firmware driver replaces the hal.Adapter
// provider here; nothing else in the graph needs to change.
var Module = fx.Module("manager",
	fx.Provide(
		newDispatcher,
		newEventSender,
		newDataPathManager,
		newHalAdapter,
		newManager,
	),
	fx.Invoke(registerDispatcherLifecycle),
)

func newDispatcher(cfg *config.Config, log logger.Logger) *dispatcher.Dispatcher {
	return dispatcher.New(config.DispatcherQueueDepth, log.WithComponent("DISPATCHER"))
}

// newEventSender exposes the dispatcher as the non-owning hal.EventSender
// handle the Sim adapter posts its synthesized responses through.
func newEventSender(d *dispatcher.Dispatcher) hal.EventSender {
	return d
}

// newDataPathManager supplies the no-op data-path collaborator until a
// real data-path lifecycle implementation is wired in.
func newDataPathManager() callback.DataPathManager {
	return callback.NoOpDataPathManager{}
}

// newHalAdapter supplies the loopback Sim adapter until a real firmware
// driver is wired in; every other provider in this module depends only
// on the hal.Adapter interface, so swapping this one function is enough.
func newHalAdapter(sender hal.EventSender, log logger.Logger) hal.Adapter {
	return hal.NewSim(sender, log.WithComponent("HAL-SIM"))
}

func newManager(
	cfg *config.Config,
	adapter hal.Adapter,
	dpMgr callback.DataPathManager,
	b bus.Bus,
	pool worker.Pool,
	log logger.Logger,
) *Manager {
	return New(cfg, adapter, dpMgr, NoOpRanging{}, b, pool, log.WithComponent("MANAGER"))
}

// registerDispatcherLifecycle attaches the Manager to the Dispatcher and
// starts the single-consumer run loop described in §4.1/§5 as an fx
// lifecycle hook, mirroring the teacher's app.Register.
func registerDispatcherLifecycle(lc fx.Lifecycle, d *dispatcher.Dispatcher, m *Manager) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			m.Attach(d)

			runCtx, c := context.WithCancel(context.Background())
			cancel = c

			go d.Run(runCtx, m.Gate(), m.Handle)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}

			return nil
		},
	})
}
