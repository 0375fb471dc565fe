package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"golang.org/x/sync/errgroup"

	"nanhostd/internal/app/bus"
	"nanhostd/internal/app/statusipc"
	"nanhostd/internal/app/worker"
	"nanhostd/internal/config"
	"nanhostd/internal/config/logger"
	"nanhostd/internal/nan/manager"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the NAN control plane daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

// runServe loads configuration, builds the fx application (the same
// modules the teacher's cmd/main.go assembles for fuku), and joins the
// fx lifecycle with OS signal handling under one cancellation scope via
// errgroup, instead of fx.App.Run's built-in signal handling, so a
// future second long-lived goroutine (e.g. a metrics exporter) has a
// join point to attach to.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app := fx.New(
		fx.WithLogger(serveFxLogger(cfg)),
		fx.Supply(cfg),
		fx.Provide(func() logger.Logger { return logger.NewLogger(cfg) }),
		bus.Module,
		worker.Module,
		manager.Module,
		statusipc.Module,
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.Timeouts.CommandResponse)
	defer cancelStart()

	if err := app.Start(startCtx); err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(context.Background())

	group.Go(func() error {
		return waitForSignal(ctx)
	})

	err = group.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancelStop()

	if stopErr := app.Stop(stopCtx); stopErr != nil && err == nil {
		err = stopErr
	}

	return err
}

// waitForSignal blocks until SIGINT/SIGTERM or ctx is cancelled.
func waitForSignal(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		return nil
	case <-ctx.Done():
		return nil
	}
}

func serveFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stdout}
		}

		return fxevent.NopLogger
	}
}
