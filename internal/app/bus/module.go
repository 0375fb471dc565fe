package bus

import (
	"go.uber.org/fx"

	"nanhostd/internal/config"
	"nanhostd/internal/config/logger"
)

// Module provides the Bus for dependency injection.
var Module = fx.Module("bus",
	fx.Provide(func(cfg *config.Config, log logger.Logger) Bus {
		return New(cfg, log.WithComponent("BUS"))
	}),
)
