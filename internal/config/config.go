package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"nanhostd/internal/app/errors"
)

// Config represents the daemon's tunable configuration: logging, the
// command/send/data-path timeouts, the callback worker count and the
// broadcast buffer size.
type Config struct {
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`

	Timeouts struct {
		CommandResponse time.Duration `mapstructure:"command_response"`
		SendMessage     time.Duration `mapstructure:"send_message"`
		DataPathConfirm time.Duration `mapstructure:"data_path_confirm"`
	} `mapstructure:"timeouts"`

	Concurrency struct {
		CallbackWorkers int `mapstructure:"callback_workers"`
	} `mapstructure:"concurrency"`

	Broadcast struct {
		Buffer int `mapstructure:"buffer"`
	} `mapstructure:"broadcast"`
}

// DefaultConfig returns the configuration used when no nand.yaml is found.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	cfg.Timeouts.CommandResponse = CommandResponseTimeout
	cfg.Timeouts.SendMessage = SendMessageTimeout
	cfg.Timeouts.DataPathConfirm = DataPathConfirmTimeout

	cfg.Concurrency.CallbackWorkers = MaxCallbackWorkers

	cfg.Broadcast.Buffer = BroadcastBuffer

	return cfg
}

// Load reads nand.yaml (if present) from the working directory, overlays
// it on top of DefaultConfig, and validates the result.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("nand")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("NAND")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}

		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate checks that every tunable is usable.
func (c *Config) Validate() error {
	if c.Timeouts.CommandResponse <= 0 {
		return errors.ErrInvalidCommandTimeout
	}

	if c.Timeouts.SendMessage <= 0 {
		return errors.ErrInvalidSendTimeout
	}

	if c.Timeouts.DataPathConfirm <= 0 {
		return errors.ErrInvalidDataPathTimeout
	}

	if c.Concurrency.CallbackWorkers <= 0 {
		return errors.ErrInvalidConcurrencyWorkers
	}

	if c.Broadcast.Buffer <= 0 {
		return errors.ErrInvalidLogsBuffer
	}

	return nil
}
