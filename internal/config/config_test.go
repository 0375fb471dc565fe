package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nanhostd/internal/app/errors"
)

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, LogLevel, cfg.Logging.Level)
	assert.Equal(t, LogFormat, cfg.Logging.Format)
	assert.Equal(t, CommandResponseTimeout, cfg.Timeouts.CommandResponse)
	assert.Equal(t, SendMessageTimeout, cfg.Timeouts.SendMessage)
	assert.Equal(t, DataPathConfirmTimeout, cfg.Timeouts.DataPathConfirm)
	assert.Equal(t, MaxCallbackWorkers, cfg.Concurrency.CallbackWorkers)
	assert.Equal(t, BroadcastBuffer, cfg.Broadcast.Buffer)
}

func Test_Load(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func() func()
		error     error
	}{
		{
			name: "no config file found - uses default",
			setupFunc: func() func() {
				return func() {}
			},
		},
		{
			name: "valid config file overrides timeouts",
			setupFunc: func() func() {
				content := `
logging:
  level: debug
  format: json
timeouts:
  command_response: 2s
  send_message: 4s
  data_path_confirm: 1s
concurrency:
  callback_workers: 16
`
				err := os.WriteFile("nand.yaml", []byte(content), 0644)
				if err != nil {
					t.Fatal(err)
				}

				return func() { os.Remove("nand.yaml") }
			},
		},
		{
			name: "invalid callback workers zero",
			setupFunc: func() func() {
				content := `
concurrency:
  callback_workers: 0
`
				err := os.WriteFile("nand.yaml", []byte(content), 0644)
				if err != nil {
					t.Fatal(err)
				}

				return func() { os.Remove("nand.yaml") }
			},
			error: errors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := tt.setupFunc()
			defer cleanup()

			cfg, err := Load()

			if tt.error != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.error), "expected error %v, got %v", tt.error, err)
				assert.Nil(t, cfg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

func Test_LoadOverridesTimeouts(t *testing.T) {
	content := `
timeouts:
  command_response: 3s
`
	err := os.WriteFile("nand.yaml", []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove("nand.yaml")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.CommandResponse)
	assert.Equal(t, SendMessageTimeout, cfg.Timeouts.SendMessage)
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      func() *Config
		expectError bool
		errorIs     error
	}{
		{
			name:   "default configuration is valid",
			config: DefaultConfig,
		},
		{
			name: "zero command response timeout",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Timeouts.CommandResponse = 0
				return cfg
			},
			expectError: true,
			errorIs:     errors.ErrInvalidCommandTimeout,
		},
		{
			name: "zero send message timeout",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Timeouts.SendMessage = 0
				return cfg
			},
			expectError: true,
			errorIs:     errors.ErrInvalidSendTimeout,
		},
		{
			name: "zero data path confirm timeout",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Timeouts.DataPathConfirm = 0
				return cfg
			},
			expectError: true,
			errorIs:     errors.ErrInvalidDataPathTimeout,
		},
		{
			name: "zero callback workers",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Concurrency.CallbackWorkers = 0
				return cfg
			},
			expectError: true,
			errorIs:     errors.ErrInvalidConcurrencyWorkers,
		},
		{
			name: "zero broadcast buffer",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Broadcast.Buffer = 0
				return cfg
			},
			expectError: true,
			errorIs:     errors.ErrInvalidLogsBuffer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config().Validate()

			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.errorIs))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
