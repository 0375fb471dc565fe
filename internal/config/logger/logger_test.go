package logger

import (
	"bytes"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"nanhostd/internal/config"
)

func cfgWith(level, format string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = level
	cfg.Logging.Format = format

	return cfg
}

func Test_NewLogger(t *testing.T) {
	type result struct {
		level  zerolog.Level
		format string
	}

	tests := []struct {
		name     string
		cfg      *config.Config
		expected result
	}{
		{
			name:     "Default",
			cfg:      config.DefaultConfig(),
			expected: result{level: zerolog.InfoLevel, format: ConsoleFormat},
		},
		{
			name:     "Debug level",
			cfg:      cfgWith(DebugLevel, ConsoleFormat),
			expected: result{level: zerolog.DebugLevel, format: ConsoleFormat},
		},
		{
			name:     "Warn level and json format",
			cfg:      cfgWith(WarnLevel, JSONFormat),
			expected: result{level: zerolog.WarnLevel, format: JSONFormat},
		},
		{
			name:     "Empty level and format (defaults)",
			cfg:      cfgWith("", ""),
			expected: result{level: zerolog.InfoLevel, format: ConsoleFormat},
		},
		{
			name:     "Error level",
			cfg:      cfgWith(ErrorLevel, ConsoleFormat),
			expected: result{level: zerolog.ErrorLevel, format: ConsoleFormat},
		},
		{
			name:     "Fatal level",
			cfg:      cfgWith(FatalLevel, ConsoleFormat),
			expected: result{level: zerolog.FatalLevel, format: ConsoleFormat},
		},
		{
			name:     "Panic level",
			cfg:      cfgWith(PanicLevel, ConsoleFormat),
			expected: result{level: zerolog.PanicLevel, format: ConsoleFormat},
		},
		{
			name:     "Trace level",
			cfg:      cfgWith(TraceLevel, ConsoleFormat),
			expected: result{level: zerolog.TraceLevel, format: ConsoleFormat},
		},
		{
			name:     "Unknown format (defaults to console)",
			cfg:      cfgWith(InfoLevel, "unknown"),
			expected: result{level: zerolog.InfoLevel, format: ConsoleFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.cfg)
			assert.NotNil(t, logger)

			appLogger, ok := logger.(*AppLogger)
			assert.True(t, ok)

			assert.Equal(t, tt.expected.level, appLogger.log.GetLevel())
		})
	}
}

func Test_Logger_Debug(t *testing.T) {
	logger := NewLogger(cfgWith(DebugLevel, ConsoleFormat))
	logger.Debug().Msg("debug message")

	assert.NotNil(t, logger)
}

func Test_Logger_Info(t *testing.T) {
	logger := NewLogger(cfgWith(InfoLevel, ConsoleFormat))
	logger.Info().Msg("info message")

	assert.NotNil(t, logger)
}

func Test_Logger_Warn(t *testing.T) {
	logger := NewLogger(cfgWith(WarnLevel, ConsoleFormat))
	logger.Warn().Msg("warn message")

	assert.NotNil(t, logger)
}

func Test_Logger_Error(t *testing.T) {
	logger := NewLogger(cfgWith(ErrorLevel, ConsoleFormat))
	logger.Error().Msg("error message")

	assert.NotNil(t, logger)
}

func Test_Logger_WithComponent(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithOutput(cfgWith(InfoLevel, JSONFormat), &buf)
	scoped := logger.WithComponent("DISPATCHER")
	scoped.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"DISPATCHER"`)
}

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "Debug", level: DebugLevel, expected: zerolog.DebugLevel},
		{name: "Info", level: InfoLevel, expected: zerolog.InfoLevel},
		{name: "Warn", level: WarnLevel, expected: zerolog.WarnLevel},
		{name: "Error", level: ErrorLevel, expected: zerolog.ErrorLevel},
		{name: "Fatal", level: FatalLevel, expected: zerolog.FatalLevel},
		{name: "Panic", level: PanicLevel, expected: zerolog.PanicLevel},
		{name: "Trace", level: TraceLevel, expected: zerolog.TraceLevel},
		{name: "Unknown", level: "unknown", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := getLogLevel(tt.level)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func Test_Module(t *testing.T) {
	assert.NotNil(t, Module)
}

func Test_AppLogger_AllMethods(t *testing.T) {
	logger := NewLogger(cfgWith(DebugLevel, JSONFormat))
	assert.NotNil(t, logger)

	assert.NotNil(t, logger.Debug())
	assert.NotNil(t, logger.Info())
	assert.NotNil(t, logger.Warn())
	assert.NotNil(t, logger.Error())
}

func Test_NewLogger_AllFormats(t *testing.T) {
	for _, format := range []string{ConsoleFormat, JSONFormat, "", "unknown"} {
		t.Run(format, func(t *testing.T) {
			logger := NewLogger(cfgWith(InfoLevel, format))
			assert.NotNil(t, logger)

			appLogger, ok := logger.(*AppLogger)
			assert.True(t, ok)
			assert.NotNil(t, appLogger.log)
		})
	}
}

func Test_NewLoggerWithOutput(t *testing.T) {
	tests := []struct {
		name         string
		customOutput io.Writer
		format       string
	}{
		{name: "with custom output", customOutput: &bytes.Buffer{}, format: ConsoleFormat},
		{name: "with custom output and JSON format", customOutput: &bytes.Buffer{}, format: JSONFormat},
		{name: "nil output with console format", customOutput: nil, format: ConsoleFormat},
		{name: "nil output with JSON format", customOutput: nil, format: JSONFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLoggerWithOutput(cfgWith(InfoLevel, tt.format), tt.customOutput)
			assert.NotNil(t, logger)

			appLogger, ok := logger.(*AppLogger)
			assert.True(t, ok)
			assert.NotNil(t, appLogger.log)
		})
	}
}
