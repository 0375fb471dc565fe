package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig        = errors.New("failed to read config file")
	ErrFailedToParseConfig       = errors.New("failed to parse config file")
	ErrInvalidConfig             = errors.New("invalid configuration")
	ErrInvalidCommandTimeout     = errors.New("command response timeout must be greater than 0")
	ErrInvalidSendTimeout        = errors.New("send message timeout must be greater than 0")
	ErrInvalidDataPathTimeout    = errors.New("data path confirm timeout must be greater than 0")
	ErrInvalidConcurrencyWorkers = errors.New("concurrency workers must be greater than 0")
	ErrInvalidLogsBuffer         = errors.New("broadcast buffer must be greater than 0")

	ErrClientNotFound       = errors.New("client not found")
	ErrClientAlreadyExists  = errors.New("client already registered")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already registered")
	ErrUnknownPubSubID      = errors.New("no session for publish/subscribe id")

	ErrCommandInFlight      = errors.New("a command is already in flight")
	ErrNoCommandInFlight    = errors.New("no command in flight")
	ErrTransactionMismatch  = errors.New("response transaction id does not match in-flight command")
	ErrTransactionIDsExhausted = errors.New("no free transaction ids available")
	ErrCommandTimedOut      = errors.New("command timed out waiting for response")

	ErrSendQueueFull        = errors.New("send message queue is full")
	ErrSendMessageNotFound  = errors.New("send message not found in queue")
	ErrRetriesExhausted     = errors.New("send message retries exhausted")

	ErrDataPathNotFound      = errors.New("data path not found for network specifier")
	ErrDataPathAlreadyExists = errors.New("data path already pending for network specifier")
	ErrDataPathConfirmTimeout = errors.New("data path confirmation timed out")

	ErrNanConfigurationIncompatible = errors.New("requested configuration incompatible with current NAN configuration")
	ErrUsageDisabled                = errors.New("NAN usage is disabled")
	ErrNanNotUp                     = errors.New("NAN is not up")

	ErrHalUnavailable  = errors.New("HAL adapter unavailable")
	ErrHalCommandFailed = errors.New("HAL command failed")

	ErrFailedToConnectSocket  = errors.New("failed to connect to socket")
	ErrFailedToListenSocket   = errors.New("failed to listen on socket")
	ErrFailedToReadSocket     = errors.New("failed to read from socket")
	ErrFailedToWriteSocket    = errors.New("failed to write to socket")
	ErrFailedToMarshalMessage = errors.New("failed to marshal message")
	ErrFailedToCleanupSocket  = errors.New("failed to clean up stale socket")
	ErrSocketAlreadyInUse     = errors.New("socket already in use by a running instance")
	ErrNoInstanceRunning      = errors.New("no nand instance is running")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
