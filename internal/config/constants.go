package config

import "time"

// Application metadata
const (
	AppName = "nand"
	Version = "0.1.0"

	ConfigFile = "nand.yaml"
)

// Logging defaults
const (
	LogLevel  = "info"
	LogFormat = "console"
)

// Timing constants, taken directly from the protocol: every HAL command
// gets a 5s response timeout, every firmware-queued send message gets a
// 10s transmission timeout, every data-path setup gets a 5s confirmation
// timeout.
const (
	CommandResponseTimeout = 5 * time.Second
	SendMessageTimeout     = 10 * time.Second
	DataPathConfirmTimeout = 5 * time.Second
	ShutdownTimeout        = 5 * time.Second
)

// Transaction id allocation. The counter is 16-bit and never skips
// anything but the sentinel value 0 ("no command in flight").
const (
	TransactionIDMax = 0xFFFF
	TransactionIDNil = 0
)

// ClusterIDMax bounds the NAN cluster id space; the default range
// [0, ClusterIDMax] is treated by the config merger as "no constraint".
const ClusterIDMax = 0x0FFF

// Concurrency settings: bounds the number of client callback invocations
// the manager will run concurrently so one slow IPC client can't stall
// delivery to the others.
const MaxCallbackWorkers = 8

// Broadcast settings
const BroadcastBuffer = 64

// RetryAttemptsDefault is the no-retry count a send_message caller can
// pass. Manager.SendMessage always takes an explicit retry count and does
// not read this constant.
const RetryAttemptsDefault = 0

// DispatcherQueueDepth bounds how many events (commands, responses,
// notifications, timeouts) can be buffered ahead of the single dispatcher
// goroutine before Enqueue blocks its caller.
const DispatcherQueueDepth = 256

// Status socket settings: `nand status` dials the running `nand serve`
// instance over a Unix socket to fetch a diagnostic Snapshot, the same
// shape the teacher uses for its log-streaming socket.
const (
	SocketDir         = "/tmp"
	SocketPrefix      = "nand-"
	SocketSuffix      = ".sock"
	SocketDialTimeout = 200 * time.Millisecond
)
