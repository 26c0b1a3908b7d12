package terminal

import "errors"

// Environment faults, returned as errors
var (
	ErrNotTerminal         = errors.New("terminal: device is not an interactive terminal")
	ErrSessionActive       = errors.New("terminal: session already engaged")
	ErrUnsupportedPlatform = errors.New("terminal: platform not supported")
	ErrUnsupportedInput    = errors.New("terminal: unsupported input byte")
	ErrInputClosed         = errors.New("terminal: input closed")
)

// Programming faults, raised as panics
var (
	ErrNotEngaged       = errors.New("terminal: session not engaged")
	ErrAlreadyClaimed   = errors.New("terminal: event already claimed")
	ErrBufferUnderflow  = errors.New("terminal: input buffer underflow")
	ErrBufferNotDrained = errors.New("terminal: reset of undrained input buffer")
)
