// Package terminal provides raw-mode terminal control with a byte-level input
// decoder and a buffered ANSI output stream.
//
// Pipeline:
//   - a reader goroutine pushes raw input chunks onto a queue
//   - a decoder goroutine turns chunks into Events using a MappingTable and an
//     escape timeout to separate a lone Escape from a multi-byte sequence
//   - the main loop drains Events into a Batch once per wakeup, lets handlers
//     claim them, then flushes Output in a single write
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
