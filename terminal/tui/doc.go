// Package tui provides the pager's widgets on top of terminal.Output:
// a scrolling line view that redraws only exposed rows, a single-line
// input field that claims keys from an event batch, and a status line.
//
// Widgets do not own the terminal. They queue commands on a Renderer and the
// caller flushes once per frame.
package tui
