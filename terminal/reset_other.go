//go:build !linux

package terminal

// resetTerminalMode relies on the emulator reset sequences alone
func resetTerminalMode() {}
