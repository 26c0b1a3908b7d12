// Package logsource holds the lines shown by the pager: an append-only
// store, the filter chain deciding which lines are visible, and the
// producers that feed new lines from a followed file or a pipe.
package logsource

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// MaxLineSize is the longest line kept intact; longer lines are split
const MaxLineSize = 1 << 20

// Store is the in-memory line sequence. It is owned by the main loop
type Store struct {
	name  string
	lines []string
	bytes int64
}

// NewStore creates an empty store labelled name
func NewStore(name string) *Store {
	return &Store{name: name}
}

// Name returns the label shown in the status line
func (s *Store) Name() string { return s.name }

// Len returns the number of lines
func (s *Store) Len() int { return len(s.lines) }

// Line returns line i
func (s *Store) Line(i int) string { return s.lines[i] }

// Size returns the number of bytes the lines were read from
func (s *Store) Size() int64 { return s.bytes }

// Append adds lines at the end
func (s *Store) Append(lines ...string) {
	for _, l := range lines {
		s.bytes += int64(len(l)) + 1
	}
	s.lines = append(s.lines, lines...)
}

// Reset drops every line, keeping the label
func (s *Store) Reset() {
	clear(s.lines)
	s.lines = s.lines[:0]
	s.bytes = 0
}

// ReadFrom appends every line of r
func (s *Store) ReadFrom(r io.Reader) (int64, error) {
	sc := NewScanner(r)
	before := s.bytes
	for sc.Scan() {
		s.Append(sc.Text())
	}
	return s.bytes - before, sc.Err()
}

// LoadFile reads path into a new store. The returned offset is the file
// size at the time of reading, where a Follower picks up
func LoadFile(path string) (*Store, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	s := NewStore(path)
	if _, err := s.ReadFrom(f); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	offset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, err
	}
	return s, offset, nil
}

// NewScanner returns a line scanner that tolerates CRLF and splits lines
// longer than MaxLineSize instead of failing
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	sc.Split(scanLines)
	return sc
}

// scanLines is bufio.ScanLines with a forced break at MaxLineSize
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, dropCR(data[:i]), nil
	}
	if len(data) >= MaxLineSize {
		return MaxLineSize, data[:MaxLineSize], nil
	}
	if atEOF {
		return len(data), dropCR(data), nil
	}
	return 0, nil, nil
}

func dropCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}
