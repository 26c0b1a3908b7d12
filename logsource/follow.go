package logsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"pkt.systems/pslog"

	"github.com/lixenwraith/logpager/queue"
)

// Update is a change to the store produced off the main loop
type Update struct {
	Lines []string
	Reset bool  // drop existing lines before appending
	Err   error // transient producer fault; Lines is empty
}

// DefaultPollInterval re-checks the file when the watcher is silent
const DefaultPollInterval = time.Second

// Follower tails a file and posts appended lines. It survives truncation
// and replacement of the file by rotation
type Follower struct {
	path     string
	offset   int64
	partial  []byte
	out      *queue.Queue[Update]
	interval time.Duration
}

// NewFollower continues path from offset, posting to out
func NewFollower(path string, offset int64, out *queue.Queue[Update]) *Follower {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return &Follower{path: abs, offset: offset, out: out, interval: DefaultPollInterval}
}

// SetPollInterval changes the fallback poll period
func (f *Follower) SetPollInterval(d time.Duration) {
	if d > 0 {
		f.interval = d
	}
}

// Run watches the file's directory until ctx is done
func (f *Follower) Run(ctx context.Context) error {
	log := pslog.Ctx(ctx).With("path", f.path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// The directory is watched so rotation that recreates the file is seen
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}
	log.Debug("follow started", "offset", f.offset)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("follow stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create):
				log.Debug("file recreated")
				f.offset = 0
				f.partial = f.partial[:0]
				f.poll(log)
			case ev.Has(fsnotify.Write):
				f.poll(log)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)
			f.out.Push(Update{Err: err})

		case <-ticker.C:
			f.poll(log)
		}
	}
}

// poll reads whatever was appended since the last read
func (f *Follower) poll(log pslog.Logger) {
	lines, reset, err := f.read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Rotated away; wait for Create
			return
		}
		log.Warn("follow read failed", "err", err)
		f.out.Push(Update{Err: err})
		return
	}
	if len(lines) > 0 || reset {
		log.Trace("follow read", "lines", len(lines), "reset", reset)
		f.out.Push(Update{Lines: lines, Reset: reset})
	}
}

func (f *Follower) read() (lines []string, reset bool, err error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, false, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, false, err
	}
	if info.Size() < f.offset {
		reset = true
		f.offset = 0
		f.partial = f.partial[:0]
	}
	if info.Size() == f.offset {
		return nil, reset, nil
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return nil, reset, err
	}

	data, err := io.ReadAll(io.LimitReader(file, info.Size()-f.offset))
	if err != nil {
		return nil, reset, err
	}
	f.offset += int64(len(data))

	data = append(f.partial, data...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, string(dropCR(data[:i])))
		data = data[i+1:]
	}
	for len(data) >= MaxLineSize {
		lines = append(lines, string(data[:MaxLineSize]))
		data = data[MaxLineSize:]
	}
	f.partial = append(f.partial[:0], data...)
	return lines, reset, nil
}
