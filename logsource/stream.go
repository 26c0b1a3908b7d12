package logsource

import (
	"context"
	"io"
	"time"

	"pkt.systems/pslog"

	"github.com/lixenwraith/logpager/queue"
)

const (
	streamBatchLines = 4096
	streamFlushDelay = 20 * time.Millisecond
)

// Stream reads lines from a pipe and posts them in batches
type Stream struct {
	r   io.Reader
	out *queue.Queue[Update]
}

// NewStream posts the lines of r to out
func NewStream(r io.Reader, out *queue.Queue[Update]) *Stream {
	return &Stream{r: r, out: out}
}

// Run reads until EOF or ctx is done. A read blocked on the pipe is
// abandoned on cancellation
func (s *Stream) Run(ctx context.Context) error {
	log := pslog.Ctx(ctx)
	lines := make(chan string, streamBatchLines)
	errc := make(chan error, 1)

	go func() {
		sc := NewScanner(s.r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()

	var batch []string
	timer := time.NewTimer(streamFlushDelay)
	defer timer.Stop()

	flush := func() {
		if len(batch) > 0 {
			s.out.Push(Update{Lines: batch})
			batch = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return nil

		case line, ok := <-lines:
			if !ok {
				flush()
				if err := <-errc; err != nil {
					log.Warn("input read failed", "err", err)
					s.out.Push(Update{Err: err})
					return nil
				}
				log.Debug("input closed")
				return nil
			}
			if batch == nil {
				timer.Reset(streamFlushDelay)
			}
			batch = append(batch, line)
			if len(batch) >= streamBatchLines {
				flush()
			}

		case <-timer.C:
			flush()
		}
	}
}
