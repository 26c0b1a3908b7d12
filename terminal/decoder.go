package terminal

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/logpager/queue"
)

// DefaultEscapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const DefaultEscapeTimeout = 50 * time.Millisecond

// Decoder turns raw input bytes into Events.
// Not safe for concurrent use; Run owns it for the lifetime of a session
type Decoder struct {
	table    *MappingTable
	timeout  time.Duration
	buf      *InputBuffer
	deadline time.Time
	inEscape bool // previous byte was an ESC that introduced nothing known
}

// NewDecoder creates a decoder over table. A non-positive timeout selects
// DefaultEscapeTimeout
func NewDecoder(table *MappingTable, timeout time.Duration) *Decoder {
	if table == nil {
		table = DefaultMappingTable()
	}
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}
	return &Decoder{
		table:   table,
		timeout: timeout,
		buf:     NewInputBuffer(256),
	}
}

// Feed appends a raw chunk and re-arms the escape deadline
func (d *Decoder) Feed(chunk []byte, now time.Time) {
	if len(chunk) == 0 {
		return
	}
	if d.buf.IsEmpty() {
		d.buf.Reset()
	}
	d.buf.Append(chunk)
	d.deadline = now.Add(d.timeout)
}

// Pending reports unread bytes held back waiting for more input or the deadline
func (d *Decoder) Pending() bool {
	return !d.buf.IsEmpty()
}

// Deadline returns the time after which held-back bytes are resolved
func (d *Decoder) Deadline() time.Time {
	return d.deadline
}

// Decode parses as many unread bytes as possible, calling emit for each
// event in input order. A byte outside 7-bit ASCII is a protocol fault and
// returns an error wrapping ErrUnsupportedInput
func (d *Decoder) Decode(now time.Time, emit func(Event)) error {
	for !d.buf.IsEmpty() {
		p := d.buf.Remaining()
		expired := !now.Before(d.deadline)

		m, exact, partial := d.table.Match(p)
		if exact {
			ev := m.Event
			if d.inEscape {
				ev = withMod(ev, ModAlt)
			}
			d.buf.Skip(len(m.Pattern))
			d.inEscape = false
			d.deadline = now.Add(d.timeout)
			emit(ev)
			continue
		}
		if partial && !expired {
			return nil
		}

		b := p[0]
		switch {
		case b >= 0x20 && b < 0x7f:
			d.buf.Skip(1)
			emit(CharEvent{Char: rune(b), Mod: d.takeAlt()})

		case b == 0x1b:
			switch {
			case d.inEscape:
				d.buf.Skip(1)
				d.inEscape = false
				emit(KeyEvent{Key: KeyEscape, Mod: ModAlt})
			case len(p) == 1:
				if !expired {
					return nil
				}
				d.buf.Skip(1)
				emit(KeyEvent{Key: KeyEscape})
			default:
				d.buf.Skip(1)
				d.inEscape = true
			}

		case b >= 0x80:
			d.buf.Skip(1)
			d.inEscape = false
			return fmt.Errorf("%w: 0x%02x", ErrUnsupportedInput, b)

		default:
			// Control byte with no mapping
			d.buf.Skip(1)
			emit(CharEvent{Char: rune(b), Mod: d.takeAlt()})
		}
	}
	d.buf.Reset()
	return nil
}

func (d *Decoder) takeAlt() Modifier {
	if d.inEscape {
		d.inEscape = false
		return ModAlt
	}
	return ModNone
}

// Run is the decoder worker. It drains raw chunks, decodes them onto out,
// and sleeps until the escape deadline while bytes are held back.
// A protocol fault or panic is posted as an ErrorEvent and ends the worker
func (d *Decoder) Run(ctx context.Context, raw *queue.Queue[[]byte], out *queue.Queue[Event]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v\n%s", r, debug.Stack())
			out.Push(ErrorEvent{Err: err})
		}
	}()

	emit := func(ev Event) { out.Push(ev) }

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		for _, chunk := range raw.Consume() {
			d.Feed(chunk, time.Now())
		}
		if err := d.Decode(time.Now(), emit); err != nil {
			out.Push(ErrorEvent{Err: err})
			return err
		}

		if !d.Pending() {
			select {
			case <-ctx.Done():
				return nil
			case <-raw.Ready():
			}
			continue
		}

		wait := time.Until(d.deadline)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-raw.Ready():
		case <-timer.C:
		}
		timer.Stop()
	}
}
