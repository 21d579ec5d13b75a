package terminal

import (
	"io"
	"time"
)

type chunk struct {
	b   []byte
	err error
}

// timedReader turns a blocking reader into one whose Read gives up with
// (0, nil) when nothing arrives within timeout. A single pump goroutine owns
// the underlying reader.
type timedReader struct {
	ch      chan chunk
	done    chan struct{}
	pending []byte
	err     error
	timeout time.Duration
}

func newTimedReader(r io.Reader, timeout time.Duration) *timedReader {
	tr := &timedReader{
		ch:      make(chan chunk),
		done:    make(chan struct{}),
		timeout: timeout,
	}
	go tr.pump(r)
	return tr
}

func (tr *timedReader) pump(r io.Reader) {
	for {
		buf := make([]byte, 32)
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case tr.ch <- chunk{b: buf[:n]}:
			case <-tr.done:
				return
			}
		}
		if err != nil {
			select {
			case tr.ch <- chunk{err: err}:
			case <-tr.done:
			}
			return
		}
	}
}

func (tr *timedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(tr.pending) == 0 {
		if tr.err != nil {
			return 0, tr.err
		}
		timer := time.NewTimer(tr.timeout)
		defer timer.Stop()
		select {
		case c := <-tr.ch:
			if c.err != nil {
				tr.err = c.err
				return 0, c.err
			}
			tr.pending = c.b
		case <-timer.C:
			return 0, nil
		case <-tr.done:
			tr.err = io.EOF
			return 0, io.EOF
		}
	}
	n := copy(p, tr.pending)
	tr.pending = tr.pending[n:]
	return n, nil
}

// stop releases the pump. Reads after stop report io.EOF once buffered
// bytes are drained.
func (tr *timedReader) stop() {
	select {
	case <-tr.done:
	default:
		close(tr.done)
	}
}
