//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/kobzarvs/mega/internal/logger"
)

// ReadTimeout bounds a single Read, so escape sequence follow-up reads
// never hang.
const ReadTimeout = 100 * time.Millisecond

// ErrNotTerminal is returned by Open when stdin is not a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Terminal is the controlling tty in raw mode.
type Terminal struct {
	tty       tcell.Tty
	in        *timedReader
	resized   atomic.Bool
	cols      int
	rows      int
	closeOnce sync.Once
	closeErr  error
}

// Open puts the controlling terminal into raw mode. The caller must Close
// it on every exit path.
func Open() (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("open tty: %w", err)
	}
	if err := tty.Start(); err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	t := &Terminal{tty: tty}
	t.resized.Store(true)
	tty.NotifyResize(func() {
		t.resized.Store(true)
	})
	t.in = newTimedReader(tty, ReadTimeout)
	logger.Debug("raw mode entered")
	return t, nil
}

// Read returns (0, nil) when no input arrives within ReadTimeout.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.tty.Write(p)
}

// Size returns the grid size, querying the tty again only after a resize.
func (t *Terminal) Size() (cols, rows int, err error) {
	if t.resized.Swap(false) {
		ws, err := t.tty.WindowSize()
		if err != nil {
			t.resized.Store(true)
			return 0, 0, fmt.Errorf("window size: %w", err)
		}
		t.cols, t.rows = ws.Width, ws.Height
		logger.Debug("window size", "cols", t.cols, "rows", t.rows)
	}
	return t.cols, t.rows, nil
}

// Close restores the terminal mode saved by Open. It is safe to call more
// than once.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		t.in.stop()
		// Stop closes the device itself; Close is only needed when Stop
		// failed before getting that far.
		if t.closeErr = t.tty.Stop(); t.closeErr != nil {
			_ = t.tty.Close()
		}
		logger.Debug("raw mode left", "err", t.closeErr)
	})
	return t.closeErr
}

// RestoreOnSignal restores t and exits when the process is asked to
// terminate. The returned func unregisters the handler.
func RestoreOnSignal(t *Terminal) func() {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	go func() {
		select {
		case sig := <-sigc:
			logger.Warn("terminated by signal", "signal", sig.String())
			_ = t.Close()
			logger.Close()
			os.Exit(1)
		case <-done:
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigc)
			close(done)
		})
	}
}
