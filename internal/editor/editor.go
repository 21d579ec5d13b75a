package editor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"time"

	"github.com/kobzarvs/mega/internal/buffer"
	"github.com/kobzarvs/mega/internal/config"
	"github.com/kobzarvs/mega/internal/keys"
	"github.com/kobzarvs/mega/internal/logger"
	"github.com/kobzarvs/mega/internal/render"
	"github.com/kobzarvs/mega/internal/viewport"
)

const (
	actionQuit          = "quit"
	actionSave          = "save"
	actionFind          = "find"
	actionNewline       = "newline"
	actionDeleteBack    = "delete_back"
	actionDeleteForward = "delete_forward"
	actionMoveUp        = "move_up"
	actionMoveDown      = "move_down"
	actionMoveLeft      = "move_left"
	actionMoveRight     = "move_right"
	actionLineStart     = "line_start"
	actionLineEnd       = "line_end"
	actionPageUp        = "page_up"
	actionPageDown      = "page_down"
	actionRefresh       = "refresh"
	actionNone          = "none"
)

// Terminal is the raw-mode byte stream the editor draws on.
type Terminal interface {
	io.Reader
	io.Writer
	Size() (cols, rows int, err error)
}

// Editor owns the document, the cursor and the screen, and runs the
// read-decode-apply-render loop.
type Editor struct {
	term     Terminal
	input    *keys.Decoder
	doc      *buffer.Document
	view     *viewport.Model
	renderer *render.Renderer

	keymap  map[keys.Key]string
	quitKey keys.Key

	quitTimes int
	quitLeft  int

	statusMessage string
	statusTime    time.Time
	now           func() time.Time

	saveAborted bool
	inputErr    error
}

func New(cfg config.Config, term Terminal, banner string) *Editor {
	e := &Editor{
		term:      term,
		input:     keys.NewDecoder(term),
		doc:       buffer.New(cfg.Editor.TabStop),
		view:      viewport.New(0, 0),
		renderer:  render.New(term, banner, cfg.Editor.MessageTimeout),
		keymap:    make(map[keys.Key]string, len(cfg.Keymap)),
		quitKey:   keys.CharKey(keys.Ctrl('q')),
		quitTimes: cfg.Editor.QuitTimes,
		now:       time.Now,
	}
	if e.quitTimes < 1 {
		e.quitTimes = 1
	}
	e.quitLeft = e.quitTimes

	names := make([]string, 0, len(cfg.Keymap))
	for name := range cfg.Keymap {
		names = append(names, name)
	}
	sort.Strings(names)
	var quitKeys []keys.Key
	for _, name := range names {
		action := cfg.Keymap[name]
		k, ok := keys.Parse(name)
		if !ok {
			logger.Warn("ignoring unknown key in keymap", "key", name, "action", action)
			continue
		}
		e.keymap[k] = action
		if action == actionQuit {
			quitKeys = append(quitKeys, k)
		}
	}
	// The quit warning names ctrl+q while it still quits.
	if len(quitKeys) > 0 && e.keymap[e.quitKey] != actionQuit {
		e.quitKey = quitKeys[0]
	}
	return e
}

// Document exposes the buffer being edited.
func (e *Editor) Document() *buffer.Document {
	return e.doc
}

// Cursor returns the cursor in file coordinates.
func (e *Editor) Cursor() (cx, cy int) {
	return e.view.CX, e.view.CY
}

// OpenFile loads path. A file that does not exist yet is not an error: the
// document stays empty and the first save creates it.
func (e *Editor) OpenFile(path string) error {
	if err := e.doc.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.doc.SetPath(path)
			logger.Info("new file", "path", path)
			return nil
		}
		return err
	}
	e.view = viewport.New(e.view.Rows, e.view.Cols)
	logger.Info("file loaded", "path", path, "lines", e.doc.LineCount())
	return nil
}

func (e *Editor) SetStatusMessage(format string, args ...interface{}) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusTime = e.now()
}

// Run refreshes the screen and handles keys until quit is accepted or the
// input ends.
func (e *Editor) Run() error {
	for {
		if err := e.Refresh(); err != nil {
			return err
		}
		k, err := e.input.ReadKey()
		if err == nil {
			if e.HandleKey(k) {
				logger.Info("quit", "dirty", e.doc.Dirty())
				return nil
			}
			err = e.inputErr
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("input closed")
				return nil
			}
			return fmt.Errorf("read key: %w", err)
		}
	}
}

// Refresh draws one frame sized to the current terminal.
func (e *Editor) Refresh() error {
	cols, rows, err := e.term.Size()
	if err != nil {
		return err
	}
	rows -= 2
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	e.view.Resize(rows, cols)
	e.view.Scroll(e.doc)
	return e.renderer.Draw(render.Frame{
		Doc:       e.doc,
		View:      e.view,
		Filename:  e.doc.Path(),
		Dirty:     e.doc.Dirty(),
		Message:   e.statusMessage,
		MessageAt: e.statusTime,
		Now:       e.now(),
	})
}

// Shutdown clears the screen. It is called once after Run returns.
func (e *Editor) Shutdown() error {
	return e.renderer.Clear()
}

// HandleKey applies one key and reports whether the editor should exit.
func (e *Editor) HandleKey(k keys.Key) bool {
	action, bound := e.keymap[k]
	if action != actionQuit {
		e.quitLeft = e.quitTimes
	}
	if !bound {
		if k.Kind == keys.Char {
			e.insertChar(k.Ch)
		}
		return false
	}
	return e.execAction(action)
}

func (e *Editor) execAction(action string) bool {
	switch action {
	case actionQuit:
		return e.quit()
	case actionSave:
		e.save()
	case actionFind:
		e.Find()
	case actionNewline:
		e.insertNewline()
	case actionDeleteBack:
		e.deleteBack()
	case actionDeleteForward:
		e.view.Move(e.doc, viewport.Right)
		e.deleteBack()
	case actionMoveUp:
		e.view.Move(e.doc, viewport.Up)
	case actionMoveDown:
		e.view.Move(e.doc, viewport.Down)
	case actionMoveLeft:
		e.view.Move(e.doc, viewport.Left)
	case actionMoveRight:
		e.view.Move(e.doc, viewport.Right)
	case actionLineStart:
		e.view.Home()
	case actionLineEnd:
		e.view.End(e.doc)
	case actionPageUp:
		e.view.PageUp(e.doc)
	case actionPageDown:
		e.view.PageDown(e.doc)
	case actionRefresh:
		if err := e.renderer.Clear(); err != nil {
			logger.Warn("clear screen", "err", err)
		}
	case actionNone:
	default:
		logger.Warn("unknown action", "action", action)
	}
	return false
}

func (e *Editor) quit() bool {
	if !e.doc.Dirty() {
		return true
	}
	e.quitLeft--
	if e.quitLeft <= 0 {
		return true
	}
	times := "times"
	if e.quitLeft == 1 {
		times = "time"
	}
	e.SetStatusMessage("WARNING!!! File has unsaved changes. Press %s %d more %s to quit.",
		e.quitKey.Label(), e.quitLeft, times)
	return false
}

func (e *Editor) insertChar(c byte) {
	e.doc.InsertChar(e.view.CY, e.view.CX, c)
	e.view.CX++
}

func (e *Editor) insertNewline() {
	e.doc.InsertNewline(e.view.CY, e.view.CX)
	e.view.Set(e.doc, 0, e.view.CY+1)
}

func (e *Editor) deleteBack() {
	cy, cx := e.doc.DeleteChar(e.view.CY, e.view.CX)
	e.view.Set(e.doc, cx, cy)
}

func (e *Editor) save() {
	e.saveAborted = false
	n, err := e.doc.Save(e)
	switch {
	case err != nil:
		logger.Error("save failed", "path", e.doc.Path(), "err", err)
		e.SetStatusMessage("Can't save! I/O error: %v", err)
	case e.saveAborted:
		logger.Info("save aborted")
		e.SetStatusMessage("Save aborted")
	default:
		logger.Info("file saved", "path", e.doc.Path(), "bytes", n)
		e.SetStatusMessage("%d bytes written to disk", n)
	}
}
