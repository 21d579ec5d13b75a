package editor

import (
	"path/filepath"

	"github.com/kobzarvs/mega/internal/keys"
	"github.com/kobzarvs/mega/internal/logger"
)

// Prompt reads a line of input in the message bar. format must contain one
// %s for the input typed so far. callback, when set, sees the input after
// every key, including the Enter or Escape that ends the prompt. ok is false
// when the prompt was cancelled.
func (e *Editor) Prompt(format string, callback func(input string, k keys.Key)) (input string, ok bool) {
	var buf []byte
	for {
		e.SetStatusMessage(format, string(buf))
		if err := e.Refresh(); err != nil {
			logger.Warn("prompt refresh", "err", err)
		}
		k, err := e.input.ReadKey()
		if err != nil {
			e.inputErr = err
			e.SetStatusMessage("")
			return "", false
		}

		switch {
		case k.Kind == keys.Delete || k.IsCtrl('h') || (k.Kind == keys.Char && k.Ch == keys.Backspace):
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case k.Kind == keys.Escape:
			e.SetStatusMessage("")
			if callback != nil {
				callback(string(buf), k)
			}
			logger.Debug("prompt cancelled")
			return "", false
		case k.Kind == keys.Char && k.Ch == keys.Enter:
			if len(buf) != 0 {
				e.SetStatusMessage("")
				if callback != nil {
					callback(string(buf), k)
				}
				return string(buf), true
			}
		case k.IsPrint():
			buf = append(buf, k.Ch)
		}

		if callback != nil {
			callback(string(buf), k)
		}
	}
}

// PromptFilename asks where to save an unnamed document.
func (e *Editor) PromptFilename() (string, bool) {
	name, ok := e.Prompt("Save as: %s (ESC to cancel)", nil)
	if !ok {
		e.saveAborted = true
	}
	return name, ok
}

// ConfirmOverwrite asks a single y/n question before replacing path. Only
// the base name is shown so the question fits the message bar.
func (e *Editor) ConfirmOverwrite(path string) bool {
	e.SetStatusMessage("%s exists. Overwrite? (y/n)", filepath.Base(path))
	if err := e.Refresh(); err != nil {
		logger.Warn("prompt refresh", "err", err)
	}
	k, err := e.input.ReadKey()
	if err != nil {
		e.inputErr = err
	}
	if err == nil && k.Kind == keys.Char && (k.Ch == 'y' || k.Ch == 'Y') {
		return true
	}
	e.saveAborted = true
	return false
}
