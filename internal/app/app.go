package app

import (
	"errors"

	"github.com/kobzarvs/mega/internal/config"
	"github.com/kobzarvs/mega/internal/editor"
	"github.com/kobzarvs/mega/internal/logger"
	"github.com/kobzarvs/mega/internal/terminal"
)

const Version = "0.1.0"

// Banner is shown in the middle of the screen while the document is empty.
const Banner = "Mega editor -- version " + Version

const helpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"

var errUsage = errors.New("usage: mega [file]")

// App is the top-level runtime for mega.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	if len(a.args) > 1 {
		return errUsage
	}
	cfg, cfgErr := config.Load()
	logDir, _ := config.ConfigDir()
	if err := logger.Init(logger.Options{Path: cfg.Editor.LogFile, Dir: logDir, Debug: cfg.Editor.Debug}); err == nil {
		defer logger.Close()
	}
	if cfgErr != nil {
		logger.Warn("config not loaded, using defaults", "err", cfgErr)
	}
	logger.Info("starting", "version", Version, "args", a.args)

	term, err := terminal.Open()
	if err != nil {
		return err
	}
	defer term.Close()
	stopSignals := terminal.RestoreOnSignal(term)
	defer stopSignals()

	return a.edit(cfg, term)
}

// edit runs one editing session on term. The screen is cleared on every
// return path before the terminal mode is restored.
func (a *App) edit(cfg config.Config, term editor.Terminal) error {
	ed := editor.New(cfg, term, Banner)
	defer func() {
		if err := ed.Shutdown(); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	if len(a.args) == 1 {
		if err := ed.OpenFile(a.args[0]); err != nil {
			logger.Error("open failed", "path", a.args[0], "err", err)
			return err
		}
	}
	if cols, rows, err := term.Size(); err == nil {
		logger.Info("terminal", "cols", cols, "rows", rows)
	}

	ed.SetStatusMessage(helpMessage)
	return ed.Run()
}
