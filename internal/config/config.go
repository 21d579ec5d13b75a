package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Keymap binds key names ("ctrl+q", "pgup", "x") to action names.
type Keymap map[string]string

type EditorOptions struct {
	TabStop        int           `toml:"tab-stop"`
	QuitTimes      int           `toml:"quit-times"`
	MessageTimeout time.Duration `toml:"message-timeout"`
	Debug          bool          `toml:"debug"`
	LogFile        string        `toml:"log-file"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabStop:        8,
			QuitTimes:      3,
			MessageTimeout: 5 * time.Second,
		},
		Keymap: DefaultKeymap(),
	}
}

func DefaultKeymap() Keymap {
	return Keymap{
		"ctrl+q":    "quit",
		"ctrl+s":    "save",
		"ctrl+f":    "find",
		"enter":     "newline",
		"backspace": "delete_back",
		"ctrl+h":    "delete_back",
		"del":       "delete_forward",
		"up":        "move_up",
		"down":      "move_down",
		"left":      "move_left",
		"right":     "move_right",
		"home":      "line_start",
		"end":       "line_end",
		"pgup":      "page_up",
		"pgdn":      "page_down",
		"ctrl+l":    "refresh",
		"esc":       "none",
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}
	merge(&cfg, userCfg)
	return cfg, nil
}

func merge(cfg *Config, userCfg Config) {
	if userCfg.Editor.TabStop > 0 {
		cfg.Editor.TabStop = userCfg.Editor.TabStop
	}
	if userCfg.Editor.QuitTimes > 0 {
		cfg.Editor.QuitTimes = userCfg.Editor.QuitTimes
	}
	if userCfg.Editor.MessageTimeout > 0 {
		cfg.Editor.MessageTimeout = userCfg.Editor.MessageTimeout
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = userCfg.Editor.Debug
	}
	if userCfg.Editor.LogFile != "" {
		cfg.Editor.LogFile = userCfg.Editor.LogFile
	}
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("MEGA_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "mega"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mega"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
