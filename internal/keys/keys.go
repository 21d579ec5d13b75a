package keys

// Kind identifies what a Key holds. Char carries a byte in Key.Ch; every
// other kind is a named special key.
type Kind int

const (
	Char Kind = iota
	Escape
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Delete
)

const (
	esc       byte = 0x1b
	Enter     byte = '\r'
	Tab       byte = '\t'
	Backspace byte = 127
)

// Key is one decoded keypress.
type Key struct {
	Kind Kind
	Ch   byte
}

func CharKey(c byte) Key {
	return Key{Kind: Char, Ch: c}
}

func Special(k Kind) Key {
	return Key{Kind: k}
}

// Ctrl masks c to the byte the terminal sends for Ctrl+c.
func Ctrl(c byte) byte {
	return c & 0x1f
}

// IsCtrl reports whether k is the control-modified form of c.
func (k Key) IsCtrl(c byte) bool {
	return k.Kind == Char && k.Ch == Ctrl(c)
}

// IsPrint reports whether k is a printable ASCII character.
func (k Key) IsPrint() bool {
	return k.Kind == Char && k.Ch >= 32 && k.Ch < 127
}

// Name returns the keymap name of k, e.g. "ctrl+q", "pgup", "x".
func (k Key) Name() string {
	switch k.Kind {
	case Char:
		return charName(k.Ch)
	case Escape:
		return "esc"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Home:
		return "home"
	case End:
		return "end"
	case PageUp:
		return "pgup"
	case PageDown:
		return "pgdn"
	case Delete:
		return "del"
	}
	return ""
}

func (k Key) String() string {
	return k.Name()
}

func charName(c byte) string {
	switch c {
	case Enter:
		return "enter"
	case Tab:
		return "tab"
	case Backspace:
		return "backspace"
	case esc:
		return "esc"
	}
	if c < 32 {
		r := rune('@' + c)
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return "ctrl+" + string(r)
	}
	return string(rune(c))
}

// Parse accepts every name Name returns, plus "space" and the ctrl+ forms
// of enter and tab ("ctrl+m", "ctrl+i"). It reports false for names that
// do not denote a single key.
func Parse(name string) (Key, bool) {
	switch name {
	case "esc":
		return Special(Escape), true
	case "up":
		return Special(Up), true
	case "down":
		return Special(Down), true
	case "left":
		return Special(Left), true
	case "right":
		return Special(Right), true
	case "home":
		return Special(Home), true
	case "end":
		return Special(End), true
	case "pgup":
		return Special(PageUp), true
	case "pgdn":
		return Special(PageDown), true
	case "del":
		return Special(Delete), true
	case "enter":
		return CharKey(Enter), true
	case "tab":
		return CharKey(Tab), true
	case "backspace":
		return CharKey(Backspace), true
	case "space":
		return CharKey(' '), true
	}
	if len(name) == 6 && name[:5] == "ctrl+" {
		switch c := name[5]; {
		case c >= 'a' && c <= 'z', c == '@', c == '\\', c == ']', c == '^', c == '_':
			return CharKey(Ctrl(c)), true
		}
	}
	if len(name) == 1 {
		return CharKey(name[0]), true
	}
	return Key{}, false
}

// Label renders a key for status messages, e.g. "Ctrl-Q".
func (k Key) Label() string {
	if k.Kind == Char && k.Ch > 0 && k.Ch < 32 && k.Ch != Enter && k.Ch != Tab && k.Ch != esc {
		return "Ctrl-" + string(rune('A'+k.Ch-1))
	}
	return k.Name()
}
