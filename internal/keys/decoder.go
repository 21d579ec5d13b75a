package keys

import (
	"io"
)

// Decoder turns a raw terminal byte stream into keys.
//
// The source may return (0, nil) when no byte arrived within its read
// timeout. The first byte of a key is waited for; the bytes following an
// escape are read once each, and a missing byte degrades the key to a bare
// Escape.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey returns the next key, or io.EOF once the source is exhausted.
func (d *Decoder) ReadKey() (Key, error) {
	c, err := d.first()
	if err != nil {
		return Key{}, err
	}
	if c != esc {
		return CharKey(c), nil
	}

	var seq [3]byte
	if !d.next(&seq[0]) || !d.next(&seq[1]) {
		return Special(Escape), nil
	}

	switch seq[0] {
	case '[':
		if seq[1] >= '0' && seq[1] <= '9' {
			if !d.next(&seq[2]) || seq[2] != '~' {
				return Special(Escape), nil
			}
			switch seq[1] {
			case '1', '7':
				return Special(Home), nil
			case '3':
				return Special(Delete), nil
			case '4', '8':
				return Special(End), nil
			case '5':
				return Special(PageUp), nil
			case '6':
				return Special(PageDown), nil
			}
			return Special(Escape), nil
		}
		switch seq[1] {
		case 'A':
			return Special(Up), nil
		case 'B':
			return Special(Down), nil
		case 'C':
			return Special(Right), nil
		case 'D':
			return Special(Left), nil
		case 'H':
			return Special(Home), nil
		case 'F':
			return Special(End), nil
		}
	case 'O':
		switch seq[1] {
		case 'H':
			return Special(Home), nil
		case 'F':
			return Special(End), nil
		}
	}
	return Special(Escape), nil
}

func (d *Decoder) first() (byte, error) {
	for {
		n, err := d.r.Read(d.buf[:])
		if n == 1 {
			return d.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func (d *Decoder) next(dst *byte) bool {
	n, _ := d.r.Read(d.buf[:])
	if n != 1 {
		return false
	}
	*dst = d.buf[0]
	return true
}
