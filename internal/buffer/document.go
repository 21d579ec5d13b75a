package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Prompter supplies the interactive answers a save may need.
type Prompter interface {
	// PromptFilename asks for a destination. ok is false when cancelled.
	PromptFilename() (path string, ok bool)
	// ConfirmOverwrite asks whether an existing path may be replaced.
	ConfirmOverwrite(path string) bool
}

// ErrNoFilename is returned by Save when no destination is known and no
// prompter was supplied.
var ErrNoFilename = errors.New("no file name")

// Document is an ordered list of rows plus the file it belongs to.
type Document struct {
	rows    []Row
	path    string
	dirty   bool
	tabStop int

	// origin is the file last loaded or saved at path. A file found there
	// that is not origin needs confirmation before it is replaced.
	origin os.FileInfo
}

func New(tabStop int) *Document {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &Document{tabStop: tabStop}
}

func (d *Document) TabStop() int { return d.tabStop }
func (d *Document) Path() string { return d.path }
func (d *Document) Dirty() bool { return d.dirty }
func (d *Document) LineCount() int { return len(d.rows) }

// SetPath names the document without loading anything, e.g. for a file
// that does not exist yet.
func (d *Document) SetPath(path string) {
	d.path = path
	d.origin = nil
}

// Row returns the row at i, or nil when i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return &d.rows[i]
}

func (d *Document) LineLen(i int) int {
	if r := d.Row(i); r != nil {
		return r.Len()
	}
	return 0
}

// RenderLine returns the tab-expanded form of line i.
func (d *Document) RenderLine(i int) []byte {
	if r := d.Row(i); r != nil {
		return r.render
	}
	return nil
}

func (d *Document) RenderCol(row, cx int) int {
	if r := d.Row(row); r != nil {
		return r.CxToRx(cx, d.tabStop)
	}
	return 0
}

// Lines returns a copy of every line's characters.
func (d *Document) Lines() []string {
	out := make([]string, len(d.rows))
	for i := range d.rows {
		out[i] = string(d.rows[i].chars)
	}
	return out
}

// Load replaces the document with the contents of the file at path.
func (d *Document) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := d.LoadFrom(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	d.path = path
	d.origin, _ = f.Stat()
	return nil
}

// LoadFrom replaces the document with the lines read from r. Lines are
// split on '\n'; a trailing '\r' is dropped and a final newline does not
// start an extra empty line.
func (d *Document) LoadFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.rows = d.rows[:0]
	if len(data) > 0 {
		data = bytes.TrimSuffix(data, []byte{'\n'})
		for _, line := range bytes.Split(data, []byte{'\n'}) {
			line = bytes.TrimSuffix(line, []byte{'\r'})
			d.rows = append(d.rows, newRow(append([]byte(nil), line...), d.tabStop))
		}
	}
	d.dirty = false
	return nil
}

// Bytes joins the lines with '\n', without a trailing newline.
func (d *Document) Bytes() []byte {
	var b bytes.Buffer
	for i := range d.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(d.rows[i].chars)
	}
	return b.Bytes()
}

// Save writes the document to its path, asking p for a destination when
// there is none and for confirmation before replacing an existing file other
// than the one the document was loaded from or last saved to. A cancelled
// prompt returns 0 bytes and a nil error and leaves the
// dirty flag alone.
func (d *Document) Save(p Prompter) (int, error) {
	path := d.path
	if path == "" {
		if p == nil {
			return 0, ErrNoFilename
		}
		name, ok := p.PromptFilename()
		if !ok || name == "" {
			return 0, nil
		}
		path = name
	}
	if fi, err := os.Stat(path); err == nil && !d.owns(fi) {
		if p == nil || !p.ConfirmOverwrite(path) {
			return 0, nil
		}
	}

	data := d.Bytes()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	d.path = path
	d.origin, _ = os.Stat(path)
	d.dirty = false
	return n, nil
}

func (d *Document) owns(fi os.FileInfo) bool {
	return d.origin != nil && os.SameFile(d.origin, fi)
}

// InsertChar inserts c at (row, col). row may equal LineCount, in which
// case a new empty line is appended first.
func (d *Document) InsertChar(row, col int, c byte) {
	if row < 0 || row > len(d.rows) {
		return
	}
	if row == len(d.rows) {
		d.insertRow(row, nil)
	}
	d.rows[row].insert(col, c, d.tabStop)
	d.dirty = true
}

// InsertNewline breaks the line at (row, col). At col 0 an empty line is
// inserted above; otherwise the suffix moves to a new line below.
func (d *Document) InsertNewline(row, col int) {
	if row < 0 || row > len(d.rows) {
		return
	}
	if col == 0 || row == len(d.rows) {
		d.insertRow(row, nil)
		d.dirty = true
		return
	}
	r := &d.rows[row]
	if col > len(r.chars) {
		col = len(r.chars)
	}
	suffix := append([]byte(nil), r.chars[col:]...)
	r.chars = r.chars[:col]
	r.update(d.tabStop)
	d.insertRow(row+1, suffix)
	d.dirty = true
}

// DeleteChar removes the character before (row, col), joining the line
// onto the previous one at col 0. It returns the resulting cursor.
func (d *Document) DeleteChar(row, col int) (int, int) {
	if row < 0 || row >= len(d.rows) {
		return row, col
	}
	if row == 0 && col == 0 {
		return row, col
	}
	if col > 0 {
		r := &d.rows[row]
		if col > len(r.chars) {
			col = len(r.chars)
		}
		r.deleteAt(col-1, d.tabStop)
		d.dirty = true
		return row, col - 1
	}
	prev := &d.rows[row-1]
	newCol := len(prev.chars)
	prev.appendBytes(d.rows[row].chars, d.tabStop)
	d.deleteRow(row)
	d.dirty = true
	return row - 1, newCol
}

func (d *Document) insertRow(at int, chars []byte) {
	d.rows = append(d.rows, Row{})
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = newRow(chars, d.tabStop)
}

func (d *Document) deleteRow(at int) {
	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = Row{}
	d.rows = d.rows[:len(d.rows)-1]
}
