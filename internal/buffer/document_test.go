package buffer

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestDocument(lines ...string) *Document {
	d := New(DefaultTabStop)
	if len(lines) > 0 {
		if err := d.LoadFrom(strings.NewReader(strings.Join(lines, "\n"))); err != nil {
			panic(err)
		}
	}
	return d
}

type fakePrompter struct {
	name      string
	nameOK    bool
	overwrite bool
	asked     int
	confirmed []string
}

func (p *fakePrompter) PromptFilename() (string, bool) {
	p.asked++
	return p.name, p.nameOK
}

func (p *fakePrompter) ConfirmOverwrite(path string) bool {
	p.confirmed = append(p.confirmed, path)
	return p.overwrite
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestLoadFromSplitsLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"abc", []string{"abc"}},
		{"abc\n", []string{"abc"}},
		{"abc\r\nxyz\r\n", []string{"abc", "xyz"}},
		{"abc\n\nxyz", []string{"abc", "", "xyz"}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		d := New(DefaultTabStop)
		if err := d.LoadFrom(strings.NewReader(tt.in)); err != nil {
			t.Fatalf("LoadFrom(%q) error: %v", tt.in, err)
		}
		if got := d.Lines(); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("LoadFrom(%q) lines = %q, want %q", tt.in, got, tt.want)
		}
		if d.Dirty() {
			t.Fatalf("LoadFrom(%q) left document dirty", tt.in)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	d := New(DefaultTabStop)
	err := d.Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !os.IsNotExist(err) {
		t.Fatalf("Load error = %v, want not-exist", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{"abc\n\nxyz", "one\ttwo\n", "", "single", "\r\nx\r\n"}
	for i, in := range inputs {
		src := filepath.Join(dir, "src"+string(rune('a'+i)))
		writeFile(t, src, in)

		first := New(DefaultTabStop)
		if err := first.Load(src); err != nil {
			t.Fatalf("Load: %v", err)
		}
		dst := filepath.Join(dir, "dst"+string(rune('a'+i)))
		first.SetPath(dst)
		n, err := first.Save(nil)
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if n != len(first.Bytes()) {
			t.Fatalf("Save wrote %d bytes, want %d", n, len(first.Bytes()))
		}

		second := New(DefaultTabStop)
		if err := second.Load(dst); err != nil {
			t.Fatalf("reload: %v", err)
		}
		if !reflect.DeepEqual(first.Lines(), second.Lines()) {
			t.Fatalf("round trip of %q: %q != %q", in, first.Lines(), second.Lines())
		}
	}
}

func TestSaveJoinsWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	d := newTestDocument("abc", "", "xyz")
	d.SetPath(path)
	d.InsertChar(0, 3, '!')
	n, err := d.Save(nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := readFile(t, path); got != "abc!\n\nxyz" {
		t.Fatalf("file = %q, want %q", got, "abc!\n\nxyz")
	}
	if n != 9 {
		t.Fatalf("bytes = %d, want 9", n)
	}
	if d.Dirty() {
		t.Fatalf("dirty after save")
	}
}

func TestSavePromptsForName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	d := newTestDocument("hello")
	d.InsertChar(0, 5, '!')
	p := &fakePrompter{name: path, nameOK: true}
	n, err := d.Save(p)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.asked != 1 {
		t.Fatalf("prompted %d times, want 1", p.asked)
	}
	if len(p.confirmed) != 0 {
		t.Fatalf("asked to confirm %v for a new file", p.confirmed)
	}
	if n != 6 || d.Path() != path || d.Dirty() {
		t.Fatalf("n=%d path=%q dirty=%v", n, d.Path(), d.Dirty())
	}
}

func TestSaveCancelledPrompt(t *testing.T) {
	d := newTestDocument("hello")
	d.InsertChar(0, 0, 'x')
	n, err := d.Save(&fakePrompter{nameOK: false})
	if err != nil || n != 0 {
		t.Fatalf("Save = %d, %v; want 0, nil", n, err)
	}
	if !d.Dirty() {
		t.Fatalf("cancelled save cleared dirty")
	}
	if d.Path() != "" {
		t.Fatalf("cancelled save set path %q", d.Path())
	}
}

func TestSaveNoNameNoPrompter(t *testing.T) {
	d := newTestDocument("hello")
	if _, err := d.Save(nil); err != ErrNoFilename {
		t.Fatalf("Save error = %v, want ErrNoFilename", err)
	}
}

func TestSaveOverwriteConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exists.txt")
	writeFile(t, path, "old")

	d := newTestDocument("new")
	d.InsertChar(0, 3, '!')
	p := &fakePrompter{name: path, nameOK: true, overwrite: false}
	n, err := d.Save(p)
	if err != nil || n != 0 {
		t.Fatalf("declined Save = %d, %v; want 0, nil", n, err)
	}
	if got := readFile(t, path); got != "old" {
		t.Fatalf("declined overwrite changed file to %q", got)
	}
	if !d.Dirty() {
		t.Fatalf("declined overwrite cleared dirty")
	}

	p.overwrite = true
	n, err = d.Save(p)
	if err != nil || n != 4 {
		t.Fatalf("confirmed Save = %d, %v; want 4, nil", n, err)
	}
	if got := readFile(t, path); got != "new!" {
		t.Fatalf("file = %q, want %q", got, "new!")
	}
	if len(p.confirmed) != 2 {
		t.Fatalf("confirmations = %d, want 2", len(p.confirmed))
	}
}

func TestSaveOwnFileDoesNotConfirm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "own.txt")
	writeFile(t, path, "abc")
	d := New(DefaultTabStop)
	if err := d.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	d.InsertChar(0, 0, '>')
	p := &fakePrompter{}
	if _, err := d.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(p.confirmed) != 0 || p.asked != 0 {
		t.Fatalf("saving own file prompted: asked=%d confirmed=%v", p.asked, p.confirmed)
	}
	if got := readFile(t, path); got != ">abc" {
		t.Fatalf("file = %q, want %q", got, ">abc")
	}
}

func TestSaveConfirmsFileCreatedAfterSetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.txt")
	d := newTestDocument("mine")
	d.SetPath(path)
	d.InsertChar(0, 4, '!')
	writeFile(t, path, "theirs")

	p := &fakePrompter{}
	n, err := d.Save(p)
	if err != nil || n != 0 {
		t.Fatalf("Save = %d, %v; want 0, nil", n, err)
	}
	if len(p.confirmed) != 1 || p.confirmed[0] != path {
		t.Fatalf("confirmations = %v, want [%s]", p.confirmed, path)
	}
	if got := readFile(t, path); got != "theirs" {
		t.Fatalf("declined overwrite changed file to %q", got)
	}

	p.overwrite = true
	if _, err := d.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d.InsertChar(0, 0, '>')
	if _, err := d.Save(p); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if len(p.confirmed) != 2 {
		t.Fatalf("saving again to its own file asked again: %v", p.confirmed)
	}
	if got := readFile(t, path); got != ">mine!" {
		t.Fatalf("file = %q, want %q", got, ">mine!")
	}
}

func TestSaveConfirmsReplacedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "abc")
	d := New(DefaultTabStop)
	if err := d.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	d.InsertChar(0, 3, 'x')

	// Another program swaps a new file in by rename.
	tmp := filepath.Join(dir, "f.tmp")
	writeFile(t, tmp, "other")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	p := &fakePrompter{}
	if n, err := d.Save(p); err != nil || n != 0 {
		t.Fatalf("Save = %d, %v; want 0, nil", n, err)
	}
	if len(p.confirmed) != 1 {
		t.Fatalf("replaced file saved over without asking")
	}
	if got := readFile(t, path); got != "other" {
		t.Fatalf("file = %q, want %q", got, "other")
	}
}

func TestSaveWriteError(t *testing.T) {
	d := newTestDocument("x")
	d.InsertChar(0, 0, 'y')
	d.SetPath(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt"))
	if _, err := d.Save(nil); err == nil {
		t.Fatalf("Save into missing dir succeeded")
	}
	if !d.Dirty() {
		t.Fatalf("failed save cleared dirty")
	}
}

func TestInsertCharAppendsLine(t *testing.T) {
	d := newTestDocument("abc")
	d.InsertChar(1, 0, 'z')
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"abc", "z"}) {
		t.Fatalf("lines = %q", got)
	}
	if !d.Dirty() {
		t.Fatalf("insert did not mark dirty")
	}
	d.InsertChar(5, 0, 'q')
	if d.LineCount() != 2 {
		t.Fatalf("insert past append row changed line count to %d", d.LineCount())
	}
}

func TestInsertNewline(t *testing.T) {
	d := newTestDocument("hello world")
	d.InsertNewline(0, 5)
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"hello", " world"}) {
		t.Fatalf("split lines = %q", got)
	}
	d.InsertNewline(1, 0)
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"hello", "", " world"}) {
		t.Fatalf("col0 lines = %q", got)
	}
	d.InsertNewline(3, 0)
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"hello", "", " world", ""}) {
		t.Fatalf("append lines = %q", got)
	}
	// Render lines stay index-aligned with the lines.
	for i := 0; i < d.LineCount(); i++ {
		if string(d.Row(i).Render()) != d.Lines()[i] {
			t.Fatalf("render %d = %q, want %q", i, d.Row(i).Render(), d.Lines()[i])
		}
	}
}

func TestSplitLinesDoNotShareStorage(t *testing.T) {
	d := newTestDocument("abcdef")
	d.InsertNewline(0, 3)
	d.InsertChar(0, 3, 'X')
	d.InsertChar(0, 4, 'Y')
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"abcXY", "def"}) {
		t.Fatalf("lines = %q", got)
	}
}

func TestDeleteChar(t *testing.T) {
	d := newTestDocument("abc", "def")
	row, col := d.DeleteChar(0, 0)
	if row != 0 || col != 0 || d.Dirty() {
		t.Fatalf("delete at start = (%d,%d) dirty=%v", row, col, d.Dirty())
	}
	row, col = d.DeleteChar(2, 0)
	if row != 2 || col != 0 || d.Dirty() {
		t.Fatalf("delete past end = (%d,%d) dirty=%v", row, col, d.Dirty())
	}
	row, col = d.DeleteChar(0, 2)
	if row != 0 || col != 1 {
		t.Fatalf("delete mid = (%d,%d), want (0,1)", row, col)
	}
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"ac", "def"}) {
		t.Fatalf("lines = %q", got)
	}
	row, col = d.DeleteChar(1, 0)
	if row != 0 || col != 2 {
		t.Fatalf("merge = (%d,%d), want (0,2)", row, col)
	}
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"acdef"}) {
		t.Fatalf("lines = %q", got)
	}
}

func TestNewlineThenBackspaceRestoresLine(t *testing.T) {
	lines := []string{"first", "second line", "third"}
	for row := range lines {
		d := newTestDocument(lines...)
		d.InsertNewline(row, 0)
		r, c := d.DeleteChar(row+1, 0)
		if !reflect.DeepEqual(d.Lines(), lines) {
			t.Fatalf("row %d: lines = %q, want %q", row, d.Lines(), lines)
		}
		if r != row || c != 0 {
			t.Fatalf("row %d: cursor = (%d,%d), want (%d,0)", row, r, c, row)
		}
	}
}
