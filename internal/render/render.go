package render

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/kobzarvs/mega/internal/viewport"
)

// DefaultMessageTimeout is how long a status message stays visible.
const DefaultMessageTimeout = 5 * time.Second

// Document is what the renderer reads from the buffer.
type Document interface {
	LineCount() int
	RenderLine(i int) []byte
}

// Frame is the state one screen refresh is built from. View must already
// be scrolled onto the cursor.
type Frame struct {
	Doc       Document
	View      *viewport.Model
	Filename  string
	Dirty     bool
	Message   string
	MessageAt time.Time
	Now       time.Time
}

// Renderer builds whole frames and writes each one with a single Write.
type Renderer struct {
	w              io.Writer
	buf            bytes.Buffer
	banner         string
	messageTimeout time.Duration
}

// New returns a renderer writing to w. banner is shown centered in an
// empty document.
func New(w io.Writer, banner string, messageTimeout time.Duration) *Renderer {
	if messageTimeout <= 0 {
		messageTimeout = DefaultMessageTimeout
	}
	return &Renderer{w: w, banner: banner, messageTimeout: messageTimeout}
}

// Draw redraws the full screen from f.
func (r *Renderer) Draw(f Frame) error {
	v := f.View
	r.buf.WriteString(HideCursor)
	r.buf.WriteString(CursorHome)

	r.drawRows(f)
	r.drawStatusBar(f)
	r.drawMessageBar(f)

	r.buf.WriteString(MoveCursor(v.CY-v.RowOffset+1, v.RX-v.ColOffset+1))
	r.buf.WriteString(ShowCursor)

	_, err := r.w.Write(r.buf.Bytes())
	r.buf.Reset()
	return err
}

// Clear wipes the screen and homes the cursor.
func (r *Renderer) Clear() error {
	_, err := io.WriteString(r.w, ClearScreen+CursorHome)
	return err
}

func (r *Renderer) drawRows(f Frame) {
	v := f.View
	n := f.Doc.LineCount()
	for y := 0; y < v.Rows; y++ {
		fileRow := y + v.RowOffset
		switch {
		case fileRow < n:
			line := f.Doc.RenderLine(fileRow)
			length := len(line) - v.ColOffset
			if length > v.Cols {
				length = v.Cols
			}
			if length > 0 {
				r.buf.Write(line[v.ColOffset : v.ColOffset+length])
			}
		case n == 0 && y == v.Rows/3:
			r.drawBanner(v.Cols)
		default:
			r.buf.WriteByte('~')
		}
		r.buf.WriteString(ClearLine)
		r.buf.WriteString(lineBreak)
	}
}

func (r *Renderer) drawBanner(cols int) {
	msg := r.banner
	if len(msg) > cols {
		msg = msg[:cols]
	}
	padding := (cols - len(msg)) / 2
	if padding > 0 {
		r.buf.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		r.buf.WriteByte(' ')
	}
	r.buf.WriteString(msg)
}

func (r *Renderer) drawStatusBar(f Frame) {
	name := f.Filename
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if f.Dirty {
		modified = " (modified)"
	}
	n := f.Doc.LineCount()
	left := fmt.Sprintf("%.20s - %d lines%s", name, n, modified)
	right := fmt.Sprintf("%d/%d", f.View.CY+1, n)

	r.buf.WriteString(InverseVideo)
	r.buf.WriteString(composeStatusLine(left, right, f.View.Cols))
	r.buf.WriteString(NormalVideo)
	r.buf.WriteString(lineBreak)
}

func (r *Renderer) drawMessageBar(f Frame) {
	r.buf.WriteString(ClearLine)
	msg := f.Message
	if msg == "" || f.Now.Sub(f.MessageAt) >= r.messageTimeout {
		return
	}
	if len(msg) > f.View.Cols {
		msg = msg[:f.View.Cols]
	}
	r.buf.WriteString(msg)
}

// composeStatusLine lays left and right out on one line of exactly width
// columns, cutting left first when both do not fit.
func composeStatusLine(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(left)+len(right) > width {
		if len(right) >= width {
			right = right[len(right)-width:]
			left = ""
		} else {
			left = left[:width-len(right)]
		}
	}
	spaceCount := width - len(left) - len(right)
	line := make([]byte, 0, width)
	line = append(line, left...)
	for i := 0; i < spaceCount; i++ {
		line = append(line, ' ')
	}
	line = append(line, right...)
	return string(line)
}
