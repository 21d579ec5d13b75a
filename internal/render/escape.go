package render

import "strconv"

// VT100 control sequences written by the renderer.
const (
	ClearScreen  = "\x1b[2J"
	ClearLine    = "\x1b[K"
	CursorHome   = "\x1b[H"
	HideCursor   = "\x1b[?25l"
	ShowCursor   = "\x1b[?25h"
	InverseVideo = "\x1b[7m"
	NormalVideo  = "\x1b[m"
	lineBreak    = "\r\n"
)

// MoveCursor positions the cursor at a 1-based (row, col).
func MoveCursor(row, col int) string {
	return "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}
