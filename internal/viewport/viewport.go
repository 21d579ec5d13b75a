package viewport

// Lines is the read-only view of a document the cursor model needs.
type Lines interface {
	LineCount() int
	LineLen(row int) int
	RenderCol(row, cx int) int
}

// Direction of a single cursor step.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Model holds the cursor in file coordinates and the top-left corner of
// the visible window. RX is derived by Scroll and is not state of its own.
//
// CY ranges over [0, LineCount]; CY == LineCount is the empty append row
// after the last line. CX never exceeds the length of line CY.
type Model struct {
	CX, CY    int
	RX        int
	RowOffset int
	ColOffset int
	Rows      int
	Cols      int
}

func New(rows, cols int) *Model {
	return &Model{Rows: rows, Cols: cols}
}

// Resize sets the text area size.
func (m *Model) Resize(rows, cols int) {
	m.Rows, m.Cols = rows, cols
}

// Move steps the cursor once in dir, wrapping across line ends.
func (m *Model) Move(doc Lines, dir Direction) {
	n := doc.LineCount()
	switch dir {
	case Left:
		if m.CX > 0 {
			m.CX--
		} else if m.CY > 0 {
			m.CY--
			m.CX = doc.LineLen(m.CY)
		}
	case Right:
		if m.CY < n {
			if m.CX < doc.LineLen(m.CY) {
				m.CX++
			} else if m.CY+1 < n {
				m.CY++
				m.CX = 0
			}
		}
	case Up:
		if m.CY > 0 {
			m.CY--
		}
	case Down:
		if m.CY < n {
			m.CY++
		}
	}
	m.clamp(doc)
}

func (m *Model) clamp(doc Lines) {
	rowLen := 0
	if m.CY < doc.LineCount() {
		rowLen = doc.LineLen(m.CY)
	}
	if m.CX > rowLen {
		m.CX = rowLen
	}
	if m.CX < 0 {
		m.CX = 0
	}
}

// Home moves to the start of the line.
func (m *Model) Home() {
	m.CX = 0
}

// End moves past the last character of the line.
func (m *Model) End(doc Lines) {
	if m.CY < doc.LineCount() {
		m.CX = doc.LineLen(m.CY)
	}
}

// PageUp jumps to the top of the window and then steps up a full page.
func (m *Model) PageUp(doc Lines) {
	m.CY = m.RowOffset
	m.clamp(doc)
	for i := 0; i < m.Rows; i++ {
		m.Move(doc, Up)
	}
}

// PageDown jumps to the bottom of the window and then steps down a full
// page.
func (m *Model) PageDown(doc Lines) {
	m.CY = m.RowOffset + m.Rows - 1
	if n := doc.LineCount(); m.CY > n {
		m.CY = n
	}
	m.clamp(doc)
	for i := 0; i < m.Rows; i++ {
		m.Move(doc, Down)
	}
}

// Set places the cursor at (cx, cy), clamped to the document.
func (m *Model) Set(doc Lines, cx, cy int) {
	n := doc.LineCount()
	if cy < 0 {
		cy = 0
	}
	if cy > n {
		cy = n
	}
	m.CX, m.CY = cx, cy
	m.clamp(doc)
}

// Scroll recomputes RX and pulls the window onto the cursor.
func (m *Model) Scroll(doc Lines) {
	m.RX = 0
	if m.CY < doc.LineCount() {
		m.RX = doc.RenderCol(m.CY, m.CX)
	}

	if m.CY < m.RowOffset {
		m.RowOffset = m.CY
	}
	if m.CY >= m.RowOffset+m.Rows {
		m.RowOffset = m.CY - m.Rows + 1
	}
	if m.RX < m.ColOffset {
		m.ColOffset = m.RX
	}
	if m.RX >= m.ColOffset+m.Cols {
		m.ColOffset = m.RX - m.Cols + 1
	}
	if m.RowOffset < 0 {
		m.RowOffset = 0
	}
	if m.ColOffset < 0 {
		m.ColOffset = 0
	}
}
