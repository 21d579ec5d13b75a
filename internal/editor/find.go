package editor

import (
	"bytes"

	"github.com/kobzarvs/mega/internal/keys"
)

type findState struct {
	lastMatch int
	direction int
}

// Find runs an incremental search prompt. The cursor follows the match as
// the query is typed; Escape puts cursor and scroll back where they were.
func (e *Editor) Find() {
	savedCX, savedCY := e.view.CX, e.view.CY
	savedRowOffset, savedColOffset := e.view.RowOffset, e.view.ColOffset

	st := &findState{lastMatch: -1, direction: 1}
	_, ok := e.Prompt("Search: %s (Use ESC/Arrows/Enter)", func(query string, k keys.Key) {
		e.findStep(st, query, k)
	})
	if !ok {
		e.view.CX, e.view.CY = savedCX, savedCY
		e.view.RowOffset, e.view.ColOffset = savedRowOffset, savedColOffset
	}
}

func (e *Editor) findStep(st *findState, query string, k keys.Key) {
	switch {
	case k.Kind == keys.Escape, k.Kind == keys.Char && k.Ch == keys.Enter:
		st.lastMatch = -1
		st.direction = 1
		return
	case k.Kind == keys.Right, k.Kind == keys.Down:
		st.direction = 1
	case k.Kind == keys.Left, k.Kind == keys.Up:
		st.direction = -1
	default:
		st.lastMatch = -1
		st.direction = 1
	}
	if st.lastMatch == -1 {
		st.direction = 1
	}
	if query == "" {
		return
	}

	n := e.doc.LineCount()
	needle := []byte(query)
	current := st.lastMatch
	for i := 0; i < n; i++ {
		current += st.direction
		if current == -1 {
			current = n - 1
		} else if current == n {
			current = 0
		}
		idx := bytes.Index(e.doc.RenderLine(current), needle)
		if idx < 0 {
			continue
		}
		st.lastMatch = current
		cx := e.doc.Row(current).RxToCx(idx, e.doc.TabStop())
		e.view.Set(e.doc, cx, current)
		// Past the end, so the next scroll puts the match on the top row.
		e.view.RowOffset = n
		return
	}
}
