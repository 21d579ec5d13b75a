package buffer

// DefaultTabStop is the render width of a tab stop.
const DefaultTabStop = 8

// Row is one line of the document and its tab-expanded render form.
type Row struct {
	chars  []byte
	render []byte
}

func newRow(chars []byte, tabStop int) Row {
	r := Row{chars: chars}
	r.update(tabStop)
	return r
}

func (r *Row) update(tabStop int) {
	render := r.render[:0]
	for _, c := range r.chars {
		if c == '\t' {
			render = append(render, ' ')
			for len(render)%tabStop != 0 {
				render = append(render, ' ')
			}
			continue
		}
		render = append(render, c)
	}
	r.render = render
}

func (r *Row) Chars() []byte { return r.chars }
func (r *Row) Render() []byte { return r.render }
func (r *Row) Len() int { return len(r.chars) }

// CxToRx converts a file column into a render column.
func (r *Row) CxToRx(cx, tabStop int) int {
	if cx > len(r.chars) {
		cx = len(r.chars)
	}
	rx := 0
	for _, c := range r.chars[:cx] {
		if c == '\t' {
			rx += (tabStop - 1) - (rx % tabStop)
		}
		rx++
	}
	return rx
}

// RxToCx converts a render column back into the file column that covers it.
func (r *Row) RxToCx(rx, tabStop int) int {
	cur := 0
	for cx, c := range r.chars {
		if c == '\t' {
			cur += (tabStop - 1) - (cur % tabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(r.chars)
}

func (r *Row) insert(at int, c byte, tabStop int) {
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = append(r.chars, 0)
	copy(r.chars[at+1:], r.chars[at:])
	r.chars[at] = c
	r.update(tabStop)
}

func (r *Row) deleteAt(at int, tabStop int) {
	if at < 0 || at >= len(r.chars) {
		return
	}
	r.chars = append(r.chars[:at], r.chars[at+1:]...)
	r.update(tabStop)
}

func (r *Row) appendBytes(b []byte, tabStop int) {
	r.chars = append(r.chars, b...)
	r.update(tabStop)
}
