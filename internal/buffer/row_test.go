package buffer

import (
	"strings"
	"testing"
)

func TestRenderExpandsTabs(t *testing.T) {
	r := newRow([]byte("\tx"), 8)
	if got := string(r.Render()); got != strings.Repeat(" ", 8)+"x" {
		t.Fatalf("render = %q", got)
	}
	r = newRow([]byte("ab\tc"), 4)
	if got := string(r.Render()); got != "ab  c" {
		t.Fatalf("render = %q, want %q", got, "ab  c")
	}
}

func TestInsertTabBeforeTabKeepsWidth(t *testing.T) {
	d := newTestDocument("\t")
	if got := string(d.Row(0).Render()); got != strings.Repeat(" ", 8) {
		t.Fatalf("render = %q, want 8 spaces", got)
	}
	if rx := d.RenderCol(0, 0); rx != 0 {
		t.Fatalf("tab start = %d, want 0", rx)
	}

	d.InsertChar(0, 0, '\t')
	if got := string(d.Row(0).Render()); got != strings.Repeat(" ", 16) {
		t.Fatalf("render = %q, want 16 spaces", got)
	}
	start := d.RenderCol(0, 1)
	end := d.RenderCol(0, 2)
	if start != 8 || end-start != 8 {
		t.Fatalf("first tab spans [%d,%d), want [8,16)", start, end)
	}
}

func TestInsertCharBeforeTabRealigns(t *testing.T) {
	d := newTestDocument("\tx")
	d.InsertChar(0, 0, 'a')
	if got := string(d.Row(0).Render()); got != "a"+strings.Repeat(" ", 7)+"x" {
		t.Fatalf("render = %q", got)
	}
	if rx := d.RenderCol(0, 2); rx != 8 {
		t.Fatalf("rx of x = %d, want 8", rx)
	}
}

func TestCxToRxNeverBelowCx(t *testing.T) {
	lines := []string{"", "plain", "\t", "a\tb\tc", "\t\t", "abcdefgh\tx", "x\t\ty"}
	for _, line := range lines {
		r := newRow([]byte(line), DefaultTabStop)
		for cx := 0; cx <= len(line); cx++ {
			rx := r.CxToRx(cx, DefaultTabStop)
			hasTab := strings.Contains(line[:cx], "\t")
			if rx < cx {
				t.Fatalf("%q cx=%d: rx=%d < cx", line, cx, rx)
			}
			if (rx == cx) == hasTab {
				t.Fatalf("%q cx=%d: rx=%d, tab before cursor=%v", line, cx, rx, hasTab)
			}
			if rx > len(r.Render()) {
				t.Fatalf("%q cx=%d: rx=%d beyond render length %d", line, cx, rx, len(r.Render()))
			}
		}
	}
}

func TestRxToCx(t *testing.T) {
	r := newRow([]byte("a\tbc"), 8)
	tests := []struct{ rx, want int }{
		{0, 0}, {1, 1}, {5, 1}, {7, 1}, {8, 2}, {9, 3}, {10, 4}, {50, 4},
	}
	for _, tt := range tests {
		if got := r.RxToCx(tt.rx, 8); got != tt.want {
			t.Fatalf("RxToCx(%d) = %d, want %d", tt.rx, got, tt.want)
		}
	}
}
