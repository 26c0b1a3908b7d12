package tui

import "github.com/lixenwraith/logpager/terminal"

// LineSource is the indexed sequence of lines a ScrollView displays
type LineSource interface {
	Len() int
	Line(i int) string
}

// Renderer is the subset of terminal.Output used by widgets
type Renderer interface {
	MoveTo(x, y int)
	ClearToEOL()
	Print(s string)
	SetStyle(s terminal.Style)
	ResetStyle()
	ShiftRegion(top, bottom, n int)
}

// Bounds is the screen area of a view: Width columns, rows [Top, Bottom)
type Bounds struct {
	Width  int
	Top    int
	Bottom int
}

// Height returns the number of rows
func (b Bounds) Height() int {
	return max(b.Bottom-b.Top, 0)
}

// maxCachedLines bounds the sanitized-line cache before it is dropped wholesale
const maxCachedLines = 4096

// ScrollView shows lines [scrollY, scrollY+height) of a source, offset by
// scrollX cells. Vertical scrolls shorter than the view shift the drawn rows
// with the terminal's scroll region and only the exposed rows are redrawn
type ScrollView struct {
	r     Renderer
	src   LineSource
	theme *Theme

	bounds   Bounds
	scrollX  int
	scrollY  int
	tabWidth int

	pending []bool // per-row redraw marks, index relative to bounds.Top
	full    bool
	cache   map[int]string
}

// NewScrollView creates a view over src. A nil theme selects DefaultTheme
func NewScrollView(r Renderer, src LineSource, tabWidth int, theme *Theme) *ScrollView {
	if theme == nil {
		theme = &DefaultTheme
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &ScrollView{
		r:        r,
		src:      src,
		theme:    theme,
		tabWidth: tabWidth,
		cache:    make(map[int]string),
		full:     true,
	}
}

// Bounds returns the current view area
func (v *ScrollView) Bounds() Bounds { return v.bounds }

// ScrollY returns the index of the first visible line
func (v *ScrollView) ScrollY() int { return v.scrollY }

// ScrollX returns the horizontal cell offset
func (v *ScrollView) ScrollX() int { return v.scrollX }

// SetSource replaces the line source
func (v *ScrollView) SetSource(src LineSource) {
	v.src = src
	v.SourceChanged()
}

// SetBounds moves or resizes the view. The line at the centre of the old
// view stays at the centre of the new one as far as clamping allows
func (v *ScrollView) SetBounds(b Bounds) {
	oldH := v.bounds.Height()
	newH := b.Height()
	if oldH > 0 && newH > 0 {
		centre := v.scrollY + oldH/2
		v.scrollY = centre - newH/2
	}
	v.bounds = b
	v.pending = make([]bool, newH)
	v.scrollY = v.clampY(v.scrollY)
	v.full = true
}

// clampY limits y to [0, Len-1]
func (v *ScrollView) clampY(y int) int {
	n := v.src.Len()
	if y >= n {
		y = n - 1
	}
	return max(y, 0)
}

// ScrollToY makes line y the first visible line
func (v *ScrollView) ScrollToY(y int) {
	y = v.clampY(y)
	offset := y - v.scrollY
	if offset == 0 {
		return
	}
	v.scrollY = y

	h := v.bounds.Height()
	if v.full || h == 0 {
		v.full = true
		return
	}
	if offset >= h || -offset >= h {
		v.full = true
		return
	}

	v.r.ShiftRegion(v.bounds.Top, v.bounds.Bottom, offset)
	if offset > 0 {
		copy(v.pending, v.pending[offset:])
		for i := h - offset; i < h; i++ {
			v.pending[i] = true
		}
	} else {
		n := -offset
		copy(v.pending[n:], v.pending[:h-n])
		for i := 0; i < n; i++ {
			v.pending[i] = true
		}
	}
}

// ScrollBy scrolls vertically by delta lines
func (v *ScrollView) ScrollBy(delta int) {
	v.ScrollToY(v.scrollY + delta)
}

// ScrollToX sets the horizontal offset; any change redraws the view
func (v *ScrollView) ScrollToX(x int) {
	x = max(x, 0)
	if x == v.scrollX {
		return
	}
	v.scrollX = x
	v.full = true
}

// PageDown scrolls forward one view height
func (v *ScrollView) PageDown() { v.ScrollBy(max(v.bounds.Height(), 1)) }

// PageUp scrolls back one view height
func (v *ScrollView) PageUp() { v.ScrollBy(-max(v.bounds.Height(), 1)) }

// HalfPageDown scrolls forward half a view height
func (v *ScrollView) HalfPageDown() { v.ScrollBy(PageDelta(v.bounds.Height())) }

// HalfPageUp scrolls back half a view height
func (v *ScrollView) HalfPageUp() { v.ScrollBy(-PageDelta(v.bounds.Height())) }

// Home scrolls to the first line
func (v *ScrollView) Home() { v.ScrollToY(0) }

// End scrolls so the last line sits on the bottom row
func (v *ScrollView) End() { v.ScrollToY(v.src.Len() - v.bounds.Height()) }

// AtEnd reports whether the last line is visible
func (v *ScrollView) AtEnd() bool {
	return v.scrollY+v.bounds.Height() >= v.src.Len()
}

// SourceChanged drops cached lines and redraws after the source content
// was replaced, e.g. by a new filter
func (v *ScrollView) SourceChanged() {
	clear(v.cache)
	v.scrollY = v.clampY(v.scrollY)
	v.full = true
}

// LinesAppended marks rows newly backed by lines after the source grew from oldLen
func (v *ScrollView) LinesAppended(oldLen int) {
	h := v.bounds.Height()
	newLen := v.src.Len()
	for idx := max(oldLen, v.scrollY); idx < newLen && idx < v.scrollY+h; idx++ {
		v.pending[idx-v.scrollY] = true
	}
}

// Invalidate forces a full redraw on the next Render
func (v *ScrollView) Invalidate() {
	v.full = true
}

// NeedsRender reports whether any row is waiting to be drawn
func (v *ScrollView) NeedsRender() bool {
	if v.full {
		return true
	}
	for _, p := range v.pending {
		if p {
			return true
		}
	}
	return false
}

// PendingRows returns the view-relative rows waiting to be drawn
func (v *ScrollView) PendingRows() []int {
	var rows []int
	for i, p := range v.pending {
		if p || v.full {
			rows = append(rows, i)
		}
	}
	return rows
}

// Render draws the rows marked for redraw and clears the marks
func (v *ScrollView) Render() {
	h := v.bounds.Height()
	if h == 0 || v.bounds.Width <= 0 {
		v.full = false
		return
	}
	if v.full {
		for i := range v.pending {
			v.pending[i] = true
		}
		v.full = false
	}

	n := v.src.Len()
	drew := false
	for row := 0; row < h; row++ {
		if !v.pending[row] {
			continue
		}
		v.pending[row] = false
		drew = true

		v.r.MoveTo(0, v.bounds.Top+row)
		idx := v.scrollY + row
		if idx < n {
			v.r.SetStyle(v.theme.Text)
			v.r.ClearToEOL()
			v.r.Print(Clip(v.line(idx), v.scrollX, v.bounds.Width))
		} else {
			v.r.SetStyle(v.theme.Text)
			v.r.ClearToEOL()
			v.r.SetStyle(v.theme.Tilde)
			v.r.Print("~")
		}
	}
	if drew {
		v.r.ResetStyle()
	}
}

// line returns the sanitized form of source line idx
func (v *ScrollView) line(idx int) string {
	if s, ok := v.cache[idx]; ok {
		return s
	}
	if len(v.cache) >= maxCachedLines {
		clear(v.cache)
	}
	s := Sanitize(v.src.Line(idx), v.tabWidth)
	v.cache[idx] = s
	return s
}

// PageDelta returns the half-page scroll amount
func PageDelta(visible int) int {
	return max(visible/2, 1)
}
