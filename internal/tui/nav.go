package tui

// Mode is the input mode of the view state machine.
type Mode int

const (
	// ModeBrowsing is the default mode: keys navigate pages and scroll.
	ModeBrowsing Mode = iota
	// ModeFilterInput routes printable keys into the filter pattern.
	ModeFilterInput
)

type scrollKey struct {
	page, subpage int
}

// NavState is the pure navigation state of the dashboard: current page and
// subpage, input mode, filter pattern, and one scroll offset per subpage.
// It knows nothing about rendering or data sources; callers pass the current
// filtered row count into every scroll mutation so offsets can be clamped to
// [0, rows-1] immediately.
type NavState struct {
	mode      Mode
	page      int
	subpage   []int // current subpage per page
	subCounts []int
	filter    string
	scroll    map[scrollKey]int
	pageSize  int
}

// NewNavState creates a NavState for len(subCounts) pages, where
// subCounts[i] is the number of subpages of page i (minimum 1). pageSize is
// the number of rows visible at once.
func NewNavState(subCounts []int, pageSize int) *NavState {
	counts := make([]int, len(subCounts))
	for i, c := range subCounts {
		if c < 1 {
			c = 1
		}
		counts[i] = c
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return &NavState{
		subpage:   make([]int, len(counts)),
		subCounts: counts,
		scroll:    make(map[scrollKey]int),
		pageSize:  pageSize,
	}
}

func (n *NavState) Mode() Mode     { return n.mode }
func (n *NavState) Page() int      { return n.page }
func (n *NavState) Subpage() int   { return n.subpage[n.page] }
func (n *NavState) Filter() string { return n.filter }
func (n *NavState) PageSize() int  { return n.pageSize }

// FilterActive reports whether a non-empty filter is being applied.
func (n *NavState) FilterActive() bool { return n.filter != "" }

// StartFilter enters filter-input mode with an empty pattern.
func (n *NavState) StartFilter() {
	n.mode = ModeFilterInput
	n.filter = ""
}

// CancelFilter leaves filter-input mode and discards the pattern entirely.
// Escape never leaves a half-applied filter behind.
func (n *NavState) CancelFilter() {
	n.mode = ModeBrowsing
	n.filter = ""
}

// TypeRune appends a printable character to the filter pattern.
// No-op outside filter-input mode.
func (n *NavState) TypeRune(r rune) {
	if n.mode != ModeFilterInput {
		return
	}
	n.filter += string(r)
}

// Backspace removes the last character of the filter pattern.
func (n *NavState) Backspace() {
	if n.mode != ModeFilterInput || n.filter == "" {
		return
	}
	runes := []rune(n.filter)
	n.filter = string(runes[:len(runes)-1])
}

// GotoPage switches to page i and resets the filter; a pattern typed for one
// page's data is meaningless on another.
func (n *NavState) GotoPage(i int) {
	if i < 0 || i >= len(n.subCounts) {
		return
	}
	n.page = i
	n.mode = ModeBrowsing
	n.filter = ""
}

// NextPage cycles forward through the pages.
func (n *NavState) NextPage() {
	n.GotoPage((n.page + 1) % len(n.subCounts))
}

// PrevPage cycles backward through the pages.
func (n *NavState) PrevPage() {
	n.GotoPage((n.page - 1 + len(n.subCounts)) % len(n.subCounts))
}

// NextSubpage cycles forward through the current page's subpages.
func (n *NavState) NextSubpage() {
	n.subpage[n.page] = (n.subpage[n.page] + 1) % n.subCounts[n.page]
}

// PrevSubpage cycles backward through the current page's subpages.
func (n *NavState) PrevSubpage() {
	n.subpage[n.page] = (n.subpage[n.page] - 1 + n.subCounts[n.page]) % n.subCounts[n.page]
}

// Scroll returns the scroll offset of the current subpage.
func (n *NavState) Scroll() int {
	return n.scroll[n.key()]
}

// ScrollBy moves the current subpage's offset by delta rows, clamped against
// rowCount.
func (n *NavState) ScrollBy(delta, rowCount int) {
	n.setScroll(n.Scroll()+delta, rowCount)
}

// ScrollTop jumps to the first row.
func (n *NavState) ScrollTop() {
	n.setScroll(0, 1)
}

// ScrollEnd jumps so the final rows fill the view: the offset lands on
// rowCount-1-pageSize, floored at zero. With 42 rows and a 40-row view that
// is offset 1, leaving the last 41 visible rows anchored at the bottom row.
func (n *NavState) ScrollEnd(rowCount int) {
	n.setScroll(rowCount-1-n.pageSize, rowCount)
}

// Clamp re-clamps the current subpage's offset after the row population
// changed underneath it, e.g. on refresh or filter edits.
func (n *NavState) Clamp(rowCount int) {
	n.setScroll(n.Scroll(), rowCount)
}

func (n *NavState) setScroll(offset, rowCount int) {
	max := rowCount - 1
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	n.scroll[n.key()] = offset
}

func (n *NavState) key() scrollKey {
	return scrollKey{page: n.page, subpage: n.subpage[n.page]}
}
