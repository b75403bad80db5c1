package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNav() *NavState {
	// 3 pages: 2 subpages, 1 subpage, 3 subpages. 40 rows per view.
	return NewNavState([]int{2, 1, 3}, 40)
}

func TestNavStartsBrowsing(t *testing.T) {
	n := newTestNav()
	assert.Equal(t, ModeBrowsing, n.Mode())
	assert.Equal(t, 0, n.Page())
	assert.Equal(t, 0, n.Subpage())
	assert.Equal(t, "", n.Filter())
}

func TestNavFilterInput(t *testing.T) {
	n := newTestNav()

	n.StartFilter()
	assert.Equal(t, ModeFilterInput, n.Mode())
	assert.False(t, n.FilterActive(), "empty pattern is not active")

	for _, r := range "pxq" {
		n.TypeRune(r)
	}
	assert.Equal(t, "pxq", n.Filter())
	assert.True(t, n.FilterActive())

	n.Backspace()
	assert.Equal(t, "px", n.Filter())

	n.CancelFilter()
	assert.Equal(t, ModeBrowsing, n.Mode())
	assert.Equal(t, "", n.Filter(), "escape discards the pattern")
}

func TestNavBackspaceOnEmptyPattern(t *testing.T) {
	n := newTestNav()
	n.StartFilter()
	n.Backspace()
	assert.Equal(t, "", n.Filter())
	assert.Equal(t, ModeFilterInput, n.Mode())
}

func TestNavTypeRuneIgnoredWhileBrowsing(t *testing.T) {
	n := newTestNav()
	n.TypeRune('x')
	assert.Equal(t, "", n.Filter())
}

func TestNavPageChangeResetsFilter(t *testing.T) {
	n := newTestNav()
	n.StartFilter()
	n.TypeRune('a')

	n.NextPage()

	assert.Equal(t, 1, n.Page())
	assert.Equal(t, ModeBrowsing, n.Mode())
	assert.Equal(t, "", n.Filter())
}

func TestNavPageCycling(t *testing.T) {
	n := newTestNav()
	n.PrevPage()
	assert.Equal(t, 2, n.Page())
	n.NextPage()
	assert.Equal(t, 0, n.Page())
	n.GotoPage(7)
	assert.Equal(t, 0, n.Page(), "out-of-range page ignored")
}

func TestNavSubpageCyclingPerPage(t *testing.T) {
	n := newTestNav()
	n.NextSubpage()
	assert.Equal(t, 1, n.Subpage())
	n.NextSubpage()
	assert.Equal(t, 0, n.Subpage(), "wraps at 2 subpages")

	n.GotoPage(2)
	n.PrevSubpage()
	assert.Equal(t, 2, n.Subpage())

	// Page 0 remembers its own subpage independently.
	n.GotoPage(0)
	assert.Equal(t, 0, n.Subpage())
}

func TestNavScrollClamping(t *testing.T) {
	n := newTestNav()

	n.ScrollBy(5, 100)
	assert.Equal(t, 5, n.Scroll())

	n.ScrollBy(-50, 100)
	assert.Equal(t, 0, n.Scroll())

	n.ScrollBy(500, 100)
	assert.Equal(t, 99, n.Scroll(), "clamped to last row index")

	n.Clamp(10)
	assert.Equal(t, 9, n.Scroll(), "re-clamped after rows shrank")

	n.Clamp(0)
	assert.Equal(t, 0, n.Scroll(), "no rows clamps to zero")
}

func TestNavScrollEnd(t *testing.T) {
	n := newTestNav()

	n.ScrollEnd(42)
	assert.Equal(t, 1, n.Scroll(), "42 rows at 40 per view ends at offset 1")

	n.ScrollEnd(10)
	assert.Equal(t, 0, n.Scroll(), "fewer rows than a view stays at top")

	n.ScrollEnd(0)
	assert.Equal(t, 0, n.Scroll())
}

func TestNavScrollTop(t *testing.T) {
	n := newTestNav()
	n.ScrollBy(30, 100)
	n.ScrollTop()
	assert.Equal(t, 0, n.Scroll())
}

func TestNavScrollPerSubpage(t *testing.T) {
	n := newTestNav()
	n.ScrollBy(7, 100)

	n.NextSubpage()
	assert.Equal(t, 0, n.Scroll(), "fresh subpage starts at top")
	n.ScrollBy(3, 100)

	n.PrevSubpage()
	assert.Equal(t, 7, n.Scroll(), "offset remembered per subpage")
}
