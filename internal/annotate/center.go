package annotate

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// center pads s with fill on both sides up to width terminal cells. When the
// margin is odd the extra cell goes left only if width is odd too, which
// keeps banners of equal width aligned with each other.
func center(s string, width int, fill string) string {
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	marg := width - n
	left := marg/2 + (marg & width & 1)
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, marg-left)
}
