// Package budget decides per-image compression quality from page count.
package budget

const (
	// MaxQuality applies to short documents where per-image cost is cheap.
	MaxQuality = 85

	// MinQuality is the floor; below this slides become visibly blocky.
	MinQuality = 40
)

// Quality returns the JPEG quality (1-100 scale) to use when encoding
// slide images for a deck with the given page count. Longer documents get
// more aggressive per-image compression to keep deck totals bounded.
func Quality(pageCount int) int {
	switch {
	case pageCount <= 0:
		return MaxQuality
	case pageCount <= 20:
		return MaxQuality
	case pageCount <= 50:
		return 75
	case pageCount <= 100:
		return 65
	case pageCount <= 200:
		return 50
	default:
		return MinQuality
	}
}
