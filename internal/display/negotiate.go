package display

import "github.com/mward/glance/internal/logging"

// Negotiate attempts to resize the display to exactly w by h. On
// rejection both dimensions are halved and the request retried, until a
// size is accepted or a dimension reaches zero. The rejected case leaves
// the display's previous geometry in effect and returns ok=false.
func Negotiate(d Display, w, h int) (accW, accH int, ok bool) {
	for w > 0 && h > 0 {
		if d.Resize(w, h) {
			return w, h, true
		}
		logging.Debug("resize rejected, halving",
			"width", w, "height", h, "next_width", w>>1, "next_height", h>>1)
		w >>= 1
		h >>= 1
	}
	return 0, 0, false
}
