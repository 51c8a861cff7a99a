package term

import (
	"fmt"
	"image"
	"strings"
)

// Present draws the frame with half-block cells: the upper half block
// glyph carries the top pixel as foreground and the bottom pixel as
// background, packing two scanlines per terminal row.
func (d *Display) Present(frame *image.RGBA) {
	d.mu.Lock()
	w, h, rows := d.w, d.h, d.rows
	status := d.status
	d.mu.Unlock()

	if frame == nil {
		return
	}
	b := frame.Bounds()
	if b.Dx() < w {
		w = b.Dx()
	}
	if b.Dy() < h {
		h = b.Dy()
	}

	var sb strings.Builder
	sb.Grow(w * h * 20)
	sb.WriteString("\x1b[H")
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			ti := frame.PixOffset(b.Min.X+x, b.Min.Y+y)
			tr, tg, tb := frame.Pix[ti], frame.Pix[ti+1], frame.Pix[ti+2]
			var br, bg, bb uint8
			if y+1 < h {
				bi := frame.PixOffset(b.Min.X+x, b.Min.Y+y+1)
				br, bg, bb = frame.Pix[bi], frame.Pix[bi+1], frame.Pix[bi+2]
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				tr, tg, tb, br, bg, bb)
		}
		sb.WriteString("\x1b[0m\x1b[K\r\n")
	}
	fmt.Fprintf(&sb, "\x1b[%d;1H\x1b[0m\x1b[2K%s", rows, clip(status, w))
	d.tty.WriteString(sb.String())
}

// SetStatus updates the reserved bottom row immediately.
func (d *Display) SetStatus(prefix, text string) {
	line := prefix + text
	d.mu.Lock()
	d.status = line
	w, rows := d.maxW, d.rows
	d.mu.Unlock()
	fmt.Fprintf(d.tty, "\x1b[%d;1H\x1b[0m\x1b[2K%s", rows, clip(line, w))
}

func clip(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	return s
}
