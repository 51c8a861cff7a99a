package term

import "github.com/mward/glance/internal/display"

// readKeys turns raw tty bytes into input events. Keys that match an
// announced default binding are delivered as labels; the rest fall back
// to keysyms the dispatch table knows.
func (d *Display) readKeys() {
	buf := make([]byte, 64)
	for {
		n, err := d.tty.Read(buf)
		if err != nil {
			// Lost the terminal; the session treats this as a
			// connection drop and shuts down.
			d.once.Do(func() { close(d.done) })
			return
		}
		for i := 0; i < n; i++ {
			c := buf[i]
			if c == 0x1b && i+2 < n && buf[i+1] == '[' {
				switch buf[i+2] {
				case 'D':
					d.sendKey("LEFT", display.KeyLeft)
				case 'C':
					d.sendKey("RIGHT", display.KeyRight)
				}
				i += 2
				continue
			}
			switch c {
			case 0x1b, 0x03, 'q', 'Q':
				d.send(display.Event{Kind: display.EventTerminate})
			case ' ':
				d.sendKey("SPACE", display.KeySpace)
			case '\t':
				d.sendKey("TAB", display.KeyTab)
			case 'z', 'Z':
				d.sendKey("Z", display.KeyZ)
			case 'm', 'M':
				d.sendKey("M", display.KeyM)
			case 'a', 'A':
				d.sendKey("A", display.KeyA)
			case '+', '=':
				d.sendKey("+", display.KeyPlus)
			case '-', '_':
				d.sendKey("-", display.KeyMinus)
			case 'h', 'H':
				d.sendKey("LEFT", display.KeyH)
			case 'l', 'L':
				d.sendKey("RIGHT", display.KeyL)
			}
		}
	}
}

func (d *Display) sendKey(name string, sym display.Keysym) {
	d.mu.Lock()
	label := d.labels[name]
	d.mu.Unlock()
	d.send(display.Event{
		Kind:   display.EventInput,
		Label:  label,
		Sym:    sym,
		Active: true,
	})
}
