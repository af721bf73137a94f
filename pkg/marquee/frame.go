package marquee

import "strings"

// VirtualBuffer returns text followed by width blank cells, as runes.
// Each rune counts as one cell.
func VirtualBuffer(text string, width int) []rune {
	if width < 0 {
		width = 0
	}
	buf := make([]rune, 0, len(text)+width)
	buf = append(buf, []rune(text)...)
	for i := 0; i < width; i++ {
		buf = append(buf, ' ')
	}
	return buf
}

// Window returns the circular slice of buf that is width cells long and
// starts at pos. A pos outside [0, len(buf)) is treated as 0. Windows wider
// than buf repeat it.
func Window(buf []rune, pos, width int) string {
	if width <= 0 {
		return ""
	}
	n := len(buf)
	if n == 0 {
		return strings.Repeat(" ", width)
	}
	if pos < 0 || pos >= n {
		pos = 0
	}
	if pos+width <= n {
		return string(buf[pos : pos+width])
	}
	out := make([]rune, 0, width)
	out = append(out, buf[pos:]...)
	for len(out) < width {
		rest := width - len(out)
		if rest > n {
			rest = n
		}
		out = append(out, buf[:rest]...)
	}
	return string(out)
}

// FrameAt returns the frame shown at scroll position pos for text in a
// viewport of width cells. It is the pure form of one engine tick.
func FrameAt(text string, width, pos int) string {
	if width <= 0 {
		return ""
	}
	buf := VirtualBuffer(text, width)
	return Window(buf, pos%len(buf), width)
}
