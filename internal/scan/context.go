package scan

import (
	"strings"
	"unicode/utf8"
)

// Window returns the log text surrounding a match, up to before characters
// ahead of start and after characters past end, clamped to the bounds of
// text and trimmed of leading and trailing whitespace. Internal line breaks
// are preserved verbatim. Out-of-range offsets clamp instead of panicking.
// Window edges snap inward to rune boundaries so a budget landing inside a
// multi-byte rune never leaves partial bytes in the context.
func Window(text string, start, end, before, after int) string {
	lo := start - before
	if lo < 0 {
		lo = 0
	}
	if lo > len(text) {
		lo = len(text)
	}
	hi := end + after
	if hi > len(text) {
		hi = len(text)
	}
	if hi < lo {
		hi = lo
	}
	for lo < len(text) && !utf8.RuneStart(text[lo]) {
		lo++
	}
	for hi > lo && hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi--
	}
	if hi < lo {
		hi = lo
	}
	return strings.TrimSpace(text[lo:hi])
}
