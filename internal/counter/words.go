package counter

import (
	"unicode"
	"unicode/utf8"
)

// CountTokens returns the number of maximal runs of non-whitespace runes in s.
// It agrees with len(strings.Fields(s)) without allocating.
func CountTokens(s string) int {
	n := 0
	inToken := false
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			i++
			if asciiSpace[c] {
				inToken = false
				continue
			}
		} else {
			r, size := utf8.DecodeRuneInString(s[i:])
			i += size
			if unicode.IsSpace(r) {
				inToken = false
				continue
			}
		}
		if !inToken {
			n++
			inToken = true
		}
	}
	return n
}

var asciiSpace = [utf8.RuneSelf]bool{'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true}
