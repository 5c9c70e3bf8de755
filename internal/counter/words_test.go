package counter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"spaces only", "   \t\n  ", 0},
		{"single word", "hello", 1},
		{"repeated separators", "hello   world", 2},
		{"leading and trailing", "  hello world  ", 2},
		{"tabs and newlines", "one\ttwo\nthree\r\nfour", 4},
		{"punctuation is part of a token", "hello, world! -- ok", 4},
		{"cyrillic", "Привіт світе", 2},
		{"non-breaking space separates", "a\u00a0b", 2},
		{"ideographic space separates", "a\u3000b", 2},
		{"vertical tab and form feed", "a\vb\fc", 3},
		{"numbers", "2024 12 31", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountTokens(tt.input))
			assert.Equal(t, len(strings.Fields(tt.input)), CountTokens(tt.input))
		})
	}
}

func TestCountTokensConcatenation(t *testing.T) {
	a, b := "alpha beta", "gamma"
	assert.Equal(t, CountTokens(a)+CountTokens(b), CountTokens(a+" "+b))
	assert.Equal(t, CountTokens(a)+CountTokens(b), CountTokens(a+"\n"+b))
}
