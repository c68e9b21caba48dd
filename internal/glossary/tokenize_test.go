package glossary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextWordOrSeparator(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		position int
		want     string
	}{
		{"word at start", "A Java blueprint.", 0, "A"},
		{"separator run", "a , \tb", 1, " , \t"},
		{"word to end", "A Java blueprint.", 7, "blueprint."},
		{"mid word", "language", 3, "guage"},
		{"punctuation is part of word", "(see word).", 0, "(see"},
		{"single separator", "x,y", 1, ","},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextWordOrSeparator(tt.text, tt.position, &DefaultSeparators))
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("A Java, blueprint.", &DefaultSeparators)
	assert.Equal(t, []Token{
		{Text: "A"},
		{Text: " ", Separator: true},
		{Text: "Java"},
		{Text: ", ", Separator: true},
		{Text: "blueprint."},
	}, tokens)
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"word",
		"  leading and trailing  ",
		"a,b,,c\t\td",
		"unicode café, naïve\ttext",
		",,,",
	}
	for _, in := range inputs {
		var b strings.Builder
		tokens := Tokenize(in, &DefaultSeparators)
		for i, tok := range tokens {
			b.WriteString(tok.Text)
			if i > 0 {
				assert.NotEqual(t, tokens[i-1].Separator, tok.Separator, "adjacent tokens must alternate in %q", in)
			}
		}
		assert.Equal(t, in, b.String())
	}
}

func TestSeparatorSet(t *testing.T) {
	s := NewSeparatorSet(" ;é")
	assert.True(t, s.Contains(' '))
	assert.True(t, s.Contains(';'))
	assert.False(t, s.Contains(','))
	assert.False(t, s.Contains(0xC3), "UTF-8 lead bytes are never separators")
}
