package glossary

// SeparatorSet is a set of ASCII delimiter bytes.
type SeparatorSet [128]bool

// DefaultSeparators splits definitions on space, tab and comma.
var DefaultSeparators = NewSeparatorSet(" \t,")

// NewSeparatorSet builds a set from the ASCII characters in chars.
// Non-ASCII characters are ignored.
func NewSeparatorSet(chars string) SeparatorSet {
	var s SeparatorSet
	for i := 0; i < len(chars); i++ {
		if c := chars[i]; c < 128 {
			s[c] = true
		}
	}
	return s
}

// Contains reports whether c is a separator. Bytes of multi-byte UTF-8
// sequences are never separators.
func (s *SeparatorSet) Contains(c byte) bool {
	return c < 128 && s[c]
}

// Token is a maximal run of separator or non-separator characters.
type Token struct {
	Text      string
	Separator bool
}

// NextWordOrSeparator returns the maximal run starting at position made of
// either only separators or only non-separators, whichever text[position] is.
// position must satisfy 0 <= position < len(text).
func NextWordOrSeparator(text string, position int, seps *SeparatorSet) string {
	inSeparator := seps.Contains(text[position])
	end := position + 1
	for end < len(text) && seps.Contains(text[end]) == inSeparator {
		end++
	}
	return text[position:end]
}

// Tokenize splits text into consecutive tokens whose concatenation is text.
func Tokenize(text string, seps *SeparatorSet) []Token {
	var tokens []Token
	for pos := 0; pos < len(text); {
		run := NextWordOrSeparator(text, pos, seps)
		tokens = append(tokens, Token{Text: run, Separator: seps.Contains(run[0])})
		pos += len(run)
	}
	return tokens
}
