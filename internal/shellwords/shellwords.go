// Package shellwords splits a command line into shell-like words.
package shellwords

import (
	"strings"

	"github.com/morozRed/mdtree/internal/diag"
)

// Split tokenizes input honoring single quotes, double quotes and backslash
// escapes. Empty words are never emitted, so a bare pair of quotes yields
// nothing.
func Split(input string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		quote   rune
		quoteAt int
	)
	runes := []rune(input)

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch quote {
		case '\'':
			if ch == '\'' {
				quote = 0
				continue
			}
			current.WriteRune(ch)
		case '"':
			switch {
			case ch == '"':
				quote = 0
			case ch == '\\' && i+1 < len(runes):
				i++
				current.WriteRune(runes[i])
			default:
				current.WriteRune(ch)
			}
		default:
			switch {
			case ch == '\'' || ch == '"':
				quote = ch
				quoteAt = i
			case ch == '\\':
				if i+1 < len(runes) {
					i++
					current.WriteRune(runes[i])
				} else {
					current.WriteRune('\\')
				}
			case isSpace(ch):
				flush()
			default:
				current.WriteRune(ch)
			}
		}
	}

	if quote != 0 {
		return nil, diag.Errorf(diag.KindUnterminatedQuote, "unterminated %c quote starting at column %d", quote, quoteAt+1)
	}
	flush()
	return words, nil
}

// Join quotes words so that Split(Join(words)) returns them unchanged.
func Join(words []string) string {
	parts := make([]string, 0, len(words))
	for _, word := range words {
		parts = append(parts, Quote(word))
	}
	return strings.Join(parts, " ")
}

// Quote returns word unchanged when it needs no quoting, otherwise wrapped in
// single quotes. Embedded single quotes are closed, escaped and reopened.
func Quote(word string) string {
	if word == "" {
		return "''"
	}
	if !strings.ContainsAny(word, " \t\n'\"\\") {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
