package annex

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var hyphenRun = regexp.MustCompile(`-+`)

// Corrector rewrites "stem particle" pairs as "stem-particle", restoring the
// annexation orthography that the recognition model loses. It is a pure
// function over its input: no state, no side effects.
type Corrector struct {
	lex *Lexicon
}

func NewCorrector(lex *Lexicon) *Corrector {
	return &Corrector{lex: lex}
}

// Correct lower-cases text, joins every stem (at least two word characters
// directly before the whitespace) to a following annexable particle (a full
// lexicon member ending at a word boundary) with a single hyphen, then
// collapses whitespace runs to one space, trims, and collapses hyphen runs to
// one hyphen. Matches are non-overlapping and applied in a single
// left-to-right pass; the hyphen substitution destroys the matched pattern,
// so a text with no remaining pair is a fixed point.
func (c *Corrector) Correct(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)

	tokens := strings.Fields(text)
	out := make([]string, 0, len(tokens))

	i := 0
	for i < len(tokens) {
		if i+1 < len(tokens) && hasStemTail(tokens[i]) && c.startsWithParticle(tokens[i+1]) {
			out = append(out, tokens[i]+"-"+tokens[i+1])
			i += 2
			continue
		}
		out = append(out, tokens[i])
		i++
	}

	return hyphenRun.ReplaceAllString(strings.Join(out, " "), "-")
}

// startsWithParticle reports whether tok begins with a lexicon member that
// ends at a word boundary (end of token or a non-word rune). Members are
// tried in the lexicon's descending-length order so the longest candidate
// wins at any shared anchor.
func (c *Corrector) startsWithParticle(tok string) bool {
	for _, p := range c.lex.particles {
		if !strings.HasPrefix(tok, p) {
			continue
		}
		rest := tok[len(p):]
		if rest == "" {
			return true
		}
		if r, _ := utf8.DecodeRuneInString(rest); !isWordRune(r) {
			return true
		}
	}
	return false
}

// hasStemTail reports whether tok ends in a run of at least two word
// characters, i.e. whether it can serve as the stem directly before the
// whitespace that separated it from the particle.
func hasStemTail(tok string) bool {
	run := 0
	for len(tok) > 0 {
		r, size := utf8.DecodeLastRuneInString(tok)
		if !isWordRune(r) {
			break
		}
		run++
		if run >= 2 {
			return true
		}
		tok = tok[:len(tok)-size]
	}
	return false
}

// isWordRune mirrors a Unicode-aware \w: letters, numbers, underscore. The
// lexicon contains letters like ɣ, so an ASCII word class would break
// boundary detection.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
