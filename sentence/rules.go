package sentence

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule names reported in Decision.Rule and accepted by WithDisabledRules.
const (
	RuleAbbreviation = "abbreviation"
	RuleDecimal      = "decimal"
	RuleAddress      = "address"
	RuleQuotation    = "quotation"
	RuleCodeSpan     = "code-span"

	// RuleStructure rejects a split that would start a line looking like a
	// markdown block marker. It is active only when a guard is configured.
	RuleStructure = "structure"
)

// Rules returns the names of the rules that can be disabled, in the order they
// are applied.
func Rules() []string {
	return []string{RuleAbbreviation, RuleDecimal, RuleAddress, RuleQuotation, RuleCodeSpan}
}

type periodRule struct {
	name  string
	match func(s *Segmenter, word, rest string) bool
}

// periodRules apply to tokens ending in a period. The first match wins, so the
// order here is the precedence: abbreviation, then decimal, then address.
var periodRules = []periodRule{
	{RuleAbbreviation, func(s *Segmenter, word, _ string) bool { return s.isAbbreviation(word) }},
	{RuleDecimal, func(_ *Segmenter, word, rest string) bool { return isDecimal(word, rest) }},
	{RuleAddress, func(_ *Segmenter, word, _ string) bool { return isAddress(word) }},
}

const (
	openers = "\"'“‘«([*_`¿¡"
	closers = "\"'”’»)]*_"
)

var (
	initialism  = regexp.MustCompile(`^(\pL\.)+\pL$`)
	decimal     = regexp.MustCompile(`^[-+]?[$€£¥]?\d[\d,]*\.\d+%?$`)
	email       = regexp.MustCompile(`\S+@\S+\.\S+`)
	domainDot   = regexp.MustCompile(`\w\.\w`)
	linkDest    = regexp.MustCompile(`\]\([^)\s]*\)$`)
	footnoteRef = regexp.MustCompile(`\[\^[^\]]+\]$`)
)

// isAbbreviation reports whether word, the token without its final period,
// is a known abbreviation, a dotted initialism such as U.S or e.g, or a
// single capital initial.
func (s *Segmenter) isAbbreviation(word string) bool {
	word = strings.TrimLeft(word, openers)
	if word == "" {
		return false
	}
	if _, ok := s.abbreviations[word]; ok {
		return true
	}
	if initialism.MatchString(word) {
		return true
	}
	r, size := utf8.DecodeRuneInString(word)
	return size == len(word) && unicode.IsUpper(r)
}

// isDecimal reports whether the period belongs to a number: word is a
// decimal or currency amount, or a digit sits on both sides of the break.
func isDecimal(word, rest string) bool {
	word = strings.TrimLeft(word, openers)
	if decimal.MatchString(word) {
		return true
	}
	if word == "" || rest == "" {
		return false
	}
	return isDigit(word[len(word)-1]) && isDigit(rest[0])
}

// isAddress reports whether word looks like a URL, email address, file path
// or bare domain.
func isAddress(word string) bool {
	word = strings.TrimLeft(word, openers)

	// A closed link destination or autolink ends before the period.
	if loc := linkDest.FindStringIndex(word); loc != nil {
		word = word[:loc[0]+1]
	} else if strings.HasPrefix(word, "<") && strings.HasSuffix(word, ">") {
		return false
	}

	return strings.Contains(word, "://") ||
		strings.HasPrefix(word, "www.") ||
		strings.Contains(word, "/") ||
		email.MatchString(word) ||
		domainDot.MatchString(word)
}

// terminal returns the terminal punctuation of core and the word before it.
// Any run of three or more dots, or a '…', is reported as ellipsis.
func terminal(core string) (rune, string) {
	if w, ok := strings.CutSuffix(core, "…"); ok {
		return ellipsis, strings.TrimRight(w, ".…")
	}

	dots := len(core) - len(strings.TrimRight(core, "."))
	switch {
	case dots >= 3:
		return ellipsis, core[:len(core)-dots]
	case dots > 0:
		return '.', core[:len(core)-dots]
	case core == "":
		return 0, ""
	}

	switch c := core[len(core)-1]; c {
	case '?', '!':
		return rune(c), strings.TrimRight(core, "?!")
	}
	return 0, ""
}

// trimClosers strips closing quotes, brackets, emphasis markers and a
// trailing footnote reference, which sit after the punctuation they close.
func trimClosers(token string) string {
	if loc := footnoteRef.FindStringIndex(token); loc != nil && loc[0] > 0 {
		token = token[:loc[0]]
	}
	return strings.TrimRight(token, closers)
}

func classOf(rest string) Class {
	r, _ := utf8.DecodeRuneInString(rest)
	switch {
	case unicode.IsUpper(r) || unicode.IsTitle(r):
		return ClassUpper
	case strings.ContainsRune("\"'“‘«", r):
		return ClassQuote
	case strings.ContainsRune("([*_`¿¡", r):
		return ClassOpener
	}
	return ClassOther
}

// quoteState tracks open double quotations since the last boundary.
type quoteState struct {
	straight int
	curly    int
}

// observe counts the quotes in token. A straight quote right after a digit
// is an inch or seconds mark unless it closes an open quotation.
func (q *quoteState) observe(token string) {
	var prev rune
	for _, r := range token {
		switch r {
		case '"':
			if q.straight%2 == 1 || !unicode.IsDigit(prev) {
				q.straight++
			}
		case '“':
			q.curly++
		case '”':
			if q.curly > 0 {
				q.curly--
			}
		}
		prev = r
	}
}

func (q quoteState) open() bool {
	return q.straight%2 == 1 || q.curly > 0
}

// codeState tracks an open inline code span. A span closes on a backtick run
// of the same length that opened it.
type codeState struct {
	open  bool
	ticks int
}

func (c *codeState) observe(token string) {
	for i := 0; i < len(token); {
		if token[i] != '`' {
			i++
			continue
		}
		j := i
		for j < len(token) && token[j] == '`' {
			j++
		}
		switch n := j - i; {
		case !c.open:
			c.open, c.ticks = true, n
		case n == c.ticks:
			c.open = false
		}
		i = j
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}
