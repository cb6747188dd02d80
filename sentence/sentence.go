// Package sentence finds sentence boundaries in prose and rewrites prose so
// that every sentence starts on its own line.
//
// A boundary candidate is a token ending in '.', '?', '!' or an ellipsis,
// followed by whitespace and a character that can open a sentence: an
// uppercase letter, an opening quote, or an opening bracket, emphasis or code
// marker. Candidates ending in a period are checked against the abbreviation,
// decimal and address rules, in that order, and the first match rejects the
// candidate. Candidates inside an open quotation or code span are rejected
// too. When in doubt the segmenter does not split.
package sentence

import "strings"

const ellipsis = '…'

// Sentence is a span of prose ending at an accepted boundary, or at the end
// of the text.
type Sentence struct {
	Text     string
	Start    int  // byte offset of the first character
	End      int  // byte offset just past the last character
	Terminal rune // '.', '?', '!', '…' for any ellipsis, or 0
}

// Class is the character class of the text after a candidate boundary.
type Class int

const (
	ClassOther Class = iota
	ClassUpper
	ClassQuote
	ClassOpener
)

// String returns the lowercase name of the class.
func (c Class) String() string {
	switch c {
	case ClassUpper:
		return "upper"
	case ClassQuote:
		return "quote"
	case ClassOpener:
		return "opener"
	default:
		return "other"
	}
}

// Decision records how one boundary candidate was resolved.
type Decision struct {
	Offset   int    // byte offset just past Token
	Token    string // token before the whitespace, closers included
	Terminal rune
	Next     Class
	Accepted bool
	Rule     string // rejecting rule; empty when Accepted
}

// Segmenter detects sentence boundaries. It is immutable after New and safe
// for concurrent use.
type Segmenter struct {
	abbreviations map[string]struct{}
	disabled      map[string]bool
	guard         func(line string) bool
	trace         func(Decision)
}

// New creates a Segmenter with the built-in rules.
func New(opts ...Option) *Segmenter {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	disabled := make(map[string]bool, len(cfg.disabled))
	for _, name := range cfg.disabled {
		disabled[name] = true
	}

	return &Segmenter{
		abbreviations: newAbbreviationSet(cfg.abbreviations),
		disabled:      disabled,
		guard:         cfg.guard,
		trace:         cfg.trace,
	}
}

var std = New()

// Segment rewrites text with the default Segmenter.
func Segment(text string) string { return std.Segment(text) }

// Split splits text with the default Segmenter.
func Split(text string) []Sentence { return std.Split(text) }

// Explain reports the candidates seen by the default Segmenter.
func Explain(text string) []Decision { return std.Explain(text) }

// Segment rewrites text so that each sentence starts on a new line. The
// whitespace between two sentences is replaced by a single line break when it
// is made of spaces and tabs only. Whitespace that already holds a line break
// is kept, so Segment is idempotent.
// The inserted line break is "\r\n" when text itself uses CRLF.
func (s *Segmenter) Segment(text string) string {
	nl := "\n"
	if strings.HasSuffix(text, "\r") || strings.Contains(text, "\r\n") {
		nl = "\r\n"
	}
	return s.SegmentNewline(text, nl)
}

// SegmentNewline is Segment with the inserted line break given by the caller,
// for text taken from a larger document whose line ending is already known.
func (s *Segmenter) SegmentNewline(text, nl string) string {
	sentences := s.Split(text)
	if len(sentences) < 2 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(sentences))
	b.WriteString(text[:sentences[0].Start])
	for i, sent := range sentences {
		b.WriteString(sent.Text)
		if i+1 == len(sentences) {
			break
		}
		gap := text[sent.End:sentences[i+1].Start]
		if strings.ContainsAny(gap, "\r\n") {
			b.WriteString(gap)
		} else {
			b.WriteString(nl)
		}
	}
	b.WriteString(text[sentences[len(sentences)-1].End:])
	return b.String()
}

// Split returns the sentences of text in order. Leading and trailing
// whitespace belongs to no sentence.
func (s *Segmenter) Split(text string) []Sentence {
	return s.scan(text, nil)
}

// Explain returns every boundary candidate in text with the decision taken.
func (s *Segmenter) Explain(text string) []Decision {
	var decisions []Decision
	s.scan(text, func(d Decision) {
		decisions = append(decisions, d)
	})
	return decisions
}

func (s *Segmenter) enabled(rule string) bool {
	return !s.disabled[rule]
}

func (s *Segmenter) scan(text string, visit func(Decision)) []Sentence {
	var (
		sentences []Sentence
		quotes    quoteState
		code      codeState
		start     = -1
		last      string
		lastEnd   int
	)

	pos := 0
	for pos < len(text) {
		for pos < len(text) && isSpace(text[pos]) {
			pos++
		}
		if pos == len(text) {
			break
		}

		tokStart := pos
		for pos < len(text) && !isSpace(text[pos]) {
			pos++
		}
		token := text[tokStart:pos]
		if start < 0 {
			start = tokStart
		}
		last, lastEnd = token, pos
		quotes.observe(token)
		code.observe(token)

		next := pos
		for next < len(text) && isSpace(text[next]) {
			next++
		}
		if next == len(text) {
			continue
		}

		d, ok := s.decide(token, text[next:], quotes, code)
		if !ok {
			continue
		}
		d.Offset = pos
		if visit != nil {
			visit(d)
		}
		if s.trace != nil {
			s.trace(d)
		}
		if !d.Accepted {
			continue
		}

		sentences = append(sentences, Sentence{
			Text:     text[start:pos],
			Start:    start,
			End:      pos,
			Terminal: d.Terminal,
		})
		start = -1
		quotes = quoteState{}
		code = codeState{}
	}

	if start >= 0 {
		term, _ := terminal(trimClosers(last))
		sentences = append(sentences, Sentence{
			Text:     text[start:lastEnd],
			Start:    start,
			End:      lastEnd,
			Terminal: term,
		})
	}
	return sentences
}

// decide evaluates the token before a whitespace run. It reports false when
// the position is not a candidate at all.
func (s *Segmenter) decide(token, rest string, quotes quoteState, code codeState) (Decision, bool) {
	term, word := terminal(trimClosers(token))
	if term == 0 {
		return Decision{}, false
	}
	next := classOf(rest)
	if next == ClassOther {
		return Decision{}, false
	}

	d := Decision{Token: token, Terminal: term, Next: next}
	d.Rule = s.reject(term, word, rest, quotes, code)
	d.Accepted = d.Rule == ""
	return d, true
}

// reject returns the name of the first rule that vetoes the candidate.
func (s *Segmenter) reject(term rune, word, rest string, quotes quoteState, code codeState) string {
	switch term {
	case '.':
		for _, r := range periodRules {
			if s.enabled(r.name) && r.match(s, word, rest) {
				return r.name
			}
		}
	case ellipsis:
		if s.enabled(RuleAbbreviation) && s.isAbbreviation(word) {
			return RuleAbbreviation
		}
	}

	if s.enabled(RuleQuotation) && quotes.open() {
		return RuleQuotation
	}
	if s.enabled(RuleCodeSpan) && code.open {
		return RuleCodeSpan
	}
	if s.guard != nil && s.guard(firstLine(rest)) {
		return RuleStructure
	}
	return ""
}
