// Package block splits a markdown document into line-aligned blocks and tags
// each one either as prose or as a structure that must be kept verbatim.
//
// Classification never fails. When a line is ambiguous it is tagged with an
// opaque kind so that segmentation leaves it alone.
package block

import (
	"regexp"
	"strings"
)

// Block is a contiguous run of lines sharing one classification.
type Block struct {
	Kind Kind
	Text string // lines joined by "\n", no trailing newline
	Line int    // 1-based number of the first line
}

var (
	atxHeader     = regexp.MustCompile(`^ {0,3}#{1,6}(\s|$)`)
	fenceOpen     = regexp.MustCompile("^[ \t]*(`{3,}|~{3,})(.*)$")
	setextLine    = regexp.MustCompile(`^ {0,3}(=+|-+)\s*$`)
	thematicBreak = regexp.MustCompile(`^ {0,3}((\*[ \t]*){3,}|(-[ \t]*){3,}|(_[ \t]*){3,})\s*$`)
	listMarker    = regexp.MustCompile(`^\s*(\d{1,9}[.)]|[-*+])(\s|$)`)
	footnoteDef   = regexp.MustCompile(`^\[\^[^\]]+\]:(\s|$)`)
	linkRefDef    = regexp.MustCompile(`^ {0,3}\[[^\]]+\]:`)
	blockQuote    = regexp.MustCompile(`^\s*>`)
	tableRow      = regexp.MustCompile(`^\s*\|`)
	tableDelim    = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?\s*$`)
	htmlStart     = regexp.MustCompile(`^\s*<[A-Za-z/!?]`)

	// htmlBlock matches the HTML block starts that may interrupt a paragraph:
	// raw text elements, comments, processing instructions, declarations,
	// CDATA and block-level tags.
	htmlBlock = regexp.MustCompile(`(?i)^ {0,3}<(?:(?:script|pre|style|textarea)(?:\s|>|$)|!--|\?|![a-z]|!\[CDATA\[|/?(?:address|article|aside|base|basefont|blockquote|body|caption|center|col|colgroup|dd|details|dialog|dir|div|dl|dt|fieldset|figcaption|figure|footer|form|frame|frameset|h[1-6]|head|header|hr|html|iframe|legend|li|link|main|menu|menuitem|nav|noframes|ol|optgroup|option|p|param|search|section|summary|table|tbody|td|tfoot|th|thead|title|tr|track|ul)(?:\s|/?>|$))`)
)

type mode int

const (
	modeNormal mode = iota
	modeFence
	modeFrontMatter
)

type fence struct {
	char   byte
	length int
}

// Classifier folds lines into blocks one line at a time. It holds at most one
// open block, so memory is bounded by the largest block. The zero value is
// ready to use.
type Classifier struct {
	mode  mode
	fence fence
	line  int

	open  bool
	kind  Kind
	start int
	lines []string
}

// Classify splits document into blocks. Joining the Text of the returned blocks
// with "\n" reproduces document exactly.
func Classify(document string) []Block {
	if document == "" {
		return nil
	}

	var (
		c      Classifier
		blocks []Block
	)
	for line := range strings.SplitSeq(document, "\n") {
		blocks = append(blocks, c.Push(line)...)
	}
	return append(blocks, c.Flush()...)
}

// Join reassembles blocks into a document.
func Join(blocks []Block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(blk.Text)
	}
	return b.String()
}

// Push consumes one line, without its newline, and returns any blocks the line
// completed.
func (c *Classifier) Push(line string) []Block {
	c.line++

	switch c.mode {
	case modeFence:
		c.lines = append(c.lines, line)
		if closesFence(line, c.fence) {
			c.mode = modeNormal
			return c.flush(nil)
		}
		return nil
	case modeFrontMatter:
		c.lines = append(c.lines, line)
		if t := strings.TrimRight(line, " \t\r"); t == "---" || t == "..." {
			c.mode = modeNormal
			return c.flush(nil)
		}
		return nil
	}

	if c.line == 1 && strings.TrimRight(line, " \t\r") == "---" {
		c.mode = modeFrontMatter
		c.begin(FrontMatter, line)
		return nil
	}

	// An underline or a table delimiter turns the paragraph above it into
	// something else entirely.
	if c.open && c.kind == Prose {
		if strings.Contains(line, "|") && tableDelim.MatchString(line) {
			c.kind = Table
			c.lines = append(c.lines, line)
			return nil
		}
		if setextLine.MatchString(line) {
			c.kind = Header
			c.lines = append(c.lines, line)
			return c.flush(nil)
		}
	}

	if f, ok := parseFence(line); ok {
		out := c.flush(nil)
		c.mode = modeFence
		c.fence = f
		c.begin(CodeFence, line)
		return out
	}

	switch {
	case atxHeader.MatchString(line):
		return c.single(Header, line)
	case thematicBreak.MatchString(line):
		return c.single(ThematicBreak, line)
	case listMarker.MatchString(line):
		return c.restart(ListItem, line)
	case footnoteDef.MatchString(line):
		return c.restart(FootnoteDef, line)
	case strings.TrimSpace(line) == "":
		return c.single(Blank, line)
	case blockQuote.MatchString(line):
		return c.extend(BlockQuote, line)
	case tableRow.MatchString(line):
		return c.extend(Table, line)
	case c.startsHTML(line):
		return c.extend(HTML, line)
	}

	return c.continuation(line)
}

// Flush returns the block still open at end of input. An unterminated code
// fence is returned as a CodeFence block.
func (c *Classifier) Flush() []Block {
	c.mode = modeNormal
	return c.flush(nil)
}

// Interrupts reports whether line, placed at the start of a line, would open
// a non-prose block.
func Interrupts(line string) bool {
	if _, ok := parseFence(line); ok {
		return true
	}
	return atxHeader.MatchString(line) ||
		thematicBreak.MatchString(line) ||
		listMarker.MatchString(line) ||
		linkRefDef.MatchString(line) ||
		blockQuote.MatchString(line) ||
		tableRow.MatchString(line) ||
		htmlBlock.MatchString(line)
}

// startsHTML reports whether line opens an HTML block. Inline HTML at the
// start of a line does not interrupt an open paragraph.
func (c *Classifier) startsHTML(line string) bool {
	if !htmlStart.MatchString(line) {
		return false
	}
	if c.open && c.kind == Prose {
		return htmlBlock.MatchString(line)
	}
	return true
}

func (c *Classifier) continuation(line string) []Block {
	if c.open {
		switch c.kind {
		case Prose, FootnoteDef, BlockQuote, HTML, Table:
			// A table runs until a blank line or another block, whether or
			// not its rows start with a pipe.
			c.lines = append(c.lines, line)
			return nil
		case ListItem:
			if indented(line) {
				c.lines = append(c.lines, line)
				return nil
			}
		case IndentedCode:
			if codeIndented(line) {
				c.lines = append(c.lines, line)
				return nil
			}
		}
	}

	kind := Prose
	if codeIndented(line) {
		kind = IndentedCode
	}
	return c.restart(kind, line)
}

func (c *Classifier) begin(kind Kind, line string) {
	c.open = true
	c.kind = kind
	c.start = c.line
	c.lines = append(c.lines[:0], line)
}

// restart closes the open block and opens a new one with line.
func (c *Classifier) restart(kind Kind, line string) []Block {
	out := c.flush(nil)
	c.begin(kind, line)
	return out
}

// extend appends line to the open block when it has the same kind.
func (c *Classifier) extend(kind Kind, line string) []Block {
	if c.open && c.kind == kind {
		c.lines = append(c.lines, line)
		return nil
	}
	return c.restart(kind, line)
}

func (c *Classifier) single(kind Kind, line string) []Block {
	out := c.flush(nil)
	return append(out, Block{Kind: kind, Text: line, Line: c.line})
}

func (c *Classifier) flush(out []Block) []Block {
	if !c.open {
		return out
	}
	out = append(out, Block{
		Kind: c.kind,
		Text: strings.Join(c.lines, "\n"),
		Line: c.start,
	})
	c.open = false
	c.lines = c.lines[:0]
	return out
}

func parseFence(line string) (fence, bool) {
	m := fenceOpen.FindStringSubmatch(line)
	if m == nil {
		return fence{}, false
	}
	marker, info := m[1], m[2]
	if marker[0] == '`' && strings.Contains(info, "`") {
		return fence{}, false
	}
	return fence{char: marker[0], length: len(marker)}, true
}

func closesFence(line string, f fence) bool {
	t := strings.TrimSpace(line)
	if len(t) < f.length {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != f.char {
			return false
		}
	}
	return true
}

func indented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

func codeIndented(line string) bool {
	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ")
}
