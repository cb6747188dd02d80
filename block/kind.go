package block

// Kind classifies a block of markdown lines.
type Kind int

const (
	// Prose is paragraph text eligible for sentence segmentation.
	Prose Kind = iota
	Header
	CodeFence
	ListItem
	FootnoteDef
	Blank
	IndentedCode
	BlockQuote
	Table
	HTML
	ThematicBreak
	FrontMatter
)

var kindNames = [...]string{
	Prose:         "prose",
	Header:        "header",
	CodeFence:     "code_fence",
	ListItem:      "list_item",
	FootnoteDef:   "footnote_def",
	Blank:         "blank",
	IndentedCode:  "indented_code",
	BlockQuote:    "blockquote",
	Table:         "table",
	HTML:          "html",
	ThematicBreak: "thematic_break",
	FrontMatter:   "front_matter",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Opaque reports whether blocks of this kind are passed through verbatim.
func (k Kind) Opaque() bool {
	return k != Prose
}
