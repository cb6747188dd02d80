package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdnewline "github.com/jamesainslie/go-mdnewline"
)

const document = `---
title: Sample
---

# Getting started. Quickly

Dr. Smith wrote this guide. It covers the U.S. edition. Prices start at $12.99 today.

Visit www.example.com for more info. Email support@example.com for help.

` + "```go" + `
fmt.Println("Hello world. Bye.")
` + "```" + `

- First item. Two sentences.
- Second item. Also two.

> Quoted text. More quoted text.

| Col. A | Col. B |
|--------|--------|
| 1. x   | 2. y   |

Name | Note
--- | ---
Alice | Fine. Good.
Bob | Ok. Yes.

He said "Hello world." to everyone. She replied "How are you?" back. The end[^1].

[^1]: A footnote. With two sentences.
`

func TestCompare_ProcessKeepsStructure(t *testing.T) {
	src := []byte(document)
	out := []byte(mdnewline.Process(document))

	require.NotEqual(t, string(src), string(out), "expected prose to be rewritten")
	assert.NoError(t, Compare(src, out))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		before  string
		after   string
		wantErr bool
	}{
		{
			name:   "soft break instead of space",
			before: "One. Two.",
			after:  "One.\nTwo.",
		},
		{
			name:    "paragraph split in two",
			before:  "One. Two.",
			after:   "One.\n\nTwo.",
			wantErr: true,
		},
		{
			name:    "heading lost",
			before:  "# Title",
			after:   "Title",
			wantErr: true,
		},
		{
			name:    "heading level changed",
			before:  "# Title",
			after:   "## Title",
			wantErr: true,
		},
		{
			name:    "code whitespace changed",
			before:  "```\na b\n```",
			after:   "```\na\nb\n```",
			wantErr: true,
		},
		{
			name:    "list created",
			before:  "Intro. - item",
			after:   "Intro.\n- item",
			wantErr: true,
		},
		{
			name:   "identical",
			before: document,
			after:  document,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare([]byte(tt.before), []byte(tt.after))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStructureChanged)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOutline(t *testing.T) {
	nodes := Outline([]byte("# Title\n\nSome  text\nwrapped.\n\n```\nx  y\n```\n"))

	require.Len(t, nodes, 3)
	assert.Equal(t, Node{Kind: "Heading1", Text: "Title"}, nodes[0])
	assert.Equal(t, Node{Kind: "Paragraph", Text: "Some text wrapped."}, nodes[1])
	assert.Equal(t, Node{Kind: "FencedCodeBlock", Text: "x  y\n"}, nodes[2])
}

func TestNode_String(t *testing.T) {
	assert.Equal(t, "List", Node{Kind: "List"}.String())
	assert.Equal(t, `Paragraph "hi"`, Node{Kind: "Paragraph", Text: "hi"}.String())

	long := Node{Kind: "Paragraph", Text: "0123456789012345678901234567890123456789abc"}
	assert.Equal(t, `Paragraph "0123456789012345678901234567890123456789..."`, long.String())
}
