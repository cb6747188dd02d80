package mdnewline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"
)

var processTests = []struct {
	name  string
	input string
	want  string
}{
	{
		name:  "regular paragraph single spaces",
		input: "This is sentence one. This is sentence two. This is sentence three. This is sentence four. This is sentence five.",
		want:  "This is sentence one.\nThis is sentence two.\nThis is sentence three.\nThis is sentence four.\nThis is sentence five.",
	},
	{
		name:  "regular paragraph double spaces",
		input: "This is sentence one.  This is sentence two.  This is sentence three.  This is sentence four.  This is sentence five.",
		want:  "This is sentence one.\nThis is sentence two.\nThis is sentence three.\nThis is sentence four.\nThis is sentence five.",
	},
	{
		name:  "ellipsis",
		input: "This is sentence one. This is sentence two with ellipsis... This is sentence three. This is sentence four. This is sentence five.",
		want:  "This is sentence one.\nThis is sentence two with ellipsis...\nThis is sentence three.\nThis is sentence four.\nThis is sentence five.",
	},
	{
		name:  "abbreviations",
		input: "Dr. Smith went to the store. He bought items for Mrs. Johnson. The U.S. government issued a statement. This is the fourth sentence. This is the fifth sentence.",
		want:  "Dr. Smith went to the store.\nHe bought items for Mrs. Johnson.\nThe U.S. government issued a statement.\nThis is the fourth sentence.\nThis is the fifth sentence.",
	},
	{
		name:  "decimal numbers",
		input: "The price is $12.99 for this item. The temperature was 98.6 degrees. The measurement was 3.14159 meters. This is sentence four. This is sentence five.",
		want:  "The price is $12.99 for this item.\nThe temperature was 98.6 degrees.\nThe measurement was 3.14159 meters.\nThis is sentence four.\nThis is sentence five.",
	},
	{
		name:  "urls and email addresses",
		input: "Visit www.example.com for more info. Email us at support@example.com for help. The file is located at /home/user/file.txt on the server. This is sentence four. This is sentence five.",
		want:  "Visit www.example.com for more info.\nEmail us at support@example.com for help.\nThe file is located at /home/user/file.txt on the server.\nThis is sentence four.\nThis is sentence five.",
	},
	{
		name:  "multiple paragraphs",
		input: "This is paragraph one sentence one. This is paragraph one sentence two.\n\nThis is paragraph two sentence one. This is paragraph two sentence two.",
		want:  "This is paragraph one sentence one.\nThis is paragraph one sentence two.\n\nThis is paragraph two sentence one.\nThis is paragraph two sentence two.",
	},
	{
		name:  "headers unchanged",
		input: "# This is a header\n\nThis is a sentence. This is another sentence.\n\n## This is a subheader\n\nThis is a third sentence. This is a fourth sentence.",
		want:  "# This is a header\n\nThis is a sentence.\nThis is another sentence.\n\n## This is a subheader\n\nThis is a third sentence.\nThis is a fourth sentence.",
	},
	{
		name:  "code blocks unchanged",
		input: "This is regular text. This is another sentence.\n\n```python\ndef hello():\n    print(\"Hello world.\")\n    return True\n```\n\nThis is more text. This is the final sentence.",
		want:  "This is regular text.\nThis is another sentence.\n\n```python\ndef hello():\n    print(\"Hello world.\")\n    return True\n```\n\nThis is more text.\nThis is the final sentence.",
	},
	{
		name:  "code fence directly between prose lines",
		input: "Before one. Before two.\n```\nprint(\"Hello world.\") Yes. No.\n```\nAfter one. After two.",
		want:  "Before one.\nBefore two.\n```\nprint(\"Hello world.\") Yes. No.\n```\nAfter one.\nAfter two.",
	},
	{
		name:  "quoted text with periods",
		input: `He said "Hello world." to everyone. She replied "How are you?" back. This is sentence three. This is sentence four. This is sentence five.`,
		want:  "He said \"Hello world.\" to everyone.\nShe replied \"How are you?\" back.\nThis is sentence three.\nThis is sentence four.\nThis is sentence five.",
	},
	{
		name:  "numbered lists unchanged",
		input: "1. This is the first item in the list. It has multiple sentences.\n2. This is the second item. It also has multiple sentences.\n3. This is the third item. It continues the pattern.",
		want:  "1. This is the first item in the list. It has multiple sentences.\n2. This is the second item. It also has multiple sentences.\n3. This is the third item. It continues the pattern.",
	},
	{
		name:  "bullet lists unchanged",
		input: "- This is the first item in the list. It has multiple sentences.\n- This is the second item. It also has multiple sentences.\n* This is the third item. It continues the pattern.",
		want:  "- This is the first item in the list. It has multiple sentences.\n- This is the second item. It also has multiple sentences.\n* This is the third item. It continues the pattern.",
	},
	{
		name:  "indented lists unchanged",
		input: "- Main item one. It has multiple sentences.\n    - Indented item one. It also has multiple sentences.\n    - Indented item two. It continues the pattern.\n- Main item two. Back to main level.",
		want:  "- Main item one. It has multiple sentences.\n    - Indented item one. It also has multiple sentences.\n    - Indented item two. It continues the pattern.\n- Main item two. Back to main level.",
	},
	{
		name:  "footnotes unchanged",
		input: "This is a sentence with a footnote[^1]. This is another sentence.\n\n[^1]: This is a footnote. It has multiple sentences. They should not be processed.",
		want:  "This is a sentence with a footnote[^1].\nThis is another sentence.\n\n[^1]: This is a footnote. It has multiple sentences. They should not be processed.",
	},
	{
		name:  "footnotes mixed with regular text",
		input: "This is regular text. It has two sentences.\n\n[^note1]: This is footnote one. It has multiple sentences. They should not be split.\n[^note2]: This is footnote two. It also has multiple sentences. They should remain intact.\n\nThis is more regular text. It should be processed normally.",
		want:  "This is regular text.\nIt has two sentences.\n\n[^note1]: This is footnote one. It has multiple sentences. They should not be split.\n[^note2]: This is footnote two. It also has multiple sentences. They should remain intact.\n\nThis is more regular text.\nIt should be processed normally.",
	},
	{
		name:  "end to end url and email",
		input: "Visit www.example.com for more info. Email us at support@example.com for help.",
		want:  "Visit www.example.com for more info.\nEmail us at support@example.com for help.",
	},
	{
		name:  "blank line counts preserved",
		input: "One. Two.\n\n\n\nThree. Four.\n",
		want:  "One.\nTwo.\n\n\n\nThree.\nFour.\n",
	},
	{
		name:  "split never starts a list item",
		input: "Options follow. * Not a list. Done.",
		want:  "Options follow. * Not a list.\nDone.",
	},
	{
		name:  "split never starts a footnote definition",
		input: "See below. [^1]: looks like a note.",
		want:  "See below. [^1]: looks like a note.",
	},
	{
		name:  "setext heading unchanged",
		input: "Title. Subtitle\n===\n\nBody one. Body two.",
		want:  "Title. Subtitle\n===\n\nBody one.\nBody two.",
	},
	{
		name:  "front matter unchanged",
		input: "---\ntitle: A. B.\n---\n\nBody one. Body two.",
		want:  "---\ntitle: A. B.\n---\n\nBody one.\nBody two.",
	},
	{
		name:  "block quote and table unchanged",
		input: "> Quoted one. Quoted two.\n\n| A. B | C. D |\n|---|---|\n\nPlain one. Plain two.",
		want:  "> Quoted one. Quoted two.\n\n| A. B | C. D |\n|---|---|\n\nPlain one.\nPlain two.",
	},
	{
		name:  "hard-wrapped paragraph",
		input: "This line is wrapped. It continues\nonto the next line. Then ends.",
		want:  "This line is wrapped.\nIt continues\nonto the next line.\nThen ends.",
	},
	{
		name:  "crlf document",
		input: "# Title\r\n\r\nOne. Two.\r\n",
		want:  "# Title\r\n\r\nOne.\r\nTwo.\r\n",
	},
	{
		name:  "crlf document ending without newline",
		input: "# Title\r\n\r\nOne. Two.\r\n\r\nNext para. Again here.",
		want:  "# Title\r\n\r\nOne.\r\nTwo.\r\n\r\nNext para.\r\nAgain here.",
	},
	{
		name:  "table rows without leading pipe",
		input: "Name | Note\n--- | ---\nAlice | Fine. Good.\nBob | Ok. Yes.\n\nAfter one. After two.\n",
		want:  "Name | Note\n--- | ---\nAlice | Fine. Good.\nBob | Ok. Yes.\n\nAfter one.\nAfter two.\n",
	},
	{
		name:  "inline html at line start stays prose",
		input: "Intro here.\n<em>x</em> more. Then more.",
		want:  "Intro here.\n<em>x</em> more.\nThen more.",
	},
	{
		name:  "block html interrupts prose",
		input: "Intro. Here.\n<div>\nInside. Text.\n</div>",
		want:  "Intro.\nHere.\n<div>\nInside. Text.\n</div>",
	},
	{
		name:  "empty document",
		input: "",
		want:  "",
	},
}

func TestProcess(t *testing.T) {
	for _, tt := range processTests {
		t.Run(tt.name, func(t *testing.T) {
			got := Process(tt.input)
			if got != tt.want {
				t.Errorf("Process() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestProcess_Idempotent(t *testing.T) {
	for _, tt := range processTests {
		t.Run(tt.name, func(t *testing.T) {
			once := Process(tt.input)
			if twice := Process(once); twice != once {
				t.Errorf("second pass changed output:\n once: %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestProcess_OpaqueIdentity(t *testing.T) {
	inputs := []string{
		"# Header. With. Periods.",
		"```\nA. B. C.\n```",
		"1. First. Second.\n2. Third. Fourth.",
		"    - Nested. Item.",
		"[^x]: Note. Two.",
		"\n\n\n",
		"```\nunterminated. Fence. Here.\n\nMore. Text.",
	}

	for _, input := range inputs {
		if got := Process(input); got != input {
			t.Errorf("Process(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestProcessor_ProcessReader(t *testing.T) {
	p := New()

	for _, tt := range processTests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := p.ProcessReader(context.Background(), iotest.OneByteReader(strings.NewReader(tt.input)), &out)
			if err != nil {
				t.Fatalf("ProcessReader() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("ProcessReader() =\n%q\nwant\n%q", out.String(), tt.want)
			}
		})
	}
}

func TestProcessor_ProcessReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().ProcessReader(ctx, strings.NewReader("One. Two."), io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestProcessor_ProcessReader_ReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("One. Two.\n"), iotest.ErrReader(boom))

	err := New().ProcessReader(context.Background(), r, io.Discard)
	if !errors.Is(err, ErrReadFailed) {
		t.Errorf("expected ErrReadFailed, got: %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause, got: %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestProcessor_ProcessReader_WriteError(t *testing.T) {
	err := New().ProcessReader(context.Background(), strings.NewReader("One. Two."), failingWriter{})
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("expected ErrWriteFailed, got: %v", err)
	}
}

func TestNew_WithAbbreviations(t *testing.T) {
	input := "Call Ext. Four now."

	if got := Process(input); got != "Call Ext.\nFour now." {
		t.Errorf("default Process() = %q", got)
	}

	p := New(WithAbbreviations("Ext"))
	if got := p.Process(input); got != input {
		t.Errorf("Process() = %q, want %q", got, input)
	}
}

func TestNew_WithDisabledRules(t *testing.T) {
	p := New(WithDisabledRules("abbreviation"))
	if got := p.Process("Dr. Who. Yes."); got != "Dr.\nWho.\nYes." {
		t.Errorf("Process() = %q", got)
	}
}

func TestNew_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := New(WithLogger(logger))
	_ = p.Process("Dr. Smith left. He waved.")

	logs := buf.String()
	if !strings.Contains(logs, "segmented prose") {
		t.Errorf("expected block log, got: %s", logs)
	}
	if !strings.Contains(logs, "rule=abbreviation") {
		t.Errorf("expected rejected boundary log, got: %s", logs)
	}
}

func TestNew_WithLogger_Nil(t *testing.T) {
	p := New(WithLogger(nil))
	if p.logger == nil {
		t.Error("expected default logger when nil is given")
	}
}
