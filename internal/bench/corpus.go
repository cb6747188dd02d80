// Package bench scores sentence boundary detection against a gold corpus.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Header contains metadata parsed from a corpus file header.
type Header struct {
	Source  string
	Title   string
	License string
}

// ParseHeader extracts metadata from the "# Key: value" comment lines at the
// top of a corpus file. It returns the header and the text after it.
func ParseHeader(text string) (Header, string, error) {
	var (
		h         Header
		bodyStart = len(text)
		offset    int
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		lineStart := offset
		offset += len(line) + 1 // +1 for newline

		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			bodyStart = lineStart
			break
		}

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "License:"); ok {
			h.License = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	return h, text[bodyStart:], nil
}

// Sentence is a gold sentence with byte offsets into Document.Text.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// ParseGold reads one gold sentence per line and lays the sentences out as a
// single paragraph separated by single spaces, the shape the segmenter has to
// undo. Blank lines are skipped.
func ParseGold(body string) (string, []Sentence) {
	var (
		b         strings.Builder
		sentences []Sentence
	)

	for line := range strings.SplitSeq(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		b.WriteString(line)
		sentences = append(sentences, Sentence{Text: line, Start: start, End: b.Len()})
	}

	return b.String(), sentences
}

// Document is a loaded corpus file.
type Document struct {
	ID        string // filename without extension
	Source    string
	Title     string
	Text      string // gold sentences joined by spaces
	Sentences []Sentence
}

// Boundaries returns the gold boundary offsets: the end of every sentence
// except the last, which ends with the text.
func (d *Document) Boundaries() []int {
	if len(d.Sentences) < 2 {
		return nil
	}
	out := make([]int, 0, len(d.Sentences)-1)
	for _, s := range d.Sentences[:len(d.Sentences)-1] {
		out = append(out, s.End)
	}
	return out
}

// LoadDocument loads and parses a corpus file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	base := filepath.Base(path)
	text, sentences := ParseGold(body)

	return &Document{
		ID:        strings.TrimSuffix(base, filepath.Ext(base)),
		Source:    header.Source,
		Title:     header.Title,
		Text:      text,
		Sentences: sentences,
	}, nil
}

// LoadCorpus loads all .txt corpus files from a directory.
func LoadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		doc, err := LoadDocument(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
