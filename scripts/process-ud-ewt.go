//go:build ignore

// Process UD English Web Treebank CoNLL-U files into gold corpus files for
// mdnewline-bench. Each output file has the corpus header followed by one
// gold sentence per line.
// Usage: go run ./scripts/process-ud-ewt.go [-in testdata/ud-ewt] [-out testdata/corpus] [-max 2000]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const source = "https://github.com/UniversalDependencies/UD_English-EWT"

func main() {
	var (
		inDir  = flag.String("in", "testdata/ud-ewt", "Directory containing en_ewt-ud-*.conllu files")
		outDir = flag.String("out", "testdata/corpus", "Directory to write corpus files to")
		limit  = flag.Int("max", 0, "Maximum sentences per split (0 for all)")
	)
	flag.Parse()

	for _, split := range []string{"train", "dev", "test"} {
		inFile := filepath.Join(*inDir, fmt.Sprintf("en_ewt-ud-%s.conllu", split))
		outFile := filepath.Join(*outDir, fmt.Sprintf("ud-ewt-%s.txt", split))

		fmt.Printf("Processing %s...\n", split)
		sentences, err := processCoNLLU(inFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
			continue
		}
		if *limit > 0 && len(sentences) > *limit {
			sentences = sentences[:*limit]
		}

		title := fmt.Sprintf("UD English EWT (%s)", split)
		if err := writeCorpus(outFile, title, sentences); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			continue
		}

		fmt.Printf("  -> %s (%d sentences)\n", outFile, len(sentences))
	}

	fmt.Printf("\nDone! Corpus files created in %s/\n", *outDir)
}

// processCoNLLU returns the "# text = " sentences of a CoNLL-U file that can
// stand alone as gold lines.
func processCoNLLU(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var sentences []string

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text, ok := strings.CutPrefix(scanner.Text(), "# text = ")
		if !ok {
			continue
		}
		text = strings.Join(strings.Fields(text), " ")
		// A leading '#' would read as a header comment.
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		sentences = append(sentences, text)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}
	return sentences, nil
}

func writeCorpus(path, title string, sentences []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Source: %s\n", source)
	fmt.Fprintf(&b, "# Title: %s\n", title)
	b.WriteString("# License: CC-BY-SA-4.0\n\n")
	for _, s := range sentences {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
