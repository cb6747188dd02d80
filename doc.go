// Package mdnewline rewrites markdown so that every prose sentence starts on
// its own line, which keeps diffs of prose small and readable.
//
// # Quick Start
//
//	out := mdnewline.Process("Dr. Smith left. He waved.\n")
//	fmt.Print(out)
//	// Dr. Smith left.
//	// He waved.
//
// # What Is Rewritten
//
// Only paragraph text is touched. Headers, fenced and indented code, list
// items, footnote definitions, block quotes, tables, HTML blocks, front matter
// and blank lines are passed through byte for byte. Inside a paragraph the
// whitespace between two sentences becomes a single line break; everything
// else is preserved.
//
// Boundary detection is rule based and biased toward not splitting: periods
// after abbreviations, initials, decimal numbers, URLs, paths and email
// addresses never end a sentence, nor do periods inside an open quotation or
// code span. See package sentence for the rules.
//
// # Thread Safety
//
// Processor is immutable after New and safe for concurrent use. For large
// inputs, ProcessReader holds only one block in memory at a time.
package mdnewline
