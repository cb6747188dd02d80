package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/go-mdnewline/internal/bench"
	"github.com/jamesainslie/go-mdnewline/sentence"
)

func main() {
	var (
		corpusDir = flag.String("corpus", "testdata/corpus", "Directory containing gold corpus files")
		tolerance = flag.Int("tolerance", 0, "Byte tolerance for boundary matching")
		wp        = flag.Float64("wp", 1.0, "Precision weight")
		wr        = flag.Float64("wr", 1.0, "Recall weight")
		ablate    = flag.Bool("ablate", false, "Score the corpus with each rule disabled in turn")
		abbrev    = flag.String("abbrev", "", "Comma-separated extra abbreviations")
		verbose   = flag.Bool("v", false, "Print per-document metrics")
	)
	flag.Parse()

	docs, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		fmt.Fprintf(os.Stderr, "error: no corpus files in %s\n", *corpusDir)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d documents from %s\n\n", len(docs), *corpusDir)

	cfg := bench.Config{
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	var opts []sentence.Option
	if *abbrev != "" {
		opts = append(opts, sentence.WithAbbreviations(strings.Split(*abbrev, ",")...))
	}

	if *ablate {
		runAblation(docs, cfg, opts)
		return
	}
	runSingle(docs, cfg, opts, *verbose)
}

func runSingle(docs []*bench.Document, cfg bench.Config, opts []sentence.Option, verbose bool) {
	seg := sentence.New(opts...)

	if verbose {
		fmt.Printf("%-24s %-8s %-8s %-8s\n", "Document", "Prec", "Rec", "F1")
		fmt.Println(strings.Repeat("-", 50))
		for _, doc := range docs {
			m := bench.EvaluateDocument(seg, doc, cfg)
			fmt.Printf("%-24s %-8.2f %-8.2f %-8.2f\n", doc.ID, m.Precision, m.Recall, m.F1)
		}
		fmt.Println(strings.Repeat("-", 50))
	}

	printMetrics(bench.EvaluateCorpus(seg, docs, cfg))
}

func runAblation(docs []*bench.Document, cfg bench.Config, opts []sentence.Option) {
	fmt.Printf("Rule Ablation Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-14s %-8s %-8s %-8s %-8s\n", "Disabled", "Prec", "Rec", "F1", "Weighted")

	results := bench.Ablate(docs, cfg, opts...)
	for _, r := range results {
		name := r.Disabled
		if name == "" {
			name = "(none)"
		}
		fmt.Printf("%-14s %-8.2f %-8.2f %-8.2f %-8.2f\n",
			name, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
	}
	fmt.Println(strings.Repeat("-", 50))
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
}
