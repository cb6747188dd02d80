package bench

import (
	"sort"

	"github.com/jamesainslie/go-mdnewline/sentence"
)

// AblationResult holds corpus metrics with one rule turned off. Disabled is
// empty for the baseline run with every rule on.
type AblationResult struct {
	Disabled string
	Metrics  Metrics
}

// Ablate evaluates the corpus once with all rules and once per rule with that
// rule disabled. Results are sorted by weighted score, best first; ties keep
// the baseline ahead of the rules in Rules order.
func Ablate(docs []*Document, cfg Config, opts ...sentence.Option) []AblationResult {
	runs := append([]string{""}, sentence.Rules()...)
	results := make([]AblationResult, 0, len(runs))

	for _, rule := range runs {
		o := opts
		if rule != "" {
			o = append(append([]sentence.Option{}, opts...), sentence.WithDisabledRules(rule))
		}
		seg := sentence.New(o...)
		results = append(results, AblationResult{
			Disabled: rule,
			Metrics:  EvaluateCorpus(seg, docs, cfg),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results
}
