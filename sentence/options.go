package sentence

import "strings"

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	abbreviations []string
	disabled      []string
	guard         func(line string) bool
	trace         func(Decision)
}

// WithAbbreviations adds words to the abbreviation table. A trailing period is
// ignored, so "Approx." and "Approx" are the same entry.
func WithAbbreviations(words ...string) Option {
	return func(c *config) {
		for _, w := range words {
			c.abbreviations = append(c.abbreviations, strings.TrimSuffix(strings.TrimSpace(w), "."))
		}
	}
}

// WithDisabledRules turns off the named rules (see Rules).
func WithDisabledRules(names ...string) Option {
	return func(c *config) {
		c.disabled = append(c.disabled, names...)
	}
}

// WithGuard sets a function called with the line a split would start.
// Returning true vetoes the split with RuleStructure.
func WithGuard(fn func(line string) bool) Option {
	return func(c *config) {
		c.guard = fn
	}
}

// WithTrace sets a function called with every decision the Segmenter takes.
func WithTrace(fn func(Decision)) Option {
	return func(c *config) {
		c.trace = fn
	}
}
