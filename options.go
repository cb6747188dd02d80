package mdnewline

import "log/slog"

// Option configures a Processor.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	abbreviations []string
	disabledRules []string
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAbbreviations adds words that never end a sentence when followed by a
// period, on top of the built-in table.
func WithAbbreviations(words ...string) Option {
	return func(c *config) {
		c.abbreviations = append(c.abbreviations, words...)
	}
}

// WithDisabledRules turns off boundary rejection rules by name. See
// sentence.Rules for the names.
func WithDisabledRules(names ...string) Option {
	return func(c *config) {
		c.disabledRules = append(c.disabledRules, names...)
	}
}
