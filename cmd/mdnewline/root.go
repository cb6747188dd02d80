package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jamesainslie/go-mdnewline/sentence"
)

// settings is the resolved configuration after flags, environment and the
// config file have been merged by viper.
type settings struct {
	write         bool
	check         bool
	verify        bool
	watch         bool
	abbreviations []string
	disabledRules []string
	logLevel      string
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "mdnewline [files...]",
		Short: "Put every sentence of a markdown document on its own line",
		Long: `mdnewline rewrites the prose of markdown documents so that each sentence
starts on a new line. Headers, code, lists, footnotes, tables and other
structure are left byte for byte as they are.

With no files it reads stdin and writes stdout. Directories are searched for
.md and .markdown files.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// A missing .env is fine.
			_ = godotenv.Load()
			return loadConfig(v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := readSettings(v)
			if err := s.validate(); err != nil {
				return err
			}
			return run(cmd, s, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default .mdnewline.yaml in the working or home directory)")
	pf.StringSlice("abbrev", nil, "extra abbreviations, comma-separated")
	pf.StringSlice("disable-rule", nil, "rules to disable: "+strings.Join(sentence.Rules(), ", "))
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")

	f := cmd.Flags()
	f.BoolP("write", "w", false, "rewrite files in place")
	f.Bool("check", false, "list files that would change and exit with status 2")
	f.Bool("verify", true, "refuse output whose markdown structure differs from the input")
	f.Bool("watch", false, "keep running and rewrite files when they change (requires --write)")

	bindings := map[string]*pflag.Flag{
		"abbreviations": pf.Lookup("abbrev"),
		"disable-rules": pf.Lookup("disable-rule"),
		"log-level":     pf.Lookup("log-level"),
		"write":         f.Lookup("write"),
		"check":         f.Lookup("check"),
		"verify":        f.Lookup("verify"),
		"watch":         f.Lookup("watch"),
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flag); err != nil {
			panic(err)
		}
	}

	v.SetEnvPrefix("mdnewline")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(newExplainCmd(v), newVersionCmd())
	return cmd
}

// loadConfig reads the config file. An explicit path must exist; the default
// .mdnewline.yaml is optional.
func loadConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".mdnewline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func readSettings(v *viper.Viper) settings {
	return settings{
		write:         v.GetBool("write"),
		check:         v.GetBool("check"),
		verify:        v.GetBool("verify"),
		watch:         v.GetBool("watch"),
		abbreviations: splitList(v.GetStringSlice("abbreviations")),
		disabledRules: splitList(v.GetStringSlice("disable-rules")),
		logLevel:      v.GetString("log-level"),
	}
}

func (s settings) validate() error {
	if s.write && s.check {
		return errors.New("--write and --check cannot be combined")
	}
	if s.watch && !s.write {
		return errors.New("--watch requires --write")
	}
	known := sentence.Rules()
	for _, r := range s.disabledRules {
		if !slices.Contains(known, r) {
			return fmt.Errorf("unknown rule %q (known: %s)", r, strings.Join(known, ", "))
		}
	}
	return nil
}

// splitList flattens entries that hold several comma-separated values, as
// environment variables do.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for part := range strings.SplitSeq(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
