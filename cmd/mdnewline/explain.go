package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/go-mdnewline/block"
	"github.com/jamesainslie/go-mdnewline/sentence"
)

func newExplainCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [text...]",
		Short: "Show every boundary candidate in a paragraph and how it was decided",
		Long: `explain segments one paragraph of prose, given as arguments or on stdin,
and prints each candidate boundary with the rule that rejected it, followed by
the resulting sentences.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := readSettings(v)
			if err := s.validate(); err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if text == "" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = strings.TrimSpace(string(b))
			}
			if text == "" {
				return errors.New("no text provided")
			}

			seg := sentence.New(
				sentence.WithGuard(block.Interrupts),
				sentence.WithAbbreviations(s.abbreviations...),
				sentence.WithDisabledRules(s.disabledRules...),
			)

			out := cmd.OutOrStdout()
			decisions := seg.Explain(text)
			fmt.Fprintf(out, "Text: %q\n", text)
			fmt.Fprintf(out, "Candidates (%d):\n", len(decisions))
			for i, d := range decisions {
				verdict := "split"
				if !d.Accepted {
					verdict = "keep (" + d.Rule + ")"
				}
				fmt.Fprintf(out, "  %d: %q at %d, next %s: %s\n", i+1, d.Token, d.Offset, d.Next, verdict)
			}

			sentences := seg.Split(text)
			fmt.Fprintf(out, "Sentences (%d):\n", len(sentences))
			for i, sent := range sentences {
				fmt.Fprintf(out, "  %d: %q\n", i+1, sent.Text)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mdnewline %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
