package bench

import (
	"testing"

	"github.com/jamesainslie/go-mdnewline/sentence"
)

func TestAblate(t *testing.T) {
	text, sentences := ParseGold("Dr. Smith left early.\nHe paid $4.50 for it.\nThe end.\n")
	docs := []*Document{{ID: "test", Text: text, Sentences: sentences}}

	results := Ablate(docs, DefaultConfig())

	if len(results) != len(sentence.Rules())+1 {
		t.Fatalf("got %d results, want %d", len(results), len(sentence.Rules())+1)
	}
	if results[0].Disabled != "" {
		t.Errorf("results[0].Disabled = %q, want baseline", results[0].Disabled)
	}
	if results[0].Metrics.F1 != 1 {
		t.Errorf("baseline F1 = %v, want 1", results[0].Metrics.F1)
	}

	last := results[len(results)-1]
	if last.Disabled != sentence.RuleAbbreviation {
		t.Errorf("last result disabled %q, want %q", last.Disabled, sentence.RuleAbbreviation)
	}
	if last.Metrics.FalsePositives != 1 {
		t.Errorf("FalsePositives without abbreviations = %d, want 1", last.Metrics.FalsePositives)
	}
}

func TestAblate_Options(t *testing.T) {
	text, sentences := ParseGold("Sunset Blvd. North is closed.\nTake a detour.\n")
	docs := []*Document{{ID: "test", Text: text, Sentences: sentences}}

	without := Ablate(docs, DefaultConfig())
	with := Ablate(docs, DefaultConfig(), sentence.WithAbbreviations("Blvd"))

	if without[0].Metrics.FalsePositives == 0 {
		t.Errorf("expected a false positive without the extra abbreviation")
	}
	if with[0].Metrics.F1 != 1 {
		t.Errorf("F1 with abbreviation = %v, want 1", with[0].Metrics.F1)
	}
}
