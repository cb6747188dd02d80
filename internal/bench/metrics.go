package bench

import "github.com/jamesainslie/go-mdnewline/sentence"

// Config holds evaluation parameters.
type Config struct {
	Tolerance       int // byte match tolerance
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:       0,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Evaluate compares predicted boundaries against ground truth.
// Uses greedy left-to-right matching within tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			diff := p - t
			if diff < 0 {
				diff = -diff
			}
			if diff <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	return Score(tp, len(predicted)-tp, len(truth)-tp, cfg)
}

// Score derives precision, recall, F1 and the weighted score from raw counts.
func Score(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m
}

// Predict returns the boundary offsets seg finds in text, in the same form as
// Document.Boundaries.
func Predict(seg *sentence.Segmenter, text string) []int {
	sentences := seg.Split(text)
	if len(sentences) < 2 {
		return nil
	}
	out := make([]int, 0, len(sentences)-1)
	for _, s := range sentences[:len(sentences)-1] {
		out = append(out, s.End)
	}
	return out
}

// EvaluateDocument scores seg on one document.
func EvaluateDocument(seg *sentence.Segmenter, doc *Document, cfg Config) Metrics {
	return Evaluate(Predict(seg, doc.Text), doc.Boundaries(), cfg)
}

// EvaluateCorpus scores seg on every document and aggregates the counts.
func EvaluateCorpus(seg *sentence.Segmenter, docs []*Document, cfg Config) Metrics {
	var tp, fp, fn int
	for _, doc := range docs {
		m := EvaluateDocument(seg, doc, cfg)
		tp += m.TruePositives
		fp += m.FalsePositives
		fn += m.FalseNegatives
	}
	return Score(tp, fp, fn, cfg)
}
