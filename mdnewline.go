package mdnewline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jamesainslie/go-mdnewline/block"
	"github.com/jamesainslie/go-mdnewline/sentence"
)

// Processor rewrites markdown so that every prose sentence starts on its own
// line. It is safe for concurrent use.
type Processor struct {
	segmenter *sentence.Segmenter
	logger    *slog.Logger
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	segOpts := []sentence.Option{
		sentence.WithGuard(block.Interrupts),
		sentence.WithAbbreviations(cfg.abbreviations...),
		sentence.WithDisabledRules(cfg.disabledRules...),
	}
	if cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
		logger := cfg.logger
		segOpts = append(segOpts, sentence.WithTrace(func(d sentence.Decision) {
			if !d.Accepted {
				logger.Debug("boundary rejected", "token", d.Token, "rule", d.Rule, "offset", d.Offset)
			}
		}))
	}

	return &Processor{
		segmenter: sentence.New(segOpts...),
		logger:    cfg.logger,
	}
}

var std = New(WithLogger(slog.New(slog.DiscardHandler)))

// Process rewrites document with default settings. It never fails: text it
// cannot classify with confidence is returned unchanged.
func Process(document string) string {
	return std.Process(document)
}

// Process rewrites document. Headers, code, lists, footnote definitions and
// other non-prose blocks are returned byte for byte, as are blank lines.
func (p *Processor) Process(document string) string {
	blocks := block.Classify(document)
	nl := lineEnding(document)

	var b strings.Builder
	b.Grow(len(document) + len(document)/32)
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.render(blk, nl))
	}
	return b.String()
}

// lineEnding returns the line break a document uses, taken from its first
// line: "\r\n" for CRLF, otherwise "\n".
func lineEnding(document string) string {
	if i := strings.IndexByte(document, '\n'); i > 0 && document[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// ProcessReader streams a document from r to w one block at a time, so memory
// is bounded by the largest block rather than the document. The output is
// identical to Process. Cancellation is checked between lines.
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	var (
		c       block.Classifier
		first   = true
		nl      = "\n"
		decided bool
	)
	emit := func(blocks []block.Block) error {
		for _, blk := range blocks {
			if !first {
				if err := bw.WriteByte('\n'); err != nil {
					return fmt.Errorf("%w: %w", ErrWriteFailed, err)
				}
			}
			first = false
			if _, err := bw.WriteString(p.render(blk, nl)); err != nil {
				return fmt.Errorf("%w: %w", ErrWriteFailed, err)
			}
		}
		return nil
	}

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := br.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return fmt.Errorf("%w: %w", ErrReadFailed, err)
		}
		if eof && n == 0 && line == "" {
			break
		}
		if !decided && strings.HasSuffix(line, "\n") {
			nl, decided = lineEnding(line), true
		}

		if err := emit(c.Push(strings.TrimSuffix(line, "\n"))); err != nil {
			return err
		}
		if eof {
			break
		}
	}

	if err := emit(c.Flush()); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

func (p *Processor) render(blk block.Block, nl string) string {
	if blk.Kind.Opaque() {
		return blk.Text
	}
	out := p.segmenter.SegmentNewline(blk.Text, nl)
	p.logger.Debug("segmented prose",
		"line", blk.Line,
		"bytes", len(blk.Text),
		"sentences", strings.Count(out, "\n")-strings.Count(blk.Text, "\n")+1,
	)
	return out
}
