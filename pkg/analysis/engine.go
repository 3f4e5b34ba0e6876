// Package analysis orchestrates the per-file and change-set analysis: it
// wires the classifier, patch parser, and risk assessor together and
// aggregates per-file results into change-set risk and quality scores.
package analysis

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tkareem/changelens/pkg/classify"
	"github.com/tkareem/changelens/pkg/interfaces"
	"github.com/tkareem/changelens/pkg/report"
	"github.com/tkareem/changelens/pkg/risk"
	"github.com/tkareem/changelens/pkg/signals"
)

// DefaultConcurrency bounds the per-file analysis fan-out.
const DefaultConcurrency = 4

// Engine is the analysis entry point. It is stateless across calls and safe
// for concurrent use.
type Engine struct {
	classifier  *classify.Classifier
	parser      *signals.Parser
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier overrides the default file classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithExtractor overrides the default line signal extractor, e.g. to inject
// an extended critical-pattern table.
func WithExtractor(ex *signals.Extractor) Option {
	return func(e *Engine) {
		e.parser = signals.NewParser(ex)
	}
}

// WithConcurrency sets the per-file fan-out limit for AnalyzeFiles.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine creates an Engine with the default classifier and pattern tables.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		classifier:  classify.New(),
		parser:      signals.NewParser(signals.NewExtractor()),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnalyzeFile classifies one changed file and extracts and scores its change
// signals. It is total: an empty patch (binary or rename-only change) yields
// empty signals and low risk rather than an error.
func (e *Engine) AnalyzeFile(filename, patch string) *interfaces.FileAnalysis {
	fileType := e.classifier.Classify(filename)

	if patch == "" {
		return &interfaces.FileAnalysis{
			Filename:  filename,
			FileType:  fileType,
			RiskLevel: interfaces.RiskLow,
			Summary:   "no textual changes",
		}
	}

	sig := e.parser.Parse(fileType, patch)

	return &interfaces.FileAnalysis{
		Filename:  filename,
		FileType:  fileType,
		Signals:   *sig,
		RiskLevel: risk.Assess(sig, fileType, filename),
		Summary:   report.FileSummary(sig),
	}
}

// AnalyzeFiles analyzes a batch of changed files in parallel, preserving
// input order. The fan-out is bounded by the engine's concurrency limit and
// all files complete before this returns; aggregation is a join, not a
// pipeline.
func (e *Engine) AnalyzeFiles(ctx context.Context, files []interfaces.ChangedFile) []*interfaces.FileAnalysis {
	results := make([]*interfaces.FileAnalysis, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, cf := range files {
		i, cf := i, cf
		g.Go(func() error {
			results[i] = e.AnalyzeFile(cf.Filename, cf.Patch)
			return nil
		})
	}

	// Per-file analysis never fails; the group is used purely as a barrier.
	_ = g.Wait()

	slog.Debug("analyzed change set files", "count", len(files))
	return results
}
