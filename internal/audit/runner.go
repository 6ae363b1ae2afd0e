// Package audit orchestrates drift evaluation, relevance scoring, and
// evidence-flow graph construction over a requirement catalog.
package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veritas-labs/driftscope/internal/cache"
	"github.com/veritas-labs/driftscope/internal/drift"
	"github.com/veritas-labs/driftscope/internal/embed"
	"github.com/veritas-labs/driftscope/internal/graph"
	"github.com/veritas-labs/driftscope/internal/model"
	"github.com/veritas-labs/driftscope/internal/nli"
	"github.com/veritas-labs/driftscope/internal/worker"
)

// Runner composes the drift evaluator, relevance evaluator, and graph
// builder. Capabilities are constructed once and injected; the runner
// holds no lazy global state.
type Runner struct {
	evaluator *drift.Evaluator
	relevance *drift.RelevanceEvaluator
	builder   *graph.Builder
	limiter   *worker.Limiter
	workers   int
}

// NewRunner constructs a runner from configuration, initializing both
// capabilities up front. A capability that cannot be initialized fails
// the whole run here; there is no fallback scoring.
func NewRunner(cfg *model.Config) (*Runner, error) {
	classifier, err := nli.NewClassifier(cfg.NLI)
	if err != nil {
		return nil, fmt.Errorf("init entailment classifier: %w", err)
	}

	embedder, err := embed.NewEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("init similarity scorer: %w", err)
	}

	store := cache.FromConfig(cfg.Cache)
	classifier = nli.WithCache(classifier, store, cfg.NLI.Model)
	embedder = embed.WithCache(embedder, store, cfg.Embedding.Model)

	return NewRunnerWith(
		drift.NewEvaluator(classifier, cfg.NLI.EntailmentThreshold),
		drift.NewRelevanceEvaluator(embedder),
		worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst),
		cfg.Concurrency.EvalWorkers,
	), nil
}

// NewRunnerWith constructs a runner from already-built components.
func NewRunnerWith(evaluator *drift.Evaluator, relevance *drift.RelevanceEvaluator, limiter *worker.Limiter, workers int) *Runner {
	if workers <= 0 {
		workers = 4
	}
	if limiter == nil {
		limiter = worker.NewLimiter(0, 0)
	}

	return &Runner{
		evaluator: evaluator,
		relevance: relevance,
		builder:   graph.NewBuilder(),
		limiter:   limiter,
		workers:   workers,
	}
}

// Run audits every catalog requirement against the claims map.
// Categories absent from claims are audited with the "Not Found"
// substitution; missing disclosures are data, not errors. The evidence
// map supplies per-category source evidence; a category without
// evidence falls back to the requirement text itself.
//
// Evaluations run concurrently, but rows and graph nodes are
// reassembled in catalog order regardless of completion order: that
// order is an external contract.
func (r *Runner) Run(ctx context.Context, requirements []model.Requirement, claims map[string]string, evidence map[string]string) (*model.Report, error) {
	rows := make([]model.AuditRow, len(requirements))
	errs := make([]error, len(requirements))

	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

	for i, req := range requirements {
		wg.Add(1)
		go func(idx int, req model.Requirement) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			rows[idx], errs[idx] = r.evaluateRow(ctx, req, claims, evidence)
		}(i, req)
	}

	wg.Wait()

	// Fail closed on the first failing category in catalog order.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	triples := make([]graph.Triple, len(rows))
	for i, row := range rows {
		triples[i] = graph.Triple{
			Requirement: row.Requirement,
			Claim:       row.Claim,
			Result:      row.Drift,
		}
	}

	return &model.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Rows:        rows,
		Graph:       r.builder.Build(triples),
		Principles:  model.DefaultPrinciples(),
	}, nil
}

// evaluateRow audits a single requirement.
func (r *Runner) evaluateRow(ctx context.Context, req model.Requirement, claims, evidence map[string]string) (model.AuditRow, error) {
	claimText, ok := claims[req.Category]
	if !ok {
		claimText = model.MissingClaimText
	}

	evidenceText, ok := evidence[req.Category]
	if !ok {
		evidenceText = req.Text
	}

	if err := r.limiter.Wait(ctx, "nli"); err != nil {
		return model.AuditRow{}, fmt.Errorf("rate limit (category %q): %w", req.Category, err)
	}

	result, err := r.evaluator.Evaluate(ctx, req.Category, claimText, evidenceText)
	if err != nil {
		return model.AuditRow{}, err
	}

	if err := r.limiter.Wait(ctx, "embed"); err != nil {
		return model.AuditRow{}, fmt.Errorf("rate limit (category %q): %w", req.Category, err)
	}

	relevance, err := r.relevance.Relevance(ctx, req.Text, claimText)
	if err != nil {
		var capErr *model.CapabilityError
		if errors.As(err, &capErr) {
			capErr.Category = req.Category
		}
		return model.AuditRow{}, err
	}

	return model.AuditRow{
		Requirement: req,
		Claim:       model.Claim{Category: req.Category, Text: claimText},
		Drift:       result,
		Relevance:   relevance,
	}, nil
}
