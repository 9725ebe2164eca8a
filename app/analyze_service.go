package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"trendtruth/domain/analysis"
	"trendtruth/domain/core"
	"trendtruth/domain/dashboard"
	"trendtruth/domain/scoring"
	"trendtruth/domain/trend"
	"trendtruth/ports"
)

// AnalyzeService orchestrates the full analysis pipeline: trend collection,
// claim verification, scoring, and batch assembly, with a cache in front.
type AnalyzeService struct {
	sources  []ports.TrendSource
	verifier ports.ClaimVerifier
	cache    ports.BatchCache
	runs     ports.RunRepository // optional, nil disables run history

	cacheTTL     time.Duration
	defaultLimit int
	minLimit     int
	maxLimit     int

	now func() time.Time
}

// AnalyzeServiceOptions tunes limits and cache behavior.
type AnalyzeServiceOptions struct {
	CacheTTL     time.Duration
	DefaultLimit int
	MinLimit     int
	MaxLimit     int
}

// AnalyzeRequest defines inputs for a single analysis pass.
type AnalyzeRequest struct {
	Limit        int
	Category     string
	ForceRefresh bool
}

// NewAnalyzeService creates an analyze service. The run repository may be nil.
func NewAnalyzeService(sources []ports.TrendSource, verifier ports.ClaimVerifier, cache ports.BatchCache, runs ports.RunRepository, opts AnalyzeServiceOptions) *AnalyzeService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 180 * time.Second
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MinLimit <= 0 {
		opts.MinLimit = 5
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 40
	}
	return &AnalyzeService{
		sources:      sources,
		verifier:     verifier,
		cache:        cache,
		runs:         runs,
		cacheTTL:     opts.CacheTTL,
		defaultLimit: opts.DefaultLimit,
		minLimit:     opts.MinLimit,
		maxLimit:     opts.MaxLimit,
		now:          time.Now,
	}
}

// Analyze runs the pipeline for one category and returns the assembled batch.
// Results are served from cache unless the request forces a refresh.
func (s *AnalyzeService) Analyze(ctx context.Context, req AnalyzeRequest) (*analysis.Batch, error) {
	category := trend.NormalizeCategory(req.Category)
	limit := s.clampLimit(req.Limit)
	key := CacheKey(category, limit)

	if !req.ForceRefresh {
		if batch, err := s.cache.Get(ctx, key); err == nil {
			return batch, nil
		} else if !errors.Is(err, core.ErrCacheMiss) {
			log.Printf("[AnalyzeService] Cache read failed for %s: %v", key, err)
		}
	}

	items, health := s.collectTrends(ctx, category, limit)
	results := s.verifyAndScore(ctx, items)

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].IsMisleading() != results[j].IsMisleading() {
			return results[i].IsMisleading()
		}
		if results[i].FakeProbability != results[j].FakeProbability {
			return results[i].FakeProbability > results[j].FakeProbability
		}
		return results[i].SpreadIndex > results[j].SpreadIndex
	})

	batch := analysis.NewBatch(core.NewTimestamp(s.now()), category, results, health)

	if err := s.cache.Set(ctx, key, batch, s.cacheTTL); err != nil {
		log.Printf("[AnalyzeService] Cache write failed for %s: %v", key, err)
	}
	s.saveRun(ctx, category, limit, batch)

	return batch, nil
}

// CacheKey builds the cache key for a category and limit pair.
func CacheKey(category string, limit int) string {
	return fmt.Sprintf("%s:%d", category, limit)
}

func (s *AnalyzeService) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit < s.minLimit {
		return s.minLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

type sourceOutcome struct {
	items []trend.Item
	err   error
}

// collectTrends fans out to every configured source, records per-source
// health, and merges the results into a deduplicated ranked slice.
func (s *AnalyzeService) collectTrends(ctx context.Context, category string, limit int) ([]trend.Item, analysis.SourceHealth) {
	outcomes := make([]sourceOutcome, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		target := s.sourceTarget(src.Name(), limit)
		g.Go(func() error {
			items, err := src.Fetch(gctx, category, target)
			outcomes[i] = sourceOutcome{items: items, err: err}
			return nil
		})
	}
	_ = g.Wait()

	health := analysis.SourceHealth{}
	var merged []trend.Item
	for i, src := range s.sources {
		out := outcomes[i]
		if out.err != nil {
			health.Set(src.Name(), statusForError(out.err))
			continue
		}
		health.Set(src.Name(), fmt.Sprintf("ok - %d items", len(out.items)))
		merged = append(merged, out.items...)
	}

	return trend.DedupeAndRank(merged, limit), health
}

// sourceTarget splits the requested limit across sources, oversampling so
// deduplication still leaves enough items.
func (s *AnalyzeService) sourceTarget(name string, limit int) int {
	switch name {
	case "reddit":
		if t := limit / 2; t > 6 {
			return t
		}
		return 6
	case "hacker_news":
		if t := limit/4 + 2; t > 4 {
			return t
		}
		return 4
	default:
		return limit/3 + 3
	}
}

func statusForError(err error) string {
	switch {
	case errors.Is(err, core.ErrSourceDisabled):
		return "disabled - " + errorDetail(err)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error - " + errorDetail(err)
	}
}

// errorDetail strips the sentinel prefix so health statuses stay short.
func errorDetail(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}

const verifyConcurrency = 4

// verifyAndScore checks each trend against external evidence and produces a
// scored result. Verification failures degrade to empty evidence rather than
// failing the batch.
func (s *AnalyzeService) verifyAndScore(ctx context.Context, items []trend.Item) []analysis.Result {
	results := make([]analysis.Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			evidence, err := s.verifier.Verify(gctx, item.Title)
			if err != nil {
				log.Printf("[AnalyzeService] Verification failed for %q: %v", item.Title, err)
				evidence = analysis.Evidence{Articles: []analysis.EvidenceArticle{}}
			}
			results[i] = scoring.Score(item, evidence, s.now())
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// saveRun persists a run summary when a repository is configured. Failures
// are logged and never surfaced to the caller.
func (s *AnalyzeService) saveRun(ctx context.Context, category string, limit int, batch *analysis.Batch) {
	if s.runs == nil {
		return
	}
	summary := dashboard.Summarize(batch.Results)
	run := analysis.Run{
		ID:              core.RunID(core.NewID()),
		Category:        category,
		Limit:           limit,
		Total:           summary.Total,
		MisleadingCount: summary.MisleadingCount,
		RealCount:       summary.RealCount,
		AvgFake:         summary.AvgFake,
		GeneratedAt:     batch.GeneratedTime(),
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		log.Printf("[AnalyzeService] Run save failed: %v", err)
	}
}
