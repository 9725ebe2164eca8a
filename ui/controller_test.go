package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"trendtruth/domain/analysis"
	"trendtruth/domain/core"
	"trendtruth/domain/dashboard"
	"trendtruth/domain/trend"
	"trendtruth/ports"
)

type fakeFetcher struct {
	mu       sync.Mutex
	requests []ports.BatchRequest
	batch    *analysis.Batch
	err      error
	block    chan struct{} // when set, FetchBatch waits until closed
}

func (f *fakeFetcher) FetchBatch(ctx context.Context, req ports.BatchRequest) (*analysis.Batch, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *fakeFetcher) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type recordingRenderer struct {
	mu      sync.Mutex
	painted []dashboard.ViewModel
}

func (r *recordingRenderer) Render(vm dashboard.ViewModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.painted = append(r.painted, vm)
	return nil
}

func (r *recordingRenderer) paints() []dashboard.ViewModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dashboard.ViewModel, len(r.painted))
	copy(out, r.painted)
	return out
}

func sampleBatch(category string, results []analysis.Result) *analysis.Batch {
	health := analysis.SourceHealth{}
	health.Set("reddit", "ok - 5 items")
	return analysis.NewBatch(core.NewTimestamp(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)), category, results, health)
}

func sampleResult(category string) analysis.Result {
	return analysis.Result{
		Trend: trend.Item{
			ID:       core.NewTrendID("reddit", "abc"),
			Platform: "reddit",
			Title:    "A story",
			Category: category,
		},
		FakeProbability: 30,
		Verdict:         analysis.VerdictNeedsVerification,
	}
}

func TestRefreshSuccess(t *testing.T) {
	fetcher := &fakeFetcher{batch: sampleBatch("all", []analysis.Result{sampleResult("tech")})}
	renderer := &recordingRenderer{}
	ctrl := NewDashboardController(fetcher, renderer, 20)

	if err := ctrl.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	paints := renderer.paints()
	if len(paints) != 2 {
		t.Fatalf("expected 2 paints (pending + settled), got %d", len(paints))
	}
	if paints[0].StatusLine != "Analyzing All trends..." {
		t.Errorf("pending status = %q", paints[0].StatusLine)
	}

	vm := ctrl.ViewModel()
	if !vm.Grouped {
		t.Error("all view should be grouped")
	}
	if vm.StatusIsError {
		t.Error("status should not be error")
	}
	wantStatus := fmt.Sprintf("Updated at %s.", vm.UpdatedAt)
	if vm.StatusLine != wantStatus {
		t.Errorf("status = %q, want %q", vm.StatusLine, wantStatus)
	}
}

func TestRefreshInFlightSuppressed(t *testing.T) {
	fetcher := &fakeFetcher{
		batch: sampleBatch("all", nil),
		block: make(chan struct{}),
	}
	ctrl := NewDashboardController(fetcher, &recordingRenderer{}, 20)

	done := make(chan error, 1)
	go func() { done <- ctrl.Refresh(context.Background(), false) }()

	// wait for the first refresh to reach the fetcher
	for fetcher.requestCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	if err := ctrl.Refresh(context.Background(), false); !errors.Is(err, core.ErrRefreshInFlight) {
		t.Fatalf("concurrent refresh returned %v, want ErrRefreshInFlight", err)
	}

	close(fetcher.block)
	if err := <-done; err != nil {
		t.Fatalf("original refresh failed: %v", err)
	}
	if fetcher.requestCount() != 1 {
		t.Errorf("expected exactly one fetch, got %d", fetcher.requestCount())
	}

	// the controller accepts refreshes again once settled
	fetcher.block = nil
	if err := ctrl.Refresh(context.Background(), false); err != nil {
		t.Fatalf("post-settle refresh failed: %v", err)
	}
}

func TestSelectCategoryFetchesFiltered(t *testing.T) {
	fetcher := &fakeFetcher{batch: sampleBatch("sports", []analysis.Result{sampleResult("sports")})}
	ctrl := NewDashboardController(fetcher, &recordingRenderer{}, 20)

	if err := ctrl.SelectCategory(context.Background(), "sports"); err != nil {
		t.Fatalf("SelectCategory failed: %v", err)
	}

	if got := fetcher.requests[0].Category; got != "sports" {
		t.Errorf("fetch category = %q, want sports", got)
	}

	vm := ctrl.ViewModel()
	if vm.Grouped {
		t.Error("single-category view must stay flat")
	}
	if len(vm.Cards) != 1 {
		t.Errorf("expected 1 card, got %d", len(vm.Cards))
	}
	if vm.SelectedCategory != "sports" {
		t.Errorf("selected = %q", vm.SelectedCategory)
	}
}

func TestSelectCategoryUnknownFallsBackToAll(t *testing.T) {
	fetcher := &fakeFetcher{batch: sampleBatch("all", nil)}
	ctrl := NewDashboardController(fetcher, nil, 20)

	if err := ctrl.SelectCategory(context.Background(), "astrology"); err != nil {
		t.Fatalf("SelectCategory failed: %v", err)
	}
	if got := ctrl.SelectedCategory(); got != trend.CategoryAll {
		t.Errorf("selected = %q, want all", got)
	}
}

func TestRefreshFailureKeepsPriorView(t *testing.T) {
	fetcher := &fakeFetcher{batch: sampleBatch("all", []analysis.Result{sampleResult("tech")})}
	ctrl := NewDashboardController(fetcher, &recordingRenderer{}, 20)

	if err := ctrl.Refresh(context.Background(), false); err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}
	seeded := ctrl.ViewModel()

	fetcher.err = errors.New("analyze request returned status 502")
	if err := ctrl.Refresh(context.Background(), true); err == nil {
		t.Fatal("expected refresh error")
	}

	vm := ctrl.ViewModel()
	if !vm.StatusIsError {
		t.Error("expected error status")
	}
	if vm.StatusLine != "Failed to load analysis: analyze request returned status 502" {
		t.Errorf("status = %q", vm.StatusLine)
	}
	if len(vm.Groups) != len(seeded.Groups) {
		t.Errorf("prior groups not retained: %d vs %d", len(vm.Groups), len(seeded.Groups))
	}
	if vm.UpdatedAt != seeded.UpdatedAt {
		t.Errorf("prior timestamp not retained")
	}
}
