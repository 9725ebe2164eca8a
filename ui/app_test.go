package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trendtruth/domain/analysis"
)

func newTestApp(t *testing.T, fetcher *fakeFetcher) *App {
	t.Helper()
	a, err := NewApp(fetcher, AppConfig{Limit: 20})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return a
}

func TestDashboardPageBeforeFirstFetch(t *testing.T) {
	a := newTestApp(t, &fakeFetcher{batch: sampleBatch("all", nil)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Analyzing All trends...") {
		t.Error("expected pending status on seed paint")
	}
}

func TestDashboardPageAfterRefresh(t *testing.T) {
	fetcher := &fakeFetcher{batch: sampleBatch("all", []analysis.Result{sampleResult("tech")})}
	a := newTestApp(t, fetcher)

	if err := a.Controller().Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "A story") {
		t.Error("expected card title in rendered page")
	}
	if !strings.Contains(body, "Updated at") {
		t.Error("expected settled status line")
	}
	if !strings.Contains(body, "reddit: ok - 5 items") {
		t.Error("expected health pill label")
	}
}

func TestDashboardCategoryQuerySwitches(t *testing.T) {
	fetcher := &fakeFetcher{batch: sampleBatch("sports", []analysis.Result{sampleResult("sports")})}
	a := newTestApp(t, fetcher)

	req := httptest.NewRequest(http.MethodGet, "/?category=sports", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := a.Controller().SelectedCategory(); got != "sports" {
		t.Errorf("selected = %q", got)
	}
	if len(fetcher.requests) != 1 || fetcher.requests[0].Category != "sports" {
		t.Errorf("requests = %+v", fetcher.requests)
	}
}

func TestRefreshEndpointRedirects(t *testing.T) {
	fetcher := &fakeFetcher{batch: sampleBatch("all", nil)}
	a := newTestApp(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(fetcher.requests) != 1 || !fetcher.requests[0].ForceRefresh {
		t.Errorf("expected one forced fetch, got %+v", fetcher.requests)
	}
}
