package analyzeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trendtruth/internal/errors"
	"trendtruth/ports"
)

func TestClient_BuildsRequestParameters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"generated_at":"2026-08-29T10:00:00Z","results":[],"source_health":{}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.FetchBatch(context.Background(), ports.BatchRequest{
		Limit:        25,
		Category:     "sports",
		ForceRefresh: true,
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if gotQuery["limit"][0] != "25" {
		t.Errorf("limit = %v", gotQuery["limit"])
	}
	if gotQuery["category"][0] != "sports" {
		t.Errorf("category = %v", gotQuery["category"])
	}
	if gotQuery["refresh"][0] != "true" {
		t.Errorf("refresh = %v", gotQuery["refresh"])
	}
}

func TestClient_OmitsRefreshWhenNotForced(t *testing.T) {
	var hasRefresh bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasRefresh = r.URL.Query()["refresh"]
		fmt.Fprint(w, `{"generated_at":"2026-08-29T10:00:00Z"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	client.FetchBatch(context.Background(), ports.BatchRequest{Limit: 20, Category: "all"})

	if hasRefresh {
		t.Error("refresh parameter must be absent unless forced")
	}
}

func TestClient_InvalidLimitDefaults(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		fmt.Fprint(w, `{"generated_at":"2026-08-29T10:00:00Z"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	client.FetchBatch(context.Background(), ports.BatchRequest{Limit: 0, Category: "all"})

	if gotLimit != "20" {
		t.Errorf("limit = %q, want default 20", gotLimit)
	}
}

func TestClient_FailureTaxonomy(t *testing.T) {
	t.Run("protocol failure carries the status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.FetchBatch(context.Background(), ports.BatchRequest{Limit: 20, Category: "all"})

		if !errors.HasCode(err, errors.CodeProtocolFailure) {
			t.Fatalf("expected protocol failure, got %v", err)
		}
		if want := "analyze request returned status 502"; err.Error() != want {
			t.Errorf("message = %q, want %q", err.Error(), want)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results": "not-an-array"}`)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.FetchBatch(context.Background(), ports.BatchRequest{Limit: 20, Category: "all"})

		if !errors.HasCode(err, errors.CodeMalformedPayload) {
			t.Errorf("expected malformed payload, got %v", err)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", nil)
		_, err := client.FetchBatch(context.Background(), ports.BatchRequest{Limit: 20, Category: "all"})

		if !errors.HasCode(err, errors.CodeTransportFailure) {
			t.Errorf("expected transport failure, got %v", err)
		}
	})
}

func TestClient_MissingCollectionsDegradeToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"generated_at":"2026-08-29T10:00:00Z"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	batch, err := client.FetchBatch(context.Background(), ports.BatchRequest{Limit: 20, Category: "all"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if batch.Results == nil || len(batch.Results) != 0 {
		t.Errorf("results should be empty, got %v", batch.Results)
	}
	if len(batch.SourceHealth) != 0 {
		t.Errorf("source health should be empty, got %v", batch.SourceHealth)
	}
}
