// Package analyzeapi is the HTTP client side of GET /api/analyze: the
// dashboard controller's only window onto the analysis backend.
package analyzeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"trendtruth/domain/analysis"
	"trendtruth/internal/errors"
	"trendtruth/ports"
)

// DefaultLimit is the client-side fallback when no valid limit is provided
const DefaultLimit = 20

// Client fetches analysis batches over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an analyze API client for the given base URL.
// httpClient may be nil; http.DefaultClient is used then. The client sets no
// timeout of its own; callers bound requests through ctx or their client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchBatch performs one analyze call. Failures map onto the dashboard's
// taxonomy: transport (no response), protocol (non-2xx status), payload
// (body does not decode as a batch).
func (c *Client) FetchBatch(ctx context.Context, req ports.BatchRequest) (*analysis.Batch, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(normalizeLimit(req.Limit)))
	query.Set("category", req.Category)
	if req.ForceRefresh {
		query.Set("refresh", "true")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/analyze?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeTransportFailure, err, "building analyze request failed")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(errors.CodeTransportFailure, err, "analyze request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, errors.New(errors.CodeProtocolFailure,
			fmt.Sprintf("analyze request returned status %d", resp.StatusCode)).
			WithStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.CodeTransportFailure, err, "reading analyze response failed")
	}

	var batch analysis.Batch
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, errors.Wrap(errors.CodeMalformedPayload, err, "analyze response did not decode")
	}
	if batch.Results == nil {
		batch.Results = []analysis.Result{}
	}
	return &batch, nil
}

// normalizeLimit coerces a limit to something the backend accepts,
// defaulting rather than erroring on nonsense input.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
