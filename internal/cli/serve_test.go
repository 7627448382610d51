package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ytcrawl/ytcrawl/pkg/buildinfo"
	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/pipeline"
	"github.com/ytcrawl/ytcrawl/pkg/youtube"
)

// stubSource serves a fixed two-level graph.
type stubSource struct{}

func (stubSource) Search(_ context.Context, n int64, query string, _ youtube.SearchOptions) ([]*crawl.Item, error) {
	if query == "busy" {
		return nil, &errors.RateLimitedError{RetryAfter: 30, Message: "quota exceeded"}
	}
	return []*crawl.Item{{ID: "seedseedsee", Title: "Seed"}}, nil
}

func (stubSource) VideoByID(_ context.Context, id string) ([]*crawl.Item, error) {
	if id != "seedseedsee" {
		return nil, errors.New(errors.ErrCodeVideoNotFound, "no video with id %q", id)
	}
	return []*crawl.Item{{ID: id, Title: "Seed"}}, nil
}

func (stubSource) Related(_ context.Context, n int64, id string, _ youtube.SearchOptions) ([]*crawl.Item, error) {
	return []*crawl.Item{{ID: "childchildch", Title: "Child"}}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := New(io.Discard, LogInfo)
	srv := &server{
		runner: pipeline.NewRunner(stubSource{}, c.Logger),
		logger: c.Logger,
	}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["status"] != "ok" {
		t.Errorf("status field = %q", out["status"])
	}
	if !strings.Contains(out["build"], buildinfo.Version) {
		t.Errorf("build field = %q, missing version", out["build"])
	}
}

func TestCrawlEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := `{"mode": "term", "query": "cats", "number": [1], "maxDepth": 1}`
	resp, err := http.Post(ts.URL+"/api/crawl", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/crawl: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out crawlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RunID == "" || out.Query != "cats" {
		t.Errorf("response meta = %+v", out)
	}
	if out.Visited != 2 || len(out.Items) != 2 {
		t.Errorf("visited = %d, items = %d", out.Visited, len(out.Items))
	}
	if out.Items[0].ID != "seedseedsee" || out.Items[1].Depth != 1 {
		t.Errorf("items = %+v", out.Items)
	}
}

func TestCrawlEndpointRateLimited(t *testing.T) {
	ts := newTestServer(t)

	body := `{"mode": "term", "query": "busy"}`
	resp, err := http.Post(ts.URL+"/api/crawl", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/crawl: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %q, want 30", got)
	}

	var out errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Code != "RATE_LIMITED" {
		t.Errorf("code = %s, want RATE_LIMITED", out.Code)
	}
}

func TestCrawlEndpointErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed body", `{`, http.StatusBadRequest, ""},
		{"unknown mode", `{"mode": "playlist", "query": "x"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing video", `{"mode": "id", "query": "aaaaaaaaaaa"}`, http.StatusNotFound, "VIDEO_NOT_FOUND"},
		{"branch too large", `{"query": "x", "number": [99]}`, http.StatusBadRequest, "INVALID_CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/crawl", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantCode != "" {
				var out errorResponse
				if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if out.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", out.Code, tt.wantCode)
				}
			}
		})
	}
}
