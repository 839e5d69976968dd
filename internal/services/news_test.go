package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"synapshare/internal/apperr"
)

func TestTopHeadlines(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.URL.Query().Get("category"); got != "technology" {
			t.Errorf("category = %q, want technology", got)
		}
		if got := r.URL.Query().Get("apiKey"); got != "test-key" {
			t.Errorf("apiKey = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","articles":[{"source":{"name":"Wired"},"title":"headline one","url":"https://example.com/1"}]}`))
	}))
	defer upstream.Close()

	s := NewNewsService("test-key")
	s.baseURL = upstream.URL

	articles, err := s.TopHeadlines(context.Background())
	if err != nil {
		t.Fatalf("headlines: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "headline one" || articles[0].Source.Name != "Wired" {
		t.Fatalf("articles = %+v", articles)
	}

	// Second call within the TTL is served from cache.
	if _, err := s.TopHeadlines(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("upstream called %d times, want 1", n)
	}
}

func TestTopHeadlinesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error"}`, http.StatusUnauthorized)
	}))
	defer upstream.Close()

	s := NewNewsService("bad-key")
	s.baseURL = upstream.URL

	_, err := s.TopHeadlines(context.Background())
	if !apperr.IsKind(err, apperr.KindUpstream) {
		t.Fatalf("got %v, want upstream error", err)
	}
	if apperr.Message(err) != "Failed to fetch news" {
		t.Errorf("message = %q", apperr.Message(err))
	}
}
