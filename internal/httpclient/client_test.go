package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(Options{UserAgent: "TechInsights/test"})
	resp, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if gotUA != "TechInsights/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestGetSpacesRequestsPerHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(Options{HostInterval: 100 * time.Millisecond})
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		resp, err := c.Get(ctx, server.URL)
		if err != nil {
			t.Fatalf("Get %d: %v", i, err)
		}
		resp.Body.Close()
	}

	// First request uses the burst token; the next two wait ~100ms each.
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("requests were not spaced: %v", elapsed)
	}
}

func TestGetCancelledWhileWaiting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(Options{HostInterval: time.Hour})
	resp, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Get(ctx, server.URL); err == nil {
		t.Error("expected error when limiter wait exceeds deadline")
	}
}

func TestLimiterPerHost(t *testing.T) {
	c := New(Options{HostInterval: time.Second})
	a := c.limiter("a.example.com")
	b := c.limiter("b.example.com")
	if a == b {
		t.Error("hosts should have independent limiters")
	}
	if c.limiter("a.example.com") != a {
		t.Error("limiter should be reused for the same host")
	}
}
