//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeRepo struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
}

// fakeGitHub serves /search/repositories from a fixed table keyed by query
type fakeGitHub struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
	status  int
}

func newFakeGitHub(t *testing.T, results map[string][]fakeRepo) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query().Get("q")

		f.mu.Lock()
		f.queries = append(f.queries, q)
		status := f.status
		f.mu.Unlock()

		if status != 0 {
			http.Error(w, `{"message":"boom"}`, status)
			return
		}
		items := results[q]
		if items == nil {
			items = []fakeRepo{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_count": len(items),
			"items":       items,
		})
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGitHub) fail(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeGitHub) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

var defaultResults = map[string][]fakeRepo{
	"composable": {
		{ID: 1, FullName: "pointfreeco/swift-composable-architecture", Description: "A library for building applications", Stars: 12000, Language: "Swift", HTMLURL: "https://github.com/pointfreeco/swift-composable-architecture"},
		{ID: 2, FullName: "someone/composable-go", Description: "Composable things in Go", Stars: 42, Language: "Go", HTMLURL: "https://github.com/someone/composable-go"},
	},
	"tea": {
		{ID: 3, FullName: "charmbracelet/bubbletea", Description: "A powerful little TUI framework", Stars: 30000, Language: "Go", HTMLURL: "https://github.com/charmbracelet/bubbletea"},
	},
}
