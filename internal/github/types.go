package github

import "reposearch/internal/domain"

// searchResponse mirrors GET /search/repositories
type searchResponse struct {
	TotalCount        int                 `json:"total_count"`
	IncompleteResults bool                `json:"incomplete_results"`
	Items             []domain.Repository `json:"items"`
}

// errorResponse is the body GitHub sends with 4xx/5xx statuses
type errorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
