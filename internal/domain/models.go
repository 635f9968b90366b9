package domain

// Repository is a single GitHub repository as returned by the search API
type Repository struct {
	ID              int64   `json:"id"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	StargazersCount int     `json:"stargazers_count"`
	Language        *string `json:"language"`
	HTMLURL         string  `json:"html_url"`
}

// Equal reports whether two repositories carry the same data
func (r Repository) Equal(other Repository) bool {
	return r.ID == other.ID &&
		r.FullName == other.FullName &&
		optionalEqual(r.Description, other.Description) &&
		r.StargazersCount == other.StargazersCount &&
		optionalEqual(r.Language, other.Language) &&
		r.HTMLURL == other.HTMLURL
}

// DescriptionOrEmpty returns the description or "" when GitHub sent null
func (r Repository) DescriptionOrEmpty() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// LanguageOrEmpty returns the primary language or "" when GitHub sent null
func (r Repository) LanguageOrEmpty() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

// StringPtr is a helper for building repositories with optional fields
func StringPtr(s string) *string {
	return &s
}

func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
