package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"reposearch/internal/domain"
)

// RepositoryRenderer handles rendering of repository items
type RepositoryRenderer struct {
	styles *Styles
}

// NewRepositoryRenderer creates a new repository renderer
func NewRepositoryRenderer(styles *Styles) *RepositoryRenderer {
	return &RepositoryRenderer{styles: styles}
}

// RenderRow renders one result line: name, stars and language, then the
// description truncated to width.
func (r *RepositoryRenderer) RenderRow(repo domain.Repository, isSelected bool, width int, query string) string {
	cursor := "  "
	if isSelected {
		cursor = r.styles.Highlight.Render("▶ ")
	}

	name := r.highlight(repo.FullName, query)
	stars := r.styles.Stars.Render(fmt.Sprintf("★ %s", FormatStars(repo.StargazersCount)))

	parts := []string{cursor + name, stars}
	if lang := repo.LanguageOrEmpty(); lang != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(LanguageColor(lang))).Render(lang))
	}
	line := strings.Join(parts, "  ")

	if desc := repo.DescriptionOrEmpty(); desc != "" && width > 0 {
		room := width - lipgloss.Width(line) - 3
		if room > 8 {
			line += "  " + r.styles.Dim.Render(ansi.Truncate(firstLine(desc), room, "…"))
		}
	}

	if isSelected {
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

// highlight marks the first case-insensitive match of query in name
func (r *RepositoryRenderer) highlight(name, query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	lower := strings.ToLower(name)
	idx := -1
	if q != "" && len(lower) == len(name) {
		idx = strings.Index(lower, q)
	}
	if idx < 0 {
		return r.styles.RepoName.Render(name)
	}
	end := idx + len(q)
	return r.styles.RepoName.Render(name[:idx]) +
		r.styles.Highlight.Render(name[idx:end]) +
		r.styles.RepoName.Render(name[end:])
}

// RenderDetail renders the body of the detail screen
func (r *RepositoryRenderer) RenderDetail(repo domain.Repository) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(repo.FullName))
	b.WriteString("\n\n")
	if desc := repo.DescriptionOrEmpty(); desc != "" {
		b.WriteString(r.styles.Description.Render(desc))
		b.WriteString("\n\n")
	}

	field := func(label, value string) {
		b.WriteString(r.styles.DetailLabel.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Stars", r.styles.Stars.Render(fmt.Sprintf("★ %d", repo.StargazersCount)))
	lang := repo.LanguageOrEmpty()
	if lang == "" {
		field("Language", r.styles.Dim.Render("unknown"))
	} else {
		field("Language", lipgloss.NewStyle().Foreground(lipgloss.Color(LanguageColor(lang))).Render(lang))
	}
	if repo.HTMLURL != "" {
		field("URL", repo.HTMLURL)
	}
	field("ID", fmt.Sprintf("%d", repo.ID))
	return b.String()
}

// FormatStars abbreviates large star counts (1234 -> 1.2k)
func FormatStars(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fm", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
