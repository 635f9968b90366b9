package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"reposearch/internal/domain"
)

func sampleRepos() []domain.Repository {
	return []domain.Repository{
		{ID: 1, FullName: "pointfreeco/swift-composable-architecture", Description: domain.StringPtr("A library"), StargazersCount: 12345, Language: domain.StringPtr("Swift")},
		{ID: 2, FullName: "someone/empty"},
	}
}

func TestFormatStars(t *testing.T) {
	assert.Equal(t, "0", FormatStars(0))
	assert.Equal(t, "999", FormatStars(999))
	assert.Equal(t, "12.3k", FormatStars(12345))
	assert.Equal(t, "2.5m", FormatStars(2_500_000))
}

func TestRenderListScreen(t *testing.T) {
	out := ansi.Strip(NewRenderer().Render(ViewState{
		Width:  100,
		Height: 30,
		Rows:   sampleRepos(),
		Cursor: 1,
		Query:  "composable",
	}))

	assert.Contains(t, out, AppTitle)
	assert.Contains(t, out, "2 results")
	assert.Contains(t, out, "Search: composable")
	assert.Contains(t, out, "pointfreeco/swift-composable-architecture  ★ 12.3k  Swift  A library")
	assert.Contains(t, out, "▶ someone/empty")
}

func TestRenderListScrolls(t *testing.T) {
	var rows []domain.Repository
	for i := 0; i < 10; i++ {
		rows = append(rows, domain.Repository{ID: int64(i), FullName: "repo/" + string(rune('a'+i))})
	}
	out := ansi.Strip(NewRenderer().Render(ViewState{Width: 80, Height: 20, Rows: rows, Offset: 3, ListHeight: 4}))

	assert.Contains(t, out, "more above")
	assert.Contains(t, out, "more below")
	assert.NotContains(t, out, "repo/c")
	assert.Contains(t, out, "repo/d")
	assert.Contains(t, out, "repo/g")
	assert.NotContains(t, out, "repo/h")
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, ansi.Strip(r.Render(ViewState{Width: 80, Height: 20, Loading: true})), "Loading…")
	assert.Contains(t, ansi.Strip(r.Render(ViewState{Width: 80, Height: 20})), "No repositories")
	assert.Contains(t, ansi.Strip(r.Render(ViewState{Width: 80, Height: 20})), "press / to search")
}

func TestRenderAlertOverlay(t *testing.T) {
	out := ansi.Strip(NewRenderer().Render(ViewState{
		Width:  80,
		Height: 24,
		Rows:   sampleRepos(),
		Alert:  &AlertView{Title: "Network Error", Message: "Failed to fetch data."},
	}))

	assert.Contains(t, out, "Network Error")
	assert.Contains(t, out, "Failed to fetch data.")
	assert.Contains(t, out, AppTitle, "underlying screen stays visible")
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 24)
}

func TestRenderDetail(t *testing.T) {
	r := NewRenderer()
	repo := sampleRepos()[0]
	body := r.RenderDetailBody(repo)

	out := ansi.Strip(r.Render(ViewState{
		Width:  100,
		Height: 30,
		Detail: &DetailView{Repository: repo, Body: body, Breadcrumb: []string{AppTitle, repo.FullName}, PagerError: "exit 1"},
	}))
	assert.Contains(t, out, "Search Repositories › pointfreeco/swift-composable-architecture")
	assert.Contains(t, out, "★ 12345")
	assert.Contains(t, out, "Swift")
	assert.Contains(t, out, "pager: exit 1")
	assert.NotContains(t, out, "results", "list is hidden behind a pushed detail")

	noLang := ansi.Strip(r.RenderDetailBody(sampleRepos()[1]))
	assert.Contains(t, noLang, "unknown")
}
