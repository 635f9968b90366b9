package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reposearch/internal/domain"
)

// AppTitle is the heading shown on the list screen
const AppTitle = "Search Repositories"

// AlertView is an alert to draw over the screen
type AlertView struct {
	Title   string
	Message string
}

// DetailView is the repository detail currently on top
type DetailView struct {
	Repository domain.Repository
	Body       string // pre-rendered, scrolled viewport content
	Modal      bool
	Breadcrumb []string
	PagerError string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width        int
	Height       int
	Rows         []domain.Repository
	Cursor       int
	Offset       int
	ListHeight   int
	Query        string
	Searching    bool
	SearchPrompt string
	SearchInput  string
	Loading      bool
	Spinner      string
	Alert        *AlertView
	Detail       *DetailView
	Help         string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	repoRender  *RepositoryRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		repoRender:  NewRepositoryRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// RenderDetailBody renders the scrollable part of the detail screen
func (r *Renderer) RenderDetailBody(repo domain.Repository) string {
	return r.repoRender.RenderDetail(repo)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	var content string
	if state.Detail != nil && !state.Detail.Modal {
		content = r.renderDetailScreen(state)
	} else {
		content = r.renderListScreen(state)
	}

	screen := r.styles.Main.Render(content)

	switch {
	case state.Alert != nil:
		popup := r.popupRender.RenderAlert(state.Alert.Title, state.Alert.Message)
		screen = r.popupRender.RenderPopupOverlay(screen, popup, state.Height, state.Width)
	case state.Detail != nil && state.Detail.Modal:
		popup := r.styles.DetailBox.Render(r.renderDetailContent(state.Detail))
		screen = r.popupRender.RenderPopupOverlay(screen, popup, state.Height, state.Width)
	}
	return screen
}

func (r *Renderer) renderListScreen(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.renderTitleLine(state))
	b.WriteString("\n\n")
	b.WriteString(r.renderSearchLine(state))
	b.WriteString("\n\n")
	b.WriteString(r.renderRows(state))
	if state.Help != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Status.Render(state.Help))
	}
	return b.String()
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render(AppTitle)

	var right string
	switch {
	case state.Loading:
		right = r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Searching…"))
	case len(state.Rows) > 0:
		right = r.styles.StatusSuccess.Render(fmt.Sprintf("%d results", len(state.Rows)))
	}
	if right == "" {
		return logo
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	prompt := r.styles.Prompt.Render("Search: ")
	if state.SearchPrompt != "" {
		prompt = r.styles.Prompt.Render(state.SearchPrompt)
	}
	if state.Searching {
		return prompt + state.SearchInput
	}
	if state.Query == "" {
		return prompt + r.styles.Dim.Render("press / to search")
	}
	return prompt + r.styles.Query.Render(state.Query)
}

func (r *Renderer) renderRows(state ViewState) string {
	if len(state.Rows) == 0 {
		if state.Loading {
			return r.styles.Dim.Render("Loading…")
		}
		return r.styles.Dim.Render("No repositories")
	}

	height := state.ListHeight
	if height <= 0 || height > len(state.Rows) {
		height = len(state.Rows)
	}
	start := state.Offset
	if start < 0 {
		start = 0
	}
	if start > len(state.Rows)-height {
		start = len(state.Rows) - height
	}
	end := start + height

	lines := make([]string, 0, height+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render("↑ (more above)"))
	}
	width := state.Width - 4
	for i := start; i < end; i++ {
		lines = append(lines, r.repoRender.RenderRow(state.Rows[i], i == state.Cursor, width, state.Query))
	}
	if end < len(state.Rows) {
		lines = append(lines, r.styles.Scroll.Render("↓ (more below)"))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderDetailScreen(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.renderDetailContent(state.Detail))
	if state.Help != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Status.Render(state.Help))
	}
	return b.String()
}

func (r *Renderer) renderDetailContent(d *DetailView) string {
	var b strings.Builder
	if len(d.Breadcrumb) > 0 {
		b.WriteString(r.styles.Breadcrumb.Render(strings.Join(d.Breadcrumb, " › ")))
		b.WriteString("\n\n")
	}
	b.WriteString(d.Body)
	if d.PagerError != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.StatusError.Render("pager: " + d.PagerError))
	}
	return b.String()
}
