package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Query         lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	RepoName      lipgloss.Style
	Stars         lipgloss.Style
	Language      lipgloss.Style
	Description   lipgloss.Style
	Breadcrumb    lipgloss.Style
	DetailLabel   lipgloss.Style
	DetailBox     lipgloss.Style
	AlertBox      lipgloss.Style
	AlertTitle    lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Query:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		RepoName:    lipgloss.NewStyle().Bold(true),
		Stars:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Language:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Breadcrumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		DetailLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 3),
		AlertTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// LanguageColor returns the color used for a repository language
func LanguageColor(language string) string {
	switch language {
	case "Go":
		return "51" // cyan
	case "Swift", "Rust":
		return "208" // orange
	case "Python", "TypeScript", "JavaScript":
		return "33" // blue
	case "":
		return "241" // gray
	default:
		return "214" // yellow
	}
}
