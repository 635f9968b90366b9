package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderAlert renders an alert box with a title, message and dismiss hint
func (pr *PopupRenderer) RenderAlert(title, message string) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		pr.styles.AlertTitle.Render(title),
		"",
		message,
		"",
		pr.styles.Dim.Render("press enter to dismiss"),
	)
	return pr.styles.AlertBox.Render(body)
}

// RenderPopupOverlay centres popup over a greyed-out copy of mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popup string, height, width int) string {
	if width <= 0 || height <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, mainContent, popup)
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	// Place gives us the popup's position inside the full screen
	placed := strings.Split(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup), "\n")

	popupLines := strings.Split(popup, "\n")
	popupW := lipgloss.Width(popup)
	top := firstNonBlank(placed)
	left := (width - popupW) / 2
	if left < 0 {
		left = 0
	}

	for i, line := range popupLines {
		row := top + i
		if row < 0 || row >= len(base) {
			continue
		}
		bg := base[row]
		prefix := ansi.Truncate(bg, left, "")
		if pad := left - ansi.StringWidth(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		suffix := ansi.TruncateLeft(bg, left+popupW, "")
		base[row] = prefix + line + suffix
	}
	return strings.Join(base, "\n")
}

func firstNonBlank(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(ansi.Strip(line)) != "" {
			return i
		}
	}
	return 0
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = gray.Render(line)
	}
	return strings.Join(lines, "\n")
}
