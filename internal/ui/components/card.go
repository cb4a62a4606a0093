package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/datapath/internal/ui/theme"
)

// ContentWidth returns the inner width used for page content.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 96)
}

// Card wraps content in a rounded-border card at the given width.
func Card(content string, width int) string {
	return theme.Card.
		Width(width).
		Render(content)
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Notice renders a one-line status message styled by kind: "error",
// "warning", "success" or anything else for info.
func Notice(kind, text string) string {
	if text == "" {
		return ""
	}
	switch kind {
	case "error":
		return theme.NoticeError.Render("✗ " + text)
	case "warning":
		return theme.NoticeWarning.Render("! " + text)
	case "success":
		return theme.NoticeSuccess.Render("✓ " + text)
	default:
		return theme.NoticeInfo.Render("i " + text)
	}
}
