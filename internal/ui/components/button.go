package components

import (
	"strings"

	"github.com/abhisek/datapath/internal/ui/theme"
)

// Button renders a labelled button, highlighted when focused.
func Button(label string, focused bool) string {
	if focused {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side with the focused one highlighted.
// focused is -1 when none has focus.
func ButtonRow(labels []string, focused int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = Button(l, i == focused)
	}
	return strings.Join(parts, "  ")
}
