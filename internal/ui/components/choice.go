package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/datapath/internal/ui/theme"
)

// Choice is a single-answer option list. The cursor moves freely and
// Enter or Space picks the option under it.
type Choice struct {
	Options []string
	Cursor  int

	// Chosen is the picked option, or "" when nothing is picked.
	Chosen string
}

// NewChoice creates an option list with the cursor on chosen, if set.
func NewChoice(options []string, chosen string) Choice {
	c := Choice{Options: options, Chosen: chosen}
	for i, o := range options {
		if o == chosen {
			c.Cursor = i
		}
	}
	return c
}

// Update moves the cursor. picked is true when an option was chosen by
// this message.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "enter", "space":
		if c.Cursor < len(c.Options) {
			c.Chosen = c.Options[c.Cursor]
			return c, true
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(c.Options) {
			c.Cursor = i
			c.Chosen = c.Options[i]
			return c, true
		}
	}
	return c, false
}

// View renders the options with the cursor and the chosen marker.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		mark := "( )"
		if opt == c.Chosen {
			mark = "(•)"
		}
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, opt)

		switch {
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case opt == c.Chosen:
			b.WriteString(theme.Correct.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
