package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/datapath/internal/ui/theme"
)

// Form is a column of text inputs followed by a row of buttons. Focus
// moves with Tab, Shift+Tab and the arrow keys.
type Form struct {
	Inputs  []TextInput
	Buttons []string
	Focus   int
}

// NewForm creates a form with focus on the first input.
func NewForm(inputs []TextInput, buttons []string) Form {
	f := Form{Inputs: inputs, Buttons: buttons}
	f.syncFocus()
	return f
}

// Init returns the focus command for the first input.
func (f *Form) Init() tea.Cmd {
	return f.syncFocus()
}

// Values returns the input values in order.
func (f Form) Values() []string {
	out := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		out[i] = in.Value()
	}
	return out
}

// Update handles navigation and typing. pressed is the index of the
// button activated by this message, or -1.
func (f Form) Update(msg tea.Msg) (Form, int, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return f.forward(msg)
	}

	total := len(f.Inputs) + len(f.Buttons)
	switch kmsg.String() {
	case "tab", "down":
		f.Focus = (f.Focus + 1) % total
		return f, -1, f.syncFocus()
	case "shift+tab", "up":
		f.Focus = (f.Focus - 1 + total) % total
		return f, -1, f.syncFocus()
	case "left", "right":
		if f.Focus < len(f.Inputs) {
			return f.forward(msg)
		}
		step := 1
		if kmsg.String() == "left" {
			step = -1
		}
		b := (f.Focus - len(f.Inputs) + step + len(f.Buttons)) % len(f.Buttons)
		f.Focus = len(f.Inputs) + b
		return f, -1, nil
	case "enter":
		if f.Focus < len(f.Inputs)-1 {
			f.Focus++
			return f, -1, f.syncFocus()
		}
		if f.Focus == len(f.Inputs)-1 {
			return f, 0, nil
		}
		return f, f.Focus - len(f.Inputs), nil
	}
	return f.forward(msg)
}

func (f Form) forward(msg tea.Msg) (Form, int, tea.Cmd) {
	if f.Focus >= len(f.Inputs) {
		return f, -1, nil
	}
	var cmd tea.Cmd
	f.Inputs[f.Focus], cmd = f.Inputs[f.Focus].Update(msg)
	return f, -1, cmd
}

func (f *Form) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.Inputs {
		if i == f.Focus {
			cmd = f.Inputs[i].Focus()
		} else {
			f.Inputs[i].Blur()
		}
	}
	return cmd
}

// View renders the inputs and buttons.
func (f Form) View(width int) string {
	var b strings.Builder
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(18)
	for i, in := range f.Inputs {
		l := label
		if i == f.Focus {
			l = l.Foreground(theme.Primary).Bold(true)
		}
		in.SetWidth(max(width-24, 10))
		b.WriteString(l.Render(in.Label) + in.View() + "\n\n")
	}
	b.WriteString(ButtonRow(f.Buttons, f.Focus-len(f.Inputs)))
	return b.String()
}
