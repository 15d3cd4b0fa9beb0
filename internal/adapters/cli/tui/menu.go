package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuOption represents a menu choice
type MenuOption struct {
	Label string
	Value string
}

// menuKeys maps key presses to menu movements.
type menuKeys struct {
	up, down, choose, dismiss map[string]bool
}

var defaultKeys = menuKeys{
	up:      map[string]bool{"up": true, "k": true},
	down:    map[string]bool{"down": true, "j": true},
	choose:  map[string]bool{"enter": true, " ": true},
	dismiss: map[string]bool{"q": true, "esc": true, "ctrl+c": true},
}

// MenuModel is the bubbletea model for the main menu
type MenuModel struct {
	title    string
	options  []MenuOption
	keys     menuKeys
	cursor   int
	selected string
}

// NewMenuModel creates a new menu
func NewMenuModel(title string, options []MenuOption) MenuModel {
	return MenuModel{
		title:   title,
		options: options,
		keys:    defaultKeys,
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); {
	case m.keys.up[s]:
		if m.cursor > 0 {
			m.cursor--
		}
	case m.keys.down[s]:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case m.keys.choose[s]:
		m.selected = m.options[m.cursor].Value
		return m, tea.Quit
	case m.keys.dismiss[s]:
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + opt.Label))
		} else {
			b.WriteString(itemStyle.Render("  " + opt.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("up/down move, enter selects, q quits"))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected value, empty when the menu was
// dismissed without a choice.
func (m MenuModel) Selected() string {
	return m.selected
}

// RunMenu displays the menu and returns the selection
func RunMenu(title string, options []MenuOption) (string, error) {
	p := tea.NewProgram(NewMenuModel(title, options))

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	return finalModel.(MenuModel).Selected(), nil
}
