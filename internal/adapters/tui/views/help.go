package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"debloat/internal/adapters/tui/styles"
	"debloat/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToPackagesMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Debloat Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Remove preinstalled packages from attached devices"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("ctrl+f / ctrl+b", "Page down/up"))
	b.WriteString(helpLine("g / G", "Jump to top/bottom"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("space", "Mark/unmark package"))
	b.WriteString(helpLine("/", "Search"))
	b.WriteString(helpLine("f", "Cycle category filter"))
	b.WriteString(helpLine("a", "Removal advice for marked packages"))
	b.WriteString(helpLine("d", "Uninstall marked packages"))
	b.WriteString(helpLine("c", "Copy package ID"))
	b.WriteString(helpLine("r", "Re-enumerate (skip cache)"))
	b.WriteString(helpLine("D", "Switch device"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Risk Categories"))
	b.WriteString("\n")
	b.WriteString("  " + styles.CategoryStyle(domain.CategorySafe).Render("Safe") + styles.MutedText.Render("       removable without side effects") + "\n")
	b.WriteString("  " + styles.CategoryStyle(domain.CategoryCaution).Render("Caution") + styles.MutedText.Render("    removal may break a feature") + "\n")
	b.WriteString("  " + styles.CategoryStyle(domain.CategoryExpert).Render("Expert") + styles.MutedText.Render("     research before removing") + "\n")
	b.WriteString("  " + styles.CategoryStyle(domain.CategoryDangerous).Render("Dangerous") + styles.MutedText.Render("  removal can brick features or the device") + "\n")
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
