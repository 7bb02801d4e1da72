package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"debloat/internal/adapters/tui/styles"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

// ConfirmKeyMap defines key bindings for the uninstall confirmation
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmModel is the model for the uninstall confirmation view
type ConfirmModel struct {
	ViewState
	source ports.PackageSource

	device  ports.Device
	targets []domain.Package
	busy    bool
}

// NewConfirmModel creates a new uninstall confirmation model
func NewConfirmModel(source ports.PackageSource) *ConfirmModel {
	return &ConfirmModel{source: source}
}

// SetTargets sets the device and packages to remove
func (m *ConfirmModel) SetTargets(device ports.Device, targets []domain.Package) {
	m.device = device
	m.targets = targets
	m.busy = false
	m.ClearMessage()
}

// Init initializes the confirmation view
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case uninstalledMsg:
		// The browser picks up the batch result separately; this view only
		// needs to get out of the way.
		m.busy = false
		return m, func() tea.Msg {
			return SwitchToPackagesMsg{}
		}

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch {
		case key.Matches(msg, ConfirmKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToPackagesMsg{}
			}
		case key.Matches(msg, ConfirmKeys.Confirm):
			m.busy = true
			return m, m.uninstallAll()
		}
	}

	return m, nil
}

// uninstallAll removes the targets one at a time. A failure on one package
// does not stop the rest of the batch.
func (m *ConfirmModel) uninstallAll() tea.Cmd {
	device := m.device
	targets := m.targets
	return func() tea.Msg {
		var removed []string
		failed := make(map[string]string)
		for _, p := range targets {
			if err := m.source.Uninstall(context.Background(), device.ID, p.ID); err != nil {
				failed[p.ID] = err.Error()
				continue
			}
			removed = append(removed, p.ID)
		}
		return uninstalledMsg{Removed: removed, Failed: failed}
	}
}

// View renders the confirmation view
func (m *ConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Uninstall"))
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(fmt.Sprintf("Removing %d packages from %s...", len(m.targets), m.device.ID))
		return styles.App.Render(b.String())
	}

	b.WriteString(styles.InputLabel.Render(fmt.Sprintf("Remove %d package(s) from %s:", len(m.targets), m.device.Model)))
	b.WriteString("\n\n")

	// Show at most a screenful; the count above covers the rest.
	shown := len(m.targets)
	if shown > 15 {
		shown = 15
	}
	for _, p := range m.targets[:shown] {
		b.WriteString("  ")
		b.WriteString(styles.CategoryStyle(p.Category).Render(fmt.Sprintf("%-9s", p.Category)))
		b.WriteString(" ")
		b.WriteString(p.ID)
		b.WriteString("\n")
	}
	if len(m.targets) > shown {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  ... and %d more", len(m.targets)-shown)))
		b.WriteString("\n")
	}

	for _, p := range m.targets {
		if p.Category == domain.CategoryDangerous {
			b.WriteString("\n")
			b.WriteString(styles.ErrorMsg.Render("Warning: selection includes packages marked Dangerous."))
			b.WriteString("\n")
			break
		}
	}

	b.WriteString("\n")
	b.WriteString("Packages are removed for the current user only. ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))

	return styles.App.Render(b.String())
}
