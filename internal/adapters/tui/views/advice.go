package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"debloat/internal/adapters/tui/styles"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

// AdviceState represents the state of the advice view
type AdviceState int

const (
	AdviceLoading AdviceState = iota
	AdviceShowList
	AdviceError
)

// AdviceKeyMap defines key bindings for the advice view
type AdviceKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Cancel key.Binding
}

var AdviceKeys = AdviceKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Accept: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "save to catalog"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// AdviceSuggestionsMsg carries the advisor's assessments
type AdviceSuggestionsMsg struct {
	Advice []ports.Advice
}

// AdviceFetchErrMsg reports an advisor failure
type AdviceFetchErrMsg struct {
	Err error
}

// AdviceModel is the model for the removal-advice view
type AdviceModel struct {
	ViewState
	advisor ports.Advisor
	catalog ports.PackageCatalog

	pkgs    []domain.Package
	advice  []ports.Advice
	cursor  int
	state   AdviceState
	err     error
	spinner spinner.Model
}

// NewAdviceModel creates a new advice view model
func NewAdviceModel(advisor ports.Advisor, catalog ports.PackageCatalog) *AdviceModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &AdviceModel{
		advisor: advisor,
		catalog: catalog,
		spinner: s,
		state:   AdviceLoading,
	}
}

// SetPackages sets the packages to assess
func (m *AdviceModel) SetPackages(pkgs []domain.Package) {
	m.pkgs = pkgs
	m.advice = nil
	m.cursor = 0
	m.err = nil
	m.state = AdviceLoading
	m.ClearMessage()
}

// Init initializes the advice view
func (m *AdviceModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchAdvice())
}

func (m *AdviceModel) fetchAdvice() tea.Cmd {
	return func() tea.Msg {
		if len(m.pkgs) == 0 {
			return AdviceFetchErrMsg{Err: fmt.Errorf("no packages selected")}
		}
		if m.advisor == nil || !m.advisor.IsAvailable() {
			return AdviceFetchErrMsg{Err: fmt.Errorf("advisor backend not available")}
		}

		advice, err := m.advisor.Advise(m.pkgs)
		if err != nil {
			return AdviceFetchErrMsg{Err: err}
		}
		return AdviceSuggestionsMsg{Advice: advice}
	}
}

// Update handles messages for the advice view
func (m *AdviceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.state == AdviceLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case AdviceSuggestionsMsg:
		m.advice = msg.Advice
		if len(m.advice) == 0 {
			m.err = fmt.Errorf("no assessments received")
			m.state = AdviceError
		} else {
			m.state = AdviceShowList
		}
		return m, nil

	case AdviceFetchErrMsg:
		m.err = msg.Err
		m.state = AdviceError
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case AdviceShowList:
			switch {
			case key.Matches(msg, AdviceKeys.Cancel):
				return m, func() tea.Msg {
					return SwitchToPackagesMsg{}
				}
			case key.Matches(msg, AdviceKeys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
				return m, nil
			case key.Matches(msg, AdviceKeys.Down):
				if m.cursor < len(m.advice)-1 {
					m.cursor++
				}
				return m, nil
			case key.Matches(msg, AdviceKeys.Accept):
				return m, m.saveToCatalog()
			}

		case AdviceError:
			// Any key returns to the browser on error
			return m, func() tea.Msg {
				return SwitchToPackagesMsg{}
			}

		case AdviceLoading:
			if key.Matches(msg, AdviceKeys.Cancel) {
				return m, func() tea.Msg {
					return SwitchToPackagesMsg{}
				}
			}
		}
	}

	return m, nil
}

// saveToCatalog persists every assessment so future enumerations classify
// these packages without asking the advisor again.
func (m *AdviceModel) saveToCatalog() tea.Cmd {
	return func() tea.Msg {
		if m.catalog == nil {
			return AdviceFetchErrMsg{Err: fmt.Errorf("no catalog configured")}
		}

		names := make(map[string]string, len(m.pkgs))
		for _, p := range m.pkgs {
			names[p.ID] = p.Name
		}

		entries := make([]ports.CatalogEntry, 0, len(m.advice))
		for _, a := range m.advice {
			entries = append(entries, ports.CatalogEntry{
				PackageID:   a.PackageID,
				Name:        names[a.PackageID],
				Category:    a.Category,
				Description: a.Summary,
			})
		}
		if err := m.catalog.BulkUpsert(entries); err != nil {
			return AdviceFetchErrMsg{Err: err}
		}
		return SwitchToPackagesMsg{}
	}
}

// View renders the advice view
func (m *AdviceModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Removal Advice"))
	b.WriteString("\n\n")

	switch m.state {
	case AdviceLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" Assessing %d packages...", len(m.pkgs)))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press esc to cancel"))

	case AdviceError:
		b.WriteString(styles.ErrorMsg.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press any key to return"))

	case AdviceShowList:
		for i, a := range m.advice {
			b.WriteString(m.renderEntry(a, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s",
			styles.HelpKey.Render("j/k"),
			styles.HelpDesc.Render("navigate"),
			styles.HelpKey.Render("y"),
			styles.HelpDesc.Render("save all to catalog"),
			styles.HelpKey.Render("esc"),
			styles.HelpDesc.Render("back"),
		))
	}

	return styles.App.Render(b.String())
}

func (m *AdviceModel) renderEntry(a ports.Advice, selected bool) string {
	header := fmt.Sprintf("%s  %s", a.PackageID, styles.CategoryStyle(a.Category).Render(a.Category.String()))
	if selected {
		header = styles.RowSelected.Render(fmt.Sprintf("%s  %s", a.PackageID, a.Category))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if a.Summary != "" {
		b.WriteString(styles.MutedText.Render("  " + a.Summary))
		b.WriteString("\n")
	}
	if a.Recommendation != "" {
		b.WriteString(styles.MutedText.Render("  → " + a.Recommendation))
		b.WriteString("\n")
	}
	return b.String()
}
