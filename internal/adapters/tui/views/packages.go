package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"debloat/internal/adapters/tui/styles"
	"debloat/internal/application/stream"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

// PackagesKeyMap defines key bindings for the package browser
type PackagesKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Toggle    key.Binding
	Search    key.Binding
	Filter    key.Binding
	Refresh   key.Binding
	Advice    key.Binding
	Uninstall key.Binding
	Copy      key.Binding
	Devices   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var PackagesKeys = PackagesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "mark"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Advice: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "advice"),
	),
	Uninstall: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "uninstall"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy ID"),
	),
	Devices: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "devices"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SwitchToAdviceMsg opens the advice view for the given packages
type SwitchToAdviceMsg struct {
	Packages []domain.Package
}

// SwitchToConfirmMsg opens the uninstall confirmation for the given packages
type SwitchToConfirmMsg struct {
	Device   ports.Device
	Packages []domain.Package
}

// notificationMsg carries one enumeration event into the update loop. It
// keeps the channel it was read from so the pump re-arms on the same
// session's channel: a superseded session drains to close on its own
// channel while the controller ignores its stale token.
type notificationMsg struct {
	token uuid.UUID
	ch    <-chan ports.Notification
	n     ports.Notification
	ok    bool
}

// uninstalledMsg reports a finished uninstall batch back to the browser
type uninstalledMsg struct {
	Removed []string
	Failed  map[string]string
}

// PackagesModel is the model for the package browser view
type PackagesModel struct {
	ViewState
	ctrl     *stream.Controller
	ledger   *domain.Ledger
	composer domain.Composer

	device ports.Device
	token  uuid.UUID
	ch     <-chan ports.Notification

	search    textinput.Model
	searching bool
	filter    domain.Category

	cursor   int
	cursorID string
	offset   int

	spinner spinner.Model
}

// NewPackagesModel creates a new package browser model
func NewPackagesModel(ctrl *stream.Controller, ledger *domain.Ledger) *PackagesModel {
	input := textinput.New()
	input.Placeholder = "Search packages..."

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &PackagesModel{
		ctrl:    ctrl,
		ledger:  ledger,
		search:  input,
		spinner: s,
	}
}

// Init initializes the package browser
func (m *PackagesModel) Init() tea.Cmd {
	return nil
}

// SetDevice switches the browser to the given device and starts enumeration.
// Selections are cleared whenever the device actually changes.
func (m *PackagesModel) SetDevice(device ports.Device) tea.Cmd {
	m.device = device
	m.ctrl.SetDevice(device.ID)
	m.ledger.SetDevice(device.ID)
	m.composer.Invalidate()
	m.search.SetValue("")
	m.searching = false
	m.filter = domain.CategoryUnknown
	m.cursor = 0
	m.cursorID = ""
	m.offset = 0
	m.ClearMessage()
	return m.startEnumeration(false)
}

func (m *PackagesModel) startEnumeration(force bool) tea.Cmd {
	token, ch, err := m.ctrl.Start(context.Background(), m.device.ID, force)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.token = token
	m.ch = ch
	m.composer.Invalidate()
	if ch == nil {
		// Cache hit: the snapshot is already complete.
		return nil
	}
	return tea.Batch(m.spinner.Tick, waitForNotification(token, ch))
}

func waitForNotification(token uuid.UUID, ch <-chan ports.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		return notificationMsg{token: token, ch: ch, n: n, ok: ok}
	}
}

// Update handles messages for the package browser
func (m *PackagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.clampScroll(m.visible())
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.State().Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case notificationMsg:
		if !msg.ok {
			return m, nil
		}
		m.ctrl.Handle(msg.token, msg.n)
		m.relocateCursor(m.visible())
		return m, waitForNotification(msg.token, msg.ch)

	case uninstalledMsg:
		for _, id := range msg.Removed {
			if m.ledger.Selected(id) {
				m.ledger.Toggle(id)
			}
		}
		if len(msg.Failed) > 0 {
			m.SetMessage(fmt.Sprintf("Removed %d, failed %d", len(msg.Removed), len(msg.Failed)), true)
		} else if len(msg.Removed) > 0 {
			m.SetMessage(fmt.Sprintf("Removed %d packages", len(msg.Removed)), false)
		}
		// The device contents changed under the cached snapshot.
		m.ctrl.ClearCache(m.device.ID)
		return m, m.startEnumeration(true)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m *PackagesModel) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.relocateCursor(m.visible())
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.relocateCursor(m.visible())
	return m, cmd
}

func (m *PackagesModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()

	switch {
	case key.Matches(msg, PackagesKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, PackagesKeys.Up):
		m.moveCursor(-1, visible)
		return m, nil

	case key.Matches(msg, PackagesKeys.Down):
		m.moveCursor(1, visible)
		return m, nil

	case key.Matches(msg, PackagesKeys.PageUp):
		m.moveCursor(-m.listHeight(), visible)
		return m, nil

	case key.Matches(msg, PackagesKeys.PageDown):
		m.moveCursor(m.listHeight(), visible)
		return m, nil

	case key.Matches(msg, PackagesKeys.Top):
		m.moveCursor(-len(visible), visible)
		return m, nil

	case key.Matches(msg, PackagesKeys.Bottom):
		m.moveCursor(len(visible), visible)
		return m, nil

	case key.Matches(msg, PackagesKeys.Toggle):
		if m.cursor >= 0 && m.cursor < len(visible) {
			m.ledger.Toggle(visible[m.cursor].ID)
			m.moveCursor(1, visible)
		}
		return m, nil

	case key.Matches(msg, PackagesKeys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, PackagesKeys.Filter):
		m.filter = nextFilter(m.filter)
		m.relocateCursor(m.visible())
		return m, nil

	case key.Matches(msg, PackagesKeys.Refresh):
		m.ClearMessage()
		return m, m.startEnumeration(true)

	case key.Matches(msg, PackagesKeys.Copy):
		if m.cursor >= 0 && m.cursor < len(visible) {
			pkg := visible[m.cursor]
			if err := clipboard.WriteAll(pkg.ID); err != nil {
				m.SetMessage("clipboard unavailable", true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s", pkg.ID), false)
			}
		}
		return m, nil

	case key.Matches(msg, PackagesKeys.Advice):
		targets := m.targets(visible)
		if len(targets) == 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			return SwitchToAdviceMsg{Packages: targets}
		}

	case key.Matches(msg, PackagesKeys.Uninstall):
		targets := m.targets(visible)
		if len(targets) == 0 {
			return m, nil
		}
		device := m.device
		return m, func() tea.Msg {
			return SwitchToConfirmMsg{Device: device, Packages: targets}
		}

	case key.Matches(msg, PackagesKeys.Devices):
		return m, func() tea.Msg {
			return SwitchToDevicesMsg{}
		}

	case key.Matches(msg, PackagesKeys.Help):
		return m, func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}

	return m, nil
}

// targets returns the marked packages, or the package under the cursor when
// nothing is marked.
func (m *PackagesModel) targets(visible []domain.Package) []domain.Package {
	if m.ledger.Count() > 0 {
		byID := make(map[string]domain.Package)
		for _, p := range m.ctrl.State().Packages {
			byID[p.ID] = p
		}
		var targets []domain.Package
		for _, id := range m.ledger.IDs() {
			if p, ok := byID[id]; ok {
				targets = append(targets, p)
			}
		}
		return targets
	}
	if m.cursor >= 0 && m.cursor < len(visible) {
		return []domain.Package{visible[m.cursor]}
	}
	return nil
}

func (m *PackagesModel) visible() []domain.Package {
	return m.composer.Compose(m.ctrl.State().Packages, m.search.Value(), m.filter)
}

// nextFilter cycles from unfiltered through each category in display order
// and back to unfiltered.
func nextFilter(f domain.Category) domain.Category {
	for i, c := range domain.Categories {
		if c == f {
			if i+1 < len(domain.Categories) {
				return domain.Categories[i+1]
			}
			return domain.CategoryUnknown
		}
	}
	return domain.Categories[0]
}

func (m *PackagesModel) moveCursor(delta int, visible []domain.Package) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor >= 0 && m.cursor < len(visible) {
		m.cursorID = visible[m.cursor].ID
	}
	m.clampScroll(visible)
}

// relocateCursor re-finds the package the cursor was on after the visible
// list changed shape. Falls back to clamping when the package is filtered
// out or gone.
func (m *PackagesModel) relocateCursor(visible []domain.Package) {
	if m.cursorID != "" {
		for i, p := range visible {
			if p.ID == m.cursorID {
				m.cursor = i
				m.clampScroll(visible)
				return
			}
		}
	}
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < len(visible) {
		m.cursorID = visible[m.cursor].ID
	}
	m.clampScroll(visible)
}

func (m *PackagesModel) clampScroll(visible []domain.Package) {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = domain.ClampOffset(m.offset, len(visible), 1, h)
}

// listHeight is the number of package rows that fit in the viewport after
// the title, search bar, status bar, and help line take their share.
func (m *PackagesModel) listHeight() int {
	h := m.Height - 9
	if h < 1 {
		return 1
	}
	return h
}

// View renders the package browser
func (m *PackagesModel) View() string {
	state := m.ctrl.State()
	visible := m.visible()

	var b strings.Builder

	b.WriteString(styles.Title.Render("Debloat"))
	b.WriteString("  ")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s (%s)", m.device.Model, m.device.ID)))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(styles.MutedText.Render("Press / to search"))
	}
	b.WriteString("\n\n")

	if state.Loading && len(visible) == 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(state.Status)
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderRows(visible))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(state, len(visible)))

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

// renderRows styles only the rows inside the scroll window. Rows outside it
// are never styled or measured, which keeps rendering flat as the list grows
// into the thousands. The whole frame is redrawn anyway, so the window
// carries no overscan here.
func (m *PackagesModel) renderRows(visible []domain.Package) string {
	if len(visible) == 0 {
		return styles.MutedText.Render("No packages match.") + "\n"
	}

	win := domain.ComputeWindow(m.offset, m.listHeight(), 1, 0, len(visible))

	var b strings.Builder
	for i := win.Start; i < win.End; i++ {
		b.WriteString(m.renderRow(visible[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *PackagesModel) renderRow(p domain.Package, selected bool) string {
	marked := m.ledger.Selected(p.ID)
	mark := "[ ]"
	if marked {
		mark = "[x]"
	}
	name := ""
	if p.Name != "" && p.Name != p.ID {
		name = "  " + p.Name
	}

	if selected {
		// One style for the whole line; nesting per-token styles inside it
		// leaks reset sequences mid-row.
		return styles.RowSelected.Render(fmt.Sprintf("%s %-9s %s%s", mark, p.Category, p.ID, name))
	}

	styledMark := mark
	if marked {
		styledMark = styles.RowMarked.Render(mark)
	}
	cat := styles.CategoryStyle(p.Category).Render(fmt.Sprintf("%-9s", p.Category))
	text := fmt.Sprintf("%s %s %s", styledMark, cat, p.ID)
	if name != "" {
		text += styles.MutedText.Render(name)
	}
	return text
}

func (m *PackagesModel) renderStatusBar(state stream.State, visibleCount int) string {
	var parts []string

	if state.Loading {
		parts = append(parts, fmt.Sprintf("%s %s %d%%", m.spinner.View(), state.Status, state.Progress))
	} else if state.Err != "" {
		parts = append(parts, styles.ErrorMsg.Render(state.Err))
	} else {
		origin := ""
		if state.FromCache {
			origin = " (cached)"
		}
		parts = append(parts, fmt.Sprintf("%d/%d packages%s", visibleCount, state.Received, origin))
	}

	if m.filter != domain.CategoryUnknown {
		parts = append(parts, fmt.Sprintf("filter: %s", m.filter))
	}
	if n := m.ledger.Count(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d marked", n))
	}

	return styles.StatusText.Render(strings.Join(parts, "  |  "))
}

func (m *PackagesModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"space", "mark"},
		{"/", "search"},
		{"f", "filter"},
		{"a", "advice"},
		{"d", "uninstall"},
		{"r", "refresh"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
