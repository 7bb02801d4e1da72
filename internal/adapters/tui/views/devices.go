package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"debloat/internal/adapters/tui/styles"
	"debloat/internal/ports"
)

// DevicesKeyMap defines key bindings for the device picker
type DevicesKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var DevicesKeys = DevicesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// DeviceSelectedMsg is sent when the user picks a device
type DeviceSelectedMsg struct {
	Device ports.Device
}

type devicesLoadedMsg struct {
	devices []ports.Device
}

type devicesErrMsg struct {
	err error
}

// DevicesModel is the model for the device picker view
type DevicesModel struct {
	ViewState
	source  ports.PackageSource
	devices []ports.Device
	cursor  int
	loading bool
	spinner spinner.Model
}

// NewDevicesModel creates a new device picker model
func NewDevicesModel(source ports.PackageSource) *DevicesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &DevicesModel{
		source:  source,
		loading: true,
		spinner: s,
	}
}

// Init initializes the device picker
func (m *DevicesModel) Init() tea.Cmd {
	m.loading = true
	m.ClearMessage()
	return tea.Batch(m.spinner.Tick, m.scan)
}

func (m *DevicesModel) scan() tea.Msg {
	devices, err := m.source.Devices(context.Background())
	if err != nil {
		return devicesErrMsg{err}
	}
	return devicesLoadedMsg{devices}
}

// Update handles messages for the device picker
func (m *DevicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case devicesLoadedMsg:
		m.devices = msg.devices
		m.loading = false
		if m.cursor >= len(m.devices) {
			m.cursor = 0
		}
		return m, nil

	case devicesErrMsg:
		m.loading = false
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DevicesKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, DevicesKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, DevicesKeys.Down):
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, DevicesKeys.Refresh):
			return m, m.Init()

		case key.Matches(msg, DevicesKeys.Select):
			if m.cursor < 0 || m.cursor >= len(m.devices) {
				return m, nil
			}
			device := m.devices[m.cursor]
			if device.State != "device" {
				m.SetMessage(fmt.Sprintf("%s is %s; authorize or reconnect it first", device.ID, device.State), true)
				return m, nil
			}
			return m, func() tea.Msg {
				return DeviceSelectedMsg{Device: device}
			}
		}
	}

	return m, nil
}

// View renders the device picker
func (m *DevicesModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Debloat"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Select a device"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Scanning for devices...")
	case len(m.devices) == 0:
		b.WriteString(styles.MutedText.Render("No devices attached. Connect a device with USB debugging enabled and press r."))
	default:
		for i, d := range m.devices {
			line := fmt.Sprintf("%s  %s", d.ID, d.Model)
			if d.State != "device" {
				line += styles.MutedText.Render("  (" + d.State + ")")
			}
			if i == m.cursor {
				line = styles.RowSelected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		styles.HelpKey.Render("j/k"),
		styles.HelpDesc.Render("navigate"),
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("select"),
		styles.HelpKey.Render("r"),
		styles.HelpDesc.Render("rescan"),
		styles.HelpKey.Render("q"),
		styles.HelpDesc.Render("quit"),
	))

	return styles.App.Render(b.String())
}
