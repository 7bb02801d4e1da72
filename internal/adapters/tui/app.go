package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"debloat/internal/adapters/tui/views"
	"debloat/internal/application/stream"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDevices ViewState = iota
	ViewPackages
	ViewAdvice
	ViewConfirm
	ViewHelp
)

// App is the main TUI application model. All state mutation happens on the
// Bubble Tea update loop; the enumeration backend only ever reaches it
// through notification messages.
type App struct {
	state    ViewState
	devices  *views.DevicesModel
	packages *views.PackagesModel
	advice   *views.AdviceModel
	confirm  *views.ConfirmModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(source ports.PackageSource, ctrl *stream.Controller, advisor ports.Advisor, catalog ports.PackageCatalog) *App {
	return &App{
		state:    ViewDevices,
		devices:  views.NewDevicesModel(source),
		packages: views.NewPackagesModel(ctrl, domain.NewLedger()),
		advice:   views.NewAdviceModel(advisor, catalog),
		confirm:  views.NewConfirmModel(source),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.devices.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.devices.SetSize(msg.Width, msg.Height)
		a.packages.SetSize(msg.Width, msg.Height)
		a.advice.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		// Fall through to the active view so it can reclamp scrolling.

	// View switching messages
	case views.DeviceSelectedMsg:
		a.state = ViewPackages
		return a, a.packages.SetDevice(msg.Device)

	case views.SwitchToDevicesMsg:
		a.state = ViewDevices
		return a, a.devices.Init()

	case views.SwitchToAdviceMsg:
		a.state = ViewAdvice
		a.advice.SetPackages(msg.Packages)
		return a, a.advice.Init()

	case views.SwitchToConfirmMsg:
		a.state = ViewConfirm
		a.confirm.SetTargets(msg.Device, msg.Packages)
		return a, a.confirm.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToPackagesMsg:
		a.state = ViewPackages
		return a, nil
	}

	// Delegate to the active view. Notification messages always go to the
	// package browser regardless of which view is on screen, so streaming
	// keeps making progress while the user reads advice or confirms a
	// removal.
	var cmd tea.Cmd
	switch a.state {
	case ViewDevices:
		_, cmd = a.devices.Update(msg)
	case ViewPackages:
		_, cmd = a.packages.Update(msg)
	case ViewAdvice:
		_, cmd = a.advice.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	if a.state != ViewPackages {
		if fwd := a.forwardToPackages(msg); fwd != nil {
			cmd = tea.Batch(cmd, fwd)
		}
	}

	return a, cmd
}

// forwardToPackages routes non-key messages to the browser while another
// view is active. Key input stays with the view on screen.
func (a *App) forwardToPackages(msg tea.Msg) tea.Cmd {
	if _, isKey := msg.(tea.KeyMsg); isKey {
		return nil
	}
	if _, isWindow := msg.(tea.WindowSizeMsg); isWindow {
		return nil
	}
	_, cmd := a.packages.Update(msg)
	return cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDevices:
		return a.devices.View()
	case ViewAdvice:
		return a.advice.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.packages.View()
	}
}
