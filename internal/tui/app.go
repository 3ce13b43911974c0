package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/launchtracker/internal/storage"
	"github.com/emilianohg/launchtracker/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenKanban
	ScreenSettings
	ScreenColumns
	ScreenTrash
	ScreenDetail
)

type App struct {
	env           *screens.Env
	currentScreen Screen
	width         int
	height        int

	// Screen models
	dashboard *screens.Dashboard
	kanban    *screens.Kanban
	settings  *screens.Settings
	columns   *screens.Columns
	trash     *screens.Trash
	detail    *screens.Detail
}

func NewApp(env *screens.Env) *App {
	screens.ApplyTheme(storage.LoadDarkMode(env.KV, env.Keys))
	return &App{
		env:           env,
		currentScreen: ScreenDashboard,
		dashboard:     screens.NewDashboard(env),
		kanban:        screens.NewKanban(env),
		settings:      screens.NewSettings(env),
		columns:       screens.NewColumns(env),
		trash:         screens.NewTrash(env),
		detail:        screens.NewDetail(env),
	}
}

func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard && a.dashboard.Idle() {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.kanban.SetSize(msg.Width, msg.Height)
		a.settings.SetSize(msg.Width, msg.Height)
		a.columns.SetSize(msg.Width, msg.Height)
		a.trash.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenDashboard:
		cmd = a.dashboard.Update(msg)
	case ScreenKanban:
		cmd = a.kanban.Update(msg)
	case ScreenSettings:
		cmd = a.settings.Update(msg)
	case ScreenColumns:
		cmd = a.columns.Update(msg)
	case ScreenTrash:
		cmd = a.trash.Update(msg)
	case ScreenDetail:
		cmd = a.detail.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case "dashboard":
		a.currentScreen = ScreenDashboard
		return a, a.dashboard.Init()
	case "kanban":
		a.currentScreen = ScreenKanban
		return a, a.kanban.Init()
	case "settings":
		a.currentScreen = ScreenSettings
		return a, a.settings.Init()
	case "columns":
		a.currentScreen = ScreenColumns
		return a, a.columns.Init()
	case "trash":
		a.currentScreen = ScreenTrash
		return a, a.trash.Init()
	case "detail":
		a.detail.Open(msg.LaunchID, msg.Back)
		a.currentScreen = ScreenDetail
		return a, a.detail.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenKanban:
		content = a.kanban.View()
	case ScreenSettings:
		content = a.settings.View()
	case ScreenColumns:
		content = a.columns.View()
	case ScreenTrash:
		content = a.trash.View()
	case ScreenDetail:
		content = a.detail.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(env *screens.Env) error {
	app := NewApp(env)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
