package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/analytics"
	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/store"
)

var screens = []string{analytics.ScreenMain, analytics.ScreenStatistics, analytics.ScreenSettings}

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	engine    *live.Engine
	analytics *analytics.Service
	width     int
	height    int

	events chan live.Event
	sub    *live.Subscription

	activeView viewState
	showHelp   bool

	trackers   trackersModel
	statistics statisticsModel
	settings   settingsModel

	help   help.Model
	status string
}

// NewApp wires the views to e. Engine events are forwarded into the update
// loop until Close is called.
func NewApp(s *store.Store, e *live.Engine, a *analytics.Service, clock clockwork.Clock) App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	h := help.New()
	h.ShowAll = false

	events := make(chan live.Event, 16)
	sub := e.Subscribe(func(ev live.Event) {
		select {
		case events <- ev:
		default:
			// A pending event already triggers a redraw from the engine.
		}
	})

	return App{
		store:      s,
		engine:     e,
		analytics:  a,
		events:     events,
		sub:        sub,
		activeView: viewTrackers,
		trackers:   newTrackersModel(e, s, a, clock),
		statistics: newStatisticsModel(s, clock),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

// Close stops forwarding engine events.
func (a App) Close() {
	a.sub.Cancel()
}

func (a App) Init() tea.Cmd {
	a.analytics.ReportUIEvent(analytics.ScreenMain, analytics.Open, "")
	return tea.Batch(
		a.waitForEvent(),
		a.settings.refresh(),
	)
}

func (a App) waitForEvent() tea.Cmd {
	events := a.events
	return func() tea.Msg {
		return engineEventMsg{event: <-events}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.trackers.setSize(a.width, contentHeight)
		a.statistics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			a.analytics.ReportUIEvent(screens[a.activeView], analytics.Close, "")
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewTrackers)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewStatistics)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case engineEventMsg:
		var cmd1, cmd2 tea.Cmd
		a.trackers, cmd1 = a.trackers.update(msg)
		if a.activeView == viewStatistics {
			a.statistics, cmd2 = a.statistics.update(msg)
		}
		return a, tea.Batch(cmd1, cmd2, a.waitForEvent())

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.status = errorStyle.Render(msg.text)
		}
		return a, nil

	case statisticsDataMsg:
		var cmd tea.Cmd
		a.statistics, cmd = a.statistics.update(msg)
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	if v == a.activeView {
		return a, nil
	}
	a.analytics.ReportUIEvent(screens[a.activeView], analytics.Close, "")
	a.analytics.ReportUIEvent(screens[v], analytics.Open, "")
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTrackers:
		a.trackers, cmd = a.trackers.update(msg)
	case viewStatistics:
		a.statistics, cmd = a.statistics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTrackers:
		return a.trackers.capturing()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewStatistics:
		return a.statistics.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTrackers:
		content = a.trackers.view()
	case viewStatistics:
		content = a.statistics.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("habitr")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	right := ""
	if a.status != "" {
		right = mutedStyle.Render(" ") + a.status
	}

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

// Run starts the full-screen program and blocks until the user quits.
func Run(s *store.Store, e *live.Engine, a *analytics.Service, clock clockwork.Clock) error {
	app := NewApp(s, e, a, clock)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
