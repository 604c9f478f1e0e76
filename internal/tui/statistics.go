package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/stats"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
)

type statisticsModel struct {
	store  *store.Store
	clock  clockwork.Clock
	width  int
	height int

	summary stats.Summary
	err     error
	offset  int // windows back from today (0 = current)

	chart barchart.Model
}

func newStatisticsModel(s *store.Store, clock clockwork.Clock) statisticsModel {
	return statisticsModel{
		store: s,
		clock: clock,
		chart: barchart.New(60, 12),
	}
}

func (m *statisticsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statisticsDataMsg struct {
	summary stats.Summary
	err     error
}

func (m statisticsModel) refresh() tea.Cmd {
	end := m.clock.Now().AddDate(0, 0, -stats.WindowDays*m.offset)
	return func() tea.Msg {
		sum, err := stats.Compute(m.store, end)
		return statisticsDataMsg{summary: sum, err: err}
	}
}

func (m statisticsModel) update(msg tea.Msg) (statisticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statisticsDataMsg:
		m.summary = msg.summary
		m.err = msg.err
		m.buildChart()
		return m, nil

	case engineEventMsg:
		return m, m.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevDay):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.NextDay):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statisticsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range m.summary.Days {
		label := d.Day
		if t, err := tracker.ParseDay(d.Day); err == nil {
			label = t.Format("Mon 02")
		}
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if d.Count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: "completions", Value: float64(d.Count), Style: style}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statisticsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Statistics")

	if m.err != nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", errorStyle.Render("Could not load statistics: "+m.err.Error())))
	}
	if m.summary.TotalCompletions == 0 && m.summary.Trackers == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("Nothing to analyze yet")))
	}

	dateLabel := ""
	if n := len(m.summary.Days); n > 0 {
		dateLabel = mutedStyle.Render(fmt.Sprintf("%s to %s", m.summary.Days[0].Day, m.summary.Days[n-1].Day))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", dateLabel)

	nav := mutedStyle.Render("  ←/→: previous/next week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", m.renderTotals(), "", nav,
		),
	)
}

func (m statisticsModel) renderTotals() string {
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(22).Render(label), highlightStyle.Render(value))
	}
	rows := []string{
		row("Trackers completed", m.summary.TotalLabel()),
		row("Trackers", humanize.Comma(int64(m.summary.Trackers))),
		row("Categories", humanize.Comma(int64(m.summary.Categories))),
		row("This window", humanize.Comma(int64(m.summary.WindowTotal()))),
		row("Average per day", m.summary.AverageLabel()),
		row("Best day", m.summary.BestDayLabel()),
	}
	return strings.Join(rows, "\n")
}
