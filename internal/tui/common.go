package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTrackers viewState = iota
	viewStatistics
	viewSettings
)

var viewNames = []string{"Trackers", "Statistics", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// engineEventMsg carries one live query event into the update loop.
type engineEventMsg struct {
	event live.Event
}

// --- Helpers ---

func formatDay(t time.Time) string {
	return t.Format("Mon, Jan 2 2006")
}

func colorDot(c tracker.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("●")
}

func errStatus(err error) statusMsg {
	return statusMsg{text: "Error: " + err.Error(), isError: true}
}
