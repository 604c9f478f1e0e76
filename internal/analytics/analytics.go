package analytics

import (
	"github.com/charmbracelet/log"
	"github.com/sadopc/habitr/internal/logger"
)

// Event is a UI event kind.
type Event string

const (
	Open  Event = "open"
	Close Event = "close"
	Click Event = "click"
)

// Items reported with Click events.
const (
	ItemAddTrack = "add_track"
	ItemTrack    = "track"
	ItemFilter   = "filter"
	ItemEdit     = "edit"
	ItemDelete   = "delete"
)

// Screens.
const (
	ScreenMain       = "Main"
	ScreenStatistics = "Statistics"
	ScreenSettings   = "Settings"
)

// Service records UI events as structured log lines.
type Service struct {
	log *log.Logger
}

// New returns a service writing to l, or to the global logger if l is nil.
func New(l *log.Logger) *Service {
	if l == nil {
		l = logger.Logger
	}
	return &Service{log: l.WithPrefix("ui_event")}
}

// ReportUIEvent records event on screen. item is optional and only
// meaningful for clicks.
func (s *Service) ReportUIEvent(screen string, event Event, item string) {
	if s == nil {
		return
	}
	kv := []interface{}{"event", string(event), "screen", screen}
	if item != "" {
		kv = append(kv, "item", item)
	}
	s.log.Info("ui event", kv...)
}
