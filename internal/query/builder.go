package query

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/logger"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
)

// State is the user-controlled query input.
type State struct {
	Date   time.Time
	Search string
	Status Status
}

// CompletionSource reports which trackers were completed on a day (YYYY-MM-DD).
type CompletionSource interface {
	CompletedTrackerIDs(day string) ([]uuid.UUID, error)
}

// Builder turns a State into a Predicate.
type Builder struct {
	source CompletionSource
	clock  clockwork.Clock
	log    *log.Logger
}

// NewBuilder returns a builder reading completions from source. A nil clock
// uses the real clock; a nil logger uses the global one.
func NewBuilder(source CompletionSource, clock clockwork.Clock, l *log.Logger) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if l == nil {
		l = logger.Logger
	}
	return &Builder{source: source, clock: clock, log: l}
}

// Predicate selects the trackers visible for one State.
type Predicate struct {
	// EffectiveDate is the day the weekday and status clauses refer to.
	EffectiveDate time.Time

	weekday   tracker.Weekday
	search    string
	status    Status
	completed map[uuid.UUID]struct{}
}

// EffectiveDate resolves the day a state refers to: today while the today
// filter is active, otherwise the selected date.
func (b *Builder) EffectiveDate(state State) time.Time {
	if state.Status == StatusToday || state.Date.IsZero() {
		return b.clock.Now()
	}
	return state.Date
}

// Build composes the weekday, search and status clauses for state.
// A failing completion source is logged and treated as "nothing completed".
func (b *Builder) Build(state State) Predicate {
	date := b.EffectiveDate(state)
	p := Predicate{
		EffectiveDate: date,
		weekday:       tracker.WeekdayOf(date),
		search:        Fold(strings.TrimSpace(state.Search)),
		status:        state.Status,
		completed:     map[uuid.UUID]struct{}{},
	}

	day := tracker.DayKey(date)
	ids, err := b.source.CompletedTrackerIDs(day)
	if err != nil {
		b.log.Error("load completed trackers", "day", day, "err", err)
		ids = nil
	}
	for _, id := range ids {
		p.completed[id] = struct{}{}
	}
	return p
}

// Where returns the clauses that can run in SQL: weekday and status.
// It returns nil when neither applies. Search is evaluated by Match.
func (p Predicate) Where() sq.Sqlizer {
	var and sq.And
	if p.weekday.Valid() {
		and = append(and, store.TrackerHasWeekday(p.weekday))
	}
	switch p.status {
	case StatusCompleted:
		and = append(and, store.TrackerIDIn(p.completedIDs()))
	case StatusNotCompleted:
		and = append(and, store.TrackerIDNotIn(p.completedIDs()))
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// Match evaluates every clause against t in memory.
func (p Predicate) Match(t tracker.Tracker) bool {
	if p.weekday.Valid() && !t.Schedule.Contains(p.weekday) {
		return false
	}
	if p.search != "" && !strings.Contains(Fold(t.Name), p.search) {
		return false
	}
	switch p.status {
	case StatusCompleted:
		return p.Completed(t.ID)
	case StatusNotCompleted:
		return !p.Completed(t.ID)
	}
	return true
}

// Completed reports whether id has a record on the effective date.
func (p Predicate) Completed(id uuid.UUID) bool {
	_, ok := p.completed[id]
	return ok
}

func (p Predicate) completedIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.completed))
	for id := range p.completed {
		ids = append(ids, id)
	}
	return ids
}
