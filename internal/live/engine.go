package live

import (
	"errors"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/logger"
	"github.com/sadopc/habitr/internal/query"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
	"golang.org/x/sync/singleflight"
)

// DefaultSectionTitle is used for trackers without a category name.
const DefaultSectionTitle = "Uncategorized"

// ErrFutureDay is returned when toggling a completion on a day after today.
var ErrFutureDay = errors.New("cannot complete a tracker on a future day")

// Store is the persistence the engine reads and mutates.
type Store interface {
	CreateTracker(t tracker.Tracker, category string) error
	UpdateTracker(t tracker.Tracker, category string) error
	DeleteTracker(id uuid.UUID) error
	GetTracker(id uuid.UUID) (tracker.Tracker, string, error)
	FetchTrackers(where sq.Sqlizer, orderBy ...string) ([]store.TrackerRow, error)

	CompletedTrackerIDs(day string) ([]uuid.UUID, error)
	HasCompletion(id uuid.UUID, day string) (bool, error)
	CreateCompletion(id uuid.UUID, day string) error
	DeleteCompletion(id uuid.UUID, day string) error
	CountCompletions(where sq.Sqlizer) (int, error)
}

// EventKind tells subscribers how to apply an Event.
type EventKind int

const (
	// EventDiff carries incremental changes against the previous snapshot.
	EventDiff EventKind = iota
	// EventReload asks the consumer to redraw everything from Snapshot.
	EventReload
)

func (k EventKind) String() string {
	if k == EventReload {
		return "reload"
	}
	return "diff"
}

// Event is delivered to subscribers after every query run.
type Event struct {
	Kind     EventKind
	Diff     Diff
	Snapshot Snapshot
}

// Engine keeps a grouped, filtered view of the trackers up to date and
// reports changes to subscribers.
//
// Callbacks must not call mutating Engine methods synchronously: with the
// Immediate dispatcher they run while the engine is still busy.
type Engine struct {
	store        Store
	builder      *query.Builder
	clock        clockwork.Clock
	dispatcher   Dispatcher
	log          *log.Logger
	defaultTitle string

	toggles singleflight.Group

	// op serializes query runs and mutations.
	op sync.Mutex

	mu        sync.RWMutex
	state     query.State
	predicate query.Predicate
	snapshot  Snapshot

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// New builds an engine over s and runs the initial query.
func New(s Store, opts ...Option) *Engine {
	e := &Engine{
		store:        s,
		dispatcher:   Immediate,
		defaultTitle: DefaultSectionTitle,
		subs:         make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.log == nil {
		e.log = logger.Logger
	}
	if e.state.Date.IsZero() {
		e.state.Date = e.clock.Now()
	}
	e.builder = query.NewBuilder(s, e.clock, e.log)

	e.op.Lock()
	e.run()
	e.op.Unlock()
	return e
}

// Subscription is a handle to a registered callback.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel stops delivery. Events already queued for the callback are dropped.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Subscribe registers fn for every subsequent event.
func (e *Engine) Subscribe(fn func(Event)) *Subscription {
	e.subMu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.subMu.Unlock()

	return &Subscription{cancel: func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	}}
}

// ============================================================
// Query state
// ============================================================

// UpdateDate selects a new date. While the today filter is active the date
// is remembered but the effective date stays on today.
func (e *Engine) UpdateDate(date time.Time) {
	e.change(func(s *query.State) { s.Date = date })
}

// UpdateSearchText sets the name filter; blank text clears it.
func (e *Engine) UpdateSearchText(text string) {
	e.change(func(s *query.State) { s.Search = text })
}

// UpdateFilter sets the status filter.
func (e *Engine) UpdateFilter(status query.Status) {
	e.change(func(s *query.State) { s.Status = status })
}

func (e *Engine) change(fn func(*query.State)) {
	e.op.Lock()
	defer e.op.Unlock()

	e.mu.Lock()
	fn(&e.state)
	e.mu.Unlock()

	e.refresh(EventDiff)
}

// ============================================================
// Mutations
// ============================================================

// AddTracker persists t under category, creating the category if needed.
// On failure nothing is written; the error is logged and returned.
func (e *Engine) AddTracker(t tracker.Tracker, category string) error {
	e.op.Lock()
	defer e.op.Unlock()

	if err := e.store.CreateTracker(t, category); err != nil {
		e.log.Error("add tracker", "name", t.Name, "category", category, "err", err)
		return err
	}
	e.log.Info("tracker added", "id", t.ID, "name", t.Name, "category", category)
	e.refresh(EventDiff)
	return nil
}

// UpdateTracker replaces every field of the tracker with id and moves it to
// category. A missing tracker is a silent no-op.
func (e *Engine) UpdateTracker(id uuid.UUID, name, category string, schedule tracker.Schedule, color tracker.Color, emoji string) error {
	e.op.Lock()
	defer e.op.Unlock()

	t, _, err := e.store.GetTracker(id)
	if errors.Is(err, store.ErrNotFound) {
		e.log.Debug("update of missing tracker ignored", "id", id)
		return nil
	}
	if err != nil {
		e.log.Error("load tracker for update", "id", id, "err", err)
		return err
	}

	t.Name, t.Schedule, t.Color, t.Emoji = name, schedule, color, emoji
	if err := e.store.UpdateTracker(t, category); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		e.log.Error("update tracker", "id", id, "err", err)
		return err
	}
	e.log.Info("tracker updated", "id", id, "name", name, "category", category)
	e.refresh(EventDiff)
	return nil
}

// DeleteTracker removes the tracker and its records. A missing tracker is a
// silent no-op.
func (e *Engine) DeleteTracker(id uuid.UUID) error {
	e.op.Lock()
	defer e.op.Unlock()

	if err := e.store.DeleteTracker(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.log.Debug("delete of missing tracker ignored", "id", id)
			return nil
		}
		e.log.Error("delete tracker", "id", id, "err", err)
		return err
	}
	e.log.Info("tracker deleted", "id", id)
	e.refresh(EventDiff)
	return nil
}

// ToggleCompletion flips the completion of the tracker on date's calendar
// day and asks subscribers to reload. Concurrent toggles of the same
// tracker and day share one execution.
func (e *Engine) ToggleCompletion(id uuid.UUID, date time.Time) error {
	if tracker.StartOfDay(date).After(tracker.StartOfDay(e.clock.Now())) {
		return ErrFutureDay
	}
	day := tracker.DayKey(date)
	key := id.String() + "/" + day

	_, err, shared := e.toggles.Do(key, func() (interface{}, error) {
		return nil, e.toggle(id, day)
	})
	if shared {
		e.log.Debug("toggle coalesced", "id", id, "day", day)
	}
	return err
}

func (e *Engine) toggle(id uuid.UUID, day string) error {
	e.op.Lock()
	defer e.op.Unlock()

	done, err := e.store.HasCompletion(id, day)
	if err != nil {
		e.log.Error("check completion", "id", id, "day", day, "err", err)
		return err
	}
	if done {
		err = e.store.DeleteCompletion(id, day)
	} else {
		err = e.store.CreateCompletion(id, day)
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		e.log.Debug("toggle of missing tracker ignored", "id", id)
		return nil
	case err != nil:
		e.log.Error("toggle completion", "id", id, "day", day, "err", err)
		return err
	}
	e.log.Debug("completion toggled", "id", id, "day", day, "completed", !done)
	e.refresh(EventReload)
	return nil
}

// Reload re-runs the query and tells subscribers to redraw everything.
func (e *Engine) Reload() {
	e.op.Lock()
	defer e.op.Unlock()
	e.refresh(EventReload)
}

// run executes the current query and stores the result. Callers hold e.op.
func (e *Engine) run() (old, cur Snapshot) {
	e.mu.RLock()
	state := e.state
	e.mu.RUnlock()

	pred := e.builder.Build(state)
	cur = e.load(pred)

	e.mu.Lock()
	old = e.snapshot
	e.predicate = pred
	e.snapshot = cur
	e.mu.Unlock()
	return old, cur
}

func (e *Engine) refresh(kind EventKind) {
	old, cur := e.run()
	ev := Event{Kind: kind, Snapshot: cur}
	if kind == EventDiff {
		ev.Diff = computeDiff(old, cur)
	}
	e.emit(ev)
}

func (e *Engine) load(pred query.Predicate) Snapshot {
	snap := Snapshot{Date: pred.EffectiveDate}

	rows, err := e.store.FetchTrackers(pred.Where(), "c.name", "t.name")
	if err != nil {
		e.log.Error("fetch trackers", "err", err)
		return snap
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		t, err := row.Decode()
		if err != nil {
			e.log.Warn("skipping malformed tracker", "id", row.ID, "err", err)
			continue
		}
		if !pred.Match(t) {
			continue
		}
		items = append(items, Item{
			Tracker:       t,
			Category:      row.Category,
			Completed:     pred.Completed(t.ID),
			CompletedDays: row.CompletedDays,
		})
	}
	snap.Sections = group(items)
	return snap
}

func (e *Engine) emit(ev Event) {
	e.subMu.Lock()
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	e.subMu.Unlock()
	if len(ids) == 0 {
		return
	}

	e.dispatcher.Dispatch(func() {
		for _, id := range ids {
			e.subMu.Lock()
			fn, ok := e.subs[id]
			e.subMu.Unlock()
			if ok {
				fn(ev)
			}
		}
	})
}

// ============================================================
// Read surface
// ============================================================

// NumberOfSections returns the number of category sections in the snapshot.
func (e *Engine) NumberOfSections() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.snapshot.Sections)
}

// NumberOfItems returns the row count of section, or 0 if out of range.
func (e *Engine) NumberOfItems(section int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if section < 0 || section >= len(e.snapshot.Sections) {
		return 0
	}
	return len(e.snapshot.Sections[section].Items)
}

// ItemAt returns the row at the given position.
func (e *Engine) ItemAt(section, row int) (Item, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if section < 0 || section >= len(e.snapshot.Sections) {
		return Item{}, false
	}
	items := e.snapshot.Sections[section].Items
	if row < 0 || row >= len(items) {
		return Item{}, false
	}
	return items[row], true
}

// TitleForSection returns the category name of section, or the default
// title when the name is empty or the index is out of range.
func (e *Engine) TitleForSection(section int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if section < 0 || section >= len(e.snapshot.Sections) || e.snapshot.Sections[section].Name == "" {
		return e.defaultTitle
	}
	return e.snapshot.Sections[section].Name
}

// Snapshot returns the latest query result.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// State returns the current query state.
func (e *Engine) State() query.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// DatePickerEnabled is false while the today filter pins the date.
func (e *Engine) DatePickerEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Status != query.StatusToday
}

// EffectiveDate is the date the visible rows were computed for.
func (e *Engine) EffectiveDate() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.predicate.EffectiveDate
}

// IsCompleted reports whether the tracker has a record on date's day.
// Storage errors read as false.
func (e *Engine) IsCompleted(id uuid.UUID, date time.Time) bool {
	ok, err := e.store.HasCompletion(id, tracker.DayKey(date))
	if err != nil {
		e.log.Error("check completion", "id", id, "err", err)
		return false
	}
	return ok
}

// CountRecords returns how many days the tracker was completed.
// Storage errors read as 0.
func (e *Engine) CountRecords(id uuid.UUID) int {
	n, err := e.store.CountCompletions(store.CompletionForTracker(id))
	if err != nil {
		e.log.Error("count records", "id", id, "err", err)
		return 0
	}
	return n
}
