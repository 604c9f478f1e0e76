package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/query"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
)

// 2024-01-03 is a Wednesday.
var testNow = time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T) (App, *store.Store, *live.Engine) {
	t.Helper()
	s := newTestStore(t)
	clock := clockwork.NewFakeClockAt(testNow)
	e := live.New(s, live.WithClock(clock))
	app := NewApp(s, e, nil, clock)
	t.Cleanup(app.Close)
	return app, s, e
}

func addTracker(t *testing.T, e *live.Engine, name, category string) tracker.Tracker {
	t.Helper()
	color, err := tracker.ParseColor(tracker.Palette[0])
	if err != nil {
		t.Fatal(err)
	}
	tr := tracker.New(name, tracker.Emojis[0], color, tracker.NewSchedule(tracker.Weekdays...))
	if err := e.AddTracker(tr, category); err != nil {
		t.Fatalf("add tracker: %v", err)
	}
	return tr
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes cmd and any batched children, skipping commands that do
// not return promptly (cursor blink ticks).
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func findStatus(msgs []tea.Msg) (statusMsg, bool) {
	for _, m := range msgs {
		if s, ok := m.(statusMsg); ok {
			return s, true
		}
	}
	return statusMsg{}, false
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatDay(t *testing.T) {
	if got := formatDay(testNow); got != "Wed, Jan 3 2024" {
		t.Fatalf("formatDay = %q", got)
	}
}

func TestDaysLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{5, "5 days"},
	}
	for _, tt := range tests {
		if got := daysLabel(tt.n); got != tt.want {
			t.Errorf("daysLabel(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestErrStatus(t *testing.T) {
	msg := errStatus(store.ErrNotFound)
	if !msg.isError || !strings.Contains(msg.text, "not found") {
		t.Fatalf("unexpected status %+v", msg)
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 3 {
		t.Fatalf("expected 3 view names, got %d", len(viewNames))
	}
	if len(screens) != len(viewNames) {
		t.Fatal("every view needs an analytics screen")
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewTrackers != 0 || viewStatistics != 1 || viewSettings != 2 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Trackers model
// ============================================================

func TestTrackersEmptyView(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.trackers.setSize(120, 40)

	if !strings.Contains(app.trackers.view(), "Press n to add a tracker") {
		t.Fatal("empty list should show the placeholder")
	}
}

func TestTrackersListRendersSections(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")
	addTracker(t, e, "Run", "Body")
	app.trackers.setSize(120, 40)

	out := app.trackers.view()
	for _, want := range []string{"Body", "Mind", "Read", "Run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if strings.Index(out, "Body") > strings.Index(out, "Mind") {
		t.Fatal("sections should be sorted by title")
	}
}

func TestTrackersSelectedWalksSections(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")
	addTracker(t, e, "Run", "Body")

	m := app.trackers
	item, ok := m.selected()
	if !ok || item.Tracker.Name != "Run" {
		t.Fatalf("first row should be Run, got %+v", item.Tracker)
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	item, ok = m.selected()
	if !ok || item.Tracker.Name != "Read" {
		t.Fatalf("second row should be Read, got %+v", item.Tracker)
	}

	// Cursor stops at the last row.
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
}

func TestTrackersToggle(t *testing.T) {
	app, _, e := newTestApp(t)
	tr := addTracker(t, e, "Read", "Mind")

	m, cmd := app.trackers.update(keyRune('x'))
	if cmd == nil {
		t.Fatal("toggle should return a command")
	}
	runCmd(cmd)
	if !e.IsCompleted(tr.ID, testNow) {
		t.Fatal("tracker should be completed after toggle")
	}

	_, cmd = m.update(keyRune('x'))
	runCmd(cmd)
	if e.IsCompleted(tr.ID, testNow) {
		t.Fatal("second toggle should undo the completion")
	}
}

func TestTrackersToggleFutureDay(t *testing.T) {
	app, _, e := newTestApp(t)
	tr := addTracker(t, e, "Read", "Mind")
	e.UpdateDate(testNow.AddDate(0, 0, 1))

	_, cmd := app.trackers.update(keyRune('x'))
	status, ok := findStatus(runCmd(cmd))
	if !ok || !status.isError {
		t.Fatalf("future toggle should report an error, got %+v", status)
	}
	if e.CountRecords(tr.ID) != 0 {
		t.Fatal("future toggle must not write a record")
	}
}

func TestTrackersShiftDate(t *testing.T) {
	app, _, e := newTestApp(t)

	_, cmd := app.trackers.update(tea.KeyMsg{Type: tea.KeyLeft})
	runCmd(cmd)
	if got := tracker.DayKey(e.State().Date); got != "2024-01-02" {
		t.Fatalf("date after left = %s", got)
	}

	_, cmd = app.trackers.update(keyRune('t'))
	runCmd(cmd)
	if got := tracker.DayKey(e.State().Date); got != "2024-01-03" {
		t.Fatalf("date after today = %s", got)
	}
}

func TestTrackersShiftDatePinnedByTodayFilter(t *testing.T) {
	app, _, e := newTestApp(t)
	e.UpdateFilter(query.StatusToday)

	status, ok := findStatus(runCmd(app.trackers.shiftDate(1)))
	if !ok {
		t.Fatal("shift under the Today filter should report a status")
	}
	if status.isError {
		t.Fatal("pinned date is informational, not an error")
	}
	if got := tracker.DayKey(e.State().Date); got != "2024-01-03" {
		t.Fatalf("date should be unchanged, got %s", got)
	}
}

func TestTrackersFilterPicker(t *testing.T) {
	app, _, e := newTestApp(t)

	m, _ := app.trackers.update(keyRune('f'))
	if !m.picking || !m.capturing() {
		t.Fatal("f should open the filter picker")
	}
	if !strings.Contains(m.renderPicker(), query.StatusToday.Label()) {
		t.Fatal("picker should list every status")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.picking {
		t.Fatal("enter should close the picker")
	}
	runCmd(cmd)
	if e.State().Status != query.StatusToday {
		t.Fatalf("status = %v, want today", e.State().Status)
	}
	if e.DatePickerEnabled() {
		t.Fatal("today filter should pin the date")
	}
}

func TestTrackersSearch(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")
	addTracker(t, e, "Run", "Body")

	m, _ := app.trackers.update(keyRune('/'))
	if !m.searching {
		t.Fatal("/ should start searching")
	}
	m, cmd := m.update(keyRune('e'))
	runCmd(cmd)
	if e.State().Search != "e" {
		t.Fatalf("search = %q, want e", e.State().Search)
	}
	if e.NumberOfSections() != 1 {
		t.Fatalf("sections = %d, want 1", e.NumberOfSections())
	}

	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyEscape})
	runCmd(cmd)
	if m.searching || e.State().Search != "" {
		t.Fatal("esc should clear the search")
	}
}

func TestTrackersDeleteConfirm(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")

	m, _ := app.trackers.update(keyRune('d'))
	if !m.confirmDelete {
		t.Fatal("d should ask for confirmation")
	}
	m.setSize(120, 40)
	if !strings.Contains(m.view(), `Delete "Read"?`) {
		t.Fatal("confirmation prompt missing")
	}

	m, cmd := m.update(keyRune('y'))
	status, ok := findStatus(runCmd(cmd))
	if !ok || status.text != "Deleted Read" {
		t.Fatalf("unexpected status %+v", status)
	}
	if m.confirmDelete || e.NumberOfSections() != 0 {
		t.Fatal("tracker should be deleted")
	}
}

func TestTrackersDeleteCancel(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")

	m, _ := app.trackers.update(keyRune('d'))
	m, cmd := m.update(keyRune('n'))
	if cmd != nil || m.confirmDelete {
		t.Fatal("any other key should cancel")
	}
	if e.NumberOfSections() != 1 {
		t.Fatal("tracker should survive a cancelled delete")
	}
}

func TestTrackersFormOpenAndCancel(t *testing.T) {
	app, s, _ := newTestApp(t)
	if err := s.SetSetting(store.SettingDefaultCategory, "Health"); err != nil {
		t.Fatal(err)
	}

	m, _ := app.trackers.update(keyRune('n'))
	if !m.formActive || m.form.form == nil {
		t.Fatal("n should open the form")
	}
	if *m.form.category != "Health" {
		t.Fatalf("new form category = %q, want default setting", *m.form.category)
	}
	if m.form.title() != "New Tracker" {
		t.Fatal("wrong form title")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestTrackersFormOffersStoredCategories(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")
	addTracker(t, e, "Run", "Body")

	m, _ := app.trackers.update(keyRune('n'))
	if got := strings.Join(m.form.categories, ","); got != "General,Body,Mind" {
		t.Fatalf("choices = %q", got)
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEscape})
	m.cursor = 0
	m, _ = m.update(keyRune('e'))
	if *m.form.category != "Body" {
		t.Fatalf("edit form picked %q, want Body", *m.form.category)
	}
}

func TestEngineEventClampsCursor(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")
	addTracker(t, e, "Run", "Body")

	m := app.trackers
	m.cursor = 1
	e.UpdateSearchText("run")
	m, _ = m.update(engineEventMsg{event: live.Event{Snapshot: e.Snapshot()}})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

// ============================================================
// Tracker form
// ============================================================

func TestTrackerFormEditValues(t *testing.T) {
	color, _ := tracker.ParseColor(tracker.Palette[2])
	schedule := tracker.NewSchedule(tracker.Monday, tracker.Friday)
	tr := tracker.New("Stretch", tracker.Emojis[1], color, schedule)

	f := newTrackerForm().openEdit(live.Item{Tracker: tr, Category: "Body"}, []string{"Body", "Mind"})
	if !f.editing || f.editingID != tr.ID {
		t.Fatal("edit form should remember the tracker id")
	}
	if f.title() != "Edit Tracker" {
		t.Fatal("wrong form title")
	}

	name, category, emoji, gotColor, gotSchedule, err := f.values()
	if err != nil {
		t.Fatal(err)
	}
	if name != "Stretch" || category != "Body" || emoji != tracker.Emojis[1] {
		t.Fatalf("unexpected values %q %q %q", name, category, emoji)
	}
	if gotColor != color {
		t.Fatalf("color = %s, want %s", gotColor.Hex(), color.Hex())
	}
	if !gotSchedule.Equal(schedule) {
		t.Fatalf("schedule = %s, want %s", gotSchedule, schedule)
	}
}

func TestTrackerFormTrimsName(t *testing.T) {
	f := newTrackerForm().openNew("", nil)
	*f.name = "  Walk  "
	*f.category = " Outside "
	*f.days = []int{int(tracker.Saturday)}

	name, category, _, _, schedule, err := f.values()
	if err != nil {
		t.Fatal(err)
	}
	if name != "Walk" || category != "Outside" {
		t.Fatalf("values not trimmed: %q %q", name, category)
	}
	if !schedule.Contains(tracker.Saturday) || schedule.Contains(tracker.Sunday) {
		t.Fatalf("unexpected schedule %s", schedule)
	}
}

func TestTrackerFormCategoryChoices(t *testing.T) {
	f := newTrackerForm().openNew("General", []string{"Body", "Mind"})
	if strings.Join(f.categories, ",") != "General,Body,Mind" {
		t.Fatalf("choices = %v, want unsaved default first", f.categories)
	}
	if *f.category != "General" {
		t.Fatalf("picked %q, want General", *f.category)
	}

	f = newTrackerForm().openNew("Mind", []string{"Body", "Mind"})
	if strings.Join(f.categories, ",") != "Body,Mind" || *f.category != "Mind" {
		t.Fatalf("existing default: choices %v, picked %q", f.categories, *f.category)
	}

	f = newTrackerForm().openNew("", []string{"Body"})
	if *f.category != "Body" {
		t.Fatalf("blank default should pick the first category, got %q", *f.category)
	}

	f = newTrackerForm().openNew("", nil)
	if *f.category != newCategoryValue {
		t.Fatal("with no categories the form should ask for a new one")
	}
}

func TestTrackerFormNewCategory(t *testing.T) {
	f := newTrackerForm().openNew("Body", []string{"Body"})
	*f.name = "Journal"
	*f.days = []int{int(tracker.Monday)}
	*f.category = newCategoryValue
	*f.newCategory = "  Writing "

	_, category, _, _, _, err := f.values()
	if err != nil {
		t.Fatal(err)
	}
	if category != "Writing" {
		t.Fatalf("category = %q, want typed name", category)
	}

	f = f.openNew("Body", []string{"Body"})
	if *f.newCategory != "" {
		t.Fatal("reopening should clear the typed category")
	}
}

func TestTrackerFormValidation(t *testing.T) {
	if validateCategory("  ") == nil {
		t.Fatal("blank category should fail")
	}
	if validateCategory("Body") != nil {
		t.Fatal("category should pass")
	}
	if validateName("   ") == nil {
		t.Fatal("blank name should fail")
	}
	if validateName("Read") != nil {
		t.Fatal("name should pass")
	}
	if validateDays(nil) == nil {
		t.Fatal("empty schedule should fail")
	}
	if validateDays([]int{1}) != nil {
		t.Fatal("one day should pass")
	}
}

// ============================================================
// Settings
// ============================================================

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{store.SettingDefaultFilter, query.StatusCompleted.String(), query.StatusCompleted.Label()},
		{store.SettingDefaultFilter, "bogus", "bogus"},
		{store.SettingDefaultCategory, "Health", "Health"},
	}
	for _, tt := range tests {
		if got := formatSettingValue(tt.key, tt.val); got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	*m.defaultCategory = "Health"
	*m.defaultFilter = query.StatusNotCompleted.String()

	if err := m.saveSettings(); err != nil {
		t.Fatal(err)
	}
	if got := s.SettingOr(store.SettingDefaultCategory, ""); got != "Health" {
		t.Fatalf("default category = %q", got)
	}
	if got := s.SettingOr(store.SettingDefaultFilter, ""); got != "not-completed" {
		t.Fatalf("default filter = %q", got)
	}
}

func TestSettingsView(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(store.SettingDefaultFilter, "today"); err != nil {
		t.Fatal(err)
	}
	m := newSettingsModel(s)
	m.setSize(120, 40)

	msgs := runCmd(m.refresh())
	if len(msgs) != 1 {
		t.Fatalf("refresh returned %d messages", len(msgs))
	}
	m, _ = m.update(msgs[0])

	out := m.view()
	if !strings.Contains(out, query.StatusToday.Label()) {
		t.Fatal("view should show the filter label")
	}
	if !strings.Contains(out, "General") {
		t.Fatal("view should show the seeded category")
	}
}

func TestSettingsFormOpen(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.formActive || m.form == nil {
		t.Fatal("enter should open the settings form")
	}
	if *m.defaultFilter != query.StatusAll.String() {
		t.Fatalf("default filter = %q, want all", *m.defaultFilter)
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.formActive {
		t.Fatal("esc should close the settings form")
	}
}

// ============================================================
// Statistics
// ============================================================

func TestStatisticsEmpty(t *testing.T) {
	s := newTestStore(t)
	m := newStatisticsModel(s, clockwork.NewFakeClockAt(testNow))
	m.setSize(120, 40)

	msgs := runCmd(m.refresh())
	m, _ = m.update(msgs[0])
	if !strings.Contains(m.view(), "Nothing to analyze yet") {
		t.Fatal("empty statistics should show placeholder")
	}
}

func TestStatisticsSummary(t *testing.T) {
	_, s, e := newTestApp(t)
	tr := addTracker(t, e, "Read", "Mind")
	if err := e.ToggleCompletion(tr.ID, testNow); err != nil {
		t.Fatal(err)
	}

	m := newStatisticsModel(s, clockwork.NewFakeClockAt(testNow))
	m.setSize(120, 40)
	m, _ = m.update(runCmd(m.refresh())[0])

	if m.summary.TotalCompletions != 1 || m.summary.Trackers != 1 {
		t.Fatalf("unexpected summary %+v", m.summary)
	}
	if len(m.summary.Days) != 7 {
		t.Fatalf("days = %d, want 7", len(m.summary.Days))
	}
	out := m.view()
	if !strings.Contains(out, "Trackers completed") || !strings.Contains(out, "2023-12-28 to 2024-01-03") {
		t.Fatal("view should show totals and the window")
	}
}

func TestStatisticsWindowNavigation(t *testing.T) {
	s := newTestStore(t)
	m := newStatisticsModel(s, clockwork.NewFakeClockAt(testNow))

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.offset != 1 || cmd == nil {
		t.Fatal("left should go one window back")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRight})
	if m.offset != 0 {
		t.Fatalf("offset = %d, want 0", m.offset)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _, _ := newTestApp(t)

	if app.activeView != viewTrackers {
		t.Fatal("default view should be trackers")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app, _, _ := newTestApp(t)
	if app.isFormActive() {
		t.Fatal("no form should be active by default")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	for _, v := range []viewState{viewTrackers, viewStatistics, viewSettings} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app, _, _ := newTestApp(t)

	model, cmd := app.Update(keyRune('2'))
	app = model.(App)
	if app.activeView != viewStatistics {
		t.Fatal("2 should switch to statistics")
	}
	for _, msg := range runCmd(cmd) {
		model, _ = app.Update(msg)
		app = model.(App)
	}
	if len(app.statistics.summary.Days) != 7 {
		t.Fatal("switching should refresh statistics")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatal("tab should move to settings")
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewTrackers {
		t.Fatal("tab should wrap to trackers")
	}
}

func TestAppCapturingBlocksGlobalKeys(t *testing.T) {
	app, _, _ := newTestApp(t)

	model, _ := app.Update(keyRune('/'))
	app = model.(App)
	if !app.isFormActive() {
		t.Fatal("search should capture keys")
	}

	model, _ = app.Update(keyRune('2'))
	app = model.(App)
	if app.activeView != viewTrackers {
		t.Fatal("typing in search must not switch tabs")
	}
	if app.trackers.search.Value() != "2" {
		t.Fatalf("search = %q, want 2", app.trackers.search.Value())
	}
}

func TestAppForwardsEngineEvents(t *testing.T) {
	app, _, e := newTestApp(t)
	addTracker(t, e, "Read", "Mind")

	msgs := runCmd(app.waitForEvent())
	if len(msgs) != 1 {
		t.Fatal("expected one forwarded event")
	}
	ev, ok := msgs[0].(engineEventMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msgs[0])
	}
	if ev.event.Kind != live.EventDiff || ev.event.Snapshot.Len() != 1 {
		t.Fatalf("unexpected event %+v", ev.event)
	}
}

func TestAppCloseStopsEvents(t *testing.T) {
	app, _, e := newTestApp(t)
	app.Close()
	addTracker(t, e, "Read", "Mind")

	select {
	case ev := <-app.events:
		t.Fatalf("unexpected event after close: %+v", ev)
	default:
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooter(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	if app.renderFooter() == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _, _ := newTestApp(t)
	// Width 0 means not yet sized
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	model, _ := app.Update(statusMsg{text: "test status"})
	app = model.(App)
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppQuit(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, cmd := app.Update(keyRune('q'))
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatal("q should quit")
	}
	if _, ok := msgs[0].(tea.QuitMsg); !ok {
		t.Fatalf("unexpected message %T", msgs[0])
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"section", func() string { return sectionStyle.Render("test") }},
		{"completed", func() string { return completedStyle.Render("test") }},
		{"pinnedDate", func() string { return pinnedDateStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
