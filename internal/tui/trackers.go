package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/analytics"
	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/logger"
	"github.com/sadopc/habitr/internal/query"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
)

// trackersModel is the list screen: date navigation, search, status filter
// and per-row actions over the live query engine.
type trackersModel struct {
	engine    *live.Engine
	store     *store.Store
	analytics *analytics.Service
	clock     clockwork.Clock
	width     int
	height    int

	cursor int // flat row index across sections

	searching bool
	search    textinput.Model

	picking      bool
	pickerCursor int

	confirmDelete bool

	formActive bool
	form       trackerForm
}

func newTrackersModel(e *live.Engine, s *store.Store, a *analytics.Service, clock clockwork.Clock) trackersModel {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "/ "
	ti.SetValue(e.State().Search)
	return trackersModel{
		engine:    e,
		store:     s,
		analytics: a,
		clock:     clock,
		search:    ti,
		form:      newTrackerForm(),
	}
}

func (m *trackersModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = max(10, w-10)
}

// capturing reports whether the view is consuming raw key input.
func (m trackersModel) capturing() bool {
	return m.formActive || m.searching || m.picking || m.confirmDelete
}

func (m trackersModel) rowCount() int {
	return m.engine.Snapshot().Len()
}

// selected returns the item under the cursor.
func (m trackersModel) selected() (live.Item, bool) {
	idx := m.cursor
	for s := 0; s < m.engine.NumberOfSections(); s++ {
		n := m.engine.NumberOfItems(s)
		if idx < n {
			return m.engine.ItemAt(s, idx)
		}
		idx -= n
	}
	return live.Item{}, false
}

func (m trackersModel) update(msg tea.Msg) (trackersModel, tea.Cmd) {
	if m.formActive && m.form.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case engineEventMsg:
		if n := msg.event.Snapshot.Len(); m.cursor >= n {
			m.cursor = max(0, n-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.searching:
			return m.updateSearch(msg)
		case m.picking:
			return m.updatePicker(msg)
		case m.confirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m trackersModel) updateList(msg tea.KeyMsg) (trackersModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.PrevDay):
		return m, m.shiftDate(-1)
	case key.Matches(msg, keys.NextDay):
		return m, m.shiftDate(1)
	case key.Matches(msg, keys.Today):
		return m, m.shiftDate(0)
	case key.Matches(msg, keys.Toggle):
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.analytics.ReportUIEvent(analytics.ScreenMain, analytics.Click, analytics.ItemTrack)
		return m, m.toggle(item)
	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.Filter):
		m.analytics.ReportUIEvent(analytics.ScreenMain, analytics.Click, analytics.ItemFilter)
		m.picking = true
		m.pickerCursor = 0
		for i, s := range query.Statuses {
			if s == m.engine.State().Status {
				m.pickerCursor = i
			}
		}
	case key.Matches(msg, keys.New):
		m.analytics.ReportUIEvent(analytics.ScreenMain, analytics.Click, analytics.ItemAddTrack)
		m.form = m.form.openNew(m.store.SettingOr(store.SettingDefaultCategory, ""), m.categoryNames())
		m.formActive = true
		return m, m.form.form.Init()
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.analytics.ReportUIEvent(analytics.ScreenMain, analytics.Click, analytics.ItemEdit)
		m.form = m.form.openEdit(item, m.categoryNames())
		m.formActive = true
		return m, m.form.form.Init()
	case key.Matches(msg, keys.Delete):
		if _, ok := m.selected(); ok {
			m.confirmDelete = true
		}
	}
	return m, nil
}

// shiftDate moves the selected date by days; 0 jumps to today.
func (m trackersModel) shiftDate(days int) tea.Cmd {
	if !m.engine.DatePickerEnabled() {
		return func() tea.Msg {
			return statusMsg{text: "Date is pinned while the Today filter is on"}
		}
	}
	date := m.engine.State().Date.AddDate(0, 0, days)
	if days == 0 {
		date = m.clock.Now()
	}
	e := m.engine
	return func() tea.Msg {
		e.UpdateDate(date)
		return nil
	}
}

func (m trackersModel) toggle(item live.Item) tea.Cmd {
	e := m.engine
	date := e.EffectiveDate()
	return func() tea.Msg {
		err := e.ToggleCompletion(item.Tracker.ID, date)
		if errors.Is(err, live.ErrFutureDay) {
			return statusMsg{text: "Can't complete a tracker on a future day", isError: true}
		}
		if err != nil {
			return errStatus(err)
		}
		return nil
	}
}

func (m trackersModel) updateSearch(msg tea.KeyMsg) (trackersModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		e := m.engine
		return m, func() tea.Msg { e.UpdateSearchText(""); return nil }
	case key.Matches(msg, keys.Enter):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if text := m.search.Value(); text != before {
		e := m.engine
		cmd = tea.Batch(cmd, func() tea.Msg { e.UpdateSearchText(text); return nil })
	}
	return m, cmd
}

func (m trackersModel) updatePicker(msg tea.KeyMsg) (trackersModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.pickerCursor < len(query.Statuses)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.picking = false
		status := query.Statuses[m.pickerCursor]
		e := m.engine
		return m, func() tea.Msg { e.UpdateFilter(status); return nil }
	case key.Matches(msg, keys.Back):
		m.picking = false
	}
	return m, nil
}

func (m trackersModel) updateConfirm(msg tea.KeyMsg) (trackersModel, tea.Cmd) {
	m.confirmDelete = false
	if !key.Matches(msg, keys.Confirm) {
		return m, nil
	}
	item, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.analytics.ReportUIEvent(analytics.ScreenMain, analytics.Click, analytics.ItemDelete)
	e := m.engine
	return m, func() tea.Msg {
		if err := e.DeleteTracker(item.Tracker.ID); err != nil {
			return errStatus(err)
		}
		return statusMsg{text: "Deleted " + item.Tracker.Name}
	}
}

// categoryNames lists stored categories for the form's picker.
func (m trackersModel) categoryNames() []string {
	categories, err := m.store.ListCategories()
	if err != nil {
		logger.Warn("list categories", "err", err)
		return nil
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func (m trackersModel) updateForm(msg tea.Msg) (trackersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form.form = nil
		return m, nil
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}
	if m.form.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.formActive = false
	name, category, emoji, color, schedule, err := m.form.values()
	if err != nil {
		return m, func() tea.Msg { return errStatus(err) }
	}
	if category == "" {
		category = m.store.SettingOr(store.SettingDefaultCategory, "")
	}

	e := m.engine
	if m.form.editing {
		id := m.form.editingID
		return m, func() tea.Msg {
			if err := e.UpdateTracker(id, name, category, schedule, color, emoji); err != nil {
				return errStatus(err)
			}
			return statusMsg{text: "Saved " + name}
		}
	}
	t := tracker.New(name, emoji, color, schedule)
	return m, func() tea.Msg {
		if err := e.AddTracker(t, category); err != nil {
			return errStatus(err)
		}
		return statusMsg{text: "Added " + name}
	}
}

func (m trackersModel) view() string {
	w := m.width - 4

	if m.formActive && m.form.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.form.title()), "", m.form.form.View())
		return panelStyle.Width(w).Render(content)
	}

	header := m.renderHeader()
	var body string
	if m.picking {
		body = m.renderPicker()
	} else {
		body = m.renderList()
	}

	rows := []string{header}
	if m.searching || m.search.Value() != "" {
		rows = append(rows, m.search.View())
	}
	rows = append(rows, "", body)
	if m.confirmDelete {
		if item, ok := m.selected(); ok {
			rows = append(rows, "", warningStyle.Render(fmt.Sprintf("Delete %q? y: confirm  any key: cancel", item.Tracker.Name)))
		}
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m trackersModel) renderHeader() string {
	state := m.engine.State()
	date := formatDay(m.engine.EffectiveDate())
	dateView := highlightStyle.Render("◀ " + date + " ▶")
	if !m.engine.DatePickerEnabled() {
		dateView = pinnedDateStyle.Render("● " + date)
	}
	filter := mutedStyle.Render("filter: " + state.Status.Label())
	return lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Trackers"), "  ", dateView, "  ", filter)
}

func (m trackersModel) renderList() string {
	if m.engine.NumberOfSections() == 0 {
		if m.engine.State().Search != "" {
			return mutedStyle.Render("Nothing found")
		}
		return mutedStyle.Render("What will we track? Press n to add a tracker.")
	}

	var rows []string
	flat := 0
	for s := 0; s < m.engine.NumberOfSections(); s++ {
		if s > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, sectionStyle.Render(m.engine.TitleForSection(s)))
		for r := 0; r < m.engine.NumberOfItems(s); r++ {
			item, _ := m.engine.ItemAt(s, r)
			rows = append(rows, m.renderRow(item, flat == m.cursor))
			flat++
		}
	}
	rows = append(rows, "", mutedStyle.Render("  space: done  n: new  e: edit  d: delete  /: search  f: filter  ←/→: day"))
	return strings.Join(rows, "\n")
}

func (m trackersModel) renderRow(item live.Item, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	check := "[ ]"
	name := style.Render(item.Tracker.Name)
	if item.Completed {
		check = successStyle.Render("[✓]")
		name = completedStyle.Render(item.Tracker.Name)
	}
	days := mutedStyle.Render(fmt.Sprintf("%s · %s", daysLabel(item.CompletedDays), item.Tracker.Schedule))
	return fmt.Sprintf("%s%s %s %s %s  %s", cursor, check, colorDot(item.Tracker.Color), item.Tracker.Emoji, name, days)
}

func (m trackersModel) renderPicker() string {
	current := m.engine.State().Status
	rows := []string{titleStyle.Render("Filters")}
	for i, s := range query.Statuses {
		cursor := "  "
		style := normalItemStyle
		if i == m.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := ""
		if s == current {
			mark = successStyle.Render(" ✓")
		}
		rows = append(rows, style.Render(cursor+s.Label())+mark)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: apply  esc: cancel"))
	return strings.Join(rows, "\n")
}

func daysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
