package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/query"
	"github.com/sadopc/habitr/internal/store"
)

var settingKeys = []string{store.SettingDefaultCategory, store.SettingDefaultFilter}

var settingLabels = map[string]string{
	store.SettingDefaultCategory: "Default category",
	store.SettingDefaultFilter:   "Default filter",
}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	defaultCategory *string
	defaultFilter   *string
}

func newSettingsModel(s *store.Store) settingsModel {
	dc, df := "", ""
	return settingsModel{
		store:           s,
		defaultCategory: &dc,
		defaultFilter:   &df,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
	err      error
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings, err: err}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		if msg.err != nil {
			return s, func() tea.Msg { return errStatus(msg.err) }
		}
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.defaultCategory = s.store.SettingOr(store.SettingDefaultCategory, "General")
	*s.defaultFilter = s.store.SettingOr(store.SettingDefaultFilter, query.StatusAll.String())

	filterOptions := make([]huh.Option[string], len(query.Statuses))
	for i, st := range query.Statuses {
		filterOptions[i] = huh.NewOption(st.Label(), st.String())
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default category").
				Description("Used when a tracker is saved without a category").
				Value(s.defaultCategory),
			huh.NewSelect[string]().Title("Default filter").
				Description("Applied when habitr starts").
				Options(filterOptions...).
				Value(s.defaultFilter),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, func() tea.Msg { return errStatus(err) }
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return statusMsg{text: "Settings saved"} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	if err := s.store.SetSetting(store.SettingDefaultCategory, *s.defaultCategory); err != nil {
		return err
	}
	return s.store.SetSetting(store.SettingDefaultFilter, *s.defaultFilter)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	values := make(map[string]string, len(s.settings))
	for _, setting := range s.settings {
		values[setting.Key] = setting.Value
	}
	for _, k := range settingKeys {
		label := lipgloss.NewStyle().Width(24).Render(settingLabel(k))
		v, ok := values[k]
		value := mutedStyle.Render("not set")
		if ok {
			value = highlightStyle.Render(formatSettingValue(k, v))
		}
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingLabel(k string) string {
	if l, ok := settingLabels[k]; ok {
		return l
	}
	return k
}

func formatSettingValue(k, v string) string {
	if k == store.SettingDefaultFilter {
		if st, err := query.ParseStatus(v); err == nil {
			return st.Label()
		}
	}
	return v
}
