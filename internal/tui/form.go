package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/tracker"
)

// trackerForm edits one tracker. Field values live behind pointers so they
// survive the value copies Bubble Tea makes of the model.
type trackerForm struct {
	form *huh.Form

	editing   bool
	editingID uuid.UUID

	// categories are the picker choices; category holds the picked one or
	// newCategoryValue, in which case newCategory carries the typed name.
	categories  []string
	name        *string
	category    *string
	newCategory *string
	emoji       *string
	color       *string
	days        *[]int
}

// newCategoryValue is the picker entry that asks for a new category name.
const newCategoryValue = "\x00new"

func newTrackerForm() trackerForm {
	name, category, newCategory, emoji, color := "", "", "", tracker.Emojis[0], tracker.Palette[0]
	days := []int{}
	return trackerForm{
		name:        &name,
		category:    &category,
		newCategory: &newCategory,
		emoji:       &emoji,
		color:       &color,
		days:        &days,
	}
}

// openNew resets the fields for a new tracker in category, offering
// existing as the other category choices.
func (f trackerForm) openNew(category string, existing []string) trackerForm {
	*f.name = ""
	f = f.pickCategory(category, existing)
	*f.emoji = tracker.Emojis[0]
	*f.color = tracker.Palette[0]
	*f.days = []int{}
	f.editing = false
	f.editingID = uuid.Nil
	f.form = f.build()
	return f
}

// openEdit loads item into the fields.
func (f trackerForm) openEdit(item live.Item, existing []string) trackerForm {
	t := item.Tracker
	*f.name = t.Name
	f = f.pickCategory(item.Category, existing)
	*f.emoji = t.Emoji
	*f.color = t.Color.Hex()
	days := make([]int, 0, len(t.Schedule))
	for _, d := range t.Schedule.Days() {
		days = append(days, int(d))
	}
	*f.days = days
	f.editing = true
	f.editingID = t.ID
	f.form = f.build()
	return f
}

// pickCategory selects current among existing, adding it when it is not
// stored yet. With nothing to pick the form goes straight to a new name.
func (f trackerForm) pickCategory(current string, existing []string) trackerForm {
	choices := make([]string, 0, len(existing)+1)
	found := current == ""
	for _, c := range existing {
		if c == "" {
			continue
		}
		if c == current {
			found = true
		}
		choices = append(choices, c)
	}
	if !found {
		choices = append([]string{current}, choices...)
	}
	f.categories = choices
	*f.newCategory = ""

	switch {
	case current != "":
		*f.category = current
	case len(choices) > 0:
		*f.category = choices[0]
	default:
		*f.category = newCategoryValue
	}
	return f
}

func (f trackerForm) build() *huh.Form {
	categoryOptions := make([]huh.Option[string], 0, len(f.categories)+1)
	for _, c := range f.categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c, c))
	}
	categoryOptions = append(categoryOptions, huh.NewOption("New category…", newCategoryValue))
	category := f.category

	emojiOptions := make([]huh.Option[string], len(tracker.Emojis))
	for i, e := range tracker.Emojis {
		emojiOptions[i] = huh.NewOption(e, e)
	}
	colorOptions := make([]huh.Option[string], len(tracker.Palette))
	for i, c := range tracker.Palette {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("●")
		colorOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", dot, c), c)
	}
	dayOptions := make([]huh.Option[int], len(tracker.Weekdays))
	for i, d := range tracker.Weekdays {
		dayOptions[i] = huh.NewOption(d.String(), int(d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Tracker name").Value(f.name).Validate(validateName),
			huh.NewSelect[string]().Title("Category").Options(categoryOptions...).Value(f.category),
			huh.NewMultiSelect[int]().Title("Schedule").Options(dayOptions...).Value(f.days).Validate(validateDays),
		),
		huh.NewGroup(
			huh.NewInput().Title("New category").Value(f.newCategory).Validate(validateCategory),
		).WithHideFunc(func() bool { return *category != newCategoryValue }),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Emoji").Options(emojiOptions...).Value(f.emoji),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(f.color),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return tracker.ErrEmptyName
	}
	return nil
}

func validateCategory(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("category name is required")
	}
	return nil
}

func validateDays(days []int) error {
	if len(days) == 0 {
		return errors.New("pick at least one day")
	}
	return nil
}

// values converts the form fields into tracker parts.
func (f trackerForm) values() (name, category, emoji string, color tracker.Color, schedule tracker.Schedule, err error) {
	color, err = tracker.ParseColor(*f.color)
	if err != nil {
		return "", "", "", tracker.Color{}, nil, err
	}
	days := make([]tracker.Weekday, 0, len(*f.days))
	for _, d := range *f.days {
		days = append(days, tracker.Weekday(d))
	}
	category = *f.category
	if category == newCategoryValue {
		category = *f.newCategory
	}
	return strings.TrimSpace(*f.name), strings.TrimSpace(category), *f.emoji, color, tracker.NewSchedule(days...), nil
}

func (f trackerForm) title() string {
	if f.editing {
		return "Edit Tracker"
	}
	return "New Tracker"
}
