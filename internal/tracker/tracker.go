package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Color is an opaque RGB display color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseColor parses a "#RRGGBB" hex string.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as an upper-case "#RRGGBB" string.
func (c Color) Hex() string {
	return strings.ToUpper(colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex())
}

func (c Color) String() string { return c.Hex() }

// Palette is the selectable color set offered when creating a tracker.
var Palette = []string{
	"#FD4C49", "#FF881E", "#007BFA", "#6E44FE", "#33CF69", "#E66DD4",
	"#F9D4D4", "#34A7FE", "#46E69D", "#35347C", "#FF674D", "#FF99CC",
	"#F6C48B", "#7994F5", "#832CF1", "#AD56DA", "#8D72E6", "#2FD058",
}

// Emojis is the selectable emoji set offered when creating a tracker.
var Emojis = []string{
	"🙂", "😻", "🌺", "🐶", "❤️", "😱",
	"😇", "😡", "🥶", "🤔", "🙌", "🍔",
	"🥦", "🏓", "🥇", "🎸", "🏝", "😪",
}

// Tracker is a recurring habit.
type Tracker struct {
	ID       uuid.UUID
	Name     string
	Emoji    string
	Color    Color
	Schedule Schedule
}

var (
	ErrEmptyName     = errors.New("tracker name is required")
	ErrInvalidEmoji  = errors.New("tracker emoji must be a single glyph")
	ErrEmptySchedule = errors.New("tracker schedule must contain at least one weekday")
	ErrMissingID     = errors.New("tracker id is required")
)

// New builds a tracker with a fresh id.
func New(name, emoji string, color Color, schedule Schedule) Tracker {
	return Tracker{
		ID:       uuid.New(),
		Name:     name,
		Emoji:    emoji,
		Color:    color,
		Schedule: schedule,
	}
}

func (t Tracker) Validate() error {
	if t.ID == uuid.Nil {
		return ErrMissingID
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if uniseg.GraphemeClusterCount(t.Emoji) != 1 {
		return ErrInvalidEmoji
	}
	if len(t.Schedule) == 0 {
		return ErrEmptySchedule
	}
	for d := range t.Schedule {
		if !d.Valid() {
			return fmt.Errorf("invalid weekday %d in schedule", int(d))
		}
	}
	return nil
}

// Equal compares every field, treating the schedule as a set.
func (t Tracker) Equal(o Tracker) bool {
	return t.ID == o.ID &&
		t.Name == o.Name &&
		t.Emoji == o.Emoji &&
		t.Color == o.Color &&
		t.Schedule.Equal(o.Schedule)
}

// Category groups trackers; its name is the grouping key.
type Category struct {
	ID   int64
	Name string
}

// CompletionRecord marks a tracker as completed on a calendar day.
type CompletionRecord struct {
	ID        int64
	TrackerID uuid.UUID
	Day       string // YYYY-MM-DD, local calendar day
	LoggedAt  time.Time
}

const DayLayout = "2006-01-02"

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns [start, end) for the calendar day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// DayKey returns the calendar-day key used for completion records.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD day key in the local timezone.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}
