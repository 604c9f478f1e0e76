package stats

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
)

// WindowDays is the length of the daily breakdown.
const WindowDays = 7

// Source is the read-only store surface statistics need.
type Source interface {
	CountAllCompletions() (int, error)
	CountTrackers(where sq.Sqlizer) (int, error)
	CountCategories(where sq.Sqlizer) (int, error)
	DailyCompletions(from, to string) ([]store.DayCount, error)
}

// Summary aggregates completion activity.
type Summary struct {
	TotalCompletions int
	Trackers         int
	Categories       int
	// Days holds one entry per day of the window, oldest first, zero-filled.
	Days []store.DayCount
	// BestDay is the busiest day in the window; Count is 0 if there was none.
	BestDay store.DayCount
}

// Compute builds the summary for the WindowDays days ending on end.
func Compute(src Source, end time.Time) (Summary, error) {
	var s Summary
	var err error

	if s.TotalCompletions, err = src.CountAllCompletions(); err != nil {
		return Summary{}, fmt.Errorf("count completions: %w", err)
	}
	if s.Trackers, err = src.CountTrackers(nil); err != nil {
		return Summary{}, fmt.Errorf("count trackers: %w", err)
	}
	if s.Categories, err = src.CountCategories(nil); err != nil {
		return Summary{}, fmt.Errorf("count categories: %w", err)
	}

	last := tracker.StartOfDay(end)
	first := last.AddDate(0, 0, -(WindowDays - 1))
	counts, err := src.DailyCompletions(tracker.DayKey(first), tracker.DayKey(last.AddDate(0, 0, 1)))
	if err != nil {
		return Summary{}, fmt.Errorf("daily completions: %w", err)
	}
	byDay := make(map[string]int, len(counts))
	for _, c := range counts {
		byDay[c.Day] = c.Count
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dc := store.DayCount{Day: tracker.DayKey(d), Count: byDay[tracker.DayKey(d)]}
		s.Days = append(s.Days, dc)
		if dc.Count > s.BestDay.Count {
			s.BestDay = dc
		}
	}
	return s, nil
}

// WindowTotal sums the completions inside the window.
func (s Summary) WindowTotal() int {
	n := 0
	for _, d := range s.Days {
		n += d.Count
	}
	return n
}

// AveragePerDay is the mean number of completions per day in the window.
func (s Summary) AveragePerDay() float64 {
	if len(s.Days) == 0 {
		return 0
	}
	return float64(s.WindowTotal()) / float64(len(s.Days))
}

// TotalLabel renders the lifetime completion count, e.g. "1,204 completions".
func (s Summary) TotalLabel() string {
	noun := "completions"
	if s.TotalCompletions == 1 {
		noun = "completion"
	}
	return humanize.Comma(int64(s.TotalCompletions)) + " " + noun
}

// BestDayLabel renders the busiest day as "Mon, Jan 1 · 3", or "none".
func (s Summary) BestDayLabel() string {
	if s.BestDay.Count == 0 {
		return "none"
	}
	d, err := tracker.ParseDay(s.BestDay.Day)
	if err != nil {
		return s.BestDay.Day
	}
	return fmt.Sprintf("%s · %s", d.Format("Mon, Jan 2"), humanize.Comma(int64(s.BestDay.Count)))
}

// AverageLabel renders AveragePerDay with at most one decimal.
func (s Summary) AverageLabel() string {
	return humanize.FtoaWithDigits(s.AveragePerDay(), 1)
}
