package tracker

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday uses ISO numbering: Monday=1 .. Sunday=7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(w))
}

func (w Weekday) Short() string {
	if !w.Valid() {
		return "?"
	}
	return weekdayNames[w][:3]
}

// ToISOWeekday converts a Sunday-first weekday number (Sunday=1 .. Saturday=7)
// to ISO numbering. Out-of-range input returns 0.
func ToISOWeekday(native int) int {
	if native < 1 || native > 7 {
		return 0
	}
	if native == 1 {
		return 7
	}
	return native - 1
}

// WeekdayOf returns the ISO weekday of t in t's location.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday is Sunday=0, so +1 gives the Sunday-first numbering.
	return Weekday(ToISOWeekday(int(t.Weekday()) + 1))
}

// Schedule is the set of weekdays a tracker recurs on.
type Schedule map[Weekday]struct{}

func NewSchedule(days ...Weekday) Schedule {
	s := make(Schedule, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// ParseSchedule parses a comma-separated list of weekday names ("mon",
// "monday") or ISO numbers (1-7).
func ParseSchedule(in string) (Schedule, error) {
	dayMap := map[string]Weekday{
		"mon": Monday, "monday": Monday,
		"tue": Tuesday, "tuesday": Tuesday,
		"wed": Wednesday, "wednesday": Wednesday,
		"thu": Thursday, "thursday": Thursday,
		"fri": Friday, "friday": Friday,
		"sat": Saturday, "saturday": Saturday,
		"sun": Sunday, "sunday": Sunday,
	}

	s := Schedule{}
	for _, part := range strings.Split(in, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		switch part {
		case "daily", "everyday":
			return NewSchedule(Weekdays...), nil
		}
		if wd, ok := dayMap[part]; ok {
			s[wd] = struct{}{}
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || !Weekday(num).Valid() {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		s[Weekday(num)] = struct{}{}
	}
	return s, nil
}

func (s Schedule) Contains(d Weekday) bool {
	_, ok := s[d]
	return ok
}

// Days returns the schedule sorted Monday first.
func (s Schedule) Days() []Weekday {
	days := make([]Weekday, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

func (s Schedule) Equal(o Schedule) bool {
	if len(s) != len(o) {
		return false
	}
	for d := range s {
		if !o.Contains(d) {
			return false
		}
	}
	return true
}

func (s Schedule) String() string {
	if len(s) == len(Weekdays) {
		return "every day"
	}
	parts := make([]string, 0, len(s))
	for _, d := range s.Days() {
		parts = append(parts, d.Short())
	}
	return strings.Join(parts, ",")
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	days := s.Days()
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return json.Marshal(out)
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	out := make(Schedule, len(days))
	for _, d := range days {
		if !Weekday(d).Valid() {
			return fmt.Errorf("invalid weekday %d in schedule", d)
		}
		out[Weekday(d)] = struct{}{}
	}
	*s = out
	return nil
}
