package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sadopc/habitr/internal/tracker"
)

// TrackerRow is a persisted tracker as read from the database. Color and
// schedule are still JSON-encoded; Decode turns the row into a domain value.
type TrackerRow struct {
	ID            string
	Name          string
	Emoji         string
	Color         string
	Schedule      string
	Category      string
	CompletedDays int
}

var ErrMalformedRow = errors.New("malformed tracker row")

// Decode converts the row into a tracker. Rows with a missing required field
// or an undecodable color or schedule fail with ErrMalformedRow.
func (r TrackerRow) Decode() (tracker.Tracker, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return tracker.Tracker{}, fmt.Errorf("%w: id %q: %v", ErrMalformedRow, r.ID, err)
	}
	if strings.TrimSpace(r.Name) == "" {
		return tracker.Tracker{}, fmt.Errorf("%w: tracker %s has no name", ErrMalformedRow, r.ID)
	}
	if r.Emoji == "" {
		return tracker.Tracker{}, fmt.Errorf("%w: tracker %s has no emoji", ErrMalformedRow, r.ID)
	}

	var color tracker.Color
	if err := json.Unmarshal([]byte(r.Color), &color); err != nil {
		return tracker.Tracker{}, fmt.Errorf("%w: tracker %s color: %v", ErrMalformedRow, r.ID, err)
	}
	var schedule tracker.Schedule
	if err := json.Unmarshal([]byte(r.Schedule), &schedule); err != nil {
		return tracker.Tracker{}, fmt.Errorf("%w: tracker %s schedule: %v", ErrMalformedRow, r.ID, err)
	}

	return tracker.Tracker{
		ID:       id,
		Name:     r.Name,
		Emoji:    r.Emoji,
		Color:    color,
		Schedule: schedule,
	}, nil
}

type Setting struct {
	Key   string
	Value string
}

// DayCount is the number of completion records logged on a calendar day.
type DayCount struct {
	Day   string
	Count int
}

func encodeTracker(t tracker.Tracker) (color, schedule string, err error) {
	c, err := json.Marshal(t.Color)
	if err != nil {
		return "", "", fmt.Errorf("encode color: %w", err)
	}
	s, err := json.Marshal(t.Schedule)
	if err != nil {
		return "", "", fmt.Errorf("encode schedule: %w", err)
	}
	return string(c), string(s), nil
}
