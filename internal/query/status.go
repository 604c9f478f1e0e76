package query

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the secondary list filter. StatusNone means no filter was chosen.
type Status int

const (
	StatusNone Status = iota
	StatusAll
	StatusToday
	StatusCompleted
	StatusNotCompleted
)

// Statuses lists the selectable filters in menu order.
var Statuses = []Status{StatusAll, StatusToday, StatusCompleted, StatusNotCompleted}

var ErrUnknownStatus = errors.New("unknown status filter")

func (s Status) String() string {
	switch s {
	case StatusAll:
		return "all"
	case StatusToday:
		return "today"
	case StatusCompleted:
		return "completed"
	case StatusNotCompleted:
		return "not-completed"
	default:
		return ""
	}
}

// Label is the human-readable filter name.
func (s Status) Label() string {
	switch s {
	case StatusAll:
		return "All trackers"
	case StatusToday:
		return "Trackers for today"
	case StatusCompleted:
		return "Completed"
	case StatusNotCompleted:
		return "Not completed"
	default:
		return "No filter"
	}
}

// ParseStatus accepts the String form of a status; "" and "none" yield StatusNone.
func ParseStatus(in string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "none":
		return StatusNone, nil
	case "all":
		return StatusAll, nil
	case "today":
		return StatusToday, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "not-completed", "notcompleted", "not_completed", "todo":
		return StatusNotCompleted, nil
	}
	return StatusNone, fmt.Errorf("%w: %q", ErrUnknownStatus, in)
}
