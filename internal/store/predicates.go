package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/sadopc/habitr/internal/tracker"
)

// Tracker queries alias trackers as "t" and categories as "c"; completion
// queries alias completion_records as "r".

// TrackerHasWeekday matches trackers whose schedule contains wd. A schedule
// that is not valid JSON matches nothing instead of failing the query.
func TrackerHasWeekday(wd tracker.Weekday) sq.Sqlizer {
	return sq.Expr(
		"EXISTS (SELECT 1 FROM json_each(CASE WHEN json_valid(t.schedule) THEN t.schedule ELSE '[]' END) AS d WHERE d.value = ?)",
		int(wd),
	)
}

// TrackerIDIn matches trackers whose id is in ids. An empty set matches nothing.
func TrackerIDIn(ids []uuid.UUID) sq.Sqlizer {
	return sq.Eq{"t.id": idStrings(ids)}
}

// TrackerIDNotIn matches trackers whose id is not in ids. An empty set matches everything.
func TrackerIDNotIn(ids []uuid.UUID) sq.Sqlizer {
	return sq.NotEq{"t.id": idStrings(ids)}
}

// TrackerNamed matches trackers whose name equals name, ignoring ASCII case.
func TrackerNamed(name string) sq.Sqlizer {
	return sq.Expr("t.name = ? COLLATE NOCASE", name)
}

// TrackerInCategory matches trackers assigned to the named category.
func TrackerInCategory(name string) sq.Sqlizer {
	return sq.Eq{"c.name": name}
}

// CompletionOnDay matches completion records for a calendar day key.
func CompletionOnDay(day string) sq.Sqlizer {
	return sq.Eq{"r.day": day}
}

// CompletionForTracker matches completion records of one tracker.
func CompletionForTracker(id uuid.UUID) sq.Sqlizer {
	return sq.Eq{"r.tracker_id": id.String()}
}

// CompletionBetween matches records whose day key lies in [from, to).
func CompletionBetween(from, to string) sq.Sqlizer {
	return sq.And{sq.GtOrEq{"r.day": from}, sq.Lt{"r.day": to}}
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
