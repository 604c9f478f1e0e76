package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/sadopc/habitr/internal/tracker"
)

// CreateCompletion records that the tracker was completed on day (YYYY-MM-DD).
// A second record for the same tracker and day is a no-op. Returns
// ErrNotFound if the tracker does not exist.
func (s *Store) CreateCompletion(id uuid.UUID, day string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.withTx(func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM trackers WHERE id = ?`, id.String()).Scan(&exists); err != nil {
			return fmt.Errorf("create completion: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("create completion for %s: %w", id, ErrNotFound)
		}
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO completion_records (tracker_id, day, logged_at) VALUES (?, ?, ?)`,
			id.String(), day, now,
		)
		if err != nil {
			return fmt.Errorf("create completion: %w", err)
		}
		return nil
	})
}

// DeleteCompletion removes the record for the tracker on day, if any.
func (s *Store) DeleteCompletion(id uuid.UUID, day string) error {
	_, err := s.db.Exec(
		`DELETE FROM completion_records WHERE tracker_id = ? AND day = ?`, id.String(), day,
	)
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

func (s *Store) HasCompletion(id uuid.UUID, day string) (bool, error) {
	n, err := s.CountCompletions(sq.And{CompletionForTracker(id), CompletionOnDay(day)})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CompletedTrackerIDs returns the ids of trackers with a record on day.
func (s *Store) CompletedTrackerIDs(day string) ([]uuid.UUID, error) {
	records, err := s.FetchCompletions(CompletionOnDay(day))
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.TrackerID)
	}
	return ids, nil
}

// CountCompletions counts completion records matching where; nil counts all.
func (s *Store) CountCompletions(where sq.Sqlizer) (int, error) {
	q := sq.Select("COUNT(*)").From("completion_records r")
	if where != nil {
		q = q.Where(where)
	}
	return s.count(q)
}

// FetchCompletions returns completion records matching where, sorted by
// orderBy (default: day, tracker).
func (s *Store) FetchCompletions(where sq.Sqlizer, orderBy ...string) ([]tracker.CompletionRecord, error) {
	q := sq.Select("r.id", "r.tracker_id", "r.day", "r.logged_at").From("completion_records r")
	if where != nil {
		q = q.Where(where)
	}
	if len(orderBy) == 0 {
		orderBy = []string{"r.day", "r.tracker_id"}
	}
	q = q.OrderBy(orderBy...)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build completion query: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch completions: %w", err)
	}
	defer rows.Close()

	var records []tracker.CompletionRecord
	for rows.Next() {
		var rec tracker.CompletionRecord
		var trackerID, loggedAt string
		if err := rows.Scan(&rec.ID, &trackerID, &rec.Day, &loggedAt); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(trackerID)
		if err != nil {
			continue
		}
		rec.TrackerID = id
		rec.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) CountAllCompletions() (int, error) {
	return s.CountCompletions(nil)
}

// DailyCompletions returns per-day record counts for day keys in [from, to).
// Days without records are omitted.
func (s *Store) DailyCompletions(from, to string) ([]DayCount, error) {
	query, args, err := sq.Select("r.day", "COUNT(*)").
		From("completion_records r").
		Where(CompletionBetween(from, to)).
		GroupBy("r.day").
		OrderBy("r.day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily query: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("daily completions: %w", err)
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}
