package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/sadopc/habitr/internal/tracker"
)

var trackerColumns = []string{
	"t.id", "t.name", "t.emoji", "t.color", "t.schedule",
	"COALESCE(c.name, '')",
	"(SELECT COUNT(*) FROM completion_records r WHERE r.tracker_id = t.id)",
}

// CreateTracker persists t under categoryName, creating the category if needed.
// Category and tracker are written in one transaction.
func (s *Store) CreateTracker(t tracker.Tracker, categoryName string) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("insert tracker: %w", err)
	}
	color, schedule, err := encodeTracker(t)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	return s.withTx(func(tx *sql.Tx) error {
		catID, err := ensureCategoryTx(tx, categoryName)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			`INSERT INTO trackers (id, name, emoji, color, schedule, category_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID.String(), t.Name, t.Emoji, color, schedule, catID, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert tracker: %w", err)
		}
		return nil
	})
}

// UpdateTracker overwrites every field of the tracker with id t.ID and
// reassigns it to categoryName. Returns ErrNotFound if the tracker is missing.
func (s *Store) UpdateTracker(t tracker.Tracker, categoryName string) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("update tracker: %w", err)
	}
	color, schedule, err := encodeTracker(t)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	return s.withTx(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow(`SELECT COUNT(*) FROM trackers WHERE id = ?`, t.ID.String()).Scan(&exists)
		if err != nil {
			return fmt.Errorf("update tracker %s: %w", t.ID, err)
		}
		if exists == 0 {
			return fmt.Errorf("update tracker %s: %w", t.ID, ErrNotFound)
		}

		catID, err := ensureCategoryTx(tx, categoryName)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			`UPDATE trackers SET name = ?, emoji = ?, color = ?, schedule = ?, category_id = ?, updated_at = ?
			 WHERE id = ?`,
			t.Name, t.Emoji, color, schedule, catID, now, t.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("update tracker %s: %w", t.ID, err)
		}
		return nil
	})
}

// DeleteTracker removes the tracker and all of its completion records.
func (s *Store) DeleteTracker(id uuid.UUID) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM completion_records WHERE tracker_id = ?`, id.String()); err != nil {
			return fmt.Errorf("delete records of %s: %w", id, err)
		}
		res, err := tx.Exec(`DELETE FROM trackers WHERE id = ?`, id.String())
		if err != nil {
			return fmt.Errorf("delete tracker %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("delete tracker %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// FetchTrackers returns raw tracker rows matching where, sorted by orderBy.
// A nil where matches every tracker.
func (s *Store) FetchTrackers(where sq.Sqlizer, orderBy ...string) ([]TrackerRow, error) {
	q := sq.Select(trackerColumns...).
		From("trackers t").
		LeftJoin("categories c ON c.id = t.category_id")
	if where != nil {
		q = q.Where(where)
	}
	if len(orderBy) > 0 {
		q = q.OrderBy(orderBy...)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tracker query: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch trackers: %w", err)
	}
	defer rows.Close()

	var out []TrackerRow
	for rows.Next() {
		var r TrackerRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Emoji, &r.Color, &r.Schedule, &r.Category, &r.CompletedDays); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetTracker returns a decoded tracker and its category name.
func (s *Store) GetTracker(id uuid.UUID) (tracker.Tracker, string, error) {
	rows, err := s.FetchTrackers(sq.Eq{"t.id": id.String()})
	if err != nil {
		return tracker.Tracker{}, "", err
	}
	if len(rows) == 0 {
		return tracker.Tracker{}, "", fmt.Errorf("get tracker %s: %w", id, ErrNotFound)
	}
	t, err := rows[0].Decode()
	if err != nil {
		return tracker.Tracker{}, "", err
	}
	return t, rows[0].Category, nil
}

// CountTrackers counts trackers matching where; nil counts all.
func (s *Store) CountTrackers(where sq.Sqlizer) (int, error) {
	q := sq.Select("COUNT(*)").
		From("trackers t").
		LeftJoin("categories c ON c.id = t.category_id")
	if where != nil {
		q = q.Where(where)
	}
	return s.count(q)
}
