package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/sadopc/habitr/internal/tracker"
)

// EnsureCategory returns the category with the given name, creating it if absent.
func (s *Store) EnsureCategory(name string) (*tracker.Category, error) {
	var c *tracker.Category
	err := s.withTx(func(tx *sql.Tx) error {
		id, err := ensureCategoryTx(tx, name)
		if err != nil {
			return err
		}
		c = &tracker.Category{ID: id, Name: name}
		return nil
	})
	return c, err
}

func ensureCategoryTx(tx *sql.Tx, name string) (int64, error) {
	if _, err := tx.Exec(`INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("insert category %q: %w", name, err)
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM categories WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("get category %q: %w", name, err)
	}
	return id, nil
}

func (s *Store) ListCategories() ([]tracker.Category, error) {
	rows, err := s.db.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []tracker.Category
	for rows.Next() {
		var c tracker.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CountCategories counts categories matching where (alias "c"); nil counts all.
func (s *Store) CountCategories(where sq.Sqlizer) (int, error) {
	q := sq.Select("COUNT(*)").From("categories c")
	if where != nil {
		q = q.Where(where)
	}
	return s.count(q)
}

func (s *Store) count(q sq.SelectBuilder) (int, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
