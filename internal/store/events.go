package store

import (
	"database/sql"
	"fmt"

	"github.com/mpetrov/lifeline/internal/core/model"
)

const eventColumns = "id, chapter, title, date, content, sort_order, created_at, updated_at"

// ListEvents returns all events in chronological order.
func (s *Store) ListEvents() ([]model.Event, error) {
	rows, err := s.conn.Query("SELECT " + eventColumns + " FROM events ORDER BY date, sort_order")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent returns the event with the given id.
func (s *Store) GetEvent(id int64) (model.Event, error) {
	row := s.conn.QueryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	return scanEvent(row)
}

// CreateEvent inserts an event and returns its id.
func (s *Store) CreateEvent(e model.Event) (int64, error) {
	res, err := s.conn.Exec(
		"INSERT INTO events (chapter, title, date, content, sort_order) VALUES (?, ?, ?, ?, ?)",
		e.Chapter, e.Title, e.Date, e.Content, e.Order)
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return res.LastInsertId()
}

// UpdateEvent writes all mutable fields of an event.
func (s *Store) UpdateEvent(e model.Event) error {
	_, err := s.conn.Exec(`UPDATE events SET
		chapter = ?, title = ?, date = ?, content = ?, sort_order = ?, updated_at = datetime('now')
		WHERE id = ?`,
		e.Chapter, e.Title, e.Date, e.Content, e.Order, e.ID)
	if err != nil {
		return fmt.Errorf("update event %d: %w", e.ID, err)
	}
	return nil
}

// DeleteEvent removes an event along with any branches spawned from it.
func (s *Store) DeleteEvent(id int64) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Branches spawned from this entry lose their origin; remove them and
	// their periods rather than leaving dangling side-tracks.
	rows, err := tx.Query("SELECT id FROM chapters WHERE source_entry = ? AND type = ?", id, string(model.TypeBranch))
	if err != nil {
		return fmt.Errorf("find spawned branches: %w", err)
	}
	var spawned []int64
	for rows.Next() {
		var branchID int64
		if err := rows.Scan(&branchID); err != nil {
			rows.Close()
			return err
		}
		spawned = append(spawned, branchID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, branchID := range spawned {
		if _, err := tx.Exec("DELETE FROM chapters WHERE parent_branch = ?", branchID); err != nil {
			return fmt.Errorf("delete spawned branch periods: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM chapters WHERE id = ?", branchID); err != nil {
			return fmt.Errorf("delete spawned branch: %w", err)
		}
	}

	if _, err := tx.Exec("DELETE FROM events WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return tx.Commit()
}

func scanEvent(row rowScanner) (model.Event, error) {
	var e model.Event
	var chapter sql.NullInt64
	err := row.Scan(&e.ID, &chapter, &e.Title, &e.Date, &e.Content, &e.Order, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Event{}, err
	}
	if chapter.Valid {
		e.Chapter = &chapter.Int64
	}
	return e, nil
}
