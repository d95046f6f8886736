package store

import (
	"database/sql"
	"fmt"

	"github.com/mpetrov/lifeline/internal/core/model"
)

const chapterColumns = `id, type, title, start_date, end_date, color, x_position,
	parent_branch, source_entry, source_chapter, collapsed, sort_order, created_at, updated_at`

// ListChapters returns all chapters in display order.
func (s *Store) ListChapters() ([]model.Chapter, error) {
	rows, err := s.conn.Query("SELECT " + chapterColumns + " FROM chapters ORDER BY sort_order, start_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []model.Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// GetChapter returns the chapter with the given id.
func (s *Store) GetChapter(id int64) (model.Chapter, error) {
	row := s.conn.QueryRow("SELECT "+chapterColumns+" FROM chapters WHERE id = ?", id)
	return scanChapter(row)
}

// CreateChapter inserts a chapter and returns its id.
func (s *Store) CreateChapter(c model.Chapter) (int64, error) {
	if c.Type == "" {
		c.Type = model.TypeMainPeriod
	}
	if c.Color == "" {
		c.Color = model.DefaultChapterColor
	}
	res, err := s.conn.Exec(`INSERT INTO chapters
		(type, title, start_date, end_date, color, x_position, parent_branch, source_entry, source_chapter, collapsed, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(c.Type), c.Title, c.StartDate, c.EndDate, c.Color, c.XPosition,
		c.ParentBranch, c.SourceEntry, c.SourceChapter, c.Collapsed, c.Order)
	if err != nil {
		return 0, fmt.Errorf("create chapter: %w", err)
	}
	return res.LastInsertId()
}

// UpdateChapter writes all mutable fields of a chapter.
func (s *Store) UpdateChapter(c model.Chapter) error {
	_, err := s.conn.Exec(`UPDATE chapters SET
		type = ?, title = ?, start_date = ?, end_date = ?, color = ?, x_position = ?,
		parent_branch = ?, source_entry = ?, source_chapter = ?, collapsed = ?, sort_order = ?,
		updated_at = datetime('now')
		WHERE id = ?`,
		string(c.Type), c.Title, c.StartDate, c.EndDate, c.Color, c.XPosition,
		c.ParentBranch, c.SourceEntry, c.SourceChapter, c.Collapsed, c.Order, c.ID)
	if err != nil {
		return fmt.Errorf("update chapter %d: %w", c.ID, err)
	}
	return nil
}

// DeleteChapter removes a chapter. Deleting a branch removes its child
// periods first so their events detach cleanly.
func (s *Store) DeleteChapter(id int64) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM chapters WHERE parent_branch = ?", id); err != nil {
		return fmt.Errorf("delete branch periods: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM chapters WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete chapter %d: %w", id, err)
	}
	return tx.Commit()
}

// UpdateBranchPosition persists a branch's horizontal offset after a drag.
func (s *Store) UpdateBranchPosition(id int64, x float64) error {
	_, err := s.conn.Exec(
		"UPDATE chapters SET x_position = ?, updated_at = datetime('now') WHERE id = ?", x, id)
	if err != nil {
		return fmt.Errorf("update branch %d position: %w", id, err)
	}
	return nil
}

// UpdateChapterRange persists an auto-expanded chapter date range.
func (s *Store) UpdateChapterRange(id int64, startDate, endDate string) error {
	_, err := s.conn.Exec(
		"UPDATE chapters SET start_date = ?, end_date = ?, updated_at = datetime('now') WHERE id = ?",
		startDate, endDate, id)
	if err != nil {
		return fmt.Errorf("update chapter %d range: %w", id, err)
	}
	return nil
}

// CreateBranch inserts a branch chapter and its default period atomically,
// wiring the period's parent_branch to the new branch id.
func (s *Store) CreateBranch(branch model.Chapter, defaultPeriod model.Chapter) (int64, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO chapters
		(type, title, start_date, end_date, color, x_position, source_entry, source_chapter, collapsed, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(model.TypeBranch), branch.Title, branch.StartDate, branch.EndDate,
		branch.Color, branch.XPosition, branch.SourceEntry, branch.SourceChapter,
		branch.Collapsed, branch.Order)
	if err != nil {
		return 0, fmt.Errorf("create branch: %w", err)
	}
	branchID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(`INSERT INTO chapters
		(type, title, start_date, end_date, parent_branch, collapsed, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(model.TypeBranchPeriod), defaultPeriod.Title, defaultPeriod.StartDate,
		defaultPeriod.EndDate, branchID, defaultPeriod.Collapsed, defaultPeriod.Order)
	if err != nil {
		return 0, fmt.Errorf("create branch period: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return branchID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChapter(row rowScanner) (model.Chapter, error) {
	var c model.Chapter
	var chapterType string
	var endDate sql.NullString
	var parentBranch, sourceEntry, sourceChapter sql.NullInt64
	err := row.Scan(&c.ID, &chapterType, &c.Title, &c.StartDate, &endDate, &c.Color,
		&c.XPosition, &parentBranch, &sourceEntry, &sourceChapter, &c.Collapsed,
		&c.Order, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Chapter{}, err
	}
	c.Type = model.ChapterType(chapterType)
	if endDate.Valid {
		c.EndDate = &endDate.String
	}
	if parentBranch.Valid {
		c.ParentBranch = &parentBranch.Int64
	}
	if sourceEntry.Valid {
		c.SourceEntry = &sourceEntry.Int64
	}
	if sourceChapter.Valid {
		c.SourceChapter = &sourceChapter.Int64
	}
	return c, nil
}
