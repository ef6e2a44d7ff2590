package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

const noticeColumns = `id, title, description, date`

// CreateNotice inserts a new notice row.
func (s *Store) CreateNotice(ctx context.Context, notice models.Notice) (models.Notice, error) {
	if notice.ID == "" {
		notice.ID = storage.NewID()
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO notices (id, title, description, date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+noticeColumns,
		notice.ID, notice.Title, notice.Description, notice.Date)
	return scanNotice(row)
}

// FindNoticeByID fetches a notice by identifier.
func (s *Store) FindNoticeByID(ctx context.Context, id string) (models.Notice, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id)
	return scanNotice(row)
}

// ListNotices returns every notice ordered by creation time.
func (s *Store) ListNotices(ctx context.Context) ([]models.Notice, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+noticeColumns+` FROM notices ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	notices := []models.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, notice)
	}
	return notices, rows.Err()
}

// UpdateNotice changes only the fields present in patch and returns the stored result.
func (s *Store) UpdateNotice(ctx context.Context, id string, patch models.NoticePatch) (models.Notice, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE notices SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			date = COALESCE($4, date)
		WHERE id = $1
		RETURNING `+noticeColumns,
		id, patch.Title, patch.Description, patch.Date)
	return scanNotice(row)
}

// DeleteNotice removes a notice.
func (s *Store) DeleteNotice(ctx context.Context, id string) error {
	return deleteByID(ctx, s.pool, `DELETE FROM notices WHERE id = $1`, id)
}

func scanNotice(row pgx.Row) (models.Notice, error) {
	var notice models.Notice
	if err := row.Scan(&notice.ID, &notice.Title, &notice.Description, &notice.Date); err != nil {
		return models.Notice{}, notFound(err)
	}
	notice.Date = notice.Date.UTC()
	return notice, nil
}
