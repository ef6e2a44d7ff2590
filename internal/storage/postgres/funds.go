package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const fundColumns = `id, information, date, amount::text, user_id`

// CreateFund inserts a new fund row.
func (s *Store) CreateFund(ctx context.Context, fund models.Fund) (models.Fund, error) {
	if fund.ID == "" {
		fund.ID = storage.NewID()
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO funds (id, information, date, amount, user_id)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING `+fundColumns,
		fund.ID, fund.Information, fund.Date, fund.Amount.String(), fund.User)
	return scanFund(row)
}

// ListFunds returns every fund ordered by creation time.
func (s *Store) ListFunds(ctx context.Context) ([]models.Fund, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+fundColumns+` FROM funds ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	defer rows.Close()

	funds := []models.Fund{}
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		funds = append(funds, fund)
	}
	return funds, rows.Err()
}

// DeleteFund removes a fund.
func (s *Store) DeleteFund(ctx context.Context, id string) error {
	return deleteByID(ctx, s.pool, `DELETE FROM funds WHERE id = $1`, id)
}

func scanFund(row pgx.Row) (models.Fund, error) {
	var fund models.Fund
	var amount string
	if err := row.Scan(&fund.ID, &fund.Information, &fund.Date, &amount, &fund.User); err != nil {
		return models.Fund{}, notFound(err)
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Fund{}, fmt.Errorf("parse fund amount %q: %w", amount, err)
	}
	fund.Amount = parsed
	fund.Date = fund.Date.UTC()
	return fund, nil
}
