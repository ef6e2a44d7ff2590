package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, name, email, password_hash, phone, address, room_no, role, created_at`

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.ID == "" {
		account.ID = storage.NewID()
	}
	query := `
		INSERT INTO accounts (id, name, email, password_hash, phone, address, room_no, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + accountColumns
	row := s.pool.QueryRow(ctx, query, account.ID, account.Name, account.Email, account.PasswordHash,
		account.Phone, account.Address, account.RoomNo, string(account.Role))
	created, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, err
	}
	return created, nil
}

// FindAccountByID fetches an account by identifier.
func (s *Store) FindAccountByID(ctx context.Context, id string) (models.Account, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// FindAccountByEmail fetches an account by email address, ignoring case.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1)`, email)
	return scanAccount(row)
}

// ListAccounts returns every account ordered by creation time.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// DeleteAccount removes an account. Funds referencing it are left untouched.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	return deleteByID(ctx, s.pool, `DELETE FROM accounts WHERE id = $1`, id)
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var account models.Account
	var role string
	if err := row.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.Phone,
		&account.Address, &account.RoomNo, &role, &account.CreatedAt); err != nil {
		return models.Account{}, notFound(err)
	}
	parsed, err := models.ParseRole(role)
	if err != nil {
		return models.Account{}, fmt.Errorf("scan account %s: %w", account.ID, err)
	}
	account.Role = parsed
	account.CreatedAt = account.CreatedAt.UTC()
	return account, nil
}
