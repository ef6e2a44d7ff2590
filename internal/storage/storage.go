package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/society-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// AccountStore is the member directory.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindAccountByID(ctx context.Context, id string) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// NoticeStore is the notice ledger.
type NoticeStore interface {
	CreateNotice(ctx context.Context, notice models.Notice) (models.Notice, error)
	FindNoticeByID(ctx context.Context, id string) (models.Notice, error)
	ListNotices(ctx context.Context) ([]models.Notice, error)
	UpdateNotice(ctx context.Context, id string, patch models.NoticePatch) (models.Notice, error)
	DeleteNotice(ctx context.Context, id string) error
}

// FundStore is the funds ledger.
type FundStore interface {
	CreateFund(ctx context.Context, fund models.Fund) (models.Fund, error)
	ListFunds(ctx context.Context) ([]models.Fund, error)
	DeleteFund(ctx context.Context, id string) error
}

// Store bundles every persistence concern the server needs.
type Store interface {
	AccountStore
	NoticeStore
	FundStore
	Close()
}
