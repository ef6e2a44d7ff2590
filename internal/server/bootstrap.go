package server

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hongminglow/society-be/internal/auth"
	"github.com/hongminglow/society-be/internal/config"
	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/storage"
)

// EnsureAdmin creates the configured administrator when no account uses its email.
// Member creation always yields residents, so this is the only way an Admin comes to exist.
func EnsureAdmin(ctx context.Context, store storage.AccountStore, admin config.AdminBootstrap) error {
	if !admin.Enabled() {
		return nil
	}

	existing, err := store.FindAccountByEmail(ctx, admin.Email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			log.Printf("bootstrap: %s exists with role %s; leaving it unchanged", admin.Email, existing.Role)
		}
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("bootstrap admin lookup: %w", err)
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("bootstrap admin hash: %w", err)
	}
	_, err = store.CreateAccount(ctx, models.Account{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin create: %w", err)
	}
	log.Printf("bootstrap: created administrator %s", admin.Email)
	return nil
}
