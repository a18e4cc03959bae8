package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/models"
	"catalog/repository"
	"catalog/utils"
)

// EnsureSuperuser creates an admin account for email unless one is already
// registered. It reports whether a user was created. An existing account is
// left untouched.
func EnsureSuperuser(ctx context.Context, users repository.UserRepository, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	user := &models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin}
	if err := users.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
