// Package users contains the user aggregate: repository, postgres
// implementation, and the credential-verification service.
package users

import (
	"context"

	"github.com/fitleveling/fitleveling/internal/server/models"
)

// Repository is the user record store.
//
// FindByEmail matches the email byte-for-byte; no case folding or
// normalization is applied. It returns common.ErrorNotFound when no record
// matches. Create returns common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar string) error
}
