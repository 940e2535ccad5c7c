package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitleveling/fitleveling/internal/common"
	"github.com/fitleveling/fitleveling/internal/server/auth"
	"github.com/fitleveling/fitleveling/internal/server/models"
)

// Service implements credential verification and account management on top
// of a user Repository. Verification is read-only: no lockout counters, no
// audit trail.
type Service struct {
	repo   Repository
	hasher *auth.PasswordHasher
	issuer *auth.Issuer
}

func NewService(repo Repository, hasher *auth.PasswordHasher, issuer *auth.Issuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
	}
}

// VerifyCredentials looks up the user by exact email match and compares the
// password against the stored bcrypt hash.
//
// A missing user and a wrong password both come back as
// common.ErrorUnauthorized so callers cannot probe which emails are
// registered. A failing lookup comes back as common.ErrorInternal, which
// callers must surface differently (server fault, not a credential problem).
func (s *Service) VerifyCredentials(ctx context.Context, email string, password string) (*models.UserPublic, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return user.Public(), nil
}

// Login verifies the credentials and, on success, returns the public user
// projection together with a freshly issued access token.
func (s *Service) Login(ctx context.Context, email string, password string) (*models.UserPublic, string, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorSigningConfig) {
			return nil, "", err
		}
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Register creates a new user with a hashed password and logs them straight
// in. A taken email comes back as common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, name string, email string, password string) (*models.UserPublic, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorSigningConfig) {
			return nil, "", err
		}
		return nil, "", common.ErrorInternal
	}

	return user.Public(), token, nil
}

// Get returns the public projection for an already-authenticated user id.
func (s *Service) Get(ctx context.Context, id string) (*models.UserPublic, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return user.Public(), nil
}

// SetAvatar stores the avatar object key on the user record.
func (s *Service) SetAvatar(ctx context.Context, id string, key string) error {
	if err := s.repo.UpdateAvatar(ctx, id, key); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}
	return nil
}
