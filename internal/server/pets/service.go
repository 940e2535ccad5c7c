package pets

import (
	"context"
	"errors"

	"github.com/fitleveling/fitleveling/internal/common"
	"github.com/fitleveling/fitleveling/internal/server/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a pet for the given user. New pets start at level 1.
func (s *Service) Create(ctx context.Context, userID string, name string, species string) (*models.Pet, error) {
	pet := &models.Pet{UserID: userID, Name: name, Species: species, Level: 1}
	pet, err := s.repo.Create(ctx, pet)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return pet, nil
}

// List returns all of the user's pets, oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]*models.Pet, error) {
	pets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return pets, nil
}

// Get returns one of the user's pets. A pet belonging to a different user is
// indistinguishable from a missing one.
func (s *Service) Get(ctx context.Context, id string, userID string) (*models.Pet, error) {
	pet, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return pet, nil
}
