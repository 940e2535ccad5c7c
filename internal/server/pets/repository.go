// Package pets contains the pet aggregate: repository, postgres
// implementation, and service.
package pets

import (
	"context"

	"github.com/fitleveling/fitleveling/internal/server/models"
)

// Repository is the pet record store. Lookups are always scoped to the
// owning user.
type Repository interface {
	Create(ctx context.Context, pet *models.Pet) (*models.Pet, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Pet, error)
	FindByID(ctx context.Context, id string, userID string) (*models.Pet, error)
}
