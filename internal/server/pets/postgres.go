package pets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitleveling/fitleveling/internal/common"
	"github.com/fitleveling/fitleveling/internal/dbx"
	"github.com/fitleveling/fitleveling/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, pet *models.Pet) (*models.Pet, error) {

	query :=
		`INSERT INTO pets (user_id, name, species, level)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		pet.UserID, pet.Name, pet.Species, pet.Level).Scan(&pet.ID, &pet.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pet, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Pet, error) {
	query :=
		`SELECT id, user_id, name, species, level, created_at FROM pets
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Pet
	for rows.Next() {
		pet := &models.Pet{}
		if err := rows.Scan(&pet.ID, &pet.UserID, &pet.Name, &pet.Species, &pet.Level, &pet.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string, userID string) (*models.Pet, error) {
	query :=
		`SELECT id, user_id, name, species, level, created_at FROM pets
		 WHERE id = $1 AND user_id = $2
		 `

	pet := &models.Pet{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&pet.ID, &pet.UserID, &pet.Name, &pet.Species, &pet.Level, &pet.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pet, nil
}
