package db

import (
	"context"
	"database/sql"

	"github.com/fitleveling/fitleveling/internal/server/pets"
	"github.com/fitleveling/fitleveling/internal/server/users"
)

// RepositoryManager owns the database handle and hands out per-aggregate
// repositories bound to it.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Pets() pets.Repository
}
