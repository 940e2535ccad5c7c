// Package httpapi exposes the fitleveling server over HTTP. It owns the
// route table, the JWT middleware, and the mapping from service errors to
// HTTP statuses; all business logic lives in the services it wraps.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fitleveling/fitleveling/internal/logging"
	"github.com/fitleveling/fitleveling/internal/server/auth"
	"github.com/fitleveling/fitleveling/internal/server/avatars"
	"github.com/fitleveling/fitleveling/internal/server/pets"
	"github.com/fitleveling/fitleveling/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	users   *users.Service
	pets    *pets.Service
	avatars *avatars.Service
	issuer  *auth.Issuer
}

func NewServer(a string, l logging.Logger, us *users.Service, ps *pets.Service, as *avatars.Service, issuer *auth.Issuer) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		pets:    ps,
		avatars: as,
		issuer:  issuer,
	}
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
