// Package server initializes and runs the fitleveling application server.
// It wires configuration, storage, services, and the HTTP endpoint, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fitleveling/fitleveling/internal/logging"
	"github.com/fitleveling/fitleveling/internal/server/auth"
	"github.com/fitleveling/fitleveling/internal/server/avatars"
	"github.com/fitleveling/fitleveling/internal/server/config"
	"github.com/fitleveling/fitleveling/internal/server/httpapi"
	"github.com/fitleveling/fitleveling/internal/server/pets"
	"github.com/fitleveling/fitleveling/internal/server/shared/db"
	"github.com/fitleveling/fitleveling/internal/server/users"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	issuer        *auth.Issuer
	userService   *users.Service
	petService    *pets.Service
	avatarService *avatars.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	m, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	us := users.NewService(m.Users(), auth.NewPasswordHasher(), issuer)
	ps := pets.NewService(m.Pets())
	as := avatars.NewService(cfg)

	return &App{
		config:        cfg,
		logger:        logger,
		issuer:        issuer,
		userService:   us,
		petService:    ps,
		avatarService: as,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.petService, app.avatarService, app.issuer)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
