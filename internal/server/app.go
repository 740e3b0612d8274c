// Package server initializes and runs the password manager server: it wires
// configuration, storage, services, the notification bus and the HTTP
// surface together, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/auth"
	"github.com/Adam9898/pw-manager-backend/internal/server/config"
	"github.com/Adam9898/pw-manager-backend/internal/server/httpapi"
	"github.com/Adam9898/pw-manager-backend/internal/server/notifications"
	"github.com/Adam9898/pw-manager-backend/internal/server/repositories/repomanager"
	"github.com/Adam9898/pw-manager-backend/internal/server/services"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	bus    *notifications.Bus
	server *http.Server
}

// NewApp builds the full application. It fails instead of starting with an
// unusable setup: an empty signing secret or an unreachable database is a
// construction error, not a runtime surprise.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if cfg.SecretKey == "" {
		return nil, errors.New("config error: signing secret key is not set")
	}

	tokens, err := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := services.NewUserService(repos.Users(), tokens, logger)
	secretService := services.NewSecretService(repos.Secrets(), logger)
	bus := notifications.NewBus(logger)

	handler := httpapi.NewHandler(userService, secretService, bus, logger)
	router := httpapi.NewRouter(handler, tokens, repos.Users(), logger)

	return &App{
		config: cfg,
		logger: logger,
		repos:  repos,
		bus:    bus,
		server: &http.Server{Addr: cfg.EndpointAddr, Handler: router},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then drains in-flight requests and closes the bus and database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}

	app.bus.Close()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	return nil
}
