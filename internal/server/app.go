// Package server initializes and runs the main application server.
// It opens the database, applies migrations, wires services, handles
// graceful shutdown, and starts the HTTP server for the media API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/mediakeeper/internal/logging"
	"github.com/dmitrijs2005/mediakeeper/internal/server/config"
	"github.com/dmitrijs2005/mediakeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/mediakeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mediakeeper/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	catalogService *services.CatalogService
	publisher      *services.ObjectPublisher
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// A store that cannot be reached at startup is fatal; there is no
	// degraded mode.
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("db connection error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	logger.Debug(context.Background(), "migrations applied")

	publisher, err := services.NewObjectPublisher(c)
	if err != nil {
		return nil, fmt.Errorf("object publisher init error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	cs := services.NewCatalogService(db, rm)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    us,
		catalogService: cs,
		publisher:      publisher,
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

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.catalogService, app.publisher, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

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

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
