// Package server wires the reference GraphQL server: storage backend,
// services, HTTP transport and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/dmitrijs2005/employeeboard/internal/server/config"
	"github.com/dmitrijs2005/employeeboard/internal/server/gql"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/employeeboard/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	server      *gql.Server
}

// openRepositories is a seam for tests.
var openRepositories = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	if dsn == "" {
		return repomanager.NewMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(ctx, dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	m, err := openRepositories(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, data is kept in memory")
	}

	resolver := gql.NewResolver(
		services.NewEmployeeService(m),
		services.NewPostService(m),
		services.NewCommentService(m),
		logger.With("module", "resolver"),
	)
	srv := gql.NewServer(c.EndpointAddr, gql.NewHandler(resolver, logger), logger, c.ShutdownTimeout)

	return &App{config: c, logger: logger, repomanager: m, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a stop signal arrives or ctx is canceled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(context.Background(), "close storage", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
