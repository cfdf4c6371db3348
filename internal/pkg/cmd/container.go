package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/klwxsrx/go-web-auth/pkg/cmd"
	"github.com/klwxsrx/go-web-auth/pkg/http"
	"github.com/klwxsrx/go-web-auth/pkg/lazy"
	"github.com/klwxsrx/go-web-auth/pkg/log"
	"github.com/klwxsrx/go-web-auth/pkg/metric"
	"github.com/klwxsrx/go-web-auth/pkg/observability"
	"github.com/klwxsrx/go-web-auth/pkg/sql"
)

type InfrastructureContainer struct {
	HTTPServer   lazy.Loader[http.Server]
	DBMigrations lazy.Loader[SQLMigrations]
	DB           lazy.Loader[sql.Database]
	Observer     lazy.Loader[observability.Observer]
	Logger       lazy.Loader[log.Logger]
}

func NewInfrastructureContainer(ctx context.Context, config *Config) *InfrastructureContainer {
	logger := lazy.Value(log.New(config.LogLevel))
	observer := observerProvider(logger)

	db := sqlDatabaseProvider(ctx, config, logger)
	dbMigrations := sqlMigrationsProvider(ctx, db, logger)

	return &InfrastructureContainer{
		HTTPServer:   httpServerProvider(config, db, observer, logger),
		DBMigrations: dbMigrations,
		DB:           db,
		Observer:     observer,
		Logger:       logger,
	}
}

func (i *InfrastructureContainer) Close(ctx context.Context) {
	if cmd.HandleAppPanic(ctx, i.Logger.MustLoad(), recover()) {
		defer os.Exit(1)
	}

	i.DB.IfLoaded(func(db sql.Database) { db.Close(ctx) })
}

func observerProvider(
	logger lazy.Loader[log.Logger],
) lazy.Loader[observability.Observer] {
	return lazy.New(func() (observability.Observer, error) {
		return observability.New(
			observability.WithFieldsLogging(logger.MustLoad(), observability.LogFieldRequestID),
		), nil
	})
}

func sqlDatabaseProvider(
	ctx context.Context,
	config *Config,
	logger lazy.Loader[log.Logger],
) lazy.Loader[sql.Database] {
	return lazy.New(func() (sql.Database, error) {
		if config.SQL == nil {
			return nil, fmt.Errorf("sql database is not configured for %s storage", config.Storage)
		}

		db, err := sql.NewDatabase(ctx, config.SQL, logger.MustLoad())
		if err != nil {
			panic(fmt.Errorf("open sql connection: %w", err))
		}

		return db, nil
	})
}

func sqlMigrationsProvider(
	ctx context.Context,
	db lazy.Loader[sql.Database],
	logger lazy.Loader[log.Logger],
) lazy.Loader[SQLMigrations] {
	return lazy.New(func() (SQLMigrations, error) {
		return NewSQLMigrations(ctx, db.MustLoad(), logger.MustLoad()), nil
	})
}

func httpServerProvider(
	config *Config,
	db lazy.Loader[sql.Database],
	observer lazy.Loader[observability.Observer],
	logger lazy.Loader[log.Logger],
) lazy.Loader[http.Server] {
	return lazy.New(func() (http.Server, error) {
		var healthChecks []http.HealthCheck
		if config.Storage == StoragePostgres {
			healthChecks = append(healthChecks, func(ctx context.Context) error {
				database, err := db.Load()
				if err != nil {
					return err
				}
				return database.Ping(ctx)
			})
		}

		return NewHTTPServer(
			config.HTTPAddress,
			config.Production,
			observer.MustLoad(),
			logger.MustLoad(),
			healthChecks...,
		), nil
	})
}

// NewHTTPServer builds the server with the middleware chain shared by every route.
func NewHTTPServer(
	address string,
	production bool,
	observer observability.Observer,
	logger log.Logger,
	healthChecks ...http.HealthCheck,
) http.Server {
	return http.NewServer(
		address,
		http.NewErrorHandler(logger, observer, production),
		http.WithObservability(
			observer,
			http.RequestIDHeaderExtractor(http.RequestIDHeader),
			http.RequestIDRandomUUIDExtractor(),
		),
		http.WithLogging(logger),
		http.WithMetrics(metric.NewLogMetrics(logger, log.LevelDebug)),
		http.WithSecurityHeaders(production),
		http.WithHealthCheck(healthChecks...),
	)
}
