package main

import (
	"context"
	"os"

	webauthmigrations "github.com/klwxsrx/go-web-auth/data/sql/webauth"
	"github.com/klwxsrx/go-web-auth/internal/pkg/cmd"
	"github.com/klwxsrx/go-web-auth/internal/webauth"
	"github.com/klwxsrx/go-web-auth/internal/webauth/infra"
	pkgcmd "github.com/klwxsrx/go-web-auth/pkg/cmd"
	"github.com/klwxsrx/go-web-auth/pkg/log"
)

func main() {
	ctx := context.Background()
	config, err := cmd.ParseConfig(os.Args[0], os.Args[1:])
	if err != nil {
		log.New(log.LevelError).WithError(err).Error(ctx, "invalid configuration")
		os.Exit(1)
	}

	infraContainer := cmd.NewInfrastructureContainer(ctx, config)
	defer infraContainer.Close(ctx)

	if config.MigrateOnly {
		infraContainer.DBMigrations.MustLoad().MustRegister(webauthmigrations.Migrations)
		infraContainer.Logger.MustLoad().Info(ctx, "migrations applied")
		return
	}

	storage := infra.NewStorageContainer(config.Storage, infraContainer.DB, infraContainer.DBMigrations).MustLoad()
	storage.UserRepo.MustLoad()

	container := webauth.NewDependencyContainer(
		webauth.Config{
			Production:  config.Production,
			TokenSecret: config.TokenSecret,
		},
		storage.UserRepo,
		infraContainer.Logger,
	)

	httpServer := infraContainer.HTTPServer.MustLoad()
	container.MustRegisterHTTPHandlers(httpServer)

	infraContainer.Logger.MustLoad().
		WithField("address", config.HTTPAddress).
		Info(ctx, "starting http server")
	pkgcmd.MustRun(ctx, infraContainer.Logger.MustLoad(),
		pkgcmd.TermSignalAwaiter,
		httpServer.Listener,
	)
}
