package infra

import (
	"fmt"

	"github.com/klwxsrx/go-web-auth/data/sql/webauth"
	"github.com/klwxsrx/go-web-auth/internal/pkg/cmd"
	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
	"github.com/klwxsrx/go-web-auth/internal/webauth/infra/memory"
	"github.com/klwxsrx/go-web-auth/internal/webauth/infra/sql"
	"github.com/klwxsrx/go-web-auth/pkg/lazy"
	pkgsql "github.com/klwxsrx/go-web-auth/pkg/sql"
)

type StorageContainer struct {
	UserRepo lazy.Loader[domain.UserRepository]
}

func NewStorageContainer(
	storage cmd.Storage,
	db lazy.Loader[pkgsql.Database],
	dbMigrations lazy.Loader[cmd.SQLMigrations],
) lazy.Loader[StorageContainer] {
	return lazy.New(func() (StorageContainer, error) {
		switch storage {
		case cmd.StoragePostgres:
			return StorageContainer{
				UserRepo: sqlUserRepoProvider(db, dbMigrations),
			}, nil
		case cmd.StorageMemory:
			return StorageContainer{
				UserRepo: lazy.Value(memory.NewUserRepository()),
			}, nil
		default:
			return StorageContainer{}, fmt.Errorf("unknown storage %q", storage)
		}
	})
}

func sqlUserRepoProvider(
	db lazy.Loader[pkgsql.Database],
	dbMigrations lazy.Loader[cmd.SQLMigrations],
) lazy.Loader[domain.UserRepository] {
	return lazy.New(func() (domain.UserRepository, error) {
		dbMigrations.MustLoad().MustRegister(webauth.Migrations)
		return sql.NewUserRepository(db.MustLoad()), nil
	})
}
