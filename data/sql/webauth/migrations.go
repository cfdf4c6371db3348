package webauth

import (
	"embed"

	"github.com/klwxsrx/go-web-auth/pkg/sql"
)

var Migrations = sql.FSMigrations("webauth", migrationFiles)

//go:embed *.sql
var migrationFiles embed.FS
