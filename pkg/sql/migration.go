package sql

import (
	"context"
	"fmt"
	"hash/fnv"
	"io/fs"
	"sort"
	"strings"

	"github.com/klwxsrx/go-web-auth/pkg/log"
)

const (
	migrationLockName = "perform_migration_lock"
	querySeparator    = ";\n"

	migrationTableDDL = `
		create table if not exists migration (
			id text primary key
		)
	`
)

type (
	MigrationSource struct {
		name  string
		files fs.ReadDirFS
	}

	Migrator struct {
		db     TxClient
		logger log.Logger
	}
)

// FSMigrations treats every file of the root directory as a migration, applied in name order.
func FSMigrations(name string, files fs.ReadDirFS) MigrationSource {
	return MigrationSource{name: name, files: files}
}

func NewMigrator(db TxClient, logger log.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

func (m *Migrator) Execute(ctx context.Context, sources ...MigrationSource) error {
	_, err := m.db.ExecContext(ctx, migrationTableDDL)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	for _, source := range sources {
		err = m.executeSource(ctx, source)
		if err != nil {
			return fmt.Errorf("execute %s migrations: %w", source.name, err)
		}
	}

	return nil
}

func (m *Migrator) executeSource(ctx context.Context, source MigrationSource) error {
	entries, err := source.files.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	fileNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileNames = append(fileNames, entry.Name())
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		content, err := fs.ReadFile(source.files, fileName)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fileName, err)
		}

		migrationID := fmt.Sprintf("%s/%s", source.name, fileName)
		err = m.performMigration(ctx, migrationID, string(content))
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *Migrator) performMigration(ctx context.Context, migrationID, migrationSQL string) (err error) {
	if strings.TrimSpace(migrationSQL) == "" {
		return fmt.Errorf("migration %s is empty", migrationID)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("start tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "select pg_advisory_xact_lock($1)", lockID(migrationLockName))
	if err != nil {
		return fmt.Errorf("get migration lock: %w", err)
	}

	var performed bool
	err = tx.GetContext(ctx, &performed, "select exists(select 1 from migration where id = $1)", migrationID)
	if err != nil {
		return fmt.Errorf("check migration %s: %w", migrationID, err)
	}
	if performed {
		return tx.Commit()
	}

	for _, query := range splitToQueries(migrationSQL) {
		_, err = tx.ExecContext(ctx, query)
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", migrationID, err)
		}
	}

	_, err = tx.ExecContext(ctx, "insert into migration (id) values ($1)", migrationID)
	if err != nil {
		return fmt.Errorf("store migration %s: %w", migrationID, err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	m.logger.WithField("migrationID", migrationID).Info(ctx, "migration executed successfully")
	return nil
}

func splitToQueries(sql string) []string {
	queries := strings.Split(sql, querySeparator)
	result := make([]string, 0, len(queries))
	for _, query := range queries {
		if strings.TrimSpace(query) == "" {
			continue
		}
		result = append(result, query)
	}

	return result
}

func lockID(name string) int64 {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(name))
	return int64(hash.Sum64())
}
