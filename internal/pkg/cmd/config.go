package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/klwxsrx/go-web-auth/pkg/env"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
	"github.com/klwxsrx/go-web-auth/pkg/log"
	"github.com/klwxsrx/go-web-auth/pkg/sql"
	"github.com/klwxsrx/go-web-auth/pkg/strings"
)

const (
	StoragePostgres Storage = "postgres"
	StorageMemory   Storage = "memory"

	environmentProduction = "production"

	flagHTTPAddress = "http-address"
	flagStorage     = "storage"
	flagLogLevel    = "log-level"
	flagMigrateOnly = "migrate-only"
)

var (
	ErrTokenSecretMissing  = errors.New("JWT_SECRET is required")
	ErrDatabaseUnavailable = errors.New("DATABASE_URL or SQL_USER, SQL_PASSWORD, SQL_ADDRESS and SQL_DATABASE are required")
)

type (
	Storage string

	Config struct {
		Production  bool
		HTTPAddress string
		TokenSecret []byte
		Storage     Storage
		SQL         *sql.Config
		LogLevel    log.Level
		MigrateOnly bool
	}
)

// ParseConfig reads the environment, flags take precedence over the variables named after them.
func ParseConfig(programName string, args []string) (*Config, error) {
	flags := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flags.String(flagHTTPAddress, pkghttp.DefaultServerAddress, "address the http server listens on")
	flags.String(flagStorage, string(StoragePostgres), "user storage: postgres or memory")
	flags.String(flagLogLevel, "info", "log level: disabled, debug, info, warn or error")
	flags.Bool(flagMigrateOnly, false, "apply database migrations and exit")
	err := flags.Parse(args)
	if err != nil {
		return nil, err
	}

	appEnv, err := env.ParseOrDefault[string]("APP_ENV", "development")
	if err != nil {
		return nil, err
	}

	config := &Config{
		Production:  appEnv == environmentProduction,
		HTTPAddress: stringSetting(flags, flagHTTPAddress),
		Storage:     Storage(stringSetting(flags, flagStorage)),
		LogLevel:    log.ParseLevel(stringSetting(flags, flagLogLevel)),
	}
	config.MigrateOnly, err = flags.GetBool(flagMigrateOnly)
	if err != nil {
		return nil, err
	}

	secret, err := env.Parse[string]("JWT_SECRET")
	if errors.Is(err, env.ErrNotFound) {
		return nil, ErrTokenSecretMissing
	}
	if err != nil {
		return nil, err
	}
	config.TokenSecret = []byte(secret)

	switch config.Storage {
	case StoragePostgres:
		config.SQL, err = parseSQLConfig()
		if err != nil {
			return nil, err
		}
	case StorageMemory:
		if config.MigrateOnly {
			return nil, fmt.Errorf("--%s requires %s storage", flagMigrateOnly, StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown storage %q", config.Storage)
	}

	return config, nil
}

func stringSetting(flags *pflag.FlagSet, name string) string {
	value, _ := flags.GetString(name)
	if flags.Changed(name) {
		return value
	}

	return env.Must(env.ParseOrDefault(strings.ToScreamingSnakeCase(name), value))
}

func parseSQLConfig() (*sql.Config, error) {
	config := &sql.Config{}

	url, err := env.ParseOrDefault[string]("DATABASE_URL", "")
	if err != nil {
		return nil, err
	}
	config.DSN.URL = url

	if url == "" {
		var errs []error
		parse := func(key string) string {
			value, err := env.Parse[string](key)
			errs = append(errs, err)
			return value
		}
		config.DSN.User = parse("SQL_USER")
		config.DSN.Password = parse("SQL_PASSWORD")
		config.DSN.Address = parse("SQL_ADDRESS")
		config.DSN.Database = parse("SQL_DATABASE")
		if err = errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
		}
	}

	config.MaxOpenConnections, err = env.ParseOrDefault("SQL_MAX_OPEN_CONNECTIONS", 0)
	if err != nil {
		return nil, err
	}
	config.MaxIdleConnections, err = env.ParseOrDefault("SQL_MAX_IDLE_CONNECTIONS", 0)
	if err != nil {
		return nil, err
	}

	connTimeout, err := env.ParseOptional[*time.Duration]("SQL_CONNECTION_TIMEOUT")
	if err != nil {
		return nil, err
	}
	if connTimeout != nil {
		config.ConnectionTimeout = *connTimeout
	}

	return config, nil
}
