package cmd_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-web-auth/internal/pkg/cmd"
	"github.com/klwxsrx/go-web-auth/pkg/log"
)

func TestParseConfig_FailsWithoutTokenSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgresql://localhost/webauth")

	_, err := cmd.ParseConfig("webauth", nil)
	assert.ErrorIs(t, err, cmd.ErrTokenSecretMissing)
}

func TestParseConfig_FailsWithoutDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQL_USER", "webauth")
	t.Setenv("SQL_PASSWORD", "")
	t.Setenv("SQL_ADDRESS", "")
	t.Setenv("SQL_DATABASE", "")

	_, err := cmd.ParseConfig("webauth", nil)
	assert.ErrorIs(t, err, cmd.ErrDatabaseUnavailable)
}

func TestParseConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQL_USER", "webauth")
	t.Setenv("SQL_PASSWORD", "password")
	t.Setenv("SQL_ADDRESS", "db:5432")
	t.Setenv("SQL_DATABASE", "webauth")
	t.Setenv("SQL_CONNECTION_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDRESS", ":9000")
	t.Setenv("LOG_LEVEL", "warn")

	config, err := cmd.ParseConfig("webauth", nil)
	require.NoError(t, err)

	assert.True(t, config.Production)
	assert.Equal(t, []byte("secret"), config.TokenSecret)
	assert.Equal(t, ":9000", config.HTTPAddress)
	assert.Equal(t, log.LevelWarn, config.LogLevel)
	assert.Equal(t, cmd.StoragePostgres, config.Storage)
	require.NotNil(t, config.SQL)
	assert.Equal(t, "postgresql://webauth:password@db:5432/webauth?sslmode=disable", config.SQL.DSN.String())
	assert.Equal(t, 5*time.Second, config.SQL.ConnectionTimeout)
}

func TestParseConfig_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HTTP_ADDRESS", ":9000")

	config, err := cmd.ParseConfig("webauth", []string{"--http-address=:7000", "--storage=memory"})
	require.NoError(t, err)

	assert.False(t, config.Production)
	assert.Equal(t, ":7000", config.HTTPAddress)
	assert.Equal(t, cmd.StorageMemory, config.Storage)
	assert.Nil(t, config.SQL)
}
