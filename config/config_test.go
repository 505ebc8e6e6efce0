package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearDBEnv(t *testing.T) {
	for _, key := range []string{
		"MYSQL_URL", "DATABASE_URL", "DB_USER", "DB_PASS", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_AUTO_MIGRATE", "DB_SEED", "CORS_ORIGINS", "ADMIN_API_KEY", "PORT", "ENV", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearDBEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.AdminAPIKey)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, "room_management_system", cfg.Database.Name)

	parsed, err := mysql.ParseDSN(cfg.Database.DSN)
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "127.0.0.1:3306", parsed.Addr)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_USER", "hotel")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "rooms")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("DB_SEED", "1")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ADMIN_API_KEY", " k3y ")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "k3y", cfg.AdminAPIKey)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Database.Seed)

	parsed, err := mysql.ParseDSN(cfg.Database.DSN)
	require.NoError(t, err)
	assert.Equal(t, "hotel", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "db:3307", parsed.Addr)
	assert.Equal(t, "rooms", parsed.DBName)
}

func TestLoad_MySQLURL(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("MYSQL_URL", "mysql://app:pw@mariadb/room_management_system?timeout=5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "room_management_system", cfg.Database.Name)

	parsed, err := mysql.ParseDSN(cfg.Database.DSN)
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "pw", parsed.Passwd)
	assert.Equal(t, "mariadb:3306", parsed.Addr)
	assert.Equal(t, "5s", parsed.Timeout.String())
	assert.True(t, parsed.ClientFoundRows)
}

func TestLoad_LocationIsAlwaysUTC(t *testing.T) {
	for _, raw := range []string{
		"mysql://app:pw@mariadb/rooms?loc=Asia%2FBangkok",
		"mysql://app:pw@mariadb/rooms?loc=America%2FNew_York",
		"u:p@tcp(10.0.0.2:3306)/rooms?loc=Asia%2FBangkok",
	} {
		t.Run(raw, func(t *testing.T) {
			clearDBEnv(t)
			t.Setenv("MYSQL_URL", raw)

			cfg, err := Load()
			require.NoError(t, err)

			parsed, err := mysql.ParseDSN(cfg.Database.DSN)
			require.NoError(t, err)
			assert.Equal(t, time.UTC, parsed.Loc)
		})
	}
}

func TestLoad_RawDSN(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DATABASE_URL", "u:p@tcp(10.0.0.2:3306)/rooms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "rooms", cfg.Database.Name)

	parsed, err := mysql.ParseDSN(cfg.Database.DSN)
	require.NoError(t, err)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
}

func TestLoad_Errors(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("MYSQL_URL", "mysql://app:pw@mariadb")
	_, err := Load()
	assert.Error(t, err, "database name is required")

	clearDBEnv(t)
	t.Setenv("DB_AUTO_MIGRATE", "sometimes")
	_, err = Load()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("prod", "warn")
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = NewLogger("dev", "loud")
	assert.Error(t, err)
}
