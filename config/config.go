package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds everything read from the environment.
type Config struct {
	Env         string
	Port        string
	LogLevel    string
	CORSOrigins []string
	AdminAPIKey string
	Database    DatabaseConfig
}

type DatabaseConfig struct {
	DSN         string
	Name        string
	AutoMigrate bool
	Seed        bool
}

// Load reads configuration from environment variables. Call
// godotenv.Load beforehand to pick up a .env file.
func Load() (*Config, error) {
	dsn, dbName, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	autoMigrate, err := envBool("DB_AUTO_MIGRATE", false)
	if err != nil {
		return nil, err
	}
	seed, err := envBool("DB_SEED", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:         envOrDefault("ENV", "dev"),
		Port:        envOrDefault("PORT", "8080"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		CORSOrigins: parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		AdminAPIKey: strings.TrimSpace(os.Getenv("ADMIN_API_KEY")),
		Database: DatabaseConfig{
			DSN:         dsn,
			Name:        dbName,
			AutoMigrate: autoMigrate,
			Seed:        seed,
		},
	}, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return v, nil
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// withDriverDefaults sets the driver options every connection needs.
// ClientFoundRows makes UPDATE report matched rows rather than changed rows.
// Loc is pinned to UTC so date-only values keep their calendar day in both
// directions.
func withDriverDefaults(cfg *mysql.Config) *mysql.Config {
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Loc = time.UTC
	return cfg
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	pass, _ := u.User.Password()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", u.User.Username(), pass, u.Hostname(), port, dbName)
	if u.RawQuery != "" {
		dsn += "?" + u.RawQuery
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", "", fmt.Errorf("invalid mysql url: %w", err)
	}
	return withDriverDefaults(cfg).FormatDSN(), dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		cfg, err := mysql.ParseDSN(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return withDriverDefaults(cfg).FormatDSN(), cfg.DBName, nil
	}

	cfg := mysql.NewConfig()
	cfg.User = envOrDefault("DB_USER", "root")
	cfg.Passwd = envOrDefault("DB_PASS", "")
	cfg.Net = "tcp"
	cfg.Addr = envOrDefault("DB_HOST", "127.0.0.1") + ":" + envOrDefault("DB_PORT", "3306")
	cfg.DBName = envOrDefault("DB_NAME", "room_management_system")
	return withDriverDefaults(cfg).FormatDSN(), cfg.DBName, nil
}
