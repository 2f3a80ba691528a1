package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Fixtures FixturesConfig
}

type ServerConfig struct {
	AppEnv string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type DatabaseConfig struct {
	// Driver is the database/sql driver name: "pgx" or "sqlite3".
	Driver          string
	Postgres        PostgresConfig
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type FixturesConfig struct {
	// Dir overrides the embedded fixture files when set.
	Dir string
	// Files overrides the default load order when non-empty.
	Files []string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "pgx"),
			Postgres: PostgresConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnv("POSTGRES_PORT", "5433"),
				User:     getEnv("POSTGRES_USER", "omnipos"),
				Password: getEnv("POSTGRES_PASSWORD", "omnipos"),
				DBName:   getEnv("POSTGRES_DB", "omnipos_catalog"),
				SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			},
			SQLitePath:      getEnv("SQLITE_PATH", "catalog.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("DB_CONN_MAX_IDLE_TIME", 60),
		},
		Fixtures: FixturesConfig{
			Dir:   getEnv("FIXTURES_DIR", ""),
			Files: getEnvSlice("FIXTURES_FILES", nil),
		},
	}
}

// DSN returns the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlite3" {
		return fmt.Sprintf("file:%s?_foreign_keys=on", c.SQLitePath)
	}
	p := c.Postgres
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
