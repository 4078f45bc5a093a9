package dbconfig

import (
	"fmt"
	"net/url"
	"strconv"
)

// Config holds Postgres connection settings for the direct database
// backend. URL, when set, wins over the individual fields.
type Config struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// NewConfig reads DATABASE_URL and DB_* variables through getenv, with defaults.
func NewConfig(getenv func(string) string) Config {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	port, err := strconv.Atoi(get("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	return Config{
		URL:      getenv("DATABASE_URL"),
		Host:     get("DB_HOST", "localhost"),
		Port:     port,
		User:     get("DB_USER", "postgres"),
		Password: get("DB_PASSWORD", "postgres"),
		Database: get("DB_NAME", "club"),
		SSLMode:  get("DB_SSLMODE", "disable"),
	}
}

// DSN returns the Postgres connection URL.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// Redacted is DSN without the password, for logs.
func (c Config) Redacted() string {
	u, err := url.Parse(c.DSN())
	if err != nil {
		return "<invalid database url>"
	}
	return u.Redacted()
}
