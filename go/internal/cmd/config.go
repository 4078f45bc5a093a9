package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mcdev12/clubadmin/go/internal/admin"
	"github.com/mcdev12/clubadmin/go/internal/dbconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "admin.yaml"
	defaultRequestTimeout = 15 * time.Second

	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	AdminPin       string
	SupabaseURL    string
	ServiceKey     string
	Port           string
	RequestTimeout time.Duration
	DataBackend    string
	Database       dbconfig.Config
	NATSURL        string
	NATSPrefix     string
	MediaBucket    string
	MediaFolder    string
	TableScope     admin.TableScope
	Defaults       admin.Defaults
	CORSOrigins    []string
	MaxBodyBytes   int64
	LogLevel       string
	LogPretty      bool
}

// fileConfig is the optional YAML file. Secrets never live here.
type fileConfig struct {
	RequestTimeout string `yaml:"request_timeout"`
	DataBackend    string `yaml:"data_backend"`
	TableScope     string `yaml:"table_scope"`
	Media          struct {
		Bucket string `yaml:"bucket"`
		Folder string `yaml:"folder"`
	} `yaml:"media"`
	Defaults struct {
		Competition string `yaml:"competition"`
		Season      string `yaml:"season"`
		MatchStatus string `yaml:"match_status"`
		ContentType string `yaml:"content_type"`
		Filename    string `yaml:"filename"`
	} `yaml:"defaults"`
}

// loadConfig reads the environment through getenv and the YAML file named
// by CONFIG_PATH. Environment values win over the file.
func loadConfig(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var file fileConfig
	path := env("CONFIG_PATH", "")
	if err := readConfigFile(path, &file); err != nil {
		return nil, err
	}

	cfg := &Config{
		AdminPin:    env("ADMIN_PIN", ""),
		SupabaseURL: strings.TrimRight(env("SUPABASE_URL", ""), "/"),
		ServiceKey:  env("SUPABASE_SERVICE_ROLE_KEY", ""),
		Port:        env("PORT", "8080"),
		DataBackend: strings.ToLower(env("DATA_BACKEND", orDefault(file.DataBackend, BackendREST))),
		Database:    dbconfig.NewConfig(getenv),
		NATSURL:     env("NATS_URL", ""),
		NATSPrefix:  env("NATS_SUBJECT_PREFIX", "site.content"),
		MediaBucket: orDefault(file.Media.Bucket, "public"),
		MediaFolder: strings.Trim(orDefault(file.Media.Folder, "news"), "/"),
		TableScope:  admin.TableScope(strings.ToLower(env("TABLE_SCOPE", orDefault(file.TableScope, string(admin.TableScopeAll))))),
		Defaults: admin.Defaults{
			Competition: file.Defaults.Competition,
			Season:      file.Defaults.Season,
			MatchStatus: file.Defaults.MatchStatus,
			ContentType: file.Defaults.ContentType,
			Filename:    file.Defaults.Filename,
		},
		CORSOrigins: splitList(env("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:    env("LOG_LEVEL", "info"),
	}

	var problems []string

	var missing []string
	for _, req := range []struct{ key, value string }{
		{"ADMIN_PIN", cfg.AdminPin},
		{"SUPABASE_URL", cfg.SupabaseURL},
		{"SUPABASE_SERVICE_ROLE_KEY", cfg.ServiceKey},
	} {
		if req.value == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		problems = append(problems, "missing "+strings.Join(missing, ", "))
	}

	timeout, err := time.ParseDuration(env("REQUEST_TIMEOUT", orDefault(file.RequestTimeout, defaultRequestTimeout.String())))
	if err != nil || timeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid REQUEST_TIMEOUT %q", env("REQUEST_TIMEOUT", file.RequestTimeout)))
	}
	cfg.RequestTimeout = timeout

	if cfg.DataBackend != BackendREST && cfg.DataBackend != BackendPostgres {
		problems = append(problems, fmt.Sprintf("invalid DATA_BACKEND %q (want %s or %s)", cfg.DataBackend, BackendREST, BackendPostgres))
	}
	if !cfg.TableScope.Valid() {
		problems = append(problems, fmt.Sprintf("invalid TABLE_SCOPE %q", cfg.TableScope))
	}

	if v := env("MAX_BODY_BYTES", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			problems = append(problems, fmt.Sprintf("invalid MAX_BODY_BYTES %q", v))
		}
		cfg.MaxBodyBytes = n
	}
	if v := env("LOG_PRETTY", ""); v != "" {
		cfg.LogPretty, _ = strconv.ParseBool(v)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// readConfigFile parses path into out. An empty path means the default
// file, which may be absent.
func readConfigFile(path string, out *fileConfig) error {
	optional := path == ""
	if optional {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
