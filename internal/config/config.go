package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissing = errors.New("missing required config")

const (
	SourceJSON     = "json"
	SourcePostgres = "postgres"
)

type R2 struct {
	AccessKey     string
	SecretKey     string
	Bucket        string
	Endpoint      string
	PublicBaseURL string
}

// Enabled reports whether enough is set to talk to the bucket.
func (r R2) Enabled() bool {
	return r.AccessKey != "" && r.SecretKey != "" && r.Bucket != "" && r.Endpoint != ""
}

type Config struct {
	Env           string
	DataSource    string
	DataFile      string
	DatabaseURL   string
	Port          string
	JWTSecret     string
	RedisURL      string
	NewsletterURL string
	NewsletterKey string
	CORSOrigins   []string
	LogLevel      string
	LogFormat     string
	ScoringConfig string
	R2            R2

	// WatchData reloads DataFile on change (json source only).
	WatchData bool

	// env keeps the raw values so Require can name missing keys.
	env map[string]string
}

// Load reads .env (outside production) and the process environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		// a missing .env is fine
		_ = godotenv.Load()
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup, which keeps tests off the
// real environment.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	keys := []string{
		"APP_ENV", "DATA_SOURCE", "DATA_FILE", "DATABASE_URL", "PORT",
		"JWT_SECRET", "REDIS_URL", "NEWSLETTER_API_URL", "NEWSLETTER_API_KEY",
		"CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "SCORING_CONFIG",
		"R2_ACCESS_KEY", "R2_SECRET_KEY", "R2_BUCKET_NAME", "R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL", "WATCH_DATA",
	}
	env := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := lookup(k); ok {
			env[k] = strings.TrimSpace(v)
		}
	}

	get := func(key, fallback string) string {
		if v := env[key]; v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Env:           get("APP_ENV", "development"),
		DataSource:    strings.ToLower(get("DATA_SOURCE", SourceJSON)),
		DataFile:      get("DATA_FILE", "data/restaurants.json"),
		DatabaseURL:   env["DATABASE_URL"],
		Port:          get("PORT", "8080"),
		JWTSecret:     env["JWT_SECRET"],
		RedisURL:      env["REDIS_URL"],
		NewsletterURL: env["NEWSLETTER_API_URL"],
		NewsletterKey: env["NEWSLETTER_API_KEY"],
		CORSOrigins:   splitList(get("CORS_ORIGINS", "http://localhost:4321,http://localhost:3000")),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "json"),
		ScoringConfig: env["SCORING_CONFIG"],
		R2: R2{
			AccessKey:     env["R2_ACCESS_KEY"],
			SecretKey:     env["R2_SECRET_KEY"],
			Bucket:        env["R2_BUCKET_NAME"],
			Endpoint:      env["R2_ENDPOINT"],
			PublicBaseURL: env["R2_PUBLIC_BASE_URL"],
		},
		env: env,
	}

	watch := get("WATCH_DATA", "")
	switch strings.ToLower(watch) {
	case "":
		cfg.WatchData = !cfg.Production()
	case "1", "true", "yes", "on":
		cfg.WatchData = true
	case "0", "false", "no", "off":
	default:
		return nil, fmt.Errorf("WATCH_DATA must be a boolean, got %q", watch)
	}

	switch cfg.DataSource {
	case SourceJSON, SourcePostgres:
	default:
		return nil, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceJSON, SourcePostgres, cfg.DataSource)
	}
	if cfg.DataSource == SourcePostgres {
		if err := cfg.Require("DATABASE_URL"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Require returns ErrMissing naming the first key that is unset.
func (c *Config) Require(keys ...string) error {
	for _, k := range keys {
		if c.env[k] == "" {
			return fmt.Errorf("%w: %s", ErrMissing, k)
		}
	}
	return nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
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
