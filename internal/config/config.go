package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Linear holds the identifiers of the tracker resources the sync engine
// writes to. They differ per environment, so none of them live in code.
type Linear struct {
	APIURL             string
	APIKey             string
	TeamID             string
	OrdersProjectID    string
	SubordersProjectID string
	TodoStateID        string
	CanceledStateID    string
}

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	Linear                 Linear
	WebhookSecret          string
	WebhookVerifySignature bool
	SuborderRefreshEvery   time.Duration
	ShutdownTimeout        time.Duration
}

const (
	defaultRunAddress           = ":8080"
	defaultLinearAPIURL         = "https://api.linear.app/graphql"
	defaultSuborderRefreshEvery = 15 * time.Minute
	defaultShutdownTimeout      = 10 * time.Second
)

// Load parses configuration from .env files, environment and flags.
func Load() (*Config, error) {
	loadDotenv()
	return load(os.Args[1:], os.LookupEnv)
}

// loadDotenv mirrors the historical backend, which read ~/.env without
// overriding already-set variables. A local .env wins over the home one.
func loadDotenv() {
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".env"))
	}
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:  getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI: getString(lookup, "DATABASE_URL", ""),
		Linear: Linear{
			APIURL:             getString(lookup, "LINEAR_API_URL", defaultLinearAPIURL),
			APIKey:             getString(lookup, "LINEAR_API_KEY", ""),
			TeamID:             getString(lookup, "LINEAR_TEAM_ID", ""),
			OrdersProjectID:    getString(lookup, "LINEAR_ORDERS_PROJECT_ID", ""),
			SubordersProjectID: getString(lookup, "LINEAR_SUBORDERS_PROJECT_ID", ""),
			TodoStateID:        getString(lookup, "LINEAR_TODO_STATE_ID", ""),
			CanceledStateID:    getString(lookup, "LINEAR_CANCELED_STATE_ID", ""),
		},
		WebhookSecret:          getString(lookup, "WEBHOOK_SECRET", ""),
		WebhookVerifySignature: getBool(lookup, "WEBHOOK_VERIFY_SIGNATURE", true),
		SuborderRefreshEvery:   getDuration(lookup, "SUBORDER_REFRESH_INTERVAL", defaultSuborderRefreshEvery),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	refreshStr := cfg.SuborderRefreshEvery.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.Linear.APIURL, "linear-url", cfg.Linear.APIURL, "Linear GraphQL endpoint")
	fs.BoolVar(&cfg.WebhookVerifySignature, "verify-webhooks", cfg.WebhookVerifySignature, "Verify webhook HMAC signatures")
	fs.StringVar(&refreshStr, "refresh-interval", refreshStr, "Interval between full suborder refreshes (0 disables)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.SuborderRefreshEvery, err = time.ParseDuration(refreshStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}
	if cfg.SuborderRefreshEvery < 0 {
		cfg.SuborderRefreshEvery = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URL must be provided")
	}
	if cfg.Linear.APIKey == "" {
		return nil, fmt.Errorf("Linear API key must be provided")
	}
	for _, field := range []struct{ name, value string }{
		{"LINEAR_TEAM_ID", cfg.Linear.TeamID},
		{"LINEAR_ORDERS_PROJECT_ID", cfg.Linear.OrdersProjectID},
		{"LINEAR_SUBORDERS_PROJECT_ID", cfg.Linear.SubordersProjectID},
		{"LINEAR_TODO_STATE_ID", cfg.Linear.TodoStateID},
		{"LINEAR_CANCELED_STATE_ID", cfg.Linear.CanceledStateID},
	} {
		if field.value == "" {
			return nil, fmt.Errorf("%s must be provided", field.name)
		}
	}
	if cfg.WebhookVerifySignature && cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET must be provided when signature verification is enabled")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
