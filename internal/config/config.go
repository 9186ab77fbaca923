package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the API. Values come from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`

	N8NBaseURL         string        `mapstructure:"n8n_base_url"`
	N8NOnboardingPath  string        `mapstructure:"n8n_onboarding_path"`
	N8NParseResumePath string        `mapstructure:"n8n_parse_resume_path"`
	WebhookTimeout     time.Duration `mapstructure:"webhook_timeout"`
	WebhookRetries     int           `mapstructure:"webhook_retries"`

	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	CORSOrigins    []string `mapstructure:"cors_origins"`

	R2 R2Config `mapstructure:"-"`

	RabbitMQURL    string `mapstructure:"rabbitmq_url"`
	EventsExchange string `mapstructure:"events_exchange"`

	LogJSON  bool `mapstructure:"log_json"`
	LogDebug bool `mapstructure:"log_debug"`
}

// R2Config points at the Cloudflare R2 bucket that keeps uploaded resumes.
type R2Config struct {
	AccountID string `mapstructure:"r2_account_id"`
	Bucket    string `mapstructure:"r2_bucket"`
	AccessKey string `mapstructure:"r2_access_key"`
	SecretKey string `mapstructure:"r2_secret_key"`
}

// Enabled reports whether any R2 setting is present.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" || r.Bucket != "" || r.AccessKey != "" || r.SecretKey != ""
}

var defaults = map[string]any{
	"port":                  "3000",
	"database_url":          "",
	"n8n_base_url":          "http://localhost:5678",
	"n8n_onboarding_path":   "/webhook/get-filtered-jobs",
	"n8n_parse_resume_path": "/webhook-test/parse-resume",
	"webhook_timeout":       "30s",
	"webhook_retries":       3,
	"max_upload_bytes":      10 << 20,
	"cors_origins":          "*",
	"r2_account_id":         "",
	"r2_bucket":             "",
	"r2_access_key":         "",
	"r2_secret_key":         "",
	"rabbitmq_url":          "",
	"events_exchange":       "user_events",
	"log_json":              false,
	"log_debug":             false,
}

// Load reads .env (when present) and the process environment into v.
func Load(v *viper.Viper) (*Config, error) {
	// a missing .env is fine, the environment may already carry everything
	_ = godotenv.Load()
	return FromViper(v)
}

// FromViper resolves the config from v. Flags bound on v take precedence over
// the environment.
func FromViper(v *viper.Viper) (*Config, error) {
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.R2 = R2Config{
		AccountID: v.GetString("r2_account_id"),
		Bucket:    v.GetString("r2_bucket"),
		AccessKey: v.GetString("r2_access_key"),
		SecretKey: v.GetString("r2_secret_key"),
	}
	cfg.N8NBaseURL = strings.TrimRight(cfg.N8NBaseURL, "/")
	cfg.CORSOrigins = splitOrigins(cfg.CORSOrigins)

	return &cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is not configured")
	}
	if c.N8NBaseURL == "" {
		return errors.New("N8N_BASE_URL is not configured")
	}
	if c.WebhookRetries < 1 {
		return fmt.Errorf("WEBHOOK_RETRIES must be at least 1, got %d", c.WebhookRetries)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.R2.Enabled() {
		var missing []string
		if c.R2.AccountID == "" {
			missing = append(missing, "R2_ACCOUNT_ID")
		}
		if c.R2.Bucket == "" {
			missing = append(missing, "R2_BUCKET")
		}
		if c.R2.AccessKey == "" {
			missing = append(missing, "R2_ACCESS_KEY")
		}
		if c.R2.SecretKey == "" {
			missing = append(missing, "R2_SECRET_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("object storage partially configured, missing %s", strings.Join(missing, ", "))
		}
	}
	return nil
}

// WebhookURL joins the n8n base URL with path.
func (c *Config) WebhookURL(path string) string {
	if path == "" {
		return c.N8NBaseURL
	}
	return c.N8NBaseURL + "/" + strings.TrimLeft(path, "/")
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}
