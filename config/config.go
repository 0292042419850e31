package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHTTPAddress     = ":8080"
	DefaultDirectusTimeout = 15 * time.Second
	DefaultSessionTTL      = 24 * time.Hour
	DefaultSessionCookie   = "directus_session"
	DefaultMetricsAddress  = ""
	DefaultTimeZone        = "UTC"
	DefaultActivityEntries = 200
	minSessionSecretLength = 32
)

var (
	// ErrMissingDirectusURL is returned when no CMS base URL is configured.
	ErrMissingDirectusURL = errors.New("directus url is not configured")

	// ErrWeakSessionSecret is returned when the session signing secret is too short.
	ErrWeakSessionSecret = errors.New("session secret must be at least 32 bytes")

	// ErrMissingAdminToken is returned when an admin-only operation has no token to use.
	ErrMissingAdminToken = errors.New("directus admin token is not configured")
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Directus      DirectusConfig      `yaml:"directus"`
	Session       SessionConfig       `yaml:"session"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	Dashboard     DashboardConfig     `yaml:"dashboard"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SecureCookies  bool     `yaml:"secure_cookies"`
}

// DirectusConfig holds the CMS connection settings.
type DirectusConfig struct {
	URL            string        `yaml:"url"`
	AdminToken     string        `yaml:"admin_token"`
	AdminTokenFile string        `yaml:"admin_token_file"`
	Timeout        time.Duration `yaml:"timeout"`
}

// SessionConfig holds dashboard session settings.
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
}

// PostgresConfig holds the optional local store DSN. Empty keeps sessions and
// migration history in memory.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds the optional broker settings. Empty URL uses the in-process bus.
type NATSConfig struct {
	URL      string `yaml:"url"`
	NKeySeed string `yaml:"nkey_seed"`
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // json|text
	MetricsAddress string `yaml:"metrics_address"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	// TimeZone resolves natural-language dates such as "next friday 9am".
	TimeZone string `yaml:"time_zone"`
	// ActivityEntries bounds the in-memory activity feed.
	ActivityEntries int `yaml:"activity_entries"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.Directus.URL == "" {
		return nil, fmt.Errorf("DIRECTUS_URL environment variable not set")
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		cfg.HTTP.SecureCookies = v == "true"
	}
	if v := os.Getenv("DIRECTUS_URL"); v != "" {
		cfg.Directus.URL = v
	}
	if v := os.Getenv("DIRECTUS_ADMIN_TOKEN"); v != "" {
		cfg.Directus.AdminToken = v
	}
	if v := os.Getenv("DIRECTUS_ADMIN_TOKEN_FILE"); v != "" {
		cfg.Directus.AdminTokenFile = v
	}
	if v := os.Getenv("DIRECTUS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DIRECTUS_TIMEOUT value: %w", err)
		}
		cfg.Directus.Timeout = d
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL value: %w", err)
		}
		cfg.Session.TTL = d
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("TIME_ZONE"); v != "" {
		cfg.Dashboard.TimeZone = v
	}
	if v := os.Getenv("ACTIVITY_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITY_ENTRIES value: %w", err)
		}
		cfg.Dashboard.ActivityEntries = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = DefaultHTTPAddress
	}
	if c.Directus.Timeout == 0 {
		c.Directus.Timeout = DefaultDirectusTimeout
	}
	c.Directus.URL = strings.TrimRight(c.Directus.URL, "/")
	if c.Session.TTL == 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultSessionCookie
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Dashboard.TimeZone == "" {
		c.Dashboard.TimeZone = DefaultTimeZone
	}
	if c.Dashboard.ActivityEntries <= 0 {
		c.Dashboard.ActivityEntries = DefaultActivityEntries
	}
}

// Validate checks the settings the API server cannot start without.
func (c *Config) Validate() error {
	if c.Directus.URL == "" {
		return ErrMissingDirectusURL
	}
	if len(c.Session.Secret) < minSessionSecretLength {
		return ErrWeakSessionSecret
	}
	return nil
}

// Location loads the dashboard time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Dashboard.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.Dashboard.TimeZone, err)
	}
	return loc, nil
}

// AdminToken resolves the Directus admin bearer token from the inline value or
// the token file.
func (c *Config) AdminToken() (string, error) {
	if c.Directus.AdminToken != "" {
		return c.Directus.AdminToken, nil
	}
	if c.Directus.AdminTokenFile == "" {
		return "", ErrMissingAdminToken
	}
	data, err := os.ReadFile(c.Directus.AdminTokenFile)
	if err != nil {
		return "", fmt.Errorf("failed to read admin token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrMissingAdminToken
	}
	return token, nil
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Observability.Environment)
	return env == "development" || env == "dev" || env == "local"
}

// String masks secrets so the config can be logged.
func (c Config) String() string {
	return fmt.Sprintf("http=%s directus=%s admin_token=%s session_ttl=%s postgres=%s nats=%s env=%s",
		c.HTTP.Address,
		c.Directus.URL,
		mask(c.Directus.AdminToken),
		c.Session.TTL,
		strconv.FormatBool(c.Postgres.DSN != ""),
		c.NATS.URL,
		c.Observability.Environment,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
