package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported identity provider backends.
const (
	AuthProviderSurreal = "surreal"
	AuthProviderMemory  = "memory"
)

// Provider exposes configuration values to the rest of the application.
// Handlers and stores depend on this interface rather than the concrete
// Config so tests can substitute only the values they care about.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetAppName() string
	GetSessionSecret() string
	GetAuthProvider() string
	GetAuthTokenSecret() string
	GetAuthTokenTTL() time.Duration
	GetDBURL() string
	GetDBUser() string
	GetDBPass() string
	GetDBNs() string
	GetDBDb() string
	GetDBAccess() string
	GetDBQueryTimeout() time.Duration
	GetEmailProvider() string
	GetEmailAPIKey() string
	GetEmailSender() string
	GetCatalogPath() string
	GetCatalogWatch() bool
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr    string `env:"APP_ADDR" envDefault:":8080"`
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	AppName    string `env:"APP_NAME" envDefault:"Vintechs"`

	SessionSecret string `env:"SESSION_SECRET,required,notEmpty"`

	AuthProvider    string        `env:"AUTH_PROVIDER" envDefault:"surreal"`
	AuthTokenSecret string        `env:"AUTH_TOKEN_SECRET,required,notEmpty"`
	AuthTokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`

	DBUrl          string        `env:"SURREAL_URL"`
	DBUser         string        `env:"SURREAL_USER"`
	DBPass         string        `env:"SURREAL_PASS"`
	DBNs           string        `env:"SURREAL_NS"`
	DBDb           string        `env:"SURREAL_DB"`
	DBAccess       string        `env:"SURREAL_ACCESS" envDefault:"account"`
	DBQueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`

	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"log"`
	EmailAPIKey   string `env:"EMAIL_API_KEY"`
	EmailSender   string `env:"EMAIL_SENDER" envDefault:"Vintechs <hello@vintechs.co.ke>"`

	CatalogPath  string `env:"CATALOG_PATH"`
	CatalogWatch bool   `env:"CATALOG_WATCH" envDefault:"false"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file if one exists and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv parses the current process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AuthProvider {
	case AuthProviderMemory:
	case AuthProviderSurreal:
		if c.DBUrl == "" || c.DBNs == "" || c.DBDb == "" {
			return errors.New("SURREAL_URL, SURREAL_NS and SURREAL_DB are required when AUTH_PROVIDER is surreal")
		}
	default:
		return fmt.Errorf("unknown auth provider: %q", c.AuthProvider)
	}
	if c.AuthTokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL must be a positive duration")
	}
	if c.DBQueryTimeout <= 0 {
		return errors.New("DB_QUERY_TIMEOUT must be a positive duration")
	}
	return nil
}

func (c *Config) GetAppAddr() string               { return c.AppAddr }
func (c *Config) GetAppBaseURL() string            { return c.AppBaseURL }
func (c *Config) GetAppName() string               { return c.AppName }
func (c *Config) GetSessionSecret() string         { return c.SessionSecret }
func (c *Config) GetAuthProvider() string          { return c.AuthProvider }
func (c *Config) GetAuthTokenSecret() string       { return c.AuthTokenSecret }
func (c *Config) GetAuthTokenTTL() time.Duration   { return c.AuthTokenTTL }
func (c *Config) GetDBURL() string                 { return c.DBUrl }
func (c *Config) GetDBUser() string                { return c.DBUser }
func (c *Config) GetDBPass() string                { return c.DBPass }
func (c *Config) GetDBNs() string                  { return c.DBNs }
func (c *Config) GetDBDb() string                  { return c.DBDb }
func (c *Config) GetDBAccess() string              { return c.DBAccess }
func (c *Config) GetDBQueryTimeout() time.Duration { return c.DBQueryTimeout }
func (c *Config) GetEmailProvider() string         { return c.EmailProvider }
func (c *Config) GetEmailAPIKey() string           { return c.EmailAPIKey }
func (c *Config) GetEmailSender() string           { return c.EmailSender }
func (c *Config) GetCatalogPath() string           { return c.CatalogPath }
func (c *Config) GetCatalogWatch() bool            { return c.CatalogWatch }
func (c *Config) GetLogFormat() string             { return c.LogFormat }
func (c *Config) GetLogLevel() string              { return c.LogLevel }
