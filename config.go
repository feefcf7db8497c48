package techpulse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"

	"github.com/eringen/techpulse/cms"
	"github.com/eringen/techpulse/views"
)

// SiteConfig holds all configuration for a techpulse site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "TechPulse")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags

	Addr string `yaml:"addr"` // Listen address (default ":3000")

	APIURL      string        `yaml:"api_url"`      // Content backend base URL (default "http://localhost:1337/api/")
	AssetHost   string        `yaml:"asset_host"`   // Host serving uploaded media
	Timeout     time.Duration `yaml:"timeout"`      // Backend request timeout (default 10s)
	Revalidate  time.Duration `yaml:"revalidate"`   // Response cache window (default 60s, negative disables)
	MockContent bool          `yaml:"mock_content"` // Serve built-in preview content instead of the backend

	RedisAddr     string `yaml:"redis_addr"` // Shared response cache; in-memory when empty
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	SessionSecret string `yaml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	LogLevel string `yaml:"log_level"` // debug, info, warn, error or off (default "info")
}

const defaultAPIURL = "http://localhost:1337/api/"

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "TechPulse"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "The latest in technology, AI, web development and startups."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = cms.DefaultTimeout
	}
	if c.Revalidate == 0 {
		c.Revalidate = cms.DefaultRevalidate
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Site returns the subset of the config handed to templates.
func (c SiteConfig) Site() views.SiteConfig {
	return views.SiteConfig{Name: c.Name, URL: c.URL, Description: c.Description}
}

// LoadConfig reads a YAML config file. Unset fields keep their zero value
// and are defaulted by New.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("techpulse: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("techpulse: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigFromEnv overlays environment variables onto cfg. Variables that are
// unset or empty leave the corresponding field untouched.
func ConfigFromEnv(cfg SiteConfig) (SiteConfig, error) {
	cfg.Name = EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = EnvOr("SITE_URL", cfg.URL)
	cfg.Description = EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Addr = EnvOr("ADDR", cfg.Addr)
	cfg.APIURL = EnvOr("API_URL", cfg.APIURL)
	cfg.AssetHost = EnvOr("ASSET_HOST", cfg.AssetHost)
	cfg.RedisAddr = EnvOr("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = EnvOr("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.SessionSecret = EnvOr("SESSION_SECRET", cfg.SessionSecret)
	cfg.LogLevel = EnvOr("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.Timeout, err = envDuration("API_TIMEOUT", cfg.Timeout); err != nil {
		return cfg, err
	}
	if cfg.Revalidate, err = envDuration("REVALIDATE", cfg.Revalidate); err != nil {
		return cfg, err
	}
	if cfg.RedisDB, err = envInt("REDIS_DB", cfg.RedisDB); err != nil {
		return cfg, err
	}
	if cfg.MockContent, err = envBool("MOCK_CONTENT", cfg.MockContent); err != nil {
		return cfg, err
	}
	if cfg.CookieSecure, err = envBool("COOKIE_SECURE", cfg.CookieSecure); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("techpulse: %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("techpulse: %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("techpulse: %s: %w", key, err)
	}
	return b, nil
}

// ParseLogLevel maps a level name to a gommon log level. Unknown names are INFO.
func ParseLogLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off", "none":
		return log.OFF
	default:
		return log.INFO
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource replaces the content backend. MockContent and the HTTP client
// settings are ignored when a source is given.
func WithSource(src cms.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithCache sets the response cache used by the backend client.
func WithCache(cache cms.ResponseCache) Option {
	return func(a *App) {
		a.cache = cache
	}
}
