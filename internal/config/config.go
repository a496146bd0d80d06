// Package config loads runtime settings for the portfolio server.
// Values come from defaults, an optional config.yaml, a .env file and
// STREAMFOLIO_* environment variables, in increasing priority.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"` // debug | release
	LogLevel string `mapstructure:"log_level"`
	SiteURL  string `mapstructure:"site_url"`
	DBPath   string `mapstructure:"db_path"`

	// ── Admin ────────────────────────────────────────────────────────────────
	AdminUser string `mapstructure:"admin_user"`
	AdminPass string `mapstructure:"admin_pass"`
	// AdminPassHash is a bcrypt hash; when set it wins over AdminPass.
	AdminPassHash string `mapstructure:"admin_pass_hash"`
	JWTSecret     string `mapstructure:"jwt_secret"`

	// ── Contact mail ─────────────────────────────────────────────────────────
	SMTPHost     string        `mapstructure:"smtp_host"`
	SMTPPort     string        `mapstructure:"smtp_port"`
	SMTPUser     string        `mapstructure:"smtp_user"`
	SMTPPass     string        `mapstructure:"smtp_pass"`
	ContactTo    string        `mapstructure:"contact_to"`
	ContactDelay time.Duration `mapstructure:"contact_delay"`

	// ── Name reveal ──────────────────────────────────────────────────────────
	RevealName     string        `mapstructure:"reveal_name"`
	RevealInterval time.Duration `mapstructure:"reveal_interval"`
	RevealPause    time.Duration `mapstructure:"reveal_pause"`
	RevealEmphasis time.Duration `mapstructure:"reveal_emphasis"`

	// ── Preload ──────────────────────────────────────────────────────────────
	// PreloadBaseURL switches the preloader to HTTP HEAD checks against a
	// running site; empty means the embedded asset FS is checked directly.
	PreloadBaseURL string        `mapstructure:"preload_base_url"`
	PreloadTimeout time.Duration `mapstructure:"preload_timeout"`

	// ── Tracing ──────────────────────────────────────────────────────────────
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MailConfigured reports whether SMTP credentials are present.
func (c *Config) MailConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Mode != "debug" && c.Mode != "release" && c.Mode != "test" {
		errs = append(errs, fmt.Errorf("mode %q must be debug, release or test", c.Mode))
	}
	if c.RevealInterval <= 0 {
		errs = append(errs, errors.New("reveal_interval must be positive"))
	}
	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("jwt_secret must not be empty"))
	case c.Mode == "release" && (c.JWTSecret == insecureJWTSecret || len(c.JWTSecret) < minJWTSecretLen):
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d characters and not the sample value", minJWTSecretLen))
	}
	return errors.Join(errs...)
}

// Load reads config from ./config.yaml or ~/.streamfolio/config.yaml and
// falls back to defaults. Environment variables with prefix STREAMFOLIO_
// override file values; PORT is honoured for hosted deployments.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.streamfolio")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STREAMFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", "STREAMFOLIO_PORT", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.ensureJWTSecret(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	_ = cfg.ensureJWTSecret()
	return &cfg
}

const (
	// insecureJWTSecret is the placeholder shipped in sample configs.
	insecureJWTSecret = "change-me-streamfolio-dev-secret"
	minJWTSecretLen   = 32
)

// ensureJWTSecret generates a random per-process secret when none is
// configured. Admin sessions then end on restart.
func (c *Config) ensureJWTSecret() error {
	if c.JWTSecret != "" {
		return nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("generating jwt secret: %w", err)
	}
	c.JWTSecret = hex.EncodeToString(b)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("site_url", "http://localhost:8080")
	v.SetDefault("db_path", "streamfolio.db")

	// Admin defaults for development; override in production.
	v.SetDefault("admin_user", "admin")
	v.SetDefault("admin_pass", "admin123")
	v.SetDefault("admin_pass_hash", "")
	v.SetDefault("jwt_secret", "")

	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("contact_to", "hello@velantec.com")
	v.SetDefault("contact_delay", 1500*time.Millisecond)

	v.SetDefault("reveal_name", "Arul Jothi")
	v.SetDefault("reveal_interval", 100*time.Millisecond)
	v.SetDefault("reveal_pause", 300*time.Millisecond)
	v.SetDefault("reveal_emphasis", 4*time.Second)

	v.SetDefault("preload_base_url", "")
	v.SetDefault("preload_timeout", 5*time.Second)

	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("service_name", "streamfolio")
}
