// Package config loads runtime settings from an optional .env file, an
// optional heartcare.toml and HEARTCARE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "HEARTCARE"

// Config is the full runtime configuration.
type Config struct {
	Addr   string       `mapstructure:"addr"`
	Log    LogConfig    `mapstructure:"log"`
	Auth   AuthConfig   `mapstructure:"auth"`
	OIDC   OIDCConfig   `mapstructure:"oidc"`
	Points PointsConfig `mapstructure:"points"`
	Trend  TrendConfig  `mapstructure:"trend"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig controls the session layer.
type AuthConfig struct {
	Disabled   bool          `mapstructure:"disabled"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// OIDCConfig enables single sign-on when Issuer is set.
type OIDCConfig struct {
	Issuer       string `mapstructure:"issuer"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Enabled reports whether SSO is configured.
func (c OIDCConfig) Enabled() bool {
	return c.Issuer != ""
}

// PointsConfig holds the opening balance and the engagement rewards.
type PointsConfig struct {
	Initial  int `mapstructure:"initial"`
	DailyLog int `mapstructure:"daily_log"`
	Survey   int `mapstructure:"survey"`
	EduRead  int `mapstructure:"edu_read"`
	SignIn   int `mapstructure:"sign_in"`
}

// TrendConfig configures the weight chart.
type TrendConfig struct {
	Window int `mapstructure:"window"`
}

var defaults = map[string]any{
	"addr":               ":8080",
	"log.level":          "info",
	"log.format":         "text",
	"auth.disabled":      false,
	"auth.session_ttl":   "24h",
	"oidc.issuer":        "",
	"oidc.client_id":     "",
	"oidc.client_secret": "",
	"oidc.redirect_url":  "",
	"points.initial":     120,
	"points.daily_log":   20,
	"points.survey":      10,
	"points.edu_read":    5,
	"points.sign_in":     5,
	"trend.window":       7,
}

// NewConfig loads the configuration from the working directory.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	name := "heartcare"
	if n := os.Getenv(envPrefix + "_CONFIG_NAME"); n != "" {
		name = n
	}
	return load(viper.New(), name, "config", ".")
}

func load(v *viper.Viper, name string, paths ...string) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigName(name)
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.WithField("file", v.ConfigFileUsed()).Info("config parsed")
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format %q: must be text or json", c.Log.Format)
	}
	p := c.Points
	if p.Initial < 0 || p.DailyLog < 0 || p.Survey < 0 || p.EduRead < 0 || p.SignIn < 0 {
		return errors.New("points: amounts must be >= 0")
	}
	if c.OIDC.Enabled() && (c.OIDC.ClientID == "" || c.OIDC.RedirectURL == "") {
		return errors.New("oidc: client_id and redirect_url are required with issuer")
	}
	return nil
}

// NewLogger builds the process logger described by c.
func (c LogConfig) NewLogger() *log.Logger {
	l := log.New()
	if lvl, err := log.ParseLevel(c.Level); err == nil {
		l.SetLevel(lvl)
	}
	if c.Format == "json" {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return l
}
