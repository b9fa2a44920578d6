package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return dsn.String()
}

func DBFromEnv() DBConfig {
	return DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// SMTPConfig is handed to the mailer as is. An empty Host disables mail delivery.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func SMTPFromEnv() SMTPConfig {
	return SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

var ErrEmptyAccessSecret = errors.New("ACCESS_SECRET is not set")

type AuthConfig struct {
	AccessSecret []byte
	AccessTTL    time.Duration
}

func (c AuthConfig) Validate() error {
	if len(c.AccessSecret) == 0 {
		return ErrEmptyAccessSecret
	}

	return nil
}

type PaginationConfig struct {
	DefaultTake int
	MaxTake     int
}

const (
	defaultAccessTTL   = 24 * time.Hour
	defaultDefaultTake = 20
	defaultMaxTake     = 50
)

func AuthFromEnv() AuthConfig {
	ttl := viper.GetDuration("auth.access_ttl")
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}

	return AuthConfig{
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		AccessTTL:    ttl,
	}
}

func PaginationFromViper() PaginationConfig {
	cfg := PaginationConfig{
		DefaultTake: viper.GetInt("pagination.default_take"),
		MaxTake:     viper.GetInt("pagination.max_take"),
	}
	if cfg.MaxTake <= 0 {
		cfg.MaxTake = defaultMaxTake
	}
	if cfg.DefaultTake <= 0 || cfg.DefaultTake > cfg.MaxTake {
		cfg.DefaultTake = min(defaultDefaultTake, cfg.MaxTake)
	}

	return cfg
}
