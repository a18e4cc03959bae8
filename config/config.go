package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool {
	return e == Production
}

type Config struct {
	Environment Environment  `envconfig:"APP_ENV" default:"development"`
	Server      ServerConfig `envconfig:"SERVER"`
	DB          DBConfig     `envconfig:"DB"`
	Auth        AuthConfig   `envconfig:"JWT"`
	S3          S3Config     `envconfig:"S3"`
	Admin       AdminConfig  `envconfig:"ADMIN"`
}

type ServerConfig struct {
	Port         string `split_words:"true" default:"8080"`
	CookieDomain string `split_words:"true" default:"localhost"`
	CookieSecure bool   `split_words:"true" default:"false"`
}

type DBConfig struct {
	Hostname string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"5432"`
	User     string `split_words:"true" default:"postgres"`
	Password string `split_words:"true"`
	Name     string `split_words:"true" default:"catalog"`
	SSLMode  string `split_words:"true" default:"disable"`
}

func (c DBConfig) Dsn() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Hostname,
		c.User,
		c.Password,
		c.Name,
		c.Port,
		c.SSLMode,
	)
}

type AuthConfig struct {
	Secret   string        `split_words:"true" required:"true"`
	TokenTTL time.Duration `split_words:"true" default:"72h"`
}

type S3Config struct {
	Region    string `split_words:"true" default:"us-east-1"`
	Endpoint  string `split_words:"true"`
	Bucket    string `split_words:"true"`
	AccessKey string `split_words:"true"`
	SecretKey string `split_words:"true"`
}

// AdminConfig seeds the first administrator on startup when both fields
// are set.
type AdminConfig struct {
	Email    string `split_words:"true"`
	Password string `split_words:"true"`
}

// Enabled reports whether enough settings are present to upload images.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.Endpoint != ""
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}
