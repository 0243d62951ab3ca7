package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Penny"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"penny"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
		// PrimaryOwnerID enables shared-data mode: when set, every other
		// authenticated user reads and writes the primary owner's records.
		PrimaryOwnerID string `envconfig:"PRIMARY_OWNER_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// PrimaryOwner parses the configured primary owner identity; uuid.Nil when
// shared-data mode is off.
func (c *Config) PrimaryOwner() (uuid.UUID, error) {
	if c.Auth.PrimaryOwnerID == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(c.Auth.PrimaryOwnerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid PRIMARY_OWNER_ID: %w", err)
	}

	return id, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
