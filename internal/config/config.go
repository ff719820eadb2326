package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig collects everything the server needs from the environment.
// Every key has a development-safe default except the Yelp API key, which
// simply disables review sync when absent.
type AppConfig struct {
	ListenAddr    string `env:"LISTEN_ADDR" env-default:":8080"`
	DatabasePath  string `env:"DATABASE_PATH" env-default:"dashboard.db"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"restaurant-dev-secret"`
	GinMode       string `env:"GIN_MODE" env-default:"release"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`

	YelpAPIKey  string `env:"YELP_API_KEY"`
	YelpBaseURL string `env:"YELP_BASE_URL" env-default:"https://api.yelp.com/v3"`

	OwnerName     string `env:"BOOTSTRAP_OWNER_NAME" env-default:"Owner"`
	OwnerEmail    string `env:"BOOTSTRAP_OWNER_EMAIL"`
	OwnerPassword string `env:"BOOTSTRAP_OWNER_PASSWORD"`
}

// Load reads the application config from environment variables.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
