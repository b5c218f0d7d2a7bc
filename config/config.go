package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the process reads from its environment.
// Secrets are never source literals; SESSION_SECRET is mandatory.
type Config struct {
	Port               string `env:"PORT" envDefault:"3000"`
	MongoURI           string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB            string `env:"MONGO_DB" envDefault:"journaldb"`
	RedisAddr          string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SessionSecret      string `env:"SESSION_SECRET,required,notEmpty"`
	CookieSecure       bool   `env:"COOKIE_SECURE" envDefault:"false"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	OAuthCallbackURL   string `env:"OAUTH_CALLBACK_URL" envDefault:"http://localhost:3000/auth/google/dailyjournal"`
	BaseURL            string `env:"BASE_URL" envDefault:"http://localhost:3000"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	if c.Port == "" {
		return ":3000"
	}
	if c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}
