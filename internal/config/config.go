package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the worker's runtime configuration, read from the environment.
type Config struct {
	DBPath          string
	LogLevel        string
	LogFormat       string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string
}

// Load reads configuration from the environment, with an optional .env file
// for development. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:          getEnv("CHOREWHEEL_DB_PATH", "chorewheel.db"),
		LogLevel:        getEnv("CHOREWHEEL_LOG_LEVEL", "info"),
		LogFormat:       getEnv("CHOREWHEEL_LOG_FORMAT", "text"),
		VAPIDPublicKey:  os.Getenv("CHOREWHEEL_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("CHOREWHEEL_VAPID_PRIVATE_KEY"),
		PushSubscriber:  getEnv("CHOREWHEEL_PUSH_SUBSCRIBER", "mailto:noreply@chorewheel.app"),
	}

	if (cfg.VAPIDPublicKey == "") != (cfg.VAPIDPrivateKey == "") {
		return nil, fmt.Errorf("CHOREWHEEL_VAPID_PUBLIC_KEY and CHOREWHEEL_VAPID_PRIVATE_KEY must be set together")
	}

	return cfg, nil
}

// PushEnabled reports whether web-push delivery is configured.
func (c *Config) PushEnabled() bool {
	return c.VAPIDPublicKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
