package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Backend struct {
		BaseURL string
		Timeout time.Duration
	}
	State struct {
		// Path of the JSON session file used by the default file store.
		Path string
	}
	Redis struct {
		// Enabled switches the session store to Redis for shared kiosk
		// deployments.
		Enabled   bool
		Addr      string
		Password  string
		KeyPrefix string
	}
	Kiosk struct {
		Port         string
		PollInterval time.Duration
	}
}

// Load reads configuration from config.{yaml,json} (searched in ., ./config
// and $HOME/.cafeteria) with environment-variable overrides. A missing file
// is not an error; env and defaults carry a bare deployment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.cafeteria")

	v.SetDefault("Backend.BaseURL", "http://localhost:8000")
	v.SetDefault("Backend.Timeout", 15*time.Second)
	v.SetDefault("State.Path", defaultStatePath())
	v.SetDefault("Redis.Enabled", false)
	v.SetDefault("Redis.Addr", "localhost:6379")
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.KeyPrefix", "cafeteria:session:")
	v.SetDefault("Kiosk.Port", "8090")
	v.SetDefault("Kiosk.PollInterval", time.Minute)

	v.AutomaticEnv()
	v.SetEnvPrefix("CAFETERIA")
	bindEnvs(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// bindEnvs maps the flat env names to the nested config keys, e.g.
// CAFETERIA_BACKEND_URL overrides Backend.BaseURL.
func bindEnvs(v *viper.Viper) {
	_ = v.BindEnv("Backend.BaseURL", "CAFETERIA_BACKEND_URL")
	_ = v.BindEnv("State.Path", "CAFETERIA_STATE_PATH")
	_ = v.BindEnv("Redis.Enabled", "CAFETERIA_REDIS_ENABLED")
	_ = v.BindEnv("Redis.Addr", "CAFETERIA_REDIS_ADDR")
	_ = v.BindEnv("Redis.Password", "CAFETERIA_REDIS_PASSWORD")
	_ = v.BindEnv("Kiosk.Port", "CAFETERIA_KIOSK_PORT")
	_ = v.BindEnv("Kiosk.PollInterval", "CAFETERIA_KIOSK_POLL_INTERVAL")
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cafeteria-state.json"
	}
	return filepath.Join(home, ".cafeteria", "state.json")
}
