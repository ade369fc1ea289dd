package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	BotToken    string
	BotDebug    bool
	PollTimeout int // seconds

	DB DBConfig
}

type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
}

// ConnectionString returns DATABASE_URL when set, otherwise a DSN built from the parts.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func (c DBConfig) validate() error {
	if c.DatabaseURL != "" {
		return nil
	}
	var missing []string
	if c.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.User == "" {
		missing = append(missing, "DB_USER")
	}
	if c.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("DATABASE_URL or %s is required", strings.Join(missing, ", "))
	}
	return nil
}

// Load reads .env (if present) and the environment. Environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BOT_DEBUG", false)
	v.SetDefault("POLL_TIMEOUT", 60)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")

	token := v.GetString("TELEGRAM_BOT_TOKEN")
	if token == "" {
		token = v.GetString("BOT_TOKEN")
	}
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	cfg := &Config{
		AppEnv:      v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		BotToken:    token,
		BotDebug:    v.GetBool("BOT_DEBUG"),
		PollTimeout: v.GetInt("POLL_TIMEOUT"),
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 60
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
