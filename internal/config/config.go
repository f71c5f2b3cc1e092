package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	BotToken     string
	BaseURL      string
	DatabaseURL  string
	LocalFolder  string
	MenuPageSize int
	HomeCountry  string
	ListenAddr   string
	Env          string
}

const (
	defaultBaseURL  = "https://disease.sh/v3/covid-19/"
	defaultPageSize = 20
	defaultHome     = "Japan"
	defaultAddr     = ":8080"
)

func Load() Config {
	cfg := Config{
		BotToken:     os.Getenv("SLACK_BOT_TOKEN"),
		BaseURL:      os.Getenv("BASE_URL"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		LocalFolder:  os.Getenv("LOCAL_FOLDER"),
		MenuPageSize: defaultPageSize,
		HomeCountry:  os.Getenv("HOME_COUNTRY"),
		ListenAddr:   os.Getenv("LISTEN_ADDR"),
		Env:          os.Getenv("APP_ENV"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.LocalFolder == "" {
		cfg.LocalFolder = os.TempDir()
	}
	if cfg.HomeCountry == "" {
		cfg.HomeCountry = defaultHome
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultAddr
	}

	if raw := os.Getenv("NUM_OF_MENU_ITEMS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			slog.Warn("invalid NUM_OF_MENU_ITEMS, using default", "value", raw, "default", defaultPageSize)
		} else {
			cfg.MenuPageSize = n
		}
	}

	return cfg
}
