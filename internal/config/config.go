package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	SettingsFile string        `koanf:"settings_file"`
	LogFile      string        `koanf:"log_file"`
	Debug        bool          `koanf:"debug"`
}

func New() (Config, error) {
	cfg := Config{
		BaseURL:      "http://app.metra-rent.uz/api/",
		ImageBaseURL: "http://app.metra-rent.uz/api/public/storage/",
		Timeout:      60 * time.Second,
		SettingsFile: "./metra-settings.json",
		LogFile:      "./metra.log",
		Debug:        false,
	}

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
