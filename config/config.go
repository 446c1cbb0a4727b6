package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/coviddash/dataset"
	"hermannm.dev/wrap"
)

type Config struct {
	IsProduction bool `env:"PRODUCTION"    envDefault:"false"`
	DebugLogging bool `env:"DEBUG_LOGGING" envDefault:"false"`
	API          API
	Dataset      Dataset
}

type API struct {
	Port string `env:"API_PORT" envDefault:"8000"`
}

type Dataset struct {
	// Defaults to dataset.DefaultURL.
	URL          string        `env:"DATASET_URL"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"5m"`
}

// Reads config from environment variables, after loading them from a .env file if one exists.
func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	return parse(env.Options{})
}

func parse(options env.Options) (Config, error) {
	var config Config
	if err := env.ParseWithOptions(&config, options); err != nil {
		return Config{}, wrap.Error(err, "invalid environment variables")
	}

	if config.Dataset.URL == "" {
		config.Dataset.URL = dataset.DefaultURL
	}
	if config.Dataset.FetchTimeout < 0 {
		return Config{}, errors.New("FETCH_TIMEOUT cannot be negative")
	}

	return config, nil
}
