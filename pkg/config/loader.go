package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into a new T using its env tags.
// The first call reads a .env file from the working directory when one
// exists; variables already set in the process environment win.
//
//	type AppConfig struct {
//		Addr    string         `env:"HTTP_ADDR" envDefault:":8080"`
//		Session session.Config `envPrefix:""`
//	}
//
//	cfg, err := config.Load[AppConfig]()
func Load[T any]() (T, error) {
	defaultEnvLoaded.Do(func() {
		// A missing .env file is the normal case outside local development.
		_ = godotenv.Load()
	})

	cfg, err := env.ParseAs[T]()
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// LoadEnvFiles reads the given .env files into the process environment
// without overriding variables that are already set.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
