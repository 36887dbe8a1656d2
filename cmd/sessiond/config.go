package main

import (
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// Store backends selectable with SESSION_STORE.
const (
	storeMemory   = "memory"
	storeRedis    = "redis"
	storeMongo    = "mongo"
	storePostgres = "postgres"
)

type appConfig struct {
	Log logger.Config

	Store         string        `env:"SESSION_STORE" envDefault:"memory"`
	MemoryCleanup time.Duration `env:"SESSION_MEMORY_CLEANUP_INTERVAL" envDefault:"1m"`

	// TokensEnabled turns on bearer tokens; JWT_* variables are then required.
	TokensEnabled bool `env:"TOKENS_ENABLED" envDefault:"false"`

	HTTP    httpserver.Config
	Session session.Config
}
