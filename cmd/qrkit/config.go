package main

import (
	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/ratelimiter"
	qrsvc "github.com/dmitrymomot/qrkit/svc/qr"
)

// History backends.
const (
	driverMemory   = "memory"
	driverBolt     = "bolt"
	driverRedis    = "redis"
	driverPostgres = "postgres"
	driverMongo    = "mongo"
)

// Image storage backends.
const (
	storageNone  = "none"
	storageLocal = "local"
	storageS3    = "s3"
)

type appConfig struct {
	History   historyConfig
	Storage   storageConfig
	Settings  qrsvc.Settings
	HTTP      httpserver.Config
	Log       logger.Config
	RateLimit ratelimiter.Config
}

type historyConfig struct {
	Driver   string `env:"HISTORY_DRIVER" envDefault:"memory"`
	BoltPath string `env:"HISTORY_BOLT_PATH" envDefault:"data/history.db"`
}

type storageConfig struct {
	Driver   string `env:"STORAGE_DRIVER" envDefault:"none"`
	LocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"data/files"`
	LocalURL string `env:"STORAGE_LOCAL_URL" envDefault:"/files/"`
}
