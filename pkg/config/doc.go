// Package config loads typed configuration from environment variables using
// caarlos0/env struct tags, with optional .env files read by godotenv.
//
// Load caches each configuration type for the lifetime of the process so
// packages can call it freely:
//
//	var cfg qr.Settings
//	config.MustLoad(&cfg)
//
// Parse skips the cache, and Reset clears it, which is mostly useful in tests.
package config
