// Package config loads typed configuration from environment variables.
//
// Config structs declare their variables with github.com/caarlos0/env tags
// (env, envDefault, envSeparator, envPrefix). Load parses them into a fresh
// value, reading a local .env file through github.com/joho/godotenv first.
// Every package in this module exposes such a struct (session.Config,
// redis.Config, pg.Config and so on) so a service can embed them all.
package config
