// Package config loads application configuration from environment
// variables into tagged structs, parsed once per type and cached.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// LoadEnv reads one or more .env files into the process environment, Load
// parses the environment into any struct using `env` field tags, and the
// cache guarantees each configuration type is parsed at most once per
// process even under concurrent access. ResetCache and ForceReloadConfig
// exist for tests.
//
// # Usage
//
//	type BoardsConfig struct {
//		Organization string `env:"BOARDS_ORG,required"`
//		Token        string `env:"BOARDS_PAT,required"`
//	}
//
//	var cfg BoardsConfig
//	config.MustLoad(&cfg)
package config
