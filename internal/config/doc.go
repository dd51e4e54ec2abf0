// Package config loads typed configuration structs from the environment.
//
// It combines github.com/joho/godotenv (optional .env file) with
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each parsed
// type for the lifetime of the process, so packages declare and load their
// own configuration independently:
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle
//	}
package config
