package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseUrl string
	JwtSecret   string
	Port        string
	AmqpUrl     string
	CorsOrigin  string
	TokenTtl    time.Duration
	Development bool
}

// LoadConfig reads configuration from the environment. A .env file is loaded
// first when present, so local setups can copy .env.example instead of
// exporting variables by hand.
//
// JWT_SECRET must stay stable across restarts: rotating it invalidates every
// outstanding token.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DatabaseUrl: os.Getenv("DATABASE_URL"),
		JwtSecret:   os.Getenv("JWT_SECRET"),
		Port:        os.Getenv("PORT"),
		AmqpUrl:     os.Getenv("AMQP_URL"),
		CorsOrigin:  os.Getenv("CORS_ORIGIN"),
		TokenTtl:    time.Hour,
		Development: os.Getenv("APP_ENV") == "development",
	}

	if config.DatabaseUrl == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	if config.JwtSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	if config.Port == "" {
		config.Port = "8080"
	}
	if config.CorsOrigin == "" {
		config.CorsOrigin = "http://localhost:4200"
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %v", err)
		}
		config.TokenTtl = d
	}

	return config, nil
}
