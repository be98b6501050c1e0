package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceName = "civicledger-api"
	Version     = "1.0.0"
)

type Config struct {
	Port          string
	AllowedOrigin string
	RateLimit     int
	RateWindow    time.Duration
	MaxBodyBytes  int64
	SeedData      bool
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	// Optional .env for local development; env vars win.
	_ = godotenv.Load()

	rate, err := strconv.Atoi(getenv("RATE_LIMIT", "100"))
	if err != nil {
		log.Fatalf("RATE_LIMIT: %v", err)
	}
	maxBody, err := strconv.ParseInt(getenv("MAX_BODY_BYTES", strconv.Itoa(10<<20)), 10, 64)
	if err != nil {
		log.Fatalf("MAX_BODY_BYTES: %v", err)
	}
	seed, err := strconv.ParseBool(getenv("SEED_DATA", "true"))
	if err != nil {
		log.Fatalf("SEED_DATA: %v", err)
	}

	return Config{
		Port:          getenv("PORT", "4000"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "http://localhost:3000"),
		RateLimit:     rate,
		RateWindow:    15 * time.Minute,
		MaxBodyBytes:  maxBody,
		SeedData:      seed,
	}
}
