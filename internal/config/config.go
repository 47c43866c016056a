package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every runtime knob the server reads from the environment.
// Pricing defaults mirror the storefront's published policy: free shipping
// at 999, flat fee 99, 18% tax. Prices are integer minor currency units.
type Config struct {
	Addr        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FreeShippingThreshold int
	ShippingFee           int
	TaxRate               float64

	RateLimitMax    int
	RateLimitWindow time.Duration
}

func Load() Config {
	return Config{
		Addr:        getString("VYBE_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getDuration("JWT_TTL", 7*24*time.Hour),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		FreeShippingThreshold: getInt("FREE_SHIPPING_THRESHOLD", 999),
		ShippingFee:           getInt("SHIPPING_FEE", 99),
		TaxRate:               getFloat("TAX_RATE", 0.18),

		RateLimitMax:    getInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
