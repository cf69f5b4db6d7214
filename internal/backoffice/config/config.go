package config

import (
	"flag"
	"os"
	"strconv"
)

// Config contains application configuration
type Config struct {
	RunAddress            string
	DatabaseURI           string
	NotifierAddress       string
	JWTSecret             string
	FreeDeliveryThreshold float64
	DeliveryFee           float64
}

// NewConfig creates a new configuration from environment variables or flags
func NewConfig() *Config {
	var cfg Config

	// Parse flags
	flag.StringVar(&cfg.RunAddress, "a", "", "Server run address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "Database URI")
	flag.StringVar(&cfg.NotifierAddress, "n", "", "Notification gateway address")
	flag.StringVar(&cfg.JWTSecret, "s", "", "JWT signing secret")
	flag.Float64Var(&cfg.FreeDeliveryThreshold, "t", 0, "Free delivery threshold")
	flag.Float64Var(&cfg.DeliveryFee, "f", 0, "Delivery fee below threshold")
	flag.Parse()

	// Override with env vars if present
	if envAddr := os.Getenv("RUN_ADDRESS"); envAddr != "" {
		cfg.RunAddress = envAddr
	}

	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}

	if envNotifier := os.Getenv("NOTIFIER_ADDRESS"); envNotifier != "" {
		cfg.NotifierAddress = envNotifier
	}

	if envSecret := os.Getenv("JWT_SECRET"); envSecret != "" {
		cfg.JWTSecret = envSecret
	}

	if envThreshold := os.Getenv("FREE_DELIVERY_THRESHOLD"); envThreshold != "" {
		if v, err := strconv.ParseFloat(envThreshold, 64); err == nil {
			cfg.FreeDeliveryThreshold = v
		}
	}

	if envFee := os.Getenv("DELIVERY_FEE"); envFee != "" {
		if v, err := strconv.ParseFloat(envFee, 64); err == nil {
			cfg.DeliveryFee = v
		}
	}

	// Set defaults if needed
	if cfg.RunAddress == "" {
		cfg.RunAddress = ":8080"
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret"
	}

	if cfg.FreeDeliveryThreshold == 0 {
		cfg.FreeDeliveryThreshold = 500
	}

	if cfg.DeliveryFee == 0 {
		cfg.DeliveryFee = 49
	}

	return &cfg
}
