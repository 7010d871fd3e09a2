package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Config aggregates every setting of the service.
type Config struct {
	Server  ServerConfig
	Billing BillingConfig
	Auth    AuthConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	billing, err := loadBillingConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Billing: billing, Auth: loadAuthConfig()}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// loadServerConfig parses the listen address.
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// BillingConfig carries the two independent hourly rates: the per-visit rate
// from client management and the hall rate from product checkout. Nothing
// says they are meant to be equal, so they stay separate knobs.
type BillingConfig struct {
	VisitHourRate decimal.Decimal
	HallHourRate  decimal.Decimal
}

func loadBillingConfig() (BillingConfig, error) {
	visitRate, err := loadRate("VISIT_HOUR_RATE", "10")
	if err != nil {
		return BillingConfig{}, err
	}

	hallRate, err := loadRate("HALL_HOUR_RATE", "50")
	if err != nil {
		return BillingConfig{}, err
	}

	return BillingConfig{VisitHourRate: visitRate, HallHourRate: hallRate}, nil
}

func loadRate(key, fallback string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = fallback
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s value: %q", key, raw)
	}
	if rate.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s cannot be negative: %s", key, rate)
	}

	return rate, nil
}

// AuthConfig holds the optional operator credentials. When both are empty the
// login accepts any non-empty pair.
type AuthConfig struct {
	Username string
	Password string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		Username: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
}
