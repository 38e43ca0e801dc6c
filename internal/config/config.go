// Package config loads runtime configuration from .env and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MetricsAddr string

	// Empty means the built-in seed network is used.
	DatabaseURL string

	NATSURL         string
	PositionSubject string
	ArrivalSubject  string

	PredictorURL     string
	PredictorTimeout time.Duration

	AverageSpeedKmh    float64
	PricePerKm         float64
	MaxSeatsPerBooking int

	Location *time.Location
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getenvDefault("API_PORT", "8080"),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		NATSURL:         os.Getenv("NATS_URL"),
		PositionSubject: getenvDefault("NATS_POSITION_SUBJECT", "vehicles.positions"),
		ArrivalSubject:  getenvDefault("NATS_ARRIVAL_SUBJECT", "vehicles.arrivals"),
		PredictorURL:    os.Getenv("PREDICTOR_URL"),
	}

	if v := os.Getenv("PREDICTOR_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid PREDICTOR_TIMEOUT_MS: %q", v)
		}
		cfg.PredictorTimeout = time.Duration(ms) * time.Millisecond
	} else {
		cfg.PredictorTimeout = 10 * time.Second
	}

	var err error
	cfg.AverageSpeedKmh, err = floatEnv("AVERAGE_SPEED_KMH", 45)
	if err != nil {
		return nil, err
	}
	cfg.PricePerKm, err = floatEnv("PRICE_PER_KM", 15)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MAX_SEATS_PER_BOOKING"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_SEATS_PER_BOOKING: %q", v)
		}
		cfg.MaxSeatsPerBooking = n
	} else {
		cfg.MaxSeatsPerBooking = 5
	}

	tzName := os.Getenv("TZ")
	if tzName == "" {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ: %v", err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
