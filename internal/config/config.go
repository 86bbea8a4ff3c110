package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings for the server. Solver tuning is passed
// explicitly to the solver on every call; nothing reads it globally.
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	YelpAPIKey          string
	ORSAPIKey           string
	MapboxAccessToken   string
	IsochroneProvider   string
	IsochroneMinutes    int
	IsochroneProfile    string
	MedianTolerance     float64
	MedianMaxIterations int
	BusinessCacheTTL    time.Duration
	SentryDSN           string
}

// Get returns the environment value for key or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env when present; process environment wins.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads the server configuration from the environment.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Env:               Get("APP_ENV", "development"),
		Port:              Get("PORT", "8080"),
		DatabaseURL:       Get("DATABASE_URL", ""),
		RedisURL:          Get("REDIS_URL", ""),
		YelpAPIKey:        Get("YELP_API_KEY", ""),
		ORSAPIKey:         Get("ORS_API_KEY", ""),
		MapboxAccessToken: Get("MAPBOX_ACCESS_TOKEN", ""),
		IsochroneProvider: strings.ToLower(Get("ISOCHRONE_PROVIDER", "mapbox")),
		IsochroneProfile:  Get("ISOCHRONE_PROFILE", "driving"),
		SentryDSN:         Get("SENTRY_DSN", ""),
	}

	var err error
	if cfg.IsochroneMinutes, err = strconv.Atoi(Get("ISOCHRONE_MINUTES", "15")); err != nil || cfg.IsochroneMinutes < 1 || cfg.IsochroneMinutes > 60 {
		errs = append(errs, fmt.Errorf("ISOCHRONE_MINUTES must be an integer between 1 and 60"))
	}
	if cfg.MedianTolerance, err = strconv.ParseFloat(Get("MEDIAN_TOLERANCE", "1e-6"), 64); err != nil || cfg.MedianTolerance <= 0 {
		errs = append(errs, fmt.Errorf("MEDIAN_TOLERANCE must be a positive number"))
	}
	if cfg.MedianMaxIterations, err = strconv.Atoi(Get("MEDIAN_MAX_ITERATIONS", "1000")); err != nil || cfg.MedianMaxIterations < 1 {
		errs = append(errs, fmt.Errorf("MEDIAN_MAX_ITERATIONS must be a positive integer"))
	}
	if cfg.BusinessCacheTTL, err = time.ParseDuration(Get("BUSINESS_CACHE_TTL", "10m")); err != nil || cfg.BusinessCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("BUSINESS_CACHE_TTL must be a positive duration"))
	}

	if cfg.YelpAPIKey == "" {
		errs = append(errs, errors.New("YELP_API_KEY is required"))
	}

	switch cfg.IsochroneProvider {
	case "mapbox":
		if cfg.MapboxAccessToken == "" {
			errs = append(errs, errors.New("MAPBOX_ACCESS_TOKEN is required for ISOCHRONE_PROVIDER=mapbox"))
		}
	case "ors":
		if cfg.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required for ISOCHRONE_PROVIDER=ors"))
		}
	default:
		errs = append(errs, fmt.Errorf("ISOCHRONE_PROVIDER %q must be mapbox or ors", cfg.IsochroneProvider))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
