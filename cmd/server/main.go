package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"meeting-point-service/internal/adapters/cache"
	"meeting-point-service/internal/adapters/mapbox"
	"meeting-point-service/internal/adapters/ors"
	"meeting-point-service/internal/adapters/yelp"
	"meeting-point-service/internal/api"
	"meeting-point-service/internal/api/handlers"
	"meeting-point-service/internal/config"
	"meeting-point-service/internal/platform/db"
	"meeting-point-service/internal/platform/report"
	"meeting-point-service/internal/ports"
	"meeting-point-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Yelp, Mapbox/ORS, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := report.Setup(cfg.SentryDSN, cfg.Env); err != nil {
		log.Printf("sentry disabled: %v", err)
	}
	defer report.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Both caches are optional; without them every lookup goes upstream.
	checks := map[string]handlers.HealthCheck{}

	var geocodeCache ports.GeocodeCache
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := cache.InitSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}
		geocodeCache = cache.NewSQLGeocodeCache(conn)
		checks["postgres"] = conn.PingContext
	}

	var businessCache ports.BusinessCache
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer closeRedis(rdb)
		businessCache = cache.NewRedisBusinessCache(rdb, cfg.BusinessCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	yelpOpts := []yelp.Option{}
	if businessCache != nil {
		yelpOpts = append(yelpOpts, yelp.WithCache(businessCache))
	}
	businesses, err := yelp.NewClient(cfg.YelpAPIKey, yelpOpts...)
	if err != nil {
		log.Fatal(err)
	}

	var geocoder ports.Geocoder
	var orsClient *ors.Client
	if cfg.ORSAPIKey != "" {
		orsOpts := []ors.Option{}
		if geocodeCache != nil {
			orsOpts = append(orsOpts, ors.WithGeocodeCache(geocodeCache))
		}
		orsClient, err = ors.NewClient(cfg.ORSAPIKey, orsOpts...)
		if err != nil {
			log.Fatal(err)
		}
		geocoder = orsClient
	}

	var isochrones ports.IsochroneProvider
	switch cfg.IsochroneProvider {
	case "ors":
		isochrones = orsClient
	default:
		isochrones, err = mapbox.NewIsochroneClient(cfg.MapboxAccessToken, "", nil)
		if err != nil {
			log.Fatal(err)
		}
	}

	router := api.NewRouter(api.Dependencies{
		Businesses:       businesses,
		Isochrones:       isochrones,
		Geocoder:         geocoder,
		HealthChecks:     checks,
		IsochroneMinutes: cfg.IsochroneMinutes,
		IsochroneProfile: cfg.IsochroneProfile,
		Median: services.MedianOptions{
			Tolerance:     cfg.MedianTolerance,
			MaxIterations: cfg.MedianMaxIterations,
		},
	})

	// Timeouts cover a cold-cache meeting point request (geocode, isochrone and search upstream).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s env=%s isochrones=%s geocoder=%t", cfg.Port, cfg.Env, cfg.IsochroneProvider, geocoder != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("close redis: %v", err)
	}
}

