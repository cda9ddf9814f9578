package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/marcelsud/booking-pulse/availability"
	"github.com/marcelsud/booking-pulse/booking"
	bookingpg "github.com/marcelsud/booking-pulse/booking/postgres"
	"github.com/marcelsud/booking-pulse/config"
	"github.com/marcelsud/booking-pulse/delivery"
	deliverypg "github.com/marcelsud/booking-pulse/delivery/postgres"
	"github.com/marcelsud/booking-pulse/internal/database"
	httpchi "github.com/marcelsud/booking-pulse/internal/http/chi"
	"github.com/marcelsud/booking-pulse/metrics"
	"github.com/marcelsud/booking-pulse/recommend"
	recommendredis "github.com/marcelsud/booking-pulse/recommend/redis"
	"github.com/marcelsud/booking-pulse/risk"
	"github.com/marcelsud/booking-pulse/rules"
	"github.com/marcelsud/booking-pulse/subscription"
	subscriptionpg "github.com/marcelsud/booking-pulse/subscription/postgres"
)

const TIMEOUT = 30 * time.Second

/* main wires every layer together: configuration, storage, the scoring
 * tables, the recommender, the delivery engine and the HTTP surface.
 * Imports point only downward, application -> business -> storage
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer pool.Close()

	bookingRepo := bookingpg.NewRepository(pool)
	subscriptionRepo := subscriptionpg.NewRepository(pool)
	attemptRepo := deliverypg.NewRepository(pool)

	loader := rules.NewLoader()
	if cfg.RulesFile != "" {
		if err := loader.Load(cfg.RulesFile); err != nil {
			fmt.Println(err)
			return
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	cache := recommendredis.NewCache(redisClient, time.Duration(cfg.HeatmapCacheTTLMinutes)*time.Minute)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	engine := delivery.NewEngine(subscriptionRepo, attemptRepo, logger,
		delivery.WithAttemptTimeout(time.Duration(cfg.DeliveryTimeoutSeconds)*time.Second))
	defer engine.Close()

	scorer := risk.NewScorer(loader.Rules().Risk)
	bookingService := booking.NewService(bookingRepo, scorer, engine)
	subscriptionService := subscription.NewService(subscriptionRepo)
	recommender := recommend.NewService(bookingRepo, cache, loader.Rules().Recommend)
	availabilityService := availability.NewService(availability.NewHoursProvider(9, 17), recommender)

	exporter, err := metrics.NewOTelExporter(metrics.NewStoreCollector(attemptRepo, subscriptionRepo))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(context.Background())

	r := httpchi.Handlers(ctx, bookingService, subscriptionService, availabilityService, recommender, attemptRepo, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("forcing closing the server")
	}
}
