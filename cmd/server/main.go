package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/breakwater-app/breakwater/internal/config"
	"github.com/breakwater-app/breakwater/internal/detect"
	"github.com/breakwater-app/breakwater/internal/logging"
	"github.com/breakwater-app/breakwater/internal/service"
	"github.com/breakwater-app/breakwater/internal/store"
)

func main() {
	logger := logging.Setup(logging.FromEnv())

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var storeImpl store.Store
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Info("using in-memory store")
		storeImpl = store.NewMemoryStore()

	case config.DriverFirestore:
		client, err := firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			logger.Error("failed to create firestore client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		storeImpl = store.NewFirestoreStore(client)

	case config.DriverPostgres:
		pg, err := store.NewPostgresStore(ctx, store.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
		})
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		storeImpl = pg
	}

	detector := detect.New(cfg.DetectorConfig(), nil)
	svc := service.NewSubscriptionService(storeImpl, detector, logger)

	mux := http.NewServeMux()
	svc.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://*.vercel.app",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
	})

	handler := c.Handler(svc.Middleware(mux))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("received shutdown signal", "signal", sig)
		srv.Shutdown(context.Background())
		cancel()
	}()

	logger.Info("starting server",
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"scoring", cfg.Detect.ScoringModel,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
