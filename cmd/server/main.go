package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/api/routes"
	"Inkwell/internal/config"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/sessions"
	"Inkwell/internal/db/memory"
	"Inkwell/internal/db/migrations"
	postgresRepo "Inkwell/internal/db/postgres"
	"Inkwell/internal/db/redisstore"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	configureLogging(cfg)

	ctx := context.Background()

	var db *sql.DB
	if cfg.UsesPostgres() {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: ", err)
		}
		log.Println("Connected to database")

		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to run migrations: ", err)
		}
		log.Println("Migrations completed successfully")
	}

	// Post store
	var postRepo posts.Repository
	switch cfg.PostStore {
	case config.BackendPostgres:
		postRepo = postgresRepo.NewPostRepository(db)
	default:
		postRepo = memory.NewPostStore()
		log.Warn("Using in-memory post store; posts are lost on restart")
	}

	// Session store
	var sessionStore sessions.Store
	switch cfg.SessionStore {
	case config.BackendPostgres:
		sessionStore = postgresRepo.NewSessionStore(db)
	case config.BackendRedis:
		redisStore, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer func() {
			if closeErr := redisStore.Close(); closeErr != nil {
				log.Printf("Failed to close redis client: %v", closeErr)
			}
		}()
		sessionStore = redisStore
	default:
		memStore := memory.NewSessionStore()
		if cfg.DevSessionToken != "" {
			memStore.Add(&sessions.Session{
				ID:        "dev",
				UserID:    cfg.DevSessionUserID,
				Token:     cfg.DevSessionToken,
				CreatedAt: time.Now().UTC(),
			})
			log.WithField("user_id", cfg.DevSessionUserID).Info("Seeded in-memory session store with DEV_SESSION_TOKEN")
		} else {
			log.Warn("In-memory session store is empty; every request will be unauthorized")
		}
		sessionStore = memStore
	}

	sessionStore = sessions.NewCachingStore(sessionStore, cfg.SessionCacheSize, cfg.SessionCacheTTL)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	handler := routes.NewRouter(routes.RouterDeps{
		PostService:    posts.NewPostService(postRepo),
		SessionStore:   sessionStore,
		RateLimiter:    rateLimiter,
		Metrics:        middleware.NewMetrics(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":          cfg.Port,
			"post_store":    cfg.PostStore,
			"session_store": cfg.SessionStore,
		}).Info("Inkwell API starting")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server stopped")
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
