// Seed tool: stores a development session and optional sample posts.
// - store=postgres writes the session (and posts) to DATABASE_URL
// - store=redis writes the session to REDIS_URL
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/sessions"
	"Inkwell/internal/db/migrations"
	postgresRepo "Inkwell/internal/db/postgres"
	"Inkwell/internal/db/redisstore"
)

func main() {
	var (
		store    = flag.String("store", "postgres", "session store to seed: postgres | redis")
		dbURL    = flag.String("database-url", "", "postgres URL (defaults to DATABASE_URL)")
		redisURL = flag.String("redis-url", "", "redis URL (defaults to REDIS_URL)")
		token    = flag.String("token", "test-session-token", "session token to store")
		userID   = flag.String("user", "1", "user id the session belongs to")
		ttl      = flag.Duration("ttl", 0, "session lifetime; 0 means no expiry")
		numPosts = flag.Int("posts", 0, "number of sample posts to insert (postgres only)")
		envFile  = flag.String("env", ".env", "optional dotenv file")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debugf("no env file loaded (%s): %v", *envFile, err)
	}
	if *dbURL == "" {
		*dbURL = os.Getenv("DATABASE_URL")
	}
	if *redisURL == "" {
		*redisURL = os.Getenv("REDIS_URL")
	}

	ctx := context.Background()

	session := &sessions.Session{
		ID:        uuid.NewString(),
		UserID:    *userID,
		Token:     *token,
		CreatedAt: time.Now().UTC(),
	}
	if *ttl > 0 {
		expires := session.CreatedAt.Add(*ttl)
		session.ExpiresAt = &expires
	}

	switch *store {
	case "postgres":
		if err := seedPostgres(ctx, *dbURL, session, *numPosts); err != nil {
			log.Fatalf("seed postgres failed: %v", err)
		}
	case "redis":
		if err := seedRedis(ctx, *redisURL, session); err != nil {
			log.Fatalf("seed redis failed: %v", err)
		}
		if *numPosts > 0 {
			log.Warn("-posts is ignored for the redis store")
		}
	default:
		log.Fatalf("unknown store: %s", *store)
	}

	log.WithFields(log.Fields{
		"store":   *store,
		"user_id": session.UserID,
	}).Info("session seeded")
}

func seedPostgres(ctx context.Context, url string, session *sessions.Session, numPosts int) error {
	if url == "" {
		return fmt.Errorf("database url is required")
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := migrations.Up(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := postgresRepo.NewSessionStore(db).Save(ctx, session); err != nil {
		return err
	}

	repo := postgresRepo.NewPostRepository(db)
	for i := 1; i <= numPosts; i++ {
		req := posts.CreatePostRequest{
			Title:   fmt.Sprintf("Sample post %d", i),
			Content: fmt.Sprintf("Content for sample post %d", i),
		}
		if _, err := repo.Create(ctx, req, session.UserID); err != nil {
			return fmt.Errorf("failed to create sample post %d: %w", i, err)
		}
	}
	if numPosts > 0 {
		log.Printf("inserted %d sample posts", numPosts)
	}

	return nil
}

func seedRedis(ctx context.Context, url string, session *sessions.Session) error {
	if url == "" {
		return fmt.Errorf("redis url is required")
	}

	store, err := redisstore.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Save(ctx, session)
}
