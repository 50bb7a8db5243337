package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	api "github.com/mind-engage/mindengage-quiz/internal/api/http"
	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/config"
	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/events"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/leaderboard"
	"github.com/mind-engage/mindengage-quiz/internal/logger"
	"github.com/mind-engage/mindengage-quiz/internal/puzzle"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

func main() {
	cfg := config.FromEnv()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := serve(ctx, cfg, log)
	stop()
	log.Sync()
	os.Exit(code)
}

// serve runs the server and maps its outcome to a process exit code.
func serve(ctx context.Context, cfg config.Config, log *logger.Logger) int {
	if err := run(ctx, cfg, log); err != nil {
		log.Error("quizd stopped", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	// --- Storage ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, sink, closeStore, err := openStore(openCtx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Score mirror (optional) ---
	var (
		mirror *leaderboard.RedisMirror
		ranker api.Ranker
	)
	engineOpts := []grading.Option{grading.WithLogger(log)}
	if cfg.RedisAddr != "" {
		rc, err := leaderboard.Connect(openCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, rank lookups disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer closeRedis(rc, log)
			mirror = leaderboard.NewRedisMirror(rc, "")
			ranker = mirror
			engineOpts = append(engineOpts, grading.WithMirror(mirror))
		}
	}

	// --- Core ---
	engine := grading.NewEngine(store, store, engineOpts...)
	svc := quiz.NewService(store, engine,
		quiz.WithMaxQuestions(cfg.MaxQuestions),
		quiz.WithEvents(sink),
		quiz.WithLogger(log),
		quiz.WithSeed(puzzle.Static(), puzzle.New(), cfg.SeedProcedural),
	)

	seeded, err := svc.SeedIfEmpty(openCtx)
	if err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	}
	if seeded > 0 {
		log.Info("seeded empty question bank", "total", seeded)
	}

	if mirror != nil {
		entries, err := svc.Leaderboard(openCtx)
		if err == nil {
			err = mirror.Rebuild(openCtx, entries)
		}
		if err != nil {
			log.Warn("leaderboard mirror rebuild failed", "error", err)
		}
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", auth.AdminKeyHeader},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.Deps{
		Service:            svc,
		Auth:               auth.NewAuthService(cfg.AuthSecret),
		Ranker:             ranker,
		AdminKey:           cfg.AdminKey,
		EnableRegistration: cfg.EnableRegistration,
		ReseedCount:        cfg.SeedProcedural,
	})
	if cfg.AdminKey == "" {
		log.Info("ADMIN_KEY unset, admin routes disabled")
	}

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db", cfg.DBDriver)
		errc <- s.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return s.Shutdown(shutdownCtx)
}

// openStore returns the store, its event sink and a close func.
func openStore(ctx context.Context, cfg config.Config) (quiz.Store, events.Sink, func(), error) {
	if cfg.DBDriver == "memory" {
		return quiz.NewMemoryStore(), &events.MemoryLog{}, func() {}, nil
	}
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db open: %w", err)
	}
	return quiz.NewSQLStore(dbh), events.NewEventRepo(dbh), func() { _ = dbh.Close() }, nil
}

func closeRedis(c *redis.Client, log *logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("redis close", "error", err)
	}
}
