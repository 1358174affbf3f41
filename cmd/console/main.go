package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/config"
	"github.com/erinpaul2002/careops-console/internal/session"
	"github.com/erinpaul2002/careops-console/internal/web"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			break
		}
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Logging.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("api", cfg.API.BaseURL).
		Msg("Starting CareOps console")

	// Session persistence backend
	storage, err := newSessionStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session storage")
	}

	sess := session.NewStore(storage)
	defer sess.Close()
	prefs := session.NewPrefs(storage)

	client := api.New(cfg.API.BaseURL, sess,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithUnauthorizedHook(func() {
			log.Warn().Msg("Backend rejected the session, forcing re-login")
		}),
	)

	handlers := web.NewHandlers(client, sess, prefs, localTimezone())
	router := web.NewRouter(cfg, handlers)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Msgf("Console listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down console...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Console stopped")
}

func newSessionStorage(cfg *config.Config) (session.Storage, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return session.NewMemoryStorage(), nil
	case "file":
		return session.NewFileStorage(cfg.Session.File), nil
	case "redis":
		return session.NewRedisStorage(context.Background(), &redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func localTimezone() string {
	if name, _ := time.Now().Zone(); name != "" {
		return name
	}
	return "UTC"
}
