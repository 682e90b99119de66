package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sanandmv7/minitq/internal/config"
	"github.com/sanandmv7/minitq/internal/game"
	"github.com/sanandmv7/minitq/internal/infra/memory"
	pgloader "github.com/sanandmv7/minitq/internal/infra/postgres"
	redisstore "github.com/sanandmv7/minitq/internal/infra/redis"
	"github.com/sanandmv7/minitq/internal/quiz"
	transport "github.com/sanandmv7/minitq/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "3000"
	}

	catalog, store, cleanup, err := buildBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	service := game.NewService(store, catalog, cfg.Rewards.TokensPerAnswer, cfg.Rewards.TokenAddress)
	feed := transport.NewFeed()
	handler := transport.NewHandler(catalog, service, feed, cfg.Server.StaticDir)

	mux := http.NewServeMux()
	handler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", finalPort).Msg("starting quiz server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildBackends wires the catalog source and score store from config:
// Postgres-backed catalog and Redis-backed leaderboard when configured,
// static catalog and in-memory leaderboard otherwise.
func buildBackends(ctx context.Context, cfg config.Config) (quiz.Source, game.ScoreStore, func(), error) {
	cleanup := func() {}

	var loader quiz.Loader = quiz.NewStaticLoader(quiz.DefaultQuestions())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, cleanup, err
		}
		cleanup = pool.Close
		loader = pgloader.NewCatalogLoader(pool)
	}
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	catalog := quiz.NewCachedSource(loader, quizTTL)

	var store game.ScoreStore = memory.NewScoreStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = redisstore.NewScoreStore(client)
	}
	return catalog, store, cleanup, nil
}
