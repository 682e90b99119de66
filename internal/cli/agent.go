package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sanandmv7/minitq/internal/config"
	redisstore "github.com/sanandmv7/minitq/internal/infra/redis"
	"github.com/sanandmv7/minitq/internal/rewards"
)

// NewAgentCmd runs the reward distribution agent: an always-on loop that
// reads the top leaderboard entries and pushes token payouts to the
// configured wallet agent.
func NewAgentCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "agent",
		Short: "Run the reward distribution agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd.Context(), *configPath)
		},
	}
}

func runAgent(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Redis.Addr == "" {
		return errors.New("reward agent requires redis: the leaderboard lives there")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := redisstore.NewScoreStore(client)

	var distributor rewards.Distributor = rewards.LogDistributor{}
	if cfg.Rewards.WebhookURL != "" {
		distributor = rewards.NewWebhookDistributor(cfg.Rewards.WebhookURL, cfg.Rewards.TokenAddress)
	} else {
		log.Warn().Msg("no webhook configured, payouts are dry runs")
	}

	interval := config.TTLDuration(cfg.Rewards.AgentInterval, time.Minute)
	agent := rewards.NewAgent(store, distributor, cfg.Rewards.TokensPerAnswer, interval)

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := agent.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
