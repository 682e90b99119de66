package rewards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Distributor hands a token payout to whatever performs the on-chain
// transfer. The wallet SDK lives outside this service; implementations
// here only deliver the instruction.
type Distributor interface {
	Distribute(ctx context.Context, wallet string, amount int) error
}

// LogDistributor records payout intents without moving anything. It is
// the default when no wallet agent is configured.
type LogDistributor struct{}

func (LogDistributor) Distribute(_ context.Context, wallet string, amount int) error {
	log.Info().Str("wallet", wallet).Int("amount", amount).Msg("reward payout (dry run)")
	return nil
}

// WebhookDistributor POSTs payout instructions to an external wallet
// agent endpoint.
type WebhookDistributor struct {
	url          string
	tokenAddress string
	client       *http.Client
}

func NewWebhookDistributor(url, tokenAddress string) *WebhookDistributor {
	return &WebhookDistributor{
		url:          url,
		tokenAddress: tokenAddress,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

type payoutRequest struct {
	Wallet       string `json:"wallet"`
	Amount       int    `json:"amount"`
	TokenAddress string `json:"token_address,omitempty"`
}

func (d *WebhookDistributor) Distribute(ctx context.Context, wallet string, amount int) error {
	body, err := json.Marshal(payoutRequest{
		Wallet:       wallet,
		Amount:       amount,
		TokenAddress: d.tokenAddress,
	})
	if err != nil {
		return fmt.Errorf("encode payout: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build payout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver payout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wallet agent rejected payout: status %d", resp.StatusCode)
	}
	return nil
}
