package rewards

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookDistributorDeliversPayload(t *testing.T) {
	var got payoutRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payout: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	dist := NewWebhookDistributor(server.URL, "0xTOKEN")
	if err := dist.Distribute(context.Background(), "0xAAA", 50); err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if got.Wallet != "0xAAA" || got.Amount != 50 || got.TokenAddress != "0xTOKEN" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestWebhookDistributorRejectedPayout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	dist := NewWebhookDistributor(server.URL, "")
	if err := dist.Distribute(context.Background(), "0xAAA", 50); err == nil {
		t.Fatalf("expected error for rejected payout")
	}
}
