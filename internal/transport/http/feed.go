package http

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sanandmv7/minitq/internal/domain"
)

// Feed fans leaderboard snapshots out to websocket subscribers. Clients
// receive the current table on connect and a fresh snapshot after every
// finished game.
type Feed struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[chan []domain.LeaderboardEntry]struct{}
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[chan []domain.LeaderboardEntry]struct{}),
	}
}

// Publish pushes a snapshot to every subscriber. Slow clients have their
// stale pending update replaced rather than blocking the publisher.
func (f *Feed) Publish(entries []domain.LeaderboardEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- entries:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- entries
		}
	}
}

func (f *Feed) subscribe() (chan []domain.LeaderboardEntry, func()) {
	ch := make(chan []domain.LeaderboardEntry, 8)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

type feedMessage struct {
	Type    string                    `json:"type"`
	Payload []domain.LeaderboardEntry `json:"payload"`
}

func (h *Handler) serveLeaderboardWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.feed.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	snapshot, err := h.game.Leaderboard(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("ws initial snapshot failed")
		snapshot = []domain.LeaderboardEntry{}
	}
	if err := conn.WriteJSON(feedMessage{Type: "leaderboard", Payload: snapshot}); err != nil {
		return
	}

	updates, cancel := h.feed.subscribe()
	defer cancel()

	// Reader goroutine only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case entries, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(feedMessage{Type: "leaderboard", Payload: entries}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
