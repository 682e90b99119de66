package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/sanandmv7/minitq/internal/domain"
	"github.com/sanandmv7/minitq/internal/game"
	"github.com/sanandmv7/minitq/internal/quiz"
)

// Handler exposes the quiz REST surface and the websocket leaderboard feed.
type Handler struct {
	catalog   quiz.Source
	game      *game.Service
	feed      *Feed
	staticDir string
}

func NewHandler(catalog quiz.Source, gameService *game.Service, feed *Feed, staticDir string) *Handler {
	return &Handler{
		catalog:   catalog,
		game:      gameService,
		feed:      feed,
		staticDir: staticDir,
	}
}

// Register wires all routes into the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.serveIndex)
	if h.staticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir))))
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/questions", h.listQuestions)
	mux.HandleFunc("POST /api/submit/{index}", h.submitAnswer)
	mux.HandleFunc("POST /api/finish", h.finishGame)
	mux.HandleFunc("GET /api/leaderboard", h.getLeaderboard)
	mux.HandleFunc("GET /ws/leaderboard", h.serveLeaderboardWS)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	if h.staticDir == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.Catalog(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.Questions())
}

type submitRequest struct {
	WalletAddress string `json:"wallet_address"`
	Answer        int    `json:"answer"`
}

type submitResponse struct {
	Correct bool `json:"correct"`
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid question index")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	catalog, err := h.catalog.Catalog(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	correct, err := catalog.CheckAnswer(index, req.Answer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Correct: correct})
}

type finishRequest struct {
	Wallet string `json:"wallet"`
	Score  int    `json:"score"`
}

func (h *Handler) finishGame(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Wallet == "" {
		writeErrorMessage(w, http.StatusBadRequest, "wallet is required")
		return
	}

	result, err := h.game.Finish(r.Context(), req.Wallet, req.Score)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.feed != nil {
		h.feed.Publish(result.Leaderboard)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.game.Leaderboard(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuestionOutOfRange),
		errors.Is(err, domain.ErrOptionOutOfRange),
		errors.Is(err, domain.ErrScoreOutOfRange):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error().Err(err).Msg("storage unavailable")
		writeErrorMessage(w, http.StatusServiceUnavailable, "leaderboard temporarily unavailable")
	case errors.Is(err, domain.ErrCatalogNotFound):
		log.Error().Err(err).Msg("catalog unavailable")
		writeErrorMessage(w, http.StatusServiceUnavailable, "question catalog unavailable")
	default:
		log.Error().Err(err).Msg("request failed")
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("write response failed")
	}
}
