// Package devserver is a scripted stand-in for the real 28 engine: it speaks
// the exact room protocol (POST /games, one socket per room, STATE_UPDATE +
// LEGAL_ACTIONS pushes) but plays back a canned frame script instead of
// running rules. Integration tests and local development run against it.
package devserver

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mjoseph28/game28-client/internal/game"
	"github.com/mjoseph28/game28-client/internal/protocol"
)

// Step is one scripted (state, legal actions) pair. Every command from the
// client advances the script by one step; GET_STATE replays the current one.
type Step struct {
	State   *game.State
	Actions game.LegalAction
}

// ScriptFunc builds a room's script from the create-game request.
type ScriptFunc func(gameID string, startingBidder int, first4Hands [4][]string) []Step

type room struct {
	mu    sync.Mutex
	id    string
	steps []Step
	idx   int
}

func (r *room) current() Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps[r.idx]
}

func (r *room) advance() Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idx < len(r.steps)-1 {
		r.idx++
	}
	return r.steps[r.idx]
}

type Server struct {
	mu     sync.Mutex
	rooms  map[string]*room
	script ScriptFunc
	log    *zap.Logger
}

func New(log *zap.Logger, script ScriptFunc) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if script == nil {
		script = DemoScript
	}
	return &Server{
		rooms:  make(map[string]*room),
		script: script,
		log:    log,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/games", s.createGame)
	r.Get("/healthz", s.healthz)
	r.Get("/ws/games/{gameID}", s.handleWS)
	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartingBidderIndex int         `json:"startingBidderIndex"`
		First4Hands         [4][]string `json:"first4Hands"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StartingBidderIndex < 0 || req.StartingBidderIndex > 3 {
		writeDetail(w, http.StatusBadRequest, "startingBidderIndex must be 0..3")
		return
	}

	// 16 distinct real cards, 4 per seat; the other 16 become the draw pile.
	seen := make(map[string]bool)
	for _, hand := range req.First4Hands {
		if len(hand) != 4 {
			writeDetail(w, http.StatusBadRequest, "every seat needs exactly 4 cards")
			return
		}
		for _, id := range hand {
			if _, err := game.CardFromID(id); err != nil {
				writeDetail(w, http.StatusBadRequest, "unknown cardId: "+id)
				return
			}
			if seen[id] {
				writeDetail(w, http.StatusBadRequest, "duplicate cardId: "+id)
				return
			}
			seen[id] = true
		}
	}

	id := randID(8)
	s.mu.Lock()
	s.rooms[id] = &room{id: id, steps: s.script(id, req.StartingBidderIndex, req.First4Hands)}
	s.mu.Unlock()
	s.log.Info("room created", zap.String("gameID", id))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(struct {
		GameID string `json:"gameId"`
	}{GameID: id})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	s.mu.Lock()
	rm := s.rooms[gameID]
	s.mu.Unlock()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ctx := r.Context()
	if rm == nil {
		s.push(ctx, conn, protocol.ServerError{Message: "Game not found"})
		return
	}

	s.pushStep(ctx, conn, rm.current())

	for {
		readCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		_, data, err := conn.Read(readCtx)
		cancel()
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			return
		}

		cmd, err := protocol.ParseCommand(data)
		if err != nil {
			s.push(ctx, conn, protocol.ServerError{Message: "Unknown message type"})
			continue
		}

		switch cmd.(type) {
		case protocol.GetState:
			s.pushStep(ctx, conn, rm.current())
		default:
			s.pushStep(ctx, conn, rm.advance())
		}
	}
}

func (s *Server) pushStep(ctx context.Context, conn *websocket.Conn, step Step) {
	s.push(ctx, conn, protocol.StateUpdate{State: step.State})
	s.push(ctx, conn, protocol.LegalActionsUpdate{Actions: step.Actions})
}

func (s *Server) push(ctx context.Context, conn *websocket.Conn, msg protocol.Inbound) {
	payload, err := protocol.EncodeInbound(msg)
	if err != nil {
		s.log.Warn("encode push failed", zap.Error(err))
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := conn.Write(writeCtx, websocket.MessageText, payload); err != nil {
		s.log.Warn("push failed", zap.Error(err))
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Detail string `json:"detail"`
	}{Detail: detail})
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
