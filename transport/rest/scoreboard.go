package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// ScoreboardView keeps the latest session standing seen on the event stream.
// Events arrive from the session goroutine, reads come from HTTP handlers.
type ScoreboardView struct {
	mu sync.RWMutex

	state ScoreboardState
}

type ScoreboardState struct {
	SessionID  string                        `json:"session_id"`
	Round      int                           `json:"round"`
	Status     string                        `json:"status"`
	Board      [entity.BoardSize]entity.Mark `json:"board"`
	Scoreboard entity.ScoreboardSnapshot     `json:"scoreboard"`
}

func NewScoreboardView() *ScoreboardView {
	return &ScoreboardView{
		state: ScoreboardState{Status: entity.StatusNotStarted},
	}
}

func (that *ScoreboardView) OnRoundEvent(_ context.Context, event entity.RoundEvent) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state.SessionID = event.SessionID
	that.state.Round = event.Round
	that.state.Board = event.Board

	if event.Scoreboard != nil {
		that.state.Scoreboard = *event.Scoreboard
	}

	switch event.Type {
	case entity.EventRoundStarted, entity.EventMoveApplied:
		that.state.Status = entity.StatusInProgress
	case entity.EventRoundFinished:
		if event.Outcome != nil {
			that.state.Status = event.Outcome.Status()
		}
	}
}

func (that *ScoreboardView) State() ScoreboardState {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state
}

type scoreboardHandler struct {
	logger *slog.Logger
	view   *ScoreboardView
}

func (that *scoreboardHandler) getScoreboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(that.view.State()); err != nil {
		that.logger.Error("failed to encode scoreboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
