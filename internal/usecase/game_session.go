package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
)

const (
	DefaultMinNameLength = 2
	DefaultComputerName  = "Computer"
)

// Driver is the front-end collaborator steering a session.
type Driver interface {
	// RequestMove is called for human players only, with the currently available cells.
	RequestMove(ctx context.Context, player *entity.Player, availableCells []int) (int, error)
	PresentScoreboard(ctx context.Context, snapshot entity.ScoreboardSnapshot) error
	PlayAnotherRound(ctx context.Context) (bool, error)
}

// RoundEventListener receives round notifications. It must not block for long.
type RoundEventListener interface {
	OnRoundEvent(ctx context.Context, event entity.RoundEvent)
}

type opponentStrategy interface {
	ChooseMove(board *entity.Board, ownMark, opponentMark, startingMark entity.Mark) (int, error)
}

type SessionConfig struct {
	Player1Name     string
	Player2Name     string
	OpponentEnabled bool

	MinNameLength int
	ComputerName  string
}

// GameSession plays rounds between two players on one board and keeps score.
// It is not safe for concurrent use.
type GameSession struct {
	logger *slog.Logger

	id         string
	board      *entity.Board
	scoreboard *entity.Scoreboard
	players    [2]*entity.Player

	strategy  opponentStrategy
	driver    Driver
	listeners []RoundEventListener

	status string
	round  int
}

// MinNameLength returns the configured minimum name length, or the default for
// values below one.
func MinNameLength(configured int) int {
	if configured <= 0 {
		return DefaultMinNameLength
	}

	return configured
}

// ValidatePlayerName checks the minimum length in characters and that the name
// is not one of taken.
func ValidatePlayerName(name string, minLength int, taken ...string) error {
	if utf8.RuneCountInString(name) < minLength {
		return fmt.Errorf("%w: %q needs at least %d characters", apperror.ErrNameTooShort, name, minLength)
	}

	for _, other := range taken {
		if name == other {
			return fmt.Errorf("%w: %q", apperror.ErrNameTaken, name)
		}
	}

	return nil
}

// ConfigureSession validates the player setup and builds a session. Player 1
// plays X. When the opponent is enabled player 2 is computer controlled, plays
// O and is named after conf.ComputerName unless conf.Player2Name is set.
func ConfigureSession(
	logger *slog.Logger,
	conf SessionConfig,
	strategy opponentStrategy,
	driver Driver,
	listeners ...RoundEventListener,
) (*GameSession, error) {
	conf.MinNameLength = MinNameLength(conf.MinNameLength)

	if conf.ComputerName == "" {
		conf.ComputerName = DefaultComputerName
	}

	player2Name := conf.Player2Name
	if conf.OpponentEnabled && player2Name == "" {
		player2Name = conf.ComputerName
	}

	if err := ValidatePlayerName(conf.Player1Name, conf.MinNameLength); err != nil {
		return nil, fmt.Errorf("%w: player 1: %w", apperror.ErrInvalidConfiguration, err)
	}

	if err := ValidatePlayerName(player2Name, conf.MinNameLength, conf.Player1Name); err != nil {
		return nil, fmt.Errorf("%w: player 2: %w", apperror.ErrInvalidConfiguration, err)
	}

	if strategy == nil && conf.OpponentEnabled {
		return nil, fmt.Errorf("%w: opponent enabled without a strategy", apperror.ErrInvalidConfiguration)
	}

	if driver == nil {
		return nil, fmt.Errorf("%w: driver is required", apperror.ErrInvalidConfiguration)
	}

	playerA := entity.NewPlayer(conf.Player1Name, entity.PlayerX, false)
	playerB := entity.NewPlayer(player2Name, entity.PlayerO, conf.OpponentEnabled)

	id := pkg.GenerateSessionID()

	return &GameSession{
		logger: logger.With("component", "session", "sessionID", id),

		id:         id,
		board:      entity.NewBoard(),
		scoreboard: entity.NewScoreboard(playerA, playerB),
		players:    [2]*entity.Player{playerA, playerB},

		strategy:  strategy,
		driver:    driver,
		listeners: listeners,

		status: entity.StatusNotStarted,
	}, nil
}

func (that *GameSession) ID() string {
	return that.id
}

// Status is the state of the current round.
func (that *GameSession) Status() string {
	return that.status
}

// Round is the number of rounds started so far.
func (that *GameSession) Round() int {
	return that.round
}

func (that *GameSession) Players() [2]*entity.Player {
	return that.players
}

func (that *GameSession) Board() *entity.Board {
	return that.board
}

func (that *GameSession) Snapshot() entity.ScoreboardSnapshot {
	return that.scoreboard.Snapshot()
}

// RunSession plays rounds and presents the scoreboard after each of them
// until the driver declines another round.
func (that *GameSession) RunSession(ctx context.Context) error {
	log := that.logger.With("method", "RunSession")

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("session interrupted: %w", err)
		}

		if _, err := that.PlayRound(ctx); err != nil {
			return fmt.Errorf("failed to play round: %w", err)
		}

		if err := that.driver.PresentScoreboard(ctx, that.Snapshot()); err != nil {
			return fmt.Errorf("failed to present scoreboard: %w", err)
		}

		again, err := that.driver.PlayAnotherRound(ctx)
		if err != nil {
			return fmt.Errorf("failed to ask for another round: %w", err)
		}

		if !again {
			log.Info("session finished", "rounds", that.scoreboard.TotalRounds())
			return nil
		}
	}
}

// PlayRound resets the board and plays one round to its end. A move the board
// rejects aborts the round, which is scored as a tie. An error is returned only
// when the driver fails to provide a move; that round is aborted unscored.
func (that *GameSession) PlayRound(ctx context.Context) (entity.RoundOutcome, error) {
	that.board.Reset()
	that.round++
	that.status = entity.StatusInProgress

	current := that.scoreboard.WhoStarts()
	startingMark := that.players[current].Mark

	log := that.logger.With("method", "PlayRound", "round", that.round)
	log.Info("round started", "startingMark", startingMark)

	that.notify(ctx, entity.RoundEvent{
		Type:         entity.EventRoundStarted,
		StartingMark: startingMark,
	})

	markA, markB := that.players[0].Mark, that.players[1].Mark

	for !that.board.IsRoundOver(markA, markB) {
		player, opponent := that.players[current], that.players[1-current]

		cell, err := that.nextMove(ctx, player, opponent, startingMark)
		if err != nil && !errors.Is(err, apperror.ErrInvalidMove) {
			log.Error("failed to get move", "player", player.Name, "error", err)
			return that.interruptRound(ctx, err), err
		}

		if err != nil || !that.board.TryApplyMove(cell, player.Mark) {
			log.Warn("move rejected, round counted as a tie", "player", player.Name, "cell", cell, "error", err)
			that.scoreboard.RecordTie()

			return that.finishRound(ctx, entity.Aborted()), nil
		}

		that.notify(ctx, entity.RoundEvent{
			Type:   entity.EventMoveApplied,
			Player: player.Name,
			Cell:   cell,
			Mark:   player.Mark,
		})

		current = 1 - current
	}

	outcome := that.scoreRound()
	log.Info("round finished", "outcome", outcome.String())

	return that.finishRound(ctx, outcome), nil
}

// nextMove asks the strategy or the driver for a cell. Strategy failures are
// reported as ErrInvalidMove.
func (that *GameSession) nextMove(ctx context.Context, player, opponent *entity.Player, startingMark entity.Mark) (int, error) {
	if player.IsComputer {
		that.notify(ctx, entity.RoundEvent{
			Type:   entity.EventTurnStarted,
			Player: player.Name,
			Mark:   player.Mark,
		})

		cell, err := that.strategy.ChooseMove(that.board, player.Mark, opponent.Mark, startingMark)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
		}

		return cell, nil
	}

	cell, err := that.driver.RequestMove(ctx, player, that.board.AvailableCells())
	if err != nil {
		return 0, fmt.Errorf("failed to request move from %s: %w", player.Name, err)
	}

	return cell, nil
}

func (that *GameSession) scoreRound() entity.RoundOutcome {
	for _, player := range that.players {
		if that.board.HasWin(player.Mark) {
			player.IncrementScore()
			return entity.Win(player.Mark)
		}
	}

	that.scoreboard.RecordTie()

	return entity.Tie()
}

func (that *GameSession) finishRound(ctx context.Context, outcome entity.RoundOutcome) entity.RoundOutcome {
	that.status = outcome.Status()

	that.notify(ctx, entity.RoundEvent{
		Type:    entity.EventRoundFinished,
		Outcome: &outcome,
	})

	return outcome
}

// interruptRound ends the round unscored and tells listeners why.
func (that *GameSession) interruptRound(ctx context.Context, cause error) entity.RoundOutcome {
	outcome := entity.Aborted()
	that.status = outcome.Status()

	that.notify(ctx, entity.RoundEvent{
		Type:    entity.EventRoundFinished,
		Outcome: &outcome,
		Error:   cause.Error(),
	})

	return outcome
}

func (that *GameSession) notify(ctx context.Context, event entity.RoundEvent) {
	event.SessionID = that.id
	event.Round = that.round
	event.Board = that.board.Cells()

	if event.Type == entity.EventRoundStarted || event.Type == entity.EventRoundFinished {
		snapshot := that.scoreboard.Snapshot()
		event.Scoreboard = &snapshot
	}

	for _, listener := range that.listeners {
		listener.OnRoundEvent(ctx, event)
	}
}
