package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, strings.NewReader(input), out), out
}

func TestConsole_AskYesNo(t *testing.T) {
	t.Run("Accepts y and n in any case", func(t *testing.T) {
		// Given: a console answering Y then n
		console, _ := newTestConsole("Y\nn\n")

		// When: asking twice
		first, err := console.AskYesNo("Continue?")
		require.NoError(t, err)
		second, err := console.AskYesNo("Continue?")
		require.NoError(t, err)

		// Then: the answers are parsed
		assert.True(t, first)
		assert.False(t, second)
	})

	t.Run("Asks again on invalid input", func(t *testing.T) {
		// Given: an invalid answer followed by y
		console, out := newTestConsole("maybe\ny\n")

		// When: asking
		answer, err := console.AskYesNo("Continue?")

		// Then: the second answer counts
		require.NoError(t, err)
		assert.True(t, answer)
		assert.Contains(t, out.String(), "'maybe' is not a valid input. Try again.")
	})

	t.Run("Gives up after too many invalid answers", func(t *testing.T) {
		// Given: only invalid answers
		console, _ := newTestConsole(strings.Repeat("x\n", maxPromptAttempts))

		// When: asking
		_, err := console.AskYesNo("Continue?")

		// Then: ErrTooManyAttempts is returned
		assert.ErrorIs(t, err, apperror.ErrTooManyAttempts)
	})

	t.Run("Returns error when input ends", func(t *testing.T) {
		// Given: no input at all
		console, _ := newTestConsole("")

		// When: asking
		_, err := console.AskYesNo("Continue?")

		// Then: EOF is reported
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestConsole_AskForTurn(t *testing.T) {
	t.Run("Accepts an allowed field", func(t *testing.T) {
		// Given: the player types 7 without a trailing newline
		console, out := newTestConsole(" 7 ")

		// When: asking for a turn
		cell, err := console.AskForTurn("Your move?", []int{3, 7, 9})

		// Then: 7 is returned and the allowed fields were listed
		require.NoError(t, err)
		assert.Equal(t, 7, cell)
		assert.Contains(t, out.String(), "Your move? (Allowed fields: 3, 7, 9)")
	})

	t.Run("Rejects taken fields and text", func(t *testing.T) {
		// Given: a taken field, text, then a free field
		console, out := newTestConsole("1\nabc\n9\n")

		// When: asking for a turn
		cell, err := console.AskForTurn("Your move?", []int{3, 7, 9})

		// Then: only the free field is accepted
		require.NoError(t, err)
		assert.Equal(t, 9, cell)
		assert.Contains(t, out.String(), "'1' is not allowed. Try again.")
		assert.Contains(t, out.String(), "'abc' is not allowed. Try again.")
	})
}

func TestConsole_AskForOption(t *testing.T) {
	// Given: an unknown option followed by a valid one
	console, out := newTestConsole("7\n1\n")

	// When: asking for the game mode
	choice, err := console.AskForOption("Available game modes:", gameModes)

	// Then: the valid key is returned and all options were shown
	require.NoError(t, err)
	assert.Equal(t, modePvC, choice)
	assert.Contains(t, out.String(), "\t0 for PvP (Player vs Player)")
	assert.Contains(t, out.String(), "\t1 for PvC (Player vs Computer)")
}

func TestConsole_Setup(t *testing.T) {
	t.Run("Configures a game against the computer", func(t *testing.T) {
		// Given: PvC, a too short name, a valid name and a confirmation
		console, out := newTestConsole("1\nA\nAlice\ny\n")

		// When: running the setup
		conf, err := console.Setup(2, "Computer")

		// Then: the opponent is enabled and the name was re-asked
		require.NoError(t, err)
		assert.True(t, conf.OpponentEnabled)
		assert.Equal(t, "Alice", conf.Player1Name)
		assert.Empty(t, conf.Player2Name)
		assert.Equal(t, 2, conf.MinNameLength)
		assert.Equal(t, "Computer", conf.ComputerName)
		assert.Contains(t, out.String(), "'A' is not allowed")
		assert.Contains(t, out.String(), "Game mode: PvC (Player vs Computer)")
	})

	t.Run("Configures a game between two players", func(t *testing.T) {
		// Given: PvP, two names where the second first repeats the first
		console, out := newTestConsole("0\nAlice\nAlice\nBob\ny\n")

		// When: running the setup
		conf, err := console.Setup(2, "Computer")

		// Then: both names are set
		require.NoError(t, err)
		assert.False(t, conf.OpponentEnabled)
		assert.Equal(t, "Alice", conf.Player1Name)
		assert.Equal(t, "Bob", conf.Player2Name)
		assert.Contains(t, out.String(), "Player 2: Bob")
	})

	t.Run("Restarts when the summary is rejected", func(t *testing.T) {
		// Given: a rejected summary, no quit, then a confirmed one
		console, _ := newTestConsole("1\nAlice\nn\nn\n0\nAlice\nBob\ny\n")

		// When: running the setup
		conf, err := console.Setup(2, "Computer")

		// Then: the second configuration is used
		require.NoError(t, err)
		assert.False(t, conf.OpponentEnabled)
		assert.Equal(t, "Bob", conf.Player2Name)
	})

	t.Run("Falls back to the default minimum length", func(t *testing.T) {
		// Given: a minimum length of zero and a one character name first
		console, out := newTestConsole("1\nA\nAlice\ny\n")

		// When: running the setup
		conf, err := console.Setup(0, "Computer")

		// Then: the short name is rejected like with the default
		require.NoError(t, err)
		assert.Equal(t, "Alice", conf.Player1Name)
		assert.Equal(t, 2, conf.MinNameLength)
		assert.Contains(t, out.String(), "'A' is not allowed")
	})

	t.Run("Quits when asked to", func(t *testing.T) {
		// Given: a rejected summary followed by quitting
		console, out := newTestConsole("1\nAlice\nn\ny\n")

		// When: running the setup
		_, err := console.Setup(2, "Computer")

		// Then: the session is declined
		assert.ErrorIs(t, err, apperror.ErrSessionDeclined)
		assert.Contains(t, out.String(), "Exiting the game")
	})
}

func TestConsole_RequestMove(t *testing.T) {
	t.Run("Prompts the player by name", func(t *testing.T) {
		// Given: the player types 5
		console, out := newTestConsole("5\n")
		player := entity.NewPlayer("Alice", entity.PlayerX, false)

		// When: requesting a move
		cell, err := console.RequestMove(context.Background(), player, []int{1, 5})

		// Then: the prompt names the player
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
		assert.Contains(t, out.String(), "What is your next move Alice?")
	})

	t.Run("Fails on a cancelled context", func(t *testing.T) {
		// Given: a cancelled context
		console, _ := newTestConsole("5\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When: requesting a move
		_, err := console.RequestMove(ctx, entity.NewPlayer("Alice", entity.PlayerX, false), []int{5})

		// Then: the cancellation is returned
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConsole_OnRoundEvent(t *testing.T) {
	t.Run("Renders free ids and marks", func(t *testing.T) {
		// Given: a board with X in the center and O in the corner
		console, out := newTestConsole("")

		// When: a move event is rendered
		console.OnRoundEvent(context.Background(), entity.RoundEvent{
			Type:   entity.EventMoveApplied,
			Player: "Computer",
			Cell:   1,
			Mark:   entity.PlayerO,
			Board:  [entity.BoardSize]entity.Mark{0: entity.PlayerO, 4: entity.PlayerX},
		})

		// Then: the grid shows marks and ids
		assert.Contains(t, out.String(), "Computer took field 1")
		assert.Contains(t, out.String(), " O | 2 | 3\n------------\n 4 | X | 6\n")
	})

	t.Run("Announces the computer turn", func(t *testing.T) {
		console, out := newTestConsole("")

		// When: a turn event is rendered
		console.OnRoundEvent(context.Background(), entity.RoundEvent{
			Type:   entity.EventTurnStarted,
			Player: "Computer",
			Mark:   entity.PlayerO,
		})

		// Then: the player is named
		assert.Contains(t, out.String(), "It's the turn of Computer")
	})

	t.Run("Announces the winner by name", func(t *testing.T) {
		// Given: a round won by X
		console, out := newTestConsole("")
		outcome := entity.Win(entity.PlayerX)

		// When: the finish event is rendered
		console.OnRoundEvent(context.Background(), entity.RoundEvent{
			Type:    entity.EventRoundFinished,
			Outcome: &outcome,
			Scoreboard: &entity.ScoreboardSnapshot{
				Players: [2]entity.PlayerScore{
					{Name: "Alice", Mark: entity.PlayerX, Score: 1},
					{Name: "Bob", Mark: entity.PlayerO},
				},
			},
		})

		// Then: the winner is named
		assert.Contains(t, out.String(), "Alice won this round!")
	})

	t.Run("Announces ties and aborted rounds", func(t *testing.T) {
		console, out := newTestConsole("")
		tie, aborted := entity.Tie(), entity.Aborted()

		// When: a tie and an aborted round finish
		console.OnRoundEvent(context.Background(), entity.RoundEvent{Type: entity.EventRoundFinished, Outcome: &tie})
		console.OnRoundEvent(context.Background(), entity.RoundEvent{Type: entity.EventRoundFinished, Outcome: &aborted})

		// Then: both are announced
		assert.Contains(t, out.String(), "It's a tie. Nobody wins")
		assert.Contains(t, out.String(), "Ending this round with a tie and starting again.")
	})

	t.Run("Reports an interrupted round without a tie", func(t *testing.T) {
		console, out := newTestConsole("")
		aborted := entity.Aborted()

		// When: a round interrupted by an input failure finishes
		console.OnRoundEvent(context.Background(), entity.RoundEvent{
			Type:    entity.EventRoundFinished,
			Outcome: &aborted,
			Error:   "unexpected EOF",
		})

		// Then: the cause is shown and no tie is announced
		assert.Contains(t, out.String(), "The round was interrupted: unexpected EOF")
		assert.NotContains(t, out.String(), "tie")
	})
}

func TestConsole_PresentScoreboard(t *testing.T) {
	// Given: a scoreboard after three rounds
	console, out := newTestConsole("")
	snapshot := entity.ScoreboardSnapshot{
		Players: [2]entity.PlayerScore{
			{Name: "Alice", Mark: entity.PlayerX, Score: 2},
			{Name: "Computer", Mark: entity.PlayerO, IsComputer: true},
		},
		Ties:        1,
		TotalRounds: 3,
	}

	// When: presenting it
	require.NoError(t, console.PresentScoreboard(context.Background(), snapshot))

	// Then: scores and ties are printed
	assert.Contains(t, out.String(), "Current score:\nAlice: 2\nComputer: 0\nTies: 1\n")
}

func TestConsole_PlayAnotherRound(t *testing.T) {
	// Given: the user declines
	console, out := newTestConsole("n\n")

	// When: asking for another round
	again, err := console.PlayAnotherRound(context.Background())

	// Then: the session should stop
	require.NoError(t, err)
	assert.False(t, again)
	assert.Contains(t, out.String(), "Do you want to play another round?")
}
