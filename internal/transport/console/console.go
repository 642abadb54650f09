package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	modePvP = "0"
	modePvC = "1"

	// maxSetupRestarts bounds how often the configuration may be restarted.
	maxSetupRestarts = 3
)

var gameModes = []Option{
	{Key: modePvP, Description: "PvP (Player vs Player)"},
	{Key: modePvC, Description: "PvC (Player vs Computer)"},
}

// Console drives a session from a text terminal.
type Console struct {
	logger *slog.Logger

	reader *bufio.Reader
	output *termenv.Output
}

func New(logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		reader: bufio.NewReader(in),
		output: termenv.NewOutput(out),
	}
}

// Setup asks for the game mode and the player names and lets the user confirm
// them. It returns apperror.ErrSessionDeclined when the user quits.
func (that *Console) Setup(minNameLength int, computerName string) (usecase.SessionConfig, error) {
	log := that.logger.With("method", "Setup")
	minNameLength = usecase.MinNameLength(minNameLength)

	for restart := 0; restart < maxSetupRestarts; restart++ {
		that.clearScreen()
		that.printf("Welcome to the tic tac toe game\n\n")

		conf, confirmed, err := that.askForConfig(minNameLength, computerName)
		if err != nil {
			return usecase.SessionConfig{}, err
		}

		if confirmed {
			log.Debug("configuration confirmed", "opponentEnabled", conf.OpponentEnabled)
			return conf, nil
		}

		quit, err := that.AskYesNo("Do you want to quit?")
		if err != nil {
			return usecase.SessionConfig{}, err
		}

		if quit {
			that.printf("Exiting the game\n")
			return usecase.SessionConfig{}, apperror.ErrSessionDeclined
		}

		that.printf("Restarting the game\n\n\n")
	}

	return usecase.SessionConfig{}, fmt.Errorf("%w: configuration restarted too often", apperror.ErrTooManyAttempts)
}

func (that *Console) askForConfig(minNameLength int, computerName string) (usecase.SessionConfig, bool, error) {
	conf := usecase.SessionConfig{
		MinNameLength: minNameLength,
		ComputerName:  computerName,
	}

	mode, err := that.AskForOption("Available game modes:", gameModes)
	if err != nil {
		return conf, false, err
	}

	conf.OpponentEnabled = mode == modePvC

	conf.Player1Name, err = that.AskForText("\nWhat is the name of player 1?", minNameLength, func(name string) error {
		forbidden := []string{}
		if conf.OpponentEnabled {
			forbidden = append(forbidden, computerName)
		}

		return usecase.ValidatePlayerName(name, minNameLength, forbidden...)
	})
	if err != nil {
		return conf, false, err
	}

	if !conf.OpponentEnabled {
		conf.Player2Name, err = that.AskForText("\nWhat is the name of player 2?", minNameLength, func(name string) error {
			return usecase.ValidatePlayerName(name, minNameLength, conf.Player1Name)
		})
		if err != nil {
			return conf, false, err
		}
	}

	var summary strings.Builder
	summary.WriteString("\nSummary:\n")
	fmt.Fprintf(&summary, "Game mode: %s\n", gameModes[boolToIndex(conf.OpponentEnabled)].Description)
	fmt.Fprintf(&summary, "Player 1: %s\n", conf.Player1Name)
	if !conf.OpponentEnabled {
		fmt.Fprintf(&summary, "Player 2: %s\n", conf.Player2Name)
	}
	summary.WriteString("Are those values correct?")

	confirmed, err := that.AskYesNo(summary.String())
	if err != nil {
		return conf, false, err
	}

	return conf, confirmed, nil
}

// RequestMove prompts the human player for one of the available cells.
func (that *Console) RequestMove(ctx context.Context, player *entity.Player, availableCells []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("move request cancelled: %w", err)
	}

	return that.AskForTurn(fmt.Sprintf("What is your next move %s?", player.Name), availableCells)
}

// PresentScoreboard prints every player's score and the tie count.
func (that *Console) PresentScoreboard(_ context.Context, snapshot entity.ScoreboardSnapshot) error {
	var message strings.Builder
	message.WriteString("\nCurrent score:\n")
	for _, player := range snapshot.Players {
		fmt.Fprintf(&message, "%s: %d\n", player.Name, player.Score)
	}
	fmt.Fprintf(&message, "Ties: %d\n\n", snapshot.Ties)

	that.printf("%s", message.String())

	return nil
}

func (that *Console) PlayAnotherRound(_ context.Context) (bool, error) {
	return that.AskYesNo("\nDo you want to play another round?")
}

// OnRoundEvent renders the board and announces turns, moves and results.
func (that *Console) OnRoundEvent(_ context.Context, event entity.RoundEvent) {
	switch event.Type {
	case entity.EventRoundStarted:
		that.clearScreen()
		that.printf("Round %d, %s starts\n\n", event.Round, that.styledMark(event.StartingMark))
		that.printBoard(event.Board)
	case entity.EventTurnStarted:
		that.printf("It's the turn of %s\n", event.Player)
	case entity.EventMoveApplied:
		that.clearScreen()
		that.printf("%s took field %d\n\n", event.Player, event.Cell)
		that.printBoard(event.Board)
	case entity.EventRoundFinished:
		that.printOutcome(event)
	}
}

func (that *Console) printOutcome(event entity.RoundEvent) {
	if event.Outcome == nil {
		return
	}

	switch event.Outcome.Kind {
	case entity.OutcomeWin:
		that.printf("%s won this round!\n", that.winnerName(event))
	case entity.OutcomeTie:
		that.printf("It's a tie. Nobody wins\n")
	case entity.OutcomeAborted:
		if event.Error != "" {
			that.printf("The round was interrupted: %s\n", event.Error)
			return
		}

		that.printf("There was an error this turn.\nEnding this round with a tie and starting again.\n")
	}
}

func (that *Console) winnerName(event entity.RoundEvent) string {
	if event.Scoreboard != nil {
		for _, player := range event.Scoreboard.Players {
			if player.Mark == event.Outcome.Winner {
				return that.output.String(player.Name).Bold().String()
			}
		}
	}

	return that.styledMark(event.Outcome.Winner)
}

// printBoard shows the mark of taken fields and the id of free ones.
func (that *Console) printBoard(cells [entity.BoardSize]entity.Mark) {
	for row := 0; row < 3; row++ {
		fields := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if cells[i] == entity.EmptyCell {
				fields = append(fields, strconv.Itoa(i+1))
				continue
			}
			fields = append(fields, that.styledMark(cells[i]))
		}

		that.printf(" %s\n", strings.Join(fields, " | "))
		if row < 2 {
			that.printf("%s\n", strings.Repeat("-", 4*3))
		}
	}

	that.printf("\n\n")
}

func (that *Console) styledMark(mark entity.Mark) string {
	color := termenv.ANSIBlue
	if mark == entity.PlayerX {
		color = termenv.ANSIRed
	}

	return that.output.String(mark.String()).Foreground(color).Bold().String()
}

func (that *Console) clearScreen() {
	if that.output.Profile == termenv.Ascii {
		return
	}

	that.output.ClearScreen()
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.output, format, args...); err != nil {
		that.logger.Error("failed to write to console", "error", err)
	}
}

func boolToIndex(value bool) int {
	if value {
		return 1
	}

	return 0
}
