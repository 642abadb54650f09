package tictactoe

import (
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// openingFallbackCell is taken on the opening move when the center is gone.
const openingFallbackCell = 1

var (
	corners = []int{1, 3, 7, 9}

	// forkLines are scanned for the opponent's first mark on the second move
	// of a round this strategy opened.
	forkLines = [][]int{
		{1, 2, 3},
		{7, 8, 9},
		{1, 4},
		{3, 6},
	}
)

// OpponentStrategy picks moves for the computer controlled player.
// It is a deterministic heuristic, not a game tree search.
type OpponentStrategy struct{}

func NewOpponentStrategy() *OpponentStrategy {
	return &OpponentStrategy{}
}

// ChooseMove returns an available cell id for ownMark. Rules are tried in order:
// opening, fork defense, win, block, first free cell.
func (that *OpponentStrategy) ChooseMove(board *entity.Board, ownMark, opponentMark, startingMark entity.Mark) (int, error) {
	available := board.AvailableCells()
	if len(available) == 0 {
		return 0, apperror.ErrNoAvailableCells
	}

	own := board.OccupiedCellsByMark(ownMark)
	opponent := board.OccupiedCellsByMark(opponentMark)

	switch roundIndex := (len(own) + len(opponent)) / 2; {
	case roundIndex == 0:
		return openingMove(board), nil
	case roundIndex == 1 && startingMark == ownMark:
		if cell, ok := forkDefense(opponent, available); ok {
			return cell, nil
		}
	}

	if cell, ok := completeLine(own, available); ok {
		return cell, nil
	}

	if cell, ok := completeLine(opponent, available); ok {
		return cell, nil
	}

	return available[0], nil
}

func openingMove(board *entity.Board) int {
	if board.IsAvailable(entity.CenterCell) {
		return entity.CenterCell
	}

	return openingFallbackCell
}

// forkDefense takes a free corner on the first fork line holding the
// opponent's lowest cell. Only that line is considered.
func forkDefense(opponent, available []int) (int, bool) {
	if len(opponent) == 0 {
		return 0, false
	}

	for _, line := range forkLines {
		if !slices.Contains(line, opponent[0]) {
			continue
		}

		for _, cell := range line {
			if slices.Contains(corners, cell) && slices.Contains(available, cell) {
				return cell, true
			}
		}

		return 0, false
	}

	return 0, false
}

// completeLine finds the first winning line where marked holds two cells and
// the third one is free, and returns that free cell.
func completeLine(marked, available []int) (int, bool) {
	for _, combo := range entity.WinCombos {
		taken := 0
		free := make([]int, 0, len(combo))

		for _, cell := range combo {
			switch {
			case slices.Contains(marked, cell):
				taken++
			case slices.Contains(available, cell):
				free = append(free, cell)
			}
		}

		if taken == 2 && len(free) == 1 {
			return free[0], true
		}
	}

	return 0, false
}
