package entity

const (
	BoardSize = 9

	FirstCell  = 1
	LastCell   = BoardSize
	CenterCell = 5
)

// WinCombos lists the 8 winning lines by external cell id, in scan order.
var WinCombos = [8][3]int{
	{1, 2, 3},
	{4, 5, 6},
	{7, 8, 9},
	{1, 4, 7},
	{2, 5, 8},
	{3, 6, 9},
	{1, 5, 9},
	{3, 5, 7},
}

// Board is the 3x3 grid. Cells are stored 0-8 and exposed as ids 1-9, row-major.
type Board struct {
	cells [BoardSize]Mark
}

func NewBoard() *Board {
	return &Board{}
}

// Reset clears every cell.
func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = EmptyCell
	}
}

// AvailableCells returns the ids of the empty cells in ascending order.
func (that *Board) AvailableCells() []int {
	available := make([]int, 0, BoardSize)
	for i, cell := range that.cells {
		if cell == EmptyCell {
			available = append(available, i+1)
		}
	}

	return available
}

// OccupiedCellsByMark returns the ids of the cells holding mark in ascending order.
func (that *Board) OccupiedCellsByMark(mark Mark) []int {
	occupied := make([]int, 0, BoardSize)
	if mark == EmptyCell {
		return occupied
	}

	for i, cell := range that.cells {
		if cell == mark {
			occupied = append(occupied, i+1)
		}
	}

	return occupied
}

// IsAvailable reports whether cellID is on the board and empty.
func (that *Board) IsAvailable(cellID int) bool {
	if !IsValidCell(cellID) {
		return false
	}

	return that.cells[cellID-1] == EmptyCell
}

// TryApplyMove puts mark on cellID. It returns false and leaves the board
// untouched when the cell is out of range or already taken.
func (that *Board) TryApplyMove(cellID int, mark Mark) bool {
	if mark == EmptyCell || !that.IsAvailable(cellID) {
		return false
	}

	that.cells[cellID-1] = mark

	return true
}

// HasWin reports whether mark fills any winning line.
func (that *Board) HasWin(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		a, b, c := that.cells[combo[0]-1], that.cells[combo[1]-1], that.cells[combo[2]-1]
		if a == mark && b == mark && c == mark {
			return true
		}
	}

	return false
}

// IsRoundOver is true once the board is full or either mark has won.
func (that *Board) IsRoundOver(markA, markB Mark) bool {
	if len(that.AvailableCells()) == 0 {
		return true
	}

	return that.HasWin(markA) || that.HasWin(markB)
}

// CellAt returns the mark at cellID, EmptyCell for free or unknown cells.
func (that *Board) CellAt(cellID int) Mark {
	if !IsValidCell(cellID) {
		return EmptyCell
	}

	return that.cells[cellID-1]
}

// Cells returns a copy of the grid, index 0 being cell 1.
func (that *Board) Cells() [BoardSize]Mark {
	return that.cells
}

func IsValidCell(cellID int) bool {
	return cellID >= FirstCell && cellID <= LastCell
}
