package entity

// Mark is the symbol a player puts on the board.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

func (that Mark) String() string {
	return string(that)
}

// Opposite returns the other playing mark.
func (that Mark) Opposite() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}
