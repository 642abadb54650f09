package entity

// Player is one side of a session. Its score only ever grows.
type Player struct {
	Name       string
	Mark       Mark
	IsComputer bool

	score int
}

func NewPlayer(name string, mark Mark, isComputer bool) *Player {
	return &Player{
		Name:       name,
		Mark:       mark,
		IsComputer: isComputer,
	}
}

func (that *Player) IncrementScore() {
	that.score++
}

func (that *Player) Score() int {
	return that.score
}
