package entity

// Scoreboard reads the scores of both players and counts ties.
// It does not own the players.
type Scoreboard struct {
	PlayerA *Player
	PlayerB *Player

	ties int
}

// PlayerScore is a read-only view of a player's standing.
type PlayerScore struct {
	Name       string `json:"name"`
	Mark       Mark   `json:"mark"`
	Score      int    `json:"score"`
	IsComputer bool   `json:"is_computer"`
}

// ScoreboardSnapshot is an immutable copy of the scoreboard.
type ScoreboardSnapshot struct {
	Players     [2]PlayerScore `json:"players"`
	Ties        int            `json:"ties"`
	TotalRounds int            `json:"total_rounds"`
}

func NewScoreboard(playerA, playerB *Player) *Scoreboard {
	return &Scoreboard{
		PlayerA: playerA,
		PlayerB: playerB,
	}
}

// WhoStarts returns the index (0 for A, 1 for B) of the player opening the
// next round. It flips with every finished round, whoever won it.
func (that *Scoreboard) WhoStarts() int {
	return that.TotalRounds() % 2
}

func (that *Scoreboard) RecordTie() {
	that.ties++
}

func (that *Scoreboard) Ties() int {
	return that.ties
}

func (that *Scoreboard) TotalRounds() int {
	return that.PlayerA.Score() + that.PlayerB.Score() + that.ties
}

func (that *Scoreboard) Snapshot() ScoreboardSnapshot {
	return ScoreboardSnapshot{
		Players: [2]PlayerScore{
			scoreOf(that.PlayerA),
			scoreOf(that.PlayerB),
		},
		Ties:        that.ties,
		TotalRounds: that.TotalRounds(),
	}
}

func scoreOf(player *Player) PlayerScore {
	return PlayerScore{
		Name:       player.Name,
		Mark:       player.Mark,
		Score:      player.Score(),
		IsComputer: player.IsComputer,
	}
}
