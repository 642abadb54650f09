package entity

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusTied       = "tied"
	StatusAborted    = "aborted"
)

type OutcomeKind string

const (
	OutcomeWin     OutcomeKind = "win"
	OutcomeTie     OutcomeKind = "tie"
	OutcomeAborted OutcomeKind = "aborted"
)

// RoundOutcome is how a round ended. Winner is set only for OutcomeWin.
type RoundOutcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Mark        `json:"winner,omitempty"`
}

func Win(mark Mark) RoundOutcome {
	return RoundOutcome{Kind: OutcomeWin, Winner: mark}
}

func Tie() RoundOutcome {
	return RoundOutcome{Kind: OutcomeTie}
}

func Aborted() RoundOutcome {
	return RoundOutcome{Kind: OutcomeAborted}
}

func (that RoundOutcome) IsWin() bool {
	return that.Kind == OutcomeWin
}

// Status maps the outcome onto the round status it leaves behind.
func (that RoundOutcome) Status() string {
	switch that.Kind {
	case OutcomeWin:
		return StatusWon
	case OutcomeTie:
		return StatusTied
	default:
		return StatusAborted
	}
}

func (that RoundOutcome) String() string {
	if that.IsWin() {
		return "win(" + that.Winner.String() + ")"
	}

	return string(that.Kind)
}

type EventType string

const (
	EventRoundStarted  EventType = "round:started"
	EventTurnStarted   EventType = "round:turn"
	EventMoveApplied   EventType = "round:move"
	EventRoundFinished EventType = "round:finished"
)

// RoundEvent is pushed to front-ends while a round is played.
type RoundEvent struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Round     int       `json:"round"`

	// set for EventRoundStarted
	StartingMark Mark `json:"starting_mark,omitempty"`

	// set for EventTurnStarted and EventMoveApplied
	Player string `json:"player,omitempty"`
	Cell   int    `json:"cell,omitempty"`
	Mark   Mark   `json:"mark,omitempty"`

	// set for EventRoundFinished. Error is set when the round was interrupted
	// without being scored.
	Outcome *RoundOutcome `json:"outcome,omitempty"`
	Error   string        `json:"error,omitempty"`

	Board      [BoardSize]Mark     `json:"board"`
	Scoreboard *ScoreboardSnapshot `json:"scoreboard,omitempty"`
}
