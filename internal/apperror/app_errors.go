package apperror

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid session configuration")
	ErrNameTooShort         = errors.New("player name is too short")
	ErrNameTaken            = errors.New("player name is already taken")

	ErrInvalidMove      = errors.New("invalid move")
	ErrNoAvailableCells = errors.New("no available cells")

	ErrTooManyAttempts = errors.New("too many invalid inputs")
	ErrSessionDeclined = errors.New("session configuration declined")
)
