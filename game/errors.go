package game

import "errors"

var (
	ErrInvalidSquare = errors.New("square out of range")
	ErrGameOver      = errors.New("game is over")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotYourPiece  = errors.New("not your piece")
)
