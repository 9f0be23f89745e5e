package server

import (
	"github.com/cyberfrank/chess3d/chess"
	"github.com/cyberfrank/chess3d/game"
)

// clientMessage is the single frame clients send. Type selects which of
// the remaining fields are read: "move" uses From and To, "select" uses
// At, "state" uses none.
type clientMessage struct {
	Type string     `json:"type"`
	From game.Coord `json:"from"`
	To   game.Coord `json:"to"`
	At   game.Coord `json:"at"`
}

// stateMessage carries the full game state. It doubles as the welcome
// frame, with YourColor naming the seat the connection was given.
type stateMessage struct {
	Type      string            `json:"type"`
	YourColor string            `json:"yourColor,omitempty"`
	Board     [8][8]chess.Piece `json:"board"`
	Turn      string            `json:"turn"`
	State     string            `json:"state"`
	InCheck   bool              `json:"inCheck"`
	Players   int               `json:"players"`
	Captures  map[string]int    `json:"captures"`
}

// updateMessage is broadcast to the whole room after a completed move.
type updateMessage struct {
	Type     string            `json:"type"`
	Move     game.MoveOutcome  `json:"move"`
	Board    [8][8]chess.Piece `json:"board"`
	Turn     string            `json:"turn"`
	State    string            `json:"state"`
	InCheck  bool              `json:"inCheck"`
	Result   string            `json:"result,omitempty"`
	Captures map[string]int    `json:"captures"`
}

// highlightMessage answers a selection with the squares it may move to.
type highlightMessage struct {
	Type         string       `json:"type"`
	At           game.Coord   `json:"at"`
	Destinations []game.Coord `json:"destinations"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RoomInfo is one row of the room listing.
type RoomInfo struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	State   string `json:"state"`
}
