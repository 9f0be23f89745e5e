// Package game mediates between the rules engine and a rendering or
// network layer: it tracks one playing session, validates player input,
// and reports what each move did in a form a client can display.
package game

import (
	"github.com/cyberfrank/chess3d/chess"
)

// Coord addresses a board square as a (file, rank) pair, both 0-7.
// File 0 is the a-file and rank 0 is White's back rank.
type Coord struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

// Valid reports whether the coordinate is on the board.
func (c Coord) Valid() bool {
	return c.File >= 0 && c.File < 8 && c.Rank >= 0 && c.Rank < 8
}

// String renders the coordinate in algebraic form ("e4"), or "-" off the
// board.
func (c Coord) String() string {
	if !c.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + c.File), byte('1' + c.Rank)})
}

func (c Coord) square() chess.Square {
	return chess.SquareAt(c.File, c.Rank)
}

func coordOf(s chess.Square) Coord {
	return Coord{File: s.File(), Rank: s.Rank()}
}

// MoveOutcome reports what a completed move did. Captured and
// CapturedSquare are meaningful only when Kind is a capture; for an en
// passant capture CapturedSquare differs from To. RookFrom and RookTo are
// meaningful only for castles, and Promotion only when Promoted is set.
type MoveOutcome struct {
	From           Coord           `json:"from"`
	To             Coord           `json:"to"`
	Kind           chess.MoveKind  `json:"kind"`
	KindName       string          `json:"kindName"`
	Captured       chess.Piece     `json:"captured"`
	CapturedSquare Coord           `json:"capturedSquare"`
	RookFrom       Coord           `json:"rookFrom"`
	RookTo         Coord           `json:"rookTo"`
	Promoted       bool            `json:"promoted"`
	Promotion      chess.Piece     `json:"promotion"`
	State          chess.GameState `json:"state"`
	StateName      string          `json:"stateName"`
}

// Session holds one game in progress: the board, the player's current
// selection, and how many enemy pieces each side has taken. A Session is
// not safe for concurrent use; callers serialize access (the server keeps
// one lock per room).
type Session struct {
	board    *chess.Board
	selected chess.Square
	captures [2]int
}

// NewSession starts a session from the initial position.
func NewSession() *Session {
	return &Session{board: chess.NewBoard(), selected: chess.NoSquare}
}

// NewSessionFromFEN starts a session from an arbitrary position. A
// position with no moves left is recognized immediately.
func NewSessionFromFEN(fen string) (*Session, error) {
	board, err := chess.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	s := &Session{board: board, selected: chess.NoSquare}
	s.board.EvaluateOutcome()
	return s, nil
}

// AttemptMove tries to play a move for the side to move. Illegal input
// leaves the session untouched: out-of-range coordinates return
// ErrInvalidSquare, anything after the game has ended returns ErrGameOver,
// and a move the rules reject returns ErrIllegalMove. On success the move
// is executed, the outcome re-evaluated, and the selection cleared.
func (s *Session) AttemptMove(from, to Coord) (MoveOutcome, error) {
	if !from.Valid() || !to.Valid() {
		return MoveOutcome{}, ErrInvalidSquare
	}
	if s.board.State().Terminal() {
		return MoveOutcome{}, ErrGameOver
	}
	fromSq, toSq := from.square(), to.square()
	if !s.board.IsLegalMove(fromSq, toSq) {
		return MoveOutcome{}, ErrIllegalMove
	}

	mover := s.board.SideToMove()
	rec := s.board.MakeMove(fromSq, toSq)
	state := s.board.EvaluateOutcome()
	if rec.Kind == chess.KindCapture {
		s.captures[mover]++
	}
	s.selected = chess.NoSquare

	out := MoveOutcome{
		From:      from,
		To:        to,
		Kind:      rec.Kind,
		KindName:  rec.Kind.String(),
		State:     state,
		StateName: state.String(),
	}
	if rec.Kind == chess.KindCapture {
		out.Captured = rec.Captured
		out.CapturedSquare = coordOf(rec.CapturedSquare)
	}
	if rec.Kind == chess.KindCastle {
		out.RookFrom = coordOf(rec.RookFrom)
		out.RookTo = coordOf(rec.RookTo)
	}
	if rec.Promoted {
		out.Promoted = true
		out.Promotion = s.board.PieceAt(toSq)
	}
	return out, nil
}

// Select records a selection on one of the mover's own pieces and returns
// its legal destinations, for highlighting. Empty squares and enemy pieces
// return ErrNotYourPiece.
func (s *Session) Select(at Coord) ([]Coord, error) {
	if !at.Valid() {
		return nil, ErrInvalidSquare
	}
	if s.board.State().Terminal() {
		return nil, ErrGameOver
	}
	sq := at.square()
	p := s.board.PieceAt(sq)
	if p == chess.NoPiece || p.Color() != s.board.SideToMove() {
		return nil, ErrNotYourPiece
	}
	s.selected = sq
	return s.destinations(sq), nil
}

// Selected returns the recorded selection, if any.
func (s *Session) Selected() (Coord, bool) {
	if s.selected == chess.NoSquare {
		return Coord{}, false
	}
	return coordOf(s.selected), true
}

// ClearSelection drops the recorded selection.
func (s *Session) ClearSelection() { s.selected = chess.NoSquare }

// LegalDestinations returns the legal destinations from a square without
// touching the selection. A square with nothing movable yields an empty
// list.
func (s *Session) LegalDestinations(from Coord) ([]Coord, error) {
	if !from.Valid() {
		return nil, ErrInvalidSquare
	}
	return s.destinations(from.square()), nil
}

func (s *Session) destinations(from chess.Square) []Coord {
	squares := s.board.LegalDestinations(from)
	coords := make([]Coord, 0, len(squares))
	for _, sq := range squares {
		coords = append(coords, coordOf(sq))
	}
	return coords
}

// State returns the current game state.
func (s *Session) State() chess.GameState { return s.board.State() }

// Turn returns the side to move.
func (s *Session) Turn() chess.Color { return s.board.SideToMove() }

// InCheck reports whether the side to move is currently in check.
func (s *Session) InCheck() bool { return s.board.InCheck(s.board.SideToMove()) }

// Captures returns how many enemy pieces the given side has taken.
func (s *Session) Captures(c chess.Color) int { return s.captures[c] }

// PieceAt returns the piece on a square, or NoPiece off the board.
func (s *Session) PieceAt(at Coord) chess.Piece {
	if !at.Valid() {
		return chess.NoPiece
	}
	return s.board.PieceAt(at.square())
}

// Grid returns the position as an 8x8 array indexed [rank][file], rank 0
// being White's back rank. Clients render from this.
func (s *Session) Grid() [8][8]chess.Piece {
	var g [8][8]chess.Piece
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			g[rank][file] = s.board.PieceAt(chess.SquareAt(file, rank))
		}
	}
	return g
}

// FEN returns the position in FEN form.
func (s *Session) FEN() string { return s.board.ToFEN() }
