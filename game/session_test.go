package game_test

import (
	"errors"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/cyberfrank/chess3d/chess"
	"github.com/cyberfrank/chess3d/game"
)

func at(file, rank int) game.Coord {
	return game.Coord{File: file, Rank: rank}
}

func sessionFrom(t *testing.T, fen string) *game.Session {
	t.Helper()
	s, err := game.NewSessionFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load %q: %v", fen, err)
	}
	return s
}

func TestNewSession_Defaults(t *testing.T) {
	s := game.NewSession()
	if s.Turn() != chess.White {
		t.Fatalf("white moves first")
	}
	if s.State() != chess.Playing {
		t.Fatalf("new game should be playing, got %v", s.State())
	}
	if got := s.PieceAt(at(4, 0)); got != chess.WhiteKing {
		t.Fatalf("expected the white king on e1, got %v", got)
	}
	if s.Captures(chess.White) != 0 || s.Captures(chess.Black) != 0 {
		t.Fatalf("capture tallies should start at zero")
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("nothing should be selected")
	}
}

func TestAttemptMove_Basic(t *testing.T) {
	s := game.NewSession()
	out, err := s.AttemptMove(at(4, 1), at(4, 3)) // e2e4
	if err != nil {
		t.Fatalf("e2e4 should succeed: %v", err)
	}
	if out.Kind != chess.KindMove || out.KindName != "move" {
		t.Fatalf("unexpected kind: %v %q", out.Kind, out.KindName)
	}
	if out.State != chess.Playing {
		t.Fatalf("game should continue, got %v", out.State)
	}
	if s.Turn() != chess.Black {
		t.Fatalf("turn should pass to black")
	}
	if s.PieceAt(at(4, 3)) != chess.WhitePawn || s.PieceAt(at(4, 1)) != chess.NoPiece {
		t.Fatalf("pawn did not move on the session board")
	}
}

func TestAttemptMove_InvalidSquare(t *testing.T) {
	s := game.NewSession()
	before := s.FEN()
	for _, tc := range [][2]game.Coord{
		{at(-1, 0), at(0, 0)},
		{at(0, 8), at(0, 0)},
		{at(4, 1), at(8, 3)},
	} {
		if _, err := s.AttemptMove(tc[0], tc[1]); !errors.Is(err, game.ErrInvalidSquare) {
			t.Fatalf("%v -> %v: expected ErrInvalidSquare, got %v", tc[0], tc[1], err)
		}
	}
	if s.FEN() != before {
		t.Fatalf("rejected input must leave the board untouched")
	}
}

func TestAttemptMove_Illegal(t *testing.T) {
	s := game.NewSession()
	before := s.FEN()

	// A pawn cannot jump three ranks.
	if _, err := s.AttemptMove(at(4, 1), at(4, 4)); !errors.Is(err, game.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	// White cannot move a black pawn.
	if _, err := s.AttemptMove(at(4, 6), at(4, 4)); !errors.Is(err, game.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove for an enemy piece, got %v", err)
	}
	if s.FEN() != before {
		t.Fatalf("rejected moves must leave the board untouched")
	}
	if s.Turn() != chess.White {
		t.Fatalf("turn must not pass on a rejected move")
	}
}

func TestAttemptMove_CaptureTally(t *testing.T) {
	s := sessionFrom(t, "r3k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	out, err := s.AttemptMove(at(0, 0), at(0, 7)) // a1xa8
	if err != nil {
		t.Fatalf("a1xa8 should succeed: %v", err)
	}
	if out.Kind != chess.KindCapture || out.Captured != chess.BlackRook {
		t.Fatalf("expected a rook capture, got %v of %v", out.Kind, out.Captured)
	}
	if out.CapturedSquare != at(0, 7) {
		t.Fatalf("captured square should be a8, got %v", out.CapturedSquare)
	}
	if s.Captures(chess.White) != 1 || s.Captures(chess.Black) != 0 {
		t.Fatalf("tallies wrong: white=%d black=%d", s.Captures(chess.White), s.Captures(chess.Black))
	}
}

func TestAttemptMove_EnPassantOutcome(t *testing.T) {
	s := sessionFrom(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	out, err := s.AttemptMove(at(4, 4), at(3, 5)) // e5xd6
	if err != nil {
		t.Fatalf("the en passant capture should succeed: %v", err)
	}
	if out.Kind != chess.KindCapture || out.Captured != chess.BlackPawn {
		t.Fatalf("expected a pawn capture, got %v of %v", out.Kind, out.Captured)
	}
	// The victim does not sit on the destination square.
	if out.CapturedSquare != at(3, 4) {
		t.Fatalf("captured square should be d5, got %v", out.CapturedSquare)
	}
	if s.PieceAt(at(3, 4)) != chess.NoPiece {
		t.Fatalf("d5 should be empty after the capture")
	}
}

func TestAttemptMove_CastleOutcome(t *testing.T) {
	s := sessionFrom(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	out, err := s.AttemptMove(at(4, 0), at(6, 0)) // e1g1
	if err != nil {
		t.Fatalf("castling should succeed: %v", err)
	}
	if out.Kind != chess.KindCastle {
		t.Fatalf("expected a castle, got %v", out.Kind)
	}
	if out.RookFrom != at(7, 0) || out.RookTo != at(5, 0) {
		t.Fatalf("rook transfer reported as %v -> %v", out.RookFrom, out.RookTo)
	}
	if s.PieceAt(at(5, 0)) != chess.WhiteRook {
		t.Fatalf("rook should stand on f1")
	}
}

func TestAttemptMove_PromotionOutcome(t *testing.T) {
	s := sessionFrom(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	out, err := s.AttemptMove(at(0, 6), at(0, 7)) // a7a8
	if err != nil {
		t.Fatalf("the promotion push should succeed: %v", err)
	}
	if !out.Promoted || out.Promotion != chess.WhiteQueen {
		t.Fatalf("expected an automatic queen, got promoted=%v piece=%v", out.Promoted, out.Promotion)
	}
}

func TestAttemptMove_GameOver(t *testing.T) {
	s := game.NewSession()
	moves := [][2]game.Coord{
		{at(5, 1), at(5, 2)}, // f2f3
		{at(4, 6), at(4, 4)}, // e7e5
		{at(6, 1), at(6, 3)}, // g2g4
		{at(3, 7), at(7, 3)}, // d8h4
	}
	var last game.MoveOutcome
	for _, m := range moves {
		out, err := s.AttemptMove(m[0], m[1])
		if err != nil {
			t.Fatalf("%v -> %v should succeed: %v", m[0], m[1], err)
		}
		last = out
	}
	if last.State != chess.BlackWinsByCheckmate {
		t.Fatalf("expected mate, got %v", last.State)
	}
	if last.StateName != "black wins by checkmate" {
		t.Fatalf("unexpected state name %q", last.StateName)
	}

	if _, err := s.AttemptMove(at(4, 0), at(4, 1)); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("moves after mate should return ErrGameOver, got %v", err)
	}
	if _, err := s.Select(at(4, 0)); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("selection after mate should return ErrGameOver, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	s := game.NewSession()

	dests, err := s.Select(at(4, 1)) // e2
	if err != nil {
		t.Fatalf("selecting one's own pawn should succeed: %v", err)
	}
	want := []game.Coord{at(4, 2), at(4, 3)}
	if !slices.Equal(dests, want) {
		t.Fatalf("e2 destinations = %v, want %v", dests, want)
	}
	if sel, ok := s.Selected(); !ok || sel != at(4, 1) {
		t.Fatalf("selection should be e2, got %v ok=%v", sel, ok)
	}

	// An empty square is not selectable; the selection stays put.
	if _, err := s.Select(at(3, 3)); !errors.Is(err, game.ErrNotYourPiece) {
		t.Fatalf("expected ErrNotYourPiece for an empty square, got %v", err)
	}
	if sel, ok := s.Selected(); !ok || sel != at(4, 1) {
		t.Fatalf("failed selection should not move the recorded one, got %v", sel)
	}

	// Neither is an enemy piece.
	if _, err := s.Select(at(4, 6)); !errors.Is(err, game.ErrNotYourPiece) {
		t.Fatalf("expected ErrNotYourPiece for an enemy pawn, got %v", err)
	}

	if _, err := s.Select(at(9, 9)); !errors.Is(err, game.ErrInvalidSquare) {
		t.Fatalf("expected ErrInvalidSquare, got %v", err)
	}

	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Fatalf("selection should be cleared")
	}
}

func TestSelect_ClearedByMove(t *testing.T) {
	s := game.NewSession()
	if _, err := s.Select(at(4, 1)); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if _, err := s.AttemptMove(at(4, 1), at(4, 3)); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("a played move should clear the selection")
	}
}

func TestLegalDestinations_LeavesSelectionAlone(t *testing.T) {
	s := game.NewSession()
	dests, err := s.LegalDestinations(at(1, 0)) // b1
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	want := []game.Coord{at(0, 2), at(2, 2)} // a3, c3
	if !slices.Equal(dests, want) {
		t.Fatalf("b1 destinations = %v, want %v", dests, want)
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("a query must not record a selection")
	}

	// Empty square: no destinations, no error.
	dests, err = s.LegalDestinations(at(3, 3))
	if err != nil || len(dests) != 0 {
		t.Fatalf("empty square should yield nothing, got %v, %v", dests, err)
	}
}

func TestNewSessionFromFEN(t *testing.T) {
	// A position that is already stalemate is recognized on load.
	s := sessionFrom(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if s.State() != chess.DrawByStalemate {
		t.Fatalf("expected an immediate stalemate, got %v", s.State())
	}
	if _, err := s.AttemptMove(at(7, 7), at(6, 7)); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}

	if _, err := game.NewSessionFromFEN("not a position"); err == nil {
		t.Fatalf("garbage should not parse")
	}
}

func TestGrid(t *testing.T) {
	s := game.NewSession()
	g := s.Grid()
	if g[0][4] != chess.WhiteKing {
		t.Fatalf("expected the white king at [0][4], got %v", g[0][4])
	}
	if g[7][3] != chess.BlackQueen {
		t.Fatalf("expected the black queen at [7][3], got %v", g[7][3])
	}
	if g[1][0] != chess.WhitePawn || g[6][0] != chess.BlackPawn {
		t.Fatalf("pawn ranks wrong")
	}
	if g[4][4] != chess.NoPiece {
		t.Fatalf("the middle of the board should be empty")
	}
}

func TestInCheck(t *testing.T) {
	s := sessionFrom(t, "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1")
	if !s.InCheck() {
		t.Fatalf("white should be in check")
	}
	if game.NewSession().InCheck() {
		t.Fatalf("the initial position is not a check")
	}
}
