package chess

import (
	"errors"
	"fmt"
)

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 0x1
	WhiteKnight Piece = 0x2
	WhiteKing   Piece = 0x3
	WhiteBishop Piece = 0x5
	WhiteRook   Piece = 0x6
	WhiteQueen  Piece = 0x7

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type
	// - piece & 8 != 0 indicates Black
	// - piece & 4 != 0 marks the sliding pieces (bishop, rook, queen)
	BlackPawn   Piece = 0x1 | 8
	BlackKnight Piece = 0x2 | 8
	BlackKing   Piece = 0x3 | 8
	BlackBishop Piece = 0x5 | 8
	BlackRook   Piece = 0x6 | 8
	BlackQueen  Piece = 0x7 | 8
)

const (
	maskType  Piece = 0x7
	maskSlide Piece = 0x4
	maskColor Piece = 0x8
)

// PieceType is a colorless representation of a chess piece. The codes leave
// gaps on purpose: bit 0x4 is set exactly for the three sliding types.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 0x1
	PieceTypeKnight PieceType = 0x2
	PieceTypeKing   PieceType = 0x3
	PieceTypeBishop PieceType = 0x5
	PieceTypeRook   PieceType = 0x6
	PieceTypeQueen  PieceType = 0x7
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & maskType) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color { return colorOf(p) }

// IsSliding reports whether the piece moves along rays (bishop, rook, queen).
func (p Piece) IsSliding() bool { return p&maskSlide != 0 }

func (p Piece) String() string {
	if p == NoPiece {
		return "None"
	}
	return p.Color().String() + " " + p.Type().String()
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= maskColor
	}
	return p
}

// colorOf returns the color of a piece. NoPiece is treated as White.
func colorOf(p Piece) Color {
	if p&maskColor != 0 {
		return Black
	}
	return White
}

func (pt PieceType) String() string {
	switch pt {
	case PieceTypePawn:
		return "Pawn"
	case PieceTypeKnight:
		return "Knight"
	case PieceTypeKing:
		return "King"
	case PieceTypeBishop:
		return "Bishop"
	case PieceTypeRook:
		return "Rook"
	case PieceTypeQueen:
		return "Queen"
	default:
		return "Undefined"
	}
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// castlingRightsFor returns both of a side's castling bits.
func castlingRightsFor(c Color) CastlingRights {
	if c == White {
		return CastlingWhiteK | CastlingWhiteQ
	}
	return CastlingBlackK | CastlingBlackQ
}

// Square indexes the 0x88 board: the low nibble holds the file, the high
// nibble the rank, and every index with sq&0x88 != 0 is off-board padding.
type Square int

const NoSquare Square = -1

// maskRow isolates the rank portion of a square index.
const maskRow Square = 0x70

// SquareAt builds a square index from file and rank, both 0-7.
func SquareAt(file, rank int) Square { return Square(rank*16 + file) }

// File returns the square's file (0 = a-file).
func (s Square) File() int { return int(s) & 0x7 }

// Rank returns the square's rank (0 = White's back rank).
func (s Square) Rank() int { return int(s) >> 4 }

// Valid reports whether s names one of the 64 real board squares.
func (s Square) Valid() bool { return s&^0x77 == 0 }

// String renders the square in algebraic form ("e4"), or "-" off the board.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// GameState describes whether a game is still running or how it ended.
type GameState uint8

const (
	Playing GameState = iota
	WhiteWinsByCheckmate
	BlackWinsByCheckmate
	DrawByStalemate
)

// Terminal reports whether the game has ended.
func (gs GameState) Terminal() bool { return gs != Playing }

// Winner returns the winning side of a decided game, or false for a game
// still in progress or drawn.
func (gs GameState) Winner() (Color, bool) {
	switch gs {
	case WhiteWinsByCheckmate:
		return White, true
	case BlackWinsByCheckmate:
		return Black, true
	default:
		return White, false
	}
}

func (gs GameState) String() string {
	switch gs {
	case Playing:
		return "playing"
	case WhiteWinsByCheckmate:
		return "white wins by checkmate"
	case BlackWinsByCheckmate:
		return "black wins by checkmate"
	case DrawByStalemate:
		return "draw by stalemate"
	default:
		return "unknown"
	}
}

// Board represents a chess position in a 0x88 mailbox.
type Board struct {
	// Piece placement over 128 slots; the 64 padding slots stay NoPiece.
	squares [128]Piece

	// Side to move.
	sideToMove Color

	// Castling rights for both sides (bitmask using CastlingRights flags).
	castlingRights CastlingRights

	// Landing square of the last double pawn push, or NoSquare. This is the
	// pushed pawn's own square, not the skipped square that FEN records.
	enPassantSquare Square

	// Half-moves played from the initial position.
	plyCount int

	// Result of the most recent outcome evaluation.
	state GameState
}

var backRank = [8]PieceType{
	PieceTypeRook, PieceTypeKnight, PieceTypeBishop, PieceTypeQueen,
	PieceTypeKing, PieceTypeBishop, PieceTypeKnight, PieceTypeRook,
}

// NewBoard returns a board set up in the standard initial position with
// White to move and full castling rights.
func NewBoard() *Board {
	b := &Board{
		sideToMove:      White,
		castlingRights:  CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ,
		enPassantSquare: NoSquare,
	}
	for file := 0; file < 8; file++ {
		b.squares[SquareAt(file, 0)] = PieceFromType(White, backRank[file])
		b.squares[SquareAt(file, 1)] = WhitePawn
		b.squares[SquareAt(file, 6)] = BlackPawn
		b.squares[SquareAt(file, 7)] = PieceFromType(Black, backRank[file])
	}
	return b
}

// PieceAt returns the piece on a square, or NoPiece for empty and off-board squares.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the remaining castling rights bitmask.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target square or NoSquare.
// The target is the double-pushed pawn's landing square.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// PlyCount returns the number of half-moves played.
func (b *Board) PlyCount() int { return b.plyCount }

// State returns the game state recorded by the last EvaluateOutcome call.
func (b *Board) State() GameState { return b.state }

// kingSquare locates the king of the given color.
func (b *Board) kingSquare(c Color) (Square, bool) {
	king := PieceFromType(c, PieceTypeKing)
	for sq := Square(0); sq < 128; sq++ {
		if sq&0x88 != 0 {
			sq += 7
			continue
		}
		if b.squares[sq] == king {
			return sq, true
		}
	}
	return NoSquare, false
}

// Validate checks structural invariants: padding slots empty, recognized
// piece codes only, and at most one king per side.
func (b *Board) Validate() error {
	var kings [2]int
	for sq := Square(0); sq < 128; sq++ {
		p := b.squares[sq]
		if sq&0x88 != 0 {
			if p != NoPiece {
				return fmt.Errorf("padding slot 0x%02x is occupied", int(sq))
			}
			continue
		}
		if p == NoPiece {
			continue
		}
		switch p.Type() {
		case PieceTypePawn, PieceTypeKnight, PieceTypeKing,
			PieceTypeBishop, PieceTypeRook, PieceTypeQueen:
		default:
			return fmt.Errorf("square %v holds unknown piece code 0x%02x", sq, uint8(p))
		}
		if p.Type() == PieceTypeKing {
			kings[p.Color()]++
		}
	}
	if kings[White] > 1 {
		return errors.New("more than one white king")
	}
	if kings[Black] > 1 {
		return errors.New("more than one black king")
	}
	return nil
}
