package chess

// MoveRecord holds the minimal state needed to undo a move. The exported
// fields describe what the move did; the rest restores prior board state.
type MoveRecord struct {
	Kind           MoveKind
	Captured       Piece  // NoPiece when nothing was taken
	CapturedSquare Square // differs from the destination only for en passant
	RookFrom       Square // castling rook transfer, NoSquare otherwise
	RookTo         Square
	Promoted       bool

	prevCastling  CastlingRights
	prevEnPassant Square
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cornerCastlingRight maps a rook home corner to its castling bit.
func cornerCastlingRight(sq Square) CastlingRights {
	switch sq {
	case 0x00: // a1
		return CastlingWhiteQ
	case 0x07: // h1
		return CastlingWhiteK
	case 0x70: // a8
		return CastlingBlackQ
	case 0x77: // h8
		return CastlingBlackK
	}
	return 0
}

// MakeMove applies a move for the side to move and returns the record
// needed to reverse it. The move must already be fully legal; MakeMove
// performs no validation of its own, which keeps the speculative
// make/check/unmake cycle cheap.
func (b *Board) MakeMove(from, to Square) MoveRecord {
	moving := b.squares[from]
	captured := b.squares[to]

	rec := MoveRecord{
		Kind:           KindMove,
		Captured:       captured,
		CapturedSquare: to,
		RookFrom:       NoSquare,
		RookTo:         NoSquare,
		prevCastling:   b.castlingRights,
		prevEnPassant:  b.enPassantSquare,
	}
	if captured != NoPiece {
		rec.Kind = KindCapture
	}

	// A king move forfeits both castling rights. Two squares sideways is a
	// castle and brings the rook across as well.
	if moving.Type() == PieceTypeKing {
		b.castlingRights &^= castlingRightsFor(b.sideToMove)
		if abs(int(to-from)) == 2 {
			rookFrom, rookTo := rookCastlingSquares(from, to)
			b.squares[rookTo] = b.squares[rookFrom]
			b.squares[rookFrom] = NoPiece
			rec.Kind = KindCastle
			rec.RookFrom, rec.RookTo = rookFrom, rookTo
		}
	}

	// A rook leaving its home corner, or captured on one, drops that
	// corner's right.
	if moving.Type() == PieceTypeRook {
		b.castlingRights &^= cornerCastlingRight(from)
	}
	if captured.Type() == PieceTypeRook {
		b.castlingRights &^= cornerCastlingRight(to)
	}

	if moving.Type() == PieceTypePawn {
		// A double push opens the en-passant window on the pawn's own
		// landing square; a diagonal onto an empty square takes the pawn
		// standing there; any other pawn move closes the window.
		diff := abs(int(to - from))
		switch {
		case diff == 32:
			b.enPassantSquare = to
		case (diff == 15 || diff == 17) && captured == NoPiece && b.enPassantSquare != NoSquare:
			rec.Kind = KindCapture
			rec.Captured = b.squares[b.enPassantSquare]
			rec.CapturedSquare = b.enPassantSquare
			b.squares[b.enPassantSquare] = NoPiece
			b.enPassantSquare = NoSquare
		default:
			b.enPassantSquare = NoSquare
		}

		// A pawn on the far rank promotes in place before the transfer.
		if row := to & maskRow; row == 0x00 || row == 0x70 {
			b.squares[from] = PieceFromType(moving.Color(), PieceTypeQueen)
			moving = b.squares[from]
			rec.Promoted = true
		}
	} else {
		b.enPassantSquare = NoSquare
	}

	b.squares[to] = moving
	b.squares[from] = NoPiece
	b.sideToMove = b.sideToMove.Opposite()
	b.plyCount++
	return rec
}

// UnmakeMove reverses a move previously applied with MakeMove, restoring
// the position bit for bit. The game state field is not touched; terminal
// outcomes are sticky and undo records carry no result.
func (b *Board) UnmakeMove(from, to Square, rec MoveRecord) {
	b.squares[from] = b.squares[to]
	b.squares[to] = NoPiece
	b.squares[rec.CapturedSquare] = rec.Captured
	b.castlingRights = rec.prevCastling
	b.enPassantSquare = rec.prevEnPassant
	if rec.Kind == KindCastle {
		b.squares[rec.RookFrom] = b.squares[rec.RookTo]
		b.squares[rec.RookTo] = NoPiece
	}
	if rec.Promoted {
		b.squares[from] = PieceFromType(b.squares[from].Color(), PieceTypePawn)
	}
	b.sideToMove = b.sideToMove.Opposite()
	b.plyCount--
}
