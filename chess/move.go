package chess

// Move is a from/to square pair. Promotion carries no choice (a pawn
// reaching the far rank always becomes a queen), so the pair identifies a
// move completely.
type Move struct {
	From Square
	To   Square
}

func (m Move) String() string { return m.From.String() + m.To.String() }

// MoveKind classifies what a completed move did.
type MoveKind uint8

const (
	KindMove MoveKind = iota
	KindCapture
	KindCastle
)

func (k MoveKind) String() string {
	switch k {
	case KindCapture:
		return "capture"
	case KindCastle:
		return "castle"
	default:
		return "move"
	}
}

// rookCastlingSquares derives the rook transfer for a two-square king move:
// the rook three to the right of the king comes to the king's near side, or
// four to the left for the long side.
func rookCastlingSquares(kingFrom, kingTo Square) (rookFrom, rookTo Square) {
	if kingTo > kingFrom {
		return kingFrom + 3, kingFrom + 1
	}
	return kingFrom - 4, kingFrom - 1
}
