package chess

// EvaluateOutcome classifies the position for the side to move and stores
// the result: a side with no legal moves is checkmated when its king is
// attacked, stalemated otherwise. Terminal states are sticky; once the game
// has ended, later calls return the stored result unchanged.
func (b *Board) EvaluateOutcome() GameState {
	if b.state != Playing {
		return b.state
	}
	if b.HasLegalMoves() {
		return Playing
	}
	if b.InCheck(b.sideToMove) {
		if b.sideToMove == White {
			b.state = BlackWinsByCheckmate
		} else {
			b.state = WhiteWinsByCheckmate
		}
	} else {
		b.state = DrawByStalemate
	}
	return b.state
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}
