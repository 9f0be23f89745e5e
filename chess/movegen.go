package chess

// Move legality is difference-based: on a 0x88 board the index difference
// between two squares identifies their geometric relation, so each piece
// type is a small set of difference tests plus a path scan for sliders. No
// move tables are built; legality is a predicate on a (from, to) pair.

// IsPseudoLegal reports whether moving the piece on from to to obeys that
// piece's movement rules for the side to move: bounds, ownership, target
// occupancy, piece geometry, sliding paths, castling prerequisites, and the
// en-passant window. It does not test whether the mover's king is left in
// check; see IsLegalMove.
func (b *Board) IsPseudoLegal(from, to Square) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	piece := b.squares[from]
	if piece == NoPiece || piece.Color() != b.sideToMove {
		return false
	}
	target := b.squares[to]
	if target != NoPiece && target.Color() == piece.Color() {
		return false
	}

	diff := abs(int(to - from))

	ok := false
	switch piece.Type() {
	case PieceTypePawn:
		ok = b.pawnMoveOK(piece.Color(), from, to, target)
	case PieceTypeKnight:
		ok = diff == 14 || diff == 18 || diff == 31 || diff == 33
	case PieceTypeKing:
		ok = diff == 1 || diff == 15 || diff == 16 || diff == 17 ||
			(diff == 2 && b.castlingGeometryOK(from, to))
	case PieceTypeBishop:
		ok = diff%15 == 0 || diff%17 == 0
	case PieceTypeRook:
		ok = from.Rank() == to.Rank() || from.File() == to.File()
	case PieceTypeQueen:
		ok = diff%15 == 0 || diff%17 == 0 ||
			from.Rank() == to.Rank() || from.File() == to.File()
	}
	if ok && piece.IsSliding() {
		ok = b.pathClear(from, to)
	}
	return ok
}

// pawnMoveOK covers the four pawn patterns: single push, double push from
// the home rank, diagonal capture, and the en-passant diagonal onto an
// empty square beside the recorded target pawn.
func (b *Board) pawnMoveOK(c Color, from, to Square, target Piece) bool {
	forward := Square(16)
	homeRank := 1
	if c == Black {
		forward = -16
		homeRank = 6
	}
	switch to - from {
	case forward:
		return target == NoPiece
	case 2 * forward:
		return from.Rank() == homeRank && b.squares[from+forward] == NoPiece && target == NoPiece
	case forward - 1, forward + 1:
		if target != NoPiece {
			return true
		}
		ep := b.enPassantSquare
		return ep != NoSquare && (ep == from-1 || ep == from+1) && to == ep+forward
	}
	return false
}

// castlingGeometryOK validates the non-king half of a castling move: the
// king must stand on its home square with the right still held, the side's
// rook on its corner with its destination free, and the rook's own slide
// must pass IsPseudoLegal. The rook squares are offsets from the king, so
// the home gate runs before they are derived; a rights field that
// disagrees with the placement never castles. The inner test runs on a
// rook and can never reach this branch again. Whether the king is in,
// moves through, or lands in check is not tested.
func (b *Board) castlingGeometryOK(kingFrom, kingTo Square) bool {
	kingHome := Square(0x04) // e1
	right := CastlingWhiteK
	if kingTo < kingFrom {
		right = CastlingWhiteQ
	}
	if b.sideToMove == Black {
		kingHome = 0x74 // e8
		right <<= 2
	}
	if kingFrom != kingHome || b.castlingRights&right == 0 {
		return false
	}
	rookFrom, rookTo := rookCastlingSquares(kingFrom, kingTo)
	rook := b.squares[rookFrom]
	if rook.Type() != PieceTypeRook || rook.Color() != b.sideToMove {
		return false
	}
	if b.squares[rookTo] != NoPiece {
		return false
	}
	return b.IsPseudoLegal(rookFrom, rookTo)
}

// pathClear reports whether every square strictly between from and to is
// empty. The step is picked by divisibility of the difference (17, then 15,
// then 16, else 1) and signed toward to.
func (b *Board) pathClear(from, to Square) bool {
	delta := int(to - from)
	step := 1
	switch {
	case delta%17 == 0:
		step = 17
	case delta%15 == 0:
		step = 15
	case delta%16 == 0:
		step = 16
	}
	if delta < 0 {
		step = -step
	}
	for sq := from + Square(step); sq != to; sq += Square(step) {
		if b.squares[sq] != NoPiece {
			return false
		}
	}
	return true
}

// isAttacked reports whether any piece of the given side has a pseudo-legal
// move onto the target square. The side to move is swapped in for the scan
// so the ownership tests inside IsPseudoLegal key off the attacker, and
// restored before returning.
func (b *Board) isAttacked(target Square, by Color) bool {
	prev := b.sideToMove
	b.sideToMove = by
	attacked := false
	for sq := Square(0); sq < 128; sq++ {
		if sq&0x88 != 0 {
			sq += 7
			continue
		}
		if b.IsPseudoLegal(sq, target) {
			attacked = true
			break
		}
	}
	b.sideToMove = prev
	return attacked
}

// InCheck reports whether the given side's king is attacked. A pinned
// attacker still delivers check. The king's absence is a programming error
// and panics.
func (b *Board) InCheck(c Color) bool {
	kingSq, ok := b.kingSquare(c)
	if !ok {
		panic("chess: no " + c.String() + " king on the board")
	}
	return b.isAttacked(kingSq, c.Opposite())
}

// wouldLeaveKingInCheck speculatively performs the move, asks whether the
// mover's king is attacked, and reverses the move. The board is restored
// bit for bit. The move must be pseudo-legal.
func (b *Board) wouldLeaveKingInCheck(from, to Square) bool {
	mover := b.sideToMove
	rec := b.MakeMove(from, to)
	checked := b.InCheck(mover)
	b.UnmakeMove(from, to, rec)
	return checked
}

// IsLegalMove reports full legality for the side to move: the move is
// pseudo-legal and does not leave the mover's own king in check.
func (b *Board) IsLegalMove(from, to Square) bool {
	return b.IsPseudoLegal(from, to) && !b.wouldLeaveKingInCheck(from, to)
}

// LegalMoves returns every fully legal move for the side to move.
func (b *Board) LegalMoves() []Move {
	moves := make([]Move, 0, 64)
	for from := Square(0); from < 128; from++ {
		if from&0x88 != 0 {
			from += 7
			continue
		}
		p := b.squares[from]
		if p == NoPiece || p.Color() != b.sideToMove {
			continue
		}
		for to := Square(0); to < 128; to++ {
			if to&0x88 != 0 {
				to += 7
				continue
			}
			if b.IsLegalMove(from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// LegalDestinations returns the squares the piece on from may legally move
// to. The list is empty when from holds no piece of the side to move.
func (b *Board) LegalDestinations(from Square) []Square {
	var dests []Square
	for to := Square(0); to < 128; to++ {
		if to&0x88 != 0 {
			to += 7
			continue
		}
		if b.IsLegalMove(from, to) {
			dests = append(dests, to)
		}
	}
	return dests
}

// CountLegalMoves returns the number of fully legal moves for the side to
// move, scanning every from/to pair.
func (b *Board) CountLegalMoves() int {
	count := 0
	for from := Square(0); from < 128; from++ {
		if from&0x88 != 0 {
			from += 7
			continue
		}
		p := b.squares[from]
		if p == NoPiece || p.Color() != b.sideToMove {
			continue
		}
		for to := Square(0); to < 128; to++ {
			if to&0x88 != 0 {
				to += 7
				continue
			}
			if b.IsLegalMove(from, to) {
				count++
			}
		}
	}
	return count
}

// HasLegalMoves reports whether the side to move has any legal move,
// stopping at the first one found.
func (b *Board) HasLegalMoves() bool {
	for from := Square(0); from < 128; from++ {
		if from&0x88 != 0 {
			from += 7
			continue
		}
		p := b.squares[from]
		if p == NoPiece || p.Color() != b.sideToMove {
			continue
		}
		for to := Square(0); to < 128; to++ {
			if to&0x88 != 0 {
				to += 7
				continue
			}
			if b.IsLegalMove(from, to) {
				return true
			}
		}
	}
	return false
}

// Perft counts leaf nodes (move sequences) from the position for a given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		rec := b.MakeMove(m.From, m.To)
		nodes += Perft(b, depth-1)
		b.UnmakeMove(m.From, m.To, rec)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf
// nodes reachable through it at the given depth. Useful for debugging.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.LegalMoves() {
		rec := b.MakeMove(m.From, m.To)
		result[m] = Perft(b, depth-1)
		b.UnmakeMove(m.From, m.To, rec)
	}
	return result
}
