package position

// Square indices for castling homes, used only inside make/unmake.
const (
	a1 Square = 0
	e1 Square = 4
	h1 Square = 7
	a8 Square = 56
	e8 Square = 60
	h8 Square = 63
)

var castleRightsForKingHome = [2]uint8{WhiteKingSide | WhiteQueenSide, BlackKingSide | BlackQueenSide}

// rightsLostBySquare reports which castling rights are forfeited forever
// once a king or rook leaves (or a rook is captured on) this square.
func rightsLostBySquare(sq Square) uint8 {
	switch sq {
	case e1:
		return WhiteKingSide | WhiteQueenSide
	case h1:
		return WhiteKingSide
	case a1:
		return WhiteQueenSide
	case e8:
		return BlackKingSide | BlackQueenSide
	case h8:
		return BlackKingSide
	case a8:
		return BlackQueenSide
	}
	return 0
}

func (p *Position) removePiece(c Color, k PieceKind, sq Square) {
	p.pieces[c][k] &^= sq.Bitboard()
	p.occ[c] &^= sq.Bitboard()
	p.All &^= sq.Bitboard()
	p.board[sq] = NoPiece
	p.Key ^= pieceKey(c, k, sq)
	if k == Pawn {
		p.PawnKey ^= pieceKey(c, k, sq)
	}
}

func (p *Position) addPiece(c Color, k PieceKind, sq Square) {
	p.pieces[c][k] |= sq.Bitboard()
	p.occ[c] |= sq.Bitboard()
	p.All |= sq.Bitboard()
	p.board[sq] = Piece{Color: c, Kind: k}
	p.Key ^= pieceKey(c, k, sq)
	if k == Pawn {
		p.PawnKey ^= pieceKey(c, k, sq)
	}
	if k == King {
		p.KingSquare[c] = sq
	}
}

// Make applies m, mutating p in place and returning the Undo record
// needed to reverse it. It follows the eleven steps of spec.md §4.2
// exactly: save state, unhash castling/EP, handle capture (incl. en
// passant), move the piece (incl. castle rook hop and promotion), update
// castling/EP/side-to-move, and roll the clocks.
func (p *Position) Make(m Move) Undo {
	u := Undo{
		Captured:      m.CapturedKind(),
		CastleRights:  p.CastleRights,
		EPSquare:      p.EPSquare,
		Key:           p.Key,
		PawnKey:       p.PawnKey,
		Occ:           p.occ,
		All:           p.All,
		HalfmoveClock: p.HalfmoveClock,
		FullmoveNum:   p.FullmoveNum,
	}

	us := p.SideToMove
	them := us.Other()

	p.Key ^= castleRightsKey(p.CastleRights)
	if p.EPSquare != NoSquare {
		p.Key ^= enPassantKeys[p.EPSquare.File()]
	}

	from, to := m.From(), m.To()

	if m.IsEnPassant() {
		capSq := epCapturedSquare(to, us)
		p.removePiece(them, Pawn, capSq)
	} else if m.CapturedKind() != NoPieceKind {
		p.removePiece(them, m.CapturedKind(), to)
		p.CastleRights &^= rightsLostBySquare(to)
	}

	moving := m.MovingKind()
	p.removePiece(us, moving, from)

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(to, us)
		p.removePiece(us, Rook, rookFrom)
		p.addPiece(us, Rook, rookTo)
		p.CastleRights &^= castleRightsForKingHome[us]
	}

	placed := moving
	if m.IsPromotion() {
		placed = m.PromotedKind()
	}
	p.addPiece(us, placed, to)

	if moving == King {
		p.CastleRights &^= castleRightsForKingHome[us]
	}
	p.CastleRights &^= rightsLostBySquare(from)

	if m.IsDoublePush() {
		p.EPSquare = epSkippedSquare(from, to)
	} else {
		p.EPSquare = NoSquare
	}

	p.Key ^= castleRightsKey(p.CastleRights)
	if p.EPSquare != NoSquare {
		p.Key ^= enPassantKeys[p.EPSquare.File()]
	}
	p.SideToMove = them
	p.Key ^= sideToMoveKey

	if moving == Pawn || m.IsCapture() {
		p.HalfmoveClock = 0
	} else if p.HalfmoveClock < 0xffff {
		p.HalfmoveClock++
	}
	if p.SideToMove == White {
		p.FullmoveNum++
	}

	p.KeyHistory = append(p.KeyHistory, p.Key)
	return u
}

// Unmake inverts Make using the saved Undo, restoring keys, occupancies,
// counters, and board/bitboards exactly.
func (p *Position) Unmake(m Move, u Undo) {
	p.KeyHistory = p.KeyHistory[:len(p.KeyHistory)-1]

	them := p.SideToMove
	us := them.Other()
	p.SideToMove = us

	from, to := m.From(), m.To()
	moving := m.MovingKind()
	placed := moving
	if m.IsPromotion() {
		placed = m.PromotedKind()
	}

	// Only the piece bitboards and mailbox need manual rebuilding here;
	// occupancies are restored wholesale from u below.
	p.board[to] = NoPiece
	p.pieces[us][placed] &^= to.Bitboard()

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(to, us)
		p.pieces[us][Rook] &^= rookTo.Bitboard()
		p.board[rookTo] = NoPiece
		p.pieces[us][Rook] |= rookFrom.Bitboard()
		p.board[rookFrom] = Piece{Color: us, Kind: Rook}
	}

	p.pieces[us][moving] |= from.Bitboard()
	p.board[from] = Piece{Color: us, Kind: moving}
	if moving == King {
		p.KingSquare[us] = from
	}

	if m.IsEnPassant() {
		capSq := epCapturedSquare(to, us)
		p.pieces[them][Pawn] |= capSq.Bitboard()
		p.board[capSq] = Piece{Color: them, Kind: Pawn}
	} else if u.Captured != NoPieceKind {
		p.pieces[them][u.Captured] |= to.Bitboard()
		p.board[to] = Piece{Color: them, Kind: u.Captured}
	}

	p.CastleRights = u.CastleRights
	p.EPSquare = u.EPSquare
	p.Key = u.Key
	p.PawnKey = u.PawnKey
	p.occ = u.Occ
	p.All = u.All
	p.HalfmoveClock = u.HalfmoveClock
	p.FullmoveNum = u.FullmoveNum
}

// MakeNull flips side to move without moving a piece (spec.md §4.2). It
// must never be called while the mover is in check.
func (p *Position) MakeNull() Undo {
	u := Undo{
		Captured:      NoPieceKind,
		CastleRights:  p.CastleRights,
		EPSquare:      p.EPSquare,
		Key:           p.Key,
		PawnKey:       p.PawnKey,
		Occ:           p.occ,
		All:           p.All,
		HalfmoveClock: p.HalfmoveClock,
		FullmoveNum:   p.FullmoveNum,
	}
	if p.EPSquare != NoSquare {
		p.Key ^= enPassantKeys[p.EPSquare.File()]
		p.EPSquare = NoSquare
	}
	p.SideToMove = p.SideToMove.Other()
	p.Key ^= sideToMoveKey
	p.HalfmoveClock++
	p.KeyHistory = append(p.KeyHistory, p.Key)
	return u
}

// UnmakeNull inverts MakeNull.
func (p *Position) UnmakeNull(u Undo) {
	p.KeyHistory = p.KeyHistory[:len(p.KeyHistory)-1]
	p.SideToMove = p.SideToMove.Other()
	p.CastleRights = u.CastleRights
	p.EPSquare = u.EPSquare
	p.Key = u.Key
	p.PawnKey = u.PawnKey
	p.occ = u.Occ
	p.All = u.All
	p.HalfmoveClock = u.HalfmoveClock
	p.FullmoveNum = u.FullmoveNum
}

func epCapturedSquare(to Square, mover Color) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

func epSkippedSquare(from, to Square) Square {
	if to > from {
		return from + 8
	}
	return from - 8
}

func castleRookSquares(kingTo Square, c Color) (from, to Square) {
	rank := Square(0)
	if c == Black {
		rank = 56
	}
	if kingTo.File() == 6 { // king side, king lands on g-file
		return rank + 7, rank + 5
	}
	return rank + 0, rank + 3 // queen side, king lands on c-file
}
