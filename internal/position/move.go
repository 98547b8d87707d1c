package position

// Move is the tagged encoded move of spec.md §3/§9: a single integer with
// bit-packed fields and a flags byte, kept dense and copyable by value so
// move lists never allocate per-element.
//
//	bits 0-5:   from square
//	bits 6-11:  to square
//	bits 12-14: moving piece kind
//	bits 15-17: captured piece kind (NoPieceKind if none)
//	bits 18-20: promoted piece kind (NoPieceKind if none)
//	bits 21-28: flags
type Move uint32

const (
	flagEnPassant  Move = 1 << 21
	flagCastle     Move = 1 << 22
	flagDoublePush Move = 1 << 23
	flagPromotion  Move = 1 << 24

	sqMask  Move = 0x3f
	pkMask  Move = 0x7
	NilMove Move = 0
)

// NewMove builds a move. captured/promoted should be NoPieceKind when not
// applicable. At most one of isEP/isCastle/isDouble/ (promoted !=
// NoPieceKind) should be set, matching spec.md §8's mutual-exclusion
// invariant.
func NewMove(from, to Square, moving, captured, promoted PieceKind, isEP, isCastle, isDouble bool) Move {
	m := Move(from) | Move(to)<<6 | Move(moving)<<12 | Move(captured)<<15 | Move(promoted)<<18
	if isEP {
		m |= flagEnPassant
	}
	if isCastle {
		m |= flagCastle
	}
	if isDouble {
		m |= flagDoublePush
	}
	if promoted != NoPieceKind {
		m |= flagPromotion
	}
	return m
}

func (m Move) From() Square          { return Square(m & sqMask) }
func (m Move) To() Square            { return Square((m >> 6) & sqMask) }
func (m Move) MovingKind() PieceKind { return PieceKind((m >> 12) & pkMask) }
func (m Move) CapturedKind() PieceKind {
	return PieceKind((m >> 15) & pkMask)
}
func (m Move) PromotedKind() PieceKind { return PieceKind((m >> 18) & pkMask) }

func (m Move) IsEnPassant() bool  { return m&flagEnPassant != 0 }
func (m Move) IsCastle() bool     { return m&flagCastle != 0 }
func (m Move) IsDoublePush() bool { return m&flagDoublePush != 0 }
func (m Move) IsPromotion() bool  { return m&flagPromotion != 0 }
func (m Move) IsCapture() bool    { return m.CapturedKind() != NoPieceKind || m.IsEnPassant() }
func (m Move) IsQuiet() bool      { return !m.IsCapture() && !m.IsPromotion() }

// String renders the move in long algebraic form (spec.md §6): source and
// destination as file-rank pairs with a promotion-letter suffix. The nil
// move renders as "0000".
func (m Move) String() string {
	if m == NilMove {
		return "0000"
	}
	s := squareName(m.From()) + squareName(m.To())
	if m.IsPromotion() {
		s += promoLetter(m.PromotedKind())
	}
	return s
}

func squareName(s Square) string {
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func promoLetter(k PieceKind) string {
	switch k {
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	}
	return ""
}
