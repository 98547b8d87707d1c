package eval

import (
	"github.com/csgarlock/corvid/internal/attacks"
	"github.com/csgarlock/corvid/internal/position"
)

// mobilityWeightMG/EG weight popcount(attacks & ~own) per piece kind
// (spec.md §4.4 item 6). Index by PieceKind; pawn/king entries unused.
var mobilityWeightMG = [6]int32{0, 4, 5, 2, 1, 0}
var mobilityWeightEG = [6]int32{0, 4, 5, 4, 2, 0}

func evaluateMobility(p *position.Position, c position.Color) (mg, eg int32) {
	own := p.Occupied(c)
	occ := p.All
	for k := position.Knight; k <= position.Queen; k++ {
		bb := p.Pieces(c, k)
		for bb != 0 {
			sq := attacks.PopLSB(&bb)
			count := int32((pieceAttacks(k, sq, occ) &^ own).PopCount())
			mg += count * mobilityWeightMG[k]
			eg += count * mobilityWeightEG[k]
		}
	}
	return mg, eg
}
