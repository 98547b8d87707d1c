package eval

import (
	"github.com/csgarlock/corvid/internal/attacks"
	"github.com/csgarlock/corvid/internal/position"
)

// Evaluate returns a static score in centipawns from the side-to-move's
// perspective (spec.md §4.4): every middlegame/endgame term is summed for
// each color, blended by the game phase, scaled for drawish endgames
// before tapering, and finally negated for Black to move.
func Evaluate(p *position.Position) int32 {
	if v, ok := globalEvalCache.probe(p.Key); ok {
		return v
	}

	var mg, eg [2]int32

	pawns := evaluatePawnStructure(p)
	mg[position.White] += pawns.mg
	eg[position.White] += pawns.eg

	for c := position.Color(0); c < 2; c++ {
		for k := position.Pawn; k <= position.King; k++ {
			bb := p.Pieces(c, k)
			for bb != 0 {
				sq := attacks.PopLSB(&bb)
				mg[c] += materialMG[k] + pstValue(c, k, sq, &pstMG)
				eg[c] += materialEG[k] + pstValue(c, k, sq, &pstEG)
			}
		}

		if p.Pieces(c, position.Bishop).PopCount() >= 2 {
			mg[c] += bishopPairBonusMG
			eg[c] += bishopPairBonusEG
		}

		mobMG, mobEG := evaluateMobility(p, c)
		mg[c] += mobMG
		eg[c] += mobEG

		kmg, keg := evaluateKingSafety(p, c)
		mg[c] += kmg
		eg[c] += keg

		rmg, reg := evaluateRooks(p, c)
		mg[c] += rmg
		eg[c] += reg

		tmg, teg := evaluateHangingAndThreats(p, c)
		mg[c] += tmg
		eg[c] += teg

		omg, oeg := evaluateOutposts(p, c)
		mg[c] += omg
		eg[c] += oeg

		bmg, beg := evaluateBadBishop(p, c)
		mg[c] += bmg
		eg[c] += beg

		eg[c] += evaluateKingActivity(p, c)
	}

	mgScore := mg[position.White] - mg[position.Black]
	egScore := eg[position.White] - eg[position.Black]

	scale := scaleFactor(p)
	egScore = egScore * scale / 64

	phase := computePhase(p)
	score := (mgScore*phase + egScore*(totalPhase-phase)) / totalPhase

	if p.SideToMove == position.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}

	if p.SideToMove == position.Black {
		score = -score
	}

	globalEvalCache.store(p.Key, score)
	return score
}
