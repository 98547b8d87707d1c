package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/position"
)

func emptyBoardWith(placements ...struct {
	c  position.Color
	k  position.PieceKind
	sq position.Square
}) *position.Position {
	p := position.NewEmpty()
	for _, pl := range placements {
		p.Place(pl.c, pl.k, pl.sq)
	}
	p.RecomputeDerived()
	return p
}

func piece(c position.Color, k position.PieceKind, sq position.Square) struct {
	c  position.Color
	k  position.PieceKind
	sq position.Square
} {
	return struct {
		c  position.Color
		k  position.PieceKind
		sq position.Square
	}{c, k, sq}
}

// TestEvaluatePawnStructureIsolatedAndPassed builds a lone white pawn on
// d4 with no other pawns on the board: it is both isolated (no pawn on
// the c or e files) and passed (no enemy pawn ahead on d/c/e), so both
// bonuses apply on top of each other.
func TestEvaluatePawnStructureIsolatedAndPassed(t *testing.T) {
	p := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(4, 0)),
		piece(position.Black, position.King, position.FromFileRank(4, 7)),
		piece(position.White, position.Pawn, position.FromFileRank(3, 3)), // d4
	)

	score := evaluatePawnStructure(p)

	wantMG := isolatedPenaltyMG + passedBonusByRank[3]
	wantEG := isolatedPenaltyEG + passedBonusByRank[3]*3/2
	require.Equal(t, int32(wantMG), score.mg)
	require.Equal(t, int32(wantEG), score.eg)
}

// TestEvaluatePawnStructureDoubledPawnsPenalized places two white pawns
// on the same file with nothing else around; both isolated-file checks
// still apply (no pawn on c or e) in addition to the doubled penalty, and
// both are passed since there is no black pawn anywhere.
func TestEvaluatePawnStructureDoubledPawnsPenalized(t *testing.T) {
	p := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(4, 0)),
		piece(position.Black, position.King, position.FromFileRank(4, 7)),
		piece(position.White, position.Pawn, position.FromFileRank(3, 1)), // d2
		piece(position.White, position.Pawn, position.FromFileRank(3, 3)), // d4
	)

	score := evaluatePawnStructure(p)

	wantMG := 2*doubledPenaltyMG + 2*isolatedPenaltyMG + passedBonusByRank[1] + passedBonusByRank[3]
	require.Equal(t, int32(wantMG), score.mg)
}

func TestEvaluateMobilityRewardsMoreOpenLines(t *testing.T) {
	// A rook on an otherwise empty board (open file and rank) has far
	// more mobility than one boxed in by its own pawns on every side.
	open := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(0, 0)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
		piece(position.White, position.Rook, position.FromFileRank(3, 3)),
	)
	boxed := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(0, 0)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
		piece(position.White, position.Rook, position.FromFileRank(3, 3)),
		piece(position.White, position.Pawn, position.FromFileRank(3, 4)),
		piece(position.White, position.Pawn, position.FromFileRank(3, 2)),
		piece(position.White, position.Pawn, position.FromFileRank(2, 3)),
		piece(position.White, position.Pawn, position.FromFileRank(4, 3)),
	)

	openMG, _ := evaluateMobility(open, position.White)
	boxedMG, _ := evaluateMobility(boxed, position.White)

	require.Greater(t, openMG, boxedMG)
}

func TestScaleFactorQuartersOppositeColoredBishopEndings(t *testing.T) {
	p := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(0, 0)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
		piece(position.White, position.Bishop, position.FromFileRank(2, 0)), // c1
		piece(position.Black, position.Bishop, position.FromFileRank(4, 7)), // e8, opposite color from c1
	)
	require.Equal(t, int32(16), scaleFactor(p))
}

func TestScaleFactorFullWeightWithSameColoredBishops(t *testing.T) {
	p := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(0, 0)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
		piece(position.White, position.Bishop, position.FromFileRank(2, 0)), // c1
		piece(position.Black, position.Bishop, position.FromFileRank(3, 7)), // d8, same color as c1
		// One pawn each keeps the pawnless minor-only scaling out of play.
		piece(position.White, position.Pawn, position.FromFileRank(0, 1)), // a2
		piece(position.Black, position.Pawn, position.FromFileRank(7, 6)), // h7
	)
	require.Equal(t, int32(64), scaleFactor(p))
}

func TestKingActivityRewardsCentralization(t *testing.T) {
	corner := evaluateKingActivity(emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(0, 0)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
	), position.White)
	center := evaluateKingActivity(emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(3, 3)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
	), position.White)
	require.Greater(t, center, corner)
}

func TestEvaluateRooksOpenFileBonus(t *testing.T) {
	open := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(0, 0)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
		piece(position.White, position.Rook, position.FromFileRank(3, 0)),
	)
	blocked := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(0, 0)),
		piece(position.Black, position.King, position.FromFileRank(7, 7)),
		piece(position.White, position.Rook, position.FromFileRank(3, 0)),
		piece(position.White, position.Pawn, position.FromFileRank(3, 1)),
	)

	openMG, _ := evaluateRooks(open, position.White)
	blockedMG, _ := evaluateRooks(blocked, position.White)

	require.Equal(t, int32(openFileBonusMG), openMG)
	require.Equal(t, int32(0), blockedMG)
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	even := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(4, 0)),
		piece(position.Black, position.King, position.FromFileRank(4, 7)),
	)
	up := emptyBoardWith(
		piece(position.White, position.King, position.FromFileRank(4, 0)),
		piece(position.Black, position.King, position.FromFileRank(4, 7)),
		piece(position.White, position.Queen, position.FromFileRank(3, 3)),
	)
	require.Greater(t, Evaluate(up), Evaluate(even))
}
