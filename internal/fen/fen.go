// Package fen implements the FEN-style collaborator spec.md §6 describes:
// the standard six-field FEN string, consumed to build a position and
// produced back from one. spec.md lists FEN parsing as an external
// collaborator the core only reaches through this contract; the core
// itself never parses a board string.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csgarlock/corvid/internal/position"
)

// StartPos is the standard starting position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceLetters = map[byte]position.PieceKind{
	'p': position.Pawn, 'n': position.Knight, 'b': position.Bishop,
	'r': position.Rook, 'q': position.Queen, 'k': position.King,
}

// Parse decodes a FEN string into a fresh Position. After placing every
// piece it calls RecomputeDerived so occupancies and both Zobrist keys
// are rebuilt from scratch, per spec.md §6.
func Parse(s string) (*position.Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: expected at least 4 fields, got %d", len(fields))
	}
	for len(fields) < 6 {
		fields = append(fields, "0")
	}

	p := position.NewEmpty()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				kind, ok := pieceLetters[lower(ch)]
				if !ok {
					return nil, fmt.Errorf("fen: bad piece letter %q", ch)
				}
				color := position.Black
				if isUpper(ch) {
					color = position.White
				}
				if file > 7 {
					return nil, fmt.Errorf("fen: rank %d overflows", i)
				}
				p.Place(color, kind, position.FromFileRank(file, rank))
				file++
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("fen: rank %d has %d files, want 8", i, file)
		}
	}

	switch fields[1] {
	case "w":
		p.SideToMove = position.White
	case "b":
		p.SideToMove = position.Black
	default:
		return nil, fmt.Errorf("fen: bad side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				p.CastleRights |= position.WhiteKingSide
			case 'Q':
				p.CastleRights |= position.WhiteQueenSide
			case 'k':
				p.CastleRights |= position.BlackKingSide
			case 'q':
				p.CastleRights |= position.BlackQueenSide
			default:
				return nil, fmt.Errorf("fen: bad castling letter %q", ch)
			}
		}
	}

	if fields[3] == "-" {
		p.EPSquare = position.NoSquare
	} else {
		sq, err := parseSquare(fields[3])
		if err != nil {
			return nil, err
		}
		p.EPSquare = sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("fen: bad halfmove clock: %w", err)
	}
	p.HalfmoveClock = uint16(halfmove)

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		fullmove = 1
	}
	p.FullmoveNum = uint16(fullmove)

	p.RecomputeDerived()
	return p, nil
}

// String renders p back to the standard six-field FEN (spec.md §8's
// FEN->Position->FEN round trip).
func String(p *position.Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := position.FromFileRank(file, rank)
			piece := p.PieceAt(sq)
			if piece.Kind == position.NoPieceKind {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceLetter(piece))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == position.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := castlingString(p.CastleRights)
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if p.EPSquare == position.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(squareString(p.EPSquare))
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNum)
	return sb.String()
}

func castlingString(rights uint8) string {
	s := ""
	if rights&position.WhiteKingSide != 0 {
		s += "K"
	}
	if rights&position.WhiteQueenSide != 0 {
		s += "Q"
	}
	if rights&position.BlackKingSide != 0 {
		s += "k"
	}
	if rights&position.BlackQueenSide != 0 {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

func pieceLetter(p position.Piece) string {
	letters := [6]string{"p", "n", "b", "r", "q", "k"}
	l := letters[p.Kind]
	if p.Color == position.White {
		return strings.ToUpper(l)
	}
	return l
}

func parseSquare(s string) (position.Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("fen: bad square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, fmt.Errorf("fen: bad square %q", s)
	}
	return position.FromFileRank(file, rank), nil
}

func squareString(sq position.Square) string {
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
