package board

import "math/bits"

type direction int

// Directions that increase the square index come first; rayAttacks relies on it.
const (
	north direction = iota
	east
	northEast
	northWest
	south
	west
	southEast
	southWest
)

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
	rays          [8][64]Bitboard
)

func init() {
	initLeaperAttacks()
	initRays()
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func initLeaperAttacks() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}

	for sq := Square(0); sq < NoSquare; sq++ {
		f, r := sq.File(), sq.Rank()
		for _, d := range knightDeltas {
			if onBoard(f+d[0], r+d[1]) {
				knightAttacks[sq] |= SquareBB(NewSquare(f+d[0], r+d[1]))
			}
		}
		for _, d := range kingDeltas {
			if onBoard(f+d[0], r+d[1]) {
				kingAttacks[sq] |= SquareBB(NewSquare(f+d[0], r+d[1]))
			}
		}
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initRays() {
	deltas := [8][2]int{
		north:     {0, 1},
		east:      {1, 0},
		northEast: {1, 1},
		northWest: {-1, 1},
		south:     {0, -1},
		west:      {-1, 0},
		southEast: {1, -1},
		southWest: {-1, -1},
	}
	for d, delta := range deltas {
		for sq := Square(0); sq < NoSquare; sq++ {
			f, r := sq.File()+delta[0], sq.Rank()+delta[1]
			for onBoard(f, r) {
				rays[d][sq] |= SquareBB(NewSquare(f, r))
				f += delta[0]
				r += delta[1]
			}
		}
	}
}

// rayAttacks returns the squares seen along one ray, up to and including
// the first occupied square.
func rayAttacks(d direction, sq Square, occupied Bitboard) Bitboard {
	ray := rays[d][sq]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var first Square
	if d < south {
		first = blockers.LSB()
	} else {
		first = Square(63 - bits.LeadingZeros64(uint64(blockers)))
	}
	return ray &^ rays[d][first]
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the capture diagonals of a pawn of color c on sq.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns diagonal attacks from sq given the occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(northEast, sq, occupied) | rayAttacks(northWest, sq, occupied) |
		rayAttacks(southEast, sq, occupied) | rayAttacks(southWest, sq, occupied)
}

// RookAttacks returns orthogonal attacks from sq given the occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(north, sq, occupied) | rayAttacks(south, sq, occupied) |
		rayAttacks(east, sq, occupied) | rayAttacks(west, sq, occupied)
}

// QueenAttacks returns the union of bishop and rook attacks.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttackersByColor returns the pieces of color c whose attack pattern
// covers sq. Pins and checks are ignored.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	return (pawnAttacks[c.Other()][sq] & p.Pieces[c][Pawn]) |
		(knightAttacks[sq] & p.Pieces[c][Knight]) |
		(kingAttacks[sq] & p.Pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[c][Rook] | p.Pieces[c][Queen]))
}

// Attackers returns the squares of color c pieces attacking sq, ascending.
func (p *Position) Attackers(sq Square, c Color) []Square {
	return p.AttackersByColor(sq, c, p.AllOccupied).Squares()
}

// IsSquareAttacked reports whether any piece of byColor attacks sq.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied) != 0
}

// InCheck reports whether the king of color c is attacked.
// A side without a king is never in check.
func (p *Position) InCheck(c Color) bool {
	king := p.Pieces[c][King]
	if king == 0 {
		return false
	}
	return p.IsSquareAttacked(king.LSB(), c.Other())
}
