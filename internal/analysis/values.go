package analysis

import "github.com/hailam/chesslens/internal/board"

var pieceValues = [...]int{
	board.Pawn:   1,
	board.Knight: 3,
	board.Bishop: 3,
	board.Rook:   5,
	board.Queen:  9,
	board.King:   0,
}

// PieceValue returns the material value used for exchanges and control
// strength. Kings and empty squares are worth 0.
func PieceValue(pt board.PieceType) int {
	if pt >= board.NoPieceType {
		return 0
	}
	return pieceValues[pt]
}

// valuesOf maps squares to the values of the pieces standing on them.
func valuesOf(r Rules, squares []board.Square) []int {
	vals := make([]int, len(squares))
	for i, sq := range squares {
		vals[i] = PieceValue(r.PieceAt(sq).Type())
	}
	return vals
}

func strength(r Rules, squares []board.Square) int {
	total := 0
	for _, v := range valuesOf(r, squares) {
		total += v
	}
	return total
}
