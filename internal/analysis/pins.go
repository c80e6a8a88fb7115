package analysis

import "github.com/hailam/chesslens/internal/board"

// IsPinned reports whether lifting the piece on sq leaves its own king in
// check. Any piece shielding its king is flagged, including pieces of a
// side that is already in check. A king is never pinned since a side
// without a king is never in check.
//
// The piece is put back before returning, so r is unchanged.
func IsPinned(r Rules, sq board.Square) bool {
	piece := r.RemovePiece(sq)
	if piece == board.NoPiece {
		return false
	}
	defer r.PlacePiece(piece, sq)
	return r.InCheck(piece.Color())
}
