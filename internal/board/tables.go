package board

// File indices used by the offset tables.
const (
	fileA = iota
	fileB
	fileC
	fileD
	fileE
	fileF
	fileG
	fileH
)

// step is a single board-index offset. The move is skipped (or a slide stops)
// when the square it starts from lies on one of the excluded files, which keeps
// offsets from wrapping around the board edge.
type step struct {
	offset   int
	excluded []int
}

func (s step) blockedFrom(sq int) bool {
	f := sq & 7
	for _, ex := range s.excluded {
		if ex == f {
			return true
		}
	}
	return false
}

// pawnInfo describes pawn movement for one color.
type pawnInfo struct {
	forward      int // board-index offset of a single push
	promotionRow int // row a pawn promotes on
	jumpRow      int // row a pawn may double push from
	epRow        int // row of an en-passant target this pawn may capture onto
}

var pawnInfos = [2]pawnInfo{
	White: {forward: -8, promotionRow: 0, jumpRow: 6, epRow: 2},
	Black: {forward: 8, promotionRow: 7, jumpRow: 1, epRow: 5},
}

// pawnCaptures are applied on top of the forward offset.
var pawnCaptures = [2]step{
	{offset: 1, excluded: []int{fileH}},
	{offset: -1, excluded: []int{fileA}},
}

var knightSteps = []step{
	{offset: -17, excluded: []int{fileA}},
	{offset: -10, excluded: []int{fileA, fileB}},
	{offset: 6, excluded: []int{fileA, fileB}},
	{offset: 15, excluded: []int{fileA}},
	{offset: 17, excluded: []int{fileH}},
	{offset: 10, excluded: []int{fileG, fileH}},
	{offset: -6, excluded: []int{fileG, fileH}},
	{offset: -15, excluded: []int{fileH}},
}

var diagonalSteps = []step{
	{offset: -9, excluded: []int{fileA}},
	{offset: -7, excluded: []int{fileH}},
	{offset: 9, excluded: []int{fileH}},
	{offset: 7, excluded: []int{fileA}},
}

var orthogonalSteps = []step{
	{offset: -8},
	{offset: 1, excluded: []int{fileH}},
	{offset: 8},
	{offset: -1, excluded: []int{fileA}},
}

var allSteps = append(append([]step{}, diagonalSteps...), orthogonalSteps...)

// pieceSteps holds the step table and slide flag for each non-pawn piece type.
var pieceSteps = [6]struct {
	steps  []step
	slides bool
}{
	Knight: {steps: knightSteps},
	Bishop: {steps: diagonalSteps, slides: true},
	Rook:   {steps: orthogonalSteps, slides: true},
	Queen:  {steps: allSteps, slides: true},
	King:   {steps: allSteps},
}

// Home squares used by castling.
var (
	kingHome      = [2]Square{White: E1, Black: E8}
	kingSideRook  = [2]Square{White: H1, Black: H8}
	queenSideRook = [2]Square{White: A1, Black: A8}
)
