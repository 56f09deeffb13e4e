package entity

import "time"

const (
	// BoardSize is the number of squares on a 5x5 card.
	BoardSize = 25
	// CenterIndex is where the boss square is placed when a card is generated.
	CenterIndex = 12
	// StandardSquares is how many non-boss squares a card holds.
	StandardSquares = BoardSize - 1
)

type Cell struct {
	Text   string `json:"text"`
	IsBoss bool   `json:"isBoss"`
	Marked bool   `json:"marked"`
}

// Board is one bingo card. Squares are row-major, index 0 is top left.
type Board struct {
	Squares   [BoardSize]Cell `json:"squares"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BossIndices returns the indices of every square flagged as boss, in board order.
func (that *Board) BossIndices() []int {
	indices := make([]int, 0, 1)
	for i, cell := range that.Squares {
		if cell.IsBoss {
			indices = append(indices, i)
		}
	}

	return indices
}

// BossIndex returns the first boss square, or CenterIndex when none is flagged.
func (that *Board) BossIndex() int {
	for i, cell := range that.Squares {
		if cell.IsBoss {
			return i
		}
	}

	return CenterIndex
}

// RepairBoss returns a copy with exactly one boss square: the first flagged one,
// or the center square when nothing is flagged.
func (that *Board) RepairBoss() *Board {
	repaired := *that
	boss := that.BossIndex()

	for i := range repaired.Squares {
		repaired.Squares[i].IsBoss = i == boss
	}

	return &repaired
}

func (that *Board) IsValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}
