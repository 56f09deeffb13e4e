package bingo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

var testCreatedAt = time.Date(2026, time.January, 1, 9, 30, 0, 0, time.UTC)

func numbered(prefix string, n int) []string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, fmt.Sprintf("%s%d", prefix, i))
	}

	return items
}

func seeded(seed int64) Option {
	return WithSource(func() Source {
		return rand.New(rand.NewSource(seed)) //nolint: gosec // deterministic tests
	})
}

func fixedClock() Option {
	return WithClock(func() time.Time { return testCreatedAt })
}

// newBoard builds a generated-looking board: texts S0..S24 and the boss in the center.
func newBoard() *entity.Board {
	board := &entity.Board{CreatedAt: testCreatedAt}
	for i := range board.Squares {
		board.Squares[i].Text = fmt.Sprintf("S%d", i)
	}
	board.Squares[entity.CenterIndex].IsBoss = true

	return board
}

func markAll(board *entity.Board, indices ...int) *entity.Board {
	next := *board
	for _, i := range indices {
		next.Squares[i].Marked = true
	}

	return &next
}

func boolPtr(v bool) *bool {
	return &v
}
